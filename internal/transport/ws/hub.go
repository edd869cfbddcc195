package ws

import (
	"encoding/json"

	"formsight/pkg/logger"

	"go.uber.org/zap"
)

// MessageType defines the type of WebSocket message
type MessageType string

// Dashboard message types; the service layer emits the same strings
const (
	MsgSubmissionCreated  MessageType = "submission_created"
	MsgSubmissionsDeleted MessageType = "submissions_deleted"
	MsgStatsUpdate        MessageType = "stats_update"
)

// Message is the WebSocket envelope format
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// Hub fans form events out to the dashboards watching that form. All maps are owned by
// the run goroutine.
type Hub struct {
	viewers map[string]map[*Connection]bool // formID -> connections

	register   chan *Connection
	unregister chan *Connection
	broadcast  chan *BroadcastMessage
	count      chan countRequest
	stop       chan struct{}
}

// Connection represents a WebSocket connection
type Connection struct {
	FormID string
	Send   chan []byte
	Hub    *Hub
}

// BroadcastMessage is a message to broadcast
type BroadcastMessage struct {
	FormID  string
	Message *Message
}

type countRequest struct {
	formID string
	reply  chan int
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	h := &Hub{
		viewers:    make(map[string]map[*Connection]bool),
		register:   make(chan *Connection),
		unregister: make(chan *Connection),
		broadcast:  make(chan *BroadcastMessage, 256),
		count:      make(chan countRequest),
		stop:       make(chan struct{}),
	}
	go h.run()
	return h
}

func (h *Hub) run() {
	for {
		select {
		case conn := <-h.register:
			if h.viewers[conn.FormID] == nil {
				h.viewers[conn.FormID] = make(map[*Connection]bool)
			}
			h.viewers[conn.FormID][conn] = true
			logger.Log.Info("dashboard connected", zap.String("formId", conn.FormID))

		case conn := <-h.unregister:
			h.remove(conn)

		case msg := <-h.broadcast:
			data, err := json.Marshal(msg.Message)
			if err != nil {
				logger.Log.Error("ws marshal failed", zap.Error(err))
				continue
			}
			for conn := range h.viewers[msg.FormID] {
				select {
				case conn.Send <- data:
				default:
					// slow viewer, drop it rather than block every other form
					h.remove(conn)
				}
			}

		case req := <-h.count:
			req.reply <- len(h.viewers[req.formID])

		case <-h.stop:
			for _, conns := range h.viewers {
				for conn := range conns {
					close(conn.Send)
				}
			}
			h.viewers = make(map[string]map[*Connection]bool)
			return
		}
	}
}

func (h *Hub) remove(conn *Connection) {
	conns, ok := h.viewers[conn.FormID]
	if !ok || !conns[conn] {
		return
	}
	delete(conns, conn)
	close(conn.Send)
	if len(conns) == 0 {
		delete(h.viewers, conn.FormID)
	}
	logger.Log.Info("dashboard disconnected", zap.String("formId", conn.FormID))
}

// Register adds a connection
func (h *Hub) Register(conn *Connection) {
	select {
	case h.register <- conn:
	case <-h.stop:
		close(conn.Send)
	}
}

// Unregister removes a connection
func (h *Hub) Unregister(conn *Connection) {
	select {
	case h.unregister <- conn:
	case <-h.stop:
	}
}

// Viewers returns the number of dashboards attached to a form
func (h *Hub) Viewers(formID string) int {
	reply := make(chan int, 1)
	select {
	case h.count <- countRequest{formID: formID, reply: reply}:
		return <-reply
	case <-h.stop:
		return 0
	}
}

// Close disconnects every dashboard and stops the hub
func (h *Hub) Close() {
	select {
	case <-h.stop:
	default:
		close(h.stop)
	}
}

// BroadcastToForm sends an event to every dashboard of the form (implements service.Broadcaster)
func (h *Hub) BroadcastToForm(formID string, msgType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Log.Error("ws payload marshal failed", zap.String("type", msgType), zap.Error(err))
		return
	}
	msg := &BroadcastMessage{
		FormID: formID,
		Message: &Message{
			Type:    MessageType(msgType),
			Payload: data,
		},
	}
	select {
	case h.broadcast <- msg:
	case <-h.stop:
	}
}
