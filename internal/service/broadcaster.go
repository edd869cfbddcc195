package service

// Dashboard events pushed to viewers of a form
const (
	EventSubmissionCreated  = "submission_created"
	EventSubmissionsDeleted = "submissions_deleted"
	EventStatsUpdate        = "stats_update"
)

// Broadcaster interface for WebSocket broadcasting (avoids import cycle)
type Broadcaster interface {
	BroadcastToForm(formID string, msgType string, payload interface{})
}
