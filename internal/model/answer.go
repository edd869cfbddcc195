package model

import (
	"encoding/json"
	"fmt"
	"math"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsontype"
)

// AnswerKind tags the variant held by an Answer
type AnswerKind string

const (
	AnswerNone    AnswerKind = "none"
	AnswerText    AnswerKind = "text"
	AnswerChoice  AnswerKind = "choice"
	AnswerChoices AnswerKind = "choices"
	AnswerRating  AnswerKind = "rating"
	AnswerDate    AnswerKind = "date"
)

// Choice is one selected option. When Other is set, Option holds the respondent's free text.
type Choice struct {
	Option string `json:"option" bson:"option"`
	Other  bool   `json:"other,omitempty" bson:"other,omitempty"`
}

// Answer is the canonical answer to one question. Use the constructors; the zero value is AnswerNone.
type Answer struct {
	Kind    AnswerKind `bson:"kind"`
	Text    string     `bson:"text,omitempty"`
	Number  float64    `bson:"number,omitempty"`
	Choices []Choice   `bson:"choices,omitempty"`
}

func NoAnswer() Answer { return Answer{Kind: AnswerNone} }
func TextAnswer(s string) Answer { return Answer{Kind: AnswerText, Text: s} }
func DateAnswer(s string) Answer { return Answer{Kind: AnswerDate, Text: s} }
func RatingAnswer(v float64) Answer { return Answer{Kind: AnswerRating, Number: v} }
func OptionAnswer(option string) Answer {
	return Answer{Kind: AnswerChoice, Choices: []Choice{{Option: option}}}
}

// OtherAnswer is a multiple-choice answer given through the free-text escape hatch
func OtherAnswer(text string) Answer {
	return Answer{Kind: AnswerChoice, Choices: []Choice{{Option: text, Other: true}}}
}

// ChoicesAnswer is a checkbox answer; an empty list is a valid (empty) answer
func ChoicesAnswer(choices ...Choice) Answer {
	if choices == nil {
		choices = []Choice{}
	}
	return Answer{Kind: AnswerChoices, Choices: choices}
}

func kindOrNone(k AnswerKind) AnswerKind {
	if k == "" {
		return AnswerNone
	}
	return k
}

// IsEmpty reports whether the answer fails a required check
func (a Answer) IsEmpty() bool {
	switch kindOrNone(a.Kind) {
	case AnswerText, AnswerDate:
		return a.Text == ""
	case AnswerChoice:
		return len(a.Choices) == 0 || a.Choices[0].Option == ""
	case AnswerChoices:
		return len(a.Choices) == 0
	case AnswerRating:
		return false
	default:
		return true
	}
}

// Choice returns the single selection of a multiple-choice answer
func (a Answer) Choice() (Choice, bool) {
	if a.Kind != AnswerChoice || len(a.Choices) == 0 {
		return Choice{}, false
	}
	return a.Choices[0], true
}

// Items flattens the answer into aggregation entries: list answers contribute one entry per
// element (none for an empty list), every other answer exactly one.
func (a Answer) Items() []AnswerItem {
	switch kindOrNone(a.Kind) {
	case AnswerText, AnswerDate:
		return []AnswerItem{StringItem(a.Text)}
	case AnswerRating:
		return []AnswerItem{NumberItem(a.Number)}
	case AnswerChoice:
		if len(a.Choices) == 0 {
			return []AnswerItem{NullItem()}
		}
		return []AnswerItem{StringItem(a.Choices[0].Option)}
	case AnswerChoices:
		items := make([]AnswerItem, 0, len(a.Choices))
		for _, c := range a.Choices {
			items = append(items, StringItem(c.Option))
		}
		return items
	default:
		return []AnswerItem{NullItem()}
	}
}

// Value is the loose wire shape: string, []string, number or nil
func (a Answer) Value() interface{} {
	switch kindOrNone(a.Kind) {
	case AnswerText, AnswerDate:
		return a.Text
	case AnswerRating:
		return a.Number
	case AnswerChoice:
		if len(a.Choices) == 0 {
			return nil
		}
		return a.Choices[0].Option
	case AnswerChoices:
		out := make([]string, len(a.Choices))
		for i, c := range a.Choices {
			out[i] = c.Option
		}
		return out
	default:
		return nil
	}
}

func (a Answer) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.Value())
}

// ItemKind tags a flattened aggregation entry
type ItemKind uint8

const (
	ItemNull ItemKind = iota
	ItemString
	ItemNumber
)

// AnswerItem is one flattened answer entry as counted by the aggregation
type AnswerItem struct {
	Kind ItemKind
	Str  string
	Num  float64
}

func NullItem() AnswerItem { return AnswerItem{Kind: ItemNull} }
func StringItem(s string) AnswerItem { return AnswerItem{Kind: ItemString, Str: s} }
func NumberItem(v float64) AnswerItem { return AnswerItem{Kind: ItemNumber, Num: v} }

func (i AnswerItem) MarshalJSON() ([]byte, error) {
	switch i.Kind {
	case ItemString:
		return json.Marshal(i.Str)
	case ItemNumber:
		return json.Marshal(i.Num)
	default:
		return []byte("null"), nil
	}
}

func (i *AnswerItem) UnmarshalJSON(data []byte) error {
	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	switch x := v.(type) {
	case nil:
		*i = NullItem()
	case string:
		*i = StringItem(x)
	case float64:
		*i = NumberItem(x)
	default:
		return fmt.Errorf("answer item: unsupported value %s", string(data))
	}
	return nil
}

// otherIndex is the persisted marker for an Other correct answer
const otherIndex = -1

// CorrectAnswer is either a canonical option index or the free-text Other slot.
// It persists as a plain integer where -1 means Other.
type CorrectAnswer struct {
	Index int
	Other bool
}

// CorrectOption marks the option at canonical index i as correct
func CorrectOption(i int) CorrectAnswer { return CorrectAnswer{Index: i} }

// CorrectOther marks the free-text Other slot as correct
func CorrectOther() CorrectAnswer { return CorrectAnswer{Index: otherIndex, Other: true} }

func correctFromInt(n int) CorrectAnswer {
	if n == otherIndex {
		return CorrectOther()
	}
	return CorrectOption(n)
}

func (c CorrectAnswer) persisted() int {
	if c.Other {
		return otherIndex
	}
	return c.Index
}

func (c CorrectAnswer) String() string {
	if c.Other {
		return "other"
	}
	return fmt.Sprintf("#%d", c.Index)
}

func (c CorrectAnswer) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.persisted())
}

func (c *CorrectAnswer) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("correct answer: %w", err)
	}
	*c = correctFromInt(n)
	return nil
}

func (c CorrectAnswer) MarshalBSONValue() (bsontype.Type, []byte, error) {
	return bson.MarshalValue(int32(c.persisted()))
}

func (c *CorrectAnswer) UnmarshalBSONValue(t bsontype.Type, data []byte) error {
	raw := bson.RawValue{Type: t, Value: data}
	switch t {
	case bsontype.Int32:
		*c = correctFromInt(int(raw.Int32()))
	case bsontype.Int64:
		*c = correctFromInt(int(raw.Int64()))
	case bsontype.Double:
		*c = correctFromInt(int(math.Round(raw.Double())))
	default:
		return fmt.Errorf("correct answer: unexpected bson type %s", t)
	}
	return nil
}
