package model

import "time"

// QuestionType identifies how a question is answered
type QuestionType string

const (
	QuestionShortText      QuestionType = "short_text"
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionCheckbox       QuestionType = "checkbox"
	QuestionRating         QuestionType = "rating"
	QuestionDate           QuestionType = "date"
)

// IsChoice reports whether answers are picked from the option list
func (t QuestionType) IsChoice() bool {
	return t == QuestionMultipleChoice || t == QuestionCheckbox
}

// Valid reports whether t is one of the known question types
func (t QuestionType) Valid() bool {
	switch t {
	case QuestionShortText, QuestionMultipleChoice, QuestionCheckbox, QuestionRating, QuestionDate:
		return true
	}
	return false
}

// DefaultRatingScale is the bucket count used when a rating question has no scale (values 0..10)
const DefaultRatingScale = 11

// Form is an authored form or quiz
type Form struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	OwnerID     string    `json:"ownerId" bson:"ownerId"`
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Pages       []Page    `json:"pages" bson:"pages"`
	IsQuiz      bool      `json:"isQuiz" bson:"isQuiz"`
	// QuestionSeq is the highest q<N> answer key ever issued; it never decreases
	QuestionSeq int       `json:"questionSeq" bson:"questionSeq"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// Page groups questions; pages keep creation order
type Page struct {
	Name        string     `json:"name" bson:"name"`
	Title       string     `json:"title,omitempty" bson:"title,omitempty"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Questions   []Question `json:"questions" bson:"questions"`
}

// Question is one prompt on a page. Name is the persisted answer key.
type Question struct {
	ID               string          `json:"id" bson:"id"`
	Name             string          `json:"name" bson:"name"`
	Type             QuestionType    `json:"type" bson:"type"`
	Title            string          `json:"title" bson:"title"`
	Description      string          `json:"description,omitempty" bson:"description,omitempty"`
	Options          []string        `json:"options,omitempty" bson:"options,omitempty"`
	CorrectAnswers   []CorrectAnswer `json:"correctAnswers,omitempty" bson:"correctAnswers,omitempty"`
	RatingCharacter  string          `json:"ratingCharacter,omitempty" bson:"ratingCharacter,omitempty"`
	RatingScale      int             `json:"ratingScale,omitempty" bson:"ratingScale,omitempty"`
	IsRequired       bool            `json:"isRequired" bson:"isRequired"`
	IsScored         bool            `json:"isScored,omitempty" bson:"isScored,omitempty"`
	Score            *float64        `json:"score,omitempty" bson:"score,omitempty"`
	AllowOtherAnswer bool            `json:"allowOtherAnswer,omitempty" bson:"allowOtherAnswer,omitempty"`
}

// Points is the weight of the question in a quiz, 1 when unset
func (q Question) Points() float64 {
	if q.Score == nil {
		return 1
	}
	return *q.Score
}

// Buckets is the rating histogram size
func (q Question) Buckets() int {
	if q.RatingScale > 0 {
		return q.RatingScale
	}
	return DefaultRatingScale
}

// OptionIndex returns the canonical position of option text, or -1
func (q Question) OptionIndex(option string) int {
	for i, o := range q.Options {
		if o == option {
			return i
		}
	}
	return -1
}

// Questions flattens all pages in order
func (f *Form) Questions() []Question {
	var out []Question
	for _, p := range f.Pages {
		out = append(out, p.Questions...)
	}
	return out
}
