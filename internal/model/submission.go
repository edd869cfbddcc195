package model

import "time"

// Submission is one respondent's completed form. It is created once and never edited.
type Submission struct {
	ID         string            `json:"id" bson:"_id,omitempty"`
	FormID     string            `json:"formId" bson:"formId"`
	FormTitle  string            `json:"formTitle,omitempty" bson:"formTitle,omitempty"`
	Responses  map[string]Answer `json:"responses" bson:"responses"`
	TotalScore *float64          `json:"totalScore,omitempty" bson:"totalScore,omitempty"` // quiz only, in [0,1]
	CreatedAt  time.Time         `json:"createdAt" bson:"createdAt"`
}

// Clone copies the submission deep enough that callers cannot alias the responses map
func (s *Submission) Clone() *Submission {
	c := *s
	c.Responses = make(map[string]Answer, len(s.Responses))
	for k, v := range s.Responses {
		v.Choices = append([]Choice(nil), v.Choices...)
		c.Responses[k] = v
	}
	if s.TotalScore != nil {
		score := *s.TotalScore
		c.TotalScore = &score
	}
	return &c
}
