package model

// OptionCount is one slice of an option distribution
type OptionCount struct {
	Name       string  `json:"name"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// QuestionStats is the derived summary of all answers to one question
type QuestionStats struct {
	Name               string        `json:"name"`
	Title              string        `json:"title"`
	Type               QuestionType  `json:"type"`
	Answers            []AnswerItem  `json:"answers"`
	NumericAnswers     []float64     `json:"numericAnswers"`
	Options            []string      `json:"options"`
	TotalAnswers       int           `json:"totalAnswers"`
	Average            *float64      `json:"average,omitempty"`
	Min                *float64      `json:"min,omitempty"`
	Max                *float64      `json:"max,omitempty"`
	OptionDistribution []OptionCount `json:"optionDistribution,omitempty"`
	RatingHistogram    []int         `json:"ratingHistogram,omitempty"`
}

// Summary is the aggregation of every submission of a form. Order lists question names in form order.
type Summary struct {
	FormID        string                    `json:"formId"`
	FormVersion   int64                     `json:"formVersion,omitempty"`
	ResponseCount int                       `json:"responseCount"`
	Questions     map[string]*QuestionStats `json:"questions"`
	Order         []string                  `json:"order"`
}
