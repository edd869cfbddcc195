package model

import "time"

// OptionLayout is the display order of a choice question's options for one rendering.
// IndexMap[displayPos] is the canonical option index.
type OptionLayout struct {
	Options  []string `json:"options"`
	IndexMap []int    `json:"indexMap"`
}

// PresentedPage is a page as shown to one respondent
type PresentedPage struct {
	Name        string     `json:"name"`
	Title       string     `json:"title,omitempty"`
	Description string     `json:"description,omitempty"`
	Questions   []Question `json:"questions"`
}

// Presentation is one rendering of a form. Questions carry display-ordered options
// and no correct answers; Layouts is keyed by question name.
type Presentation struct {
	ID        string                  `json:"id"`
	FormID    string                  `json:"formId"`
	Title     string                  `json:"title"`
	IsQuiz    bool                    `json:"isQuiz"`
	Pages     []PresentedPage         `json:"pages"`
	Layouts   map[string]OptionLayout `json:"layouts,omitempty"`
	CreatedAt time.Time               `json:"createdAt"`
}
