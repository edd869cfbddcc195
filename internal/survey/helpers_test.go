package survey

import (
	"encoding/json"
	"time"

	"formsight/internal/model"
)

func ptr(v float64) *float64 { return &v }

func raw(v interface{}) Response {
	data, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return Response{Value: data}
}

func sampleForm() *model.Form {
	return &model.Form{
		ID:    "f1",
		Title: "Team Survey",
		Pages: []model.Page{
			{
				Name: "page1",
				Questions: []model.Question{
					{Name: "q1", Type: model.QuestionShortText, Title: "Name", IsRequired: true},
					{Name: "q2", Type: model.QuestionMultipleChoice, Title: "Color", Options: []string{"Red", "Green", "Blue"}, AllowOtherAnswer: true},
				},
			},
			{
				Name: "page2",
				Questions: []model.Question{
					{Name: "q3", Type: model.QuestionCheckbox, Title: "Pets", Options: []string{"Cat", "Dog", "Fish"}, AllowOtherAnswer: true},
					{Name: "q4", Type: model.QuestionRating, Title: "Mood", RatingScale: 6},
				},
			},
		},
	}
}

func submission(id string, at time.Time, answers map[string]model.Answer) *model.Submission {
	return &model.Submission{ID: id, FormID: "f1", Responses: answers, CreatedAt: at}
}
