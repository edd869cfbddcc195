package survey

import (
	"strings"
	"testing"
	"time"

	"formsight/internal/model"
)

func exportForm() *model.Form {
	return &model.Form{ID: "f9", Title: "Pet Quiz!", IsQuiz: true, Pages: []model.Page{{Name: "p", Questions: []model.Question{
		{Name: "q1", Type: model.QuestionShortText, Title: "Name"},
		{Name: "q2", Type: model.QuestionCheckbox, Title: "Pets", Options: []string{"Cat", "Dog"}},
	}}}}
}

func exportSubmissions() []*model.Submission {
	half, full := 0.5, 1.0
	return []*model.Submission{
		{ID: "a", CreatedAt: t0, TotalScore: &half, Responses: map[string]model.Answer{
			"q1": model.TextAnswer(`Smith, "Jr"`),
			"q2": model.ChoicesAnswer(model.Choice{Option: "Cat"}, model.Choice{Option: "Dog"}),
		}},
		{ID: "b", CreatedAt: t0.Add(time.Hour), TotalScore: &full, Responses: map[string]model.Answer{
			"q2": model.ChoicesAnswer(),
		}},
		{ID: "c", CreatedAt: t0.Add(2 * time.Hour), TotalScore: &full, Responses: map[string]model.Answer{
			"q1": model.TextAnswer("Lee, A"),
		}},
	}
}

func TestToDelimitedTable(t *testing.T) {
	cases := []struct {
		name      string
		delimiter rune
		want      string
	}{
		{"default comma", 0, strings.Join([]string{
			"Timestamp,q1: Name (short_text),q2: Pets (checkbox),Score",
			`2024-03-01T12:30:00.000Z,"Smith, ""Jr""","[""Cat"",""Dog""]",50.00%`,
			"2024-03-01T13:30:00.000Z,,[],100.00%",
			`2024-03-01T14:30:00.000Z,"Lee, A",,100.00%`,
		}, "\n") + "\n"},
		{"semicolon", ';', strings.Join([]string{
			"Timestamp;q1: Name (short_text);q2: Pets (checkbox);Score",
			`2024-03-01T12:30:00.000Z;"Smith, ""Jr""";"[""Cat"",""Dog""]";50.00%`,
			"2024-03-01T13:30:00.000Z;;[];100.00%",
			"2024-03-01T14:30:00.000Z;Lee, A;;100.00%",
		}, "\n") + "\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ToDelimitedTable(exportForm(), exportSubmissions(), tc.delimiter)
			if err != nil {
				t.Fatalf("ToDelimitedTable: %v", err)
			}
			if string(got) != tc.want {
				t.Fatalf("got:\n%s\nwant:\n%s", got, tc.want)
			}
		})
	}
}

func TestToDelimitedTableRejectsQuoteDelimiter(t *testing.T) {
	if _, err := ToDelimitedTable(exportForm(), nil, '"'); err == nil {
		t.Fatalf("a quote cannot be a delimiter")
	}
}

func TestToDelimitedTableSurveyHasNoScore(t *testing.T) {
	got, err := ToDelimitedTable(sampleForm(), nil, 0)
	if err != nil {
		t.Fatal(err)
	}
	want := "Timestamp,q1: Name (short_text),q2: Color (multiple_choice),q3: Pets (checkbox),q4: Mood (rating)\n"
	if string(got) != want {
		t.Fatalf("got %q", got)
	}
}

func TestToReportEmpty(t *testing.T) {
	form := sampleForm()
	got := ToReport(form, nil, Aggregate(form, nil), time.UTC)
	want := "Form Title: Team Survey\nTotal Responses: 0\n\n=== ALL RESPONSES ===\n\n\n=== STATISTICS ===\n\n"
	if got != want {
		t.Fatalf("got %q", got)
	}
}

func TestToReport(t *testing.T) {
	form, subs := sampleForm(), sampleSubmissions()
	got := ToReport(form, subs, Aggregate(form, subs), time.UTC)

	for _, want := range []string{
		"Total Responses: 2\n",
		"Response #1\nSubmitted: 01/03/2024, 13:30:00\nQ: Name\nA: Bo\nQ: Color\nA: Teal\n",
		"Response #2\nSubmitted: 01/03/2024, 12:30:00\n",
		"Q: Pets\nA: Cat, Dog\n",
		"Question: Mood (rating)\nTotal answers: 2\nAverage: 3.50\nRange: 2 - 5\n",
		"Question: Pets (checkbox)\nTotal answers: 3\nOptions:\n- Dog: 2 (66.7%)\n- Cat: 1 (33.3%)\n",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("report missing %q:\n%s", want, got)
		}
	}
	if strings.Contains(got, "gone") {
		t.Fatalf("stale answers must not be reported")
	}
}

func TestFileNames(t *testing.T) {
	if got := TableFileName("abc"); got != "form-responses-abc.csv" {
		t.Fatalf("got %s", got)
	}
	if got := ReportFileName("Pet Quiz! 2024"); got != "FormResponses_Pet_Quiz__2024.txt" {
		t.Fatalf("got %s", got)
	}
}

func TestFilterSubmissions(t *testing.T) {
	got := FilterSubmissions(exportSubmissions(), []string{"c", "missing", "a", "c"})
	if len(got) != 2 || got[0].ID != "c" || got[1].ID != "a" {
		t.Fatalf("unexpected subset %v", got)
	}
}
