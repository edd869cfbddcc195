package survey

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"formsight/internal/model"
)

// DefaultDelimiter separates cells of the delimited table unless configured otherwise
const DefaultDelimiter = ','

const (
	timestampLayout  = "2006-01-02T15:04:05.000Z"
	reportTimeLayout = "02/01/2006, 15:04:05"
)

var unsafeFileChars = regexp.MustCompile(`[^a-zA-Z0-9]`)

// TableFileName names the delimited export of a form
func TableFileName(formID string) string {
	return fmt.Sprintf("form-responses-%s.csv", formID)
}

// ReportFileName names the text report of a form after its sanitized title
func ReportFileName(title string) string {
	return "FormResponses_" + unsafeFileChars.ReplaceAllString(title, "_") + ".txt"
}

// ColumnLabel is the header of a question column
func ColumnLabel(q model.Question) string {
	title := q.Title
	if title == "" {
		title = "Unknown"
	}
	typ := string(q.Type)
	if typ == "" {
		typ = "-"
	}
	return fmt.Sprintf("%s: %s (%s)", q.Name, title, typ)
}

// ToDelimitedTable renders one row per submission in the order given. Cells are CSV-escaped
// against the chosen delimiter; a zero delimiter means DefaultDelimiter.
func ToDelimitedTable(form *model.Form, subs []*model.Submission, delimiter rune) ([]byte, error) {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}
	questions := form.Questions()

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = delimiter

	header := make([]string, 0, len(questions)+2)
	header = append(header, "Timestamp")
	for _, q := range questions {
		header = append(header, ColumnLabel(q))
	}
	if form.IsQuiz {
		header = append(header, "Score")
	}
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	for _, sub := range subs {
		row := make([]string, 0, len(header))
		row = append(row, sub.CreatedAt.UTC().Format(timestampLayout))
		for _, q := range questions {
			a, ok := sub.Responses[q.Name]
			if !ok {
				row = append(row, "")
				continue
			}
			row = append(row, cell(a))
		}
		if form.IsQuiz {
			row = append(row, scoreCell(sub.TotalScore))
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write row %s: %w", sub.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cell(a model.Answer) string {
	switch v := a.Value().(type) {
	case nil:
		return ""
	case string:
		return v
	case float64:
		return formatNumber(v)
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

func scoreCell(score *float64) string {
	if score == nil {
		return ""
	}
	return fmt.Sprintf("%.2f%%", *score*100)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ToReport renders the plain-text report: every submission followed by the statistics block.
// Timestamps are shown in loc (UTC when nil).
func ToReport(form *model.Form, subs []*model.Submission, summary *model.Summary, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	questions := form.Questions()

	var b strings.Builder
	fmt.Fprintf(&b, "Form Title: %s\n", form.Title)
	fmt.Fprintf(&b, "Total Responses: %d\n\n", len(subs))
	b.WriteString("=== ALL RESPONSES ===\n\n")

	for i, sub := range subs {
		fmt.Fprintf(&b, "Response #%d\n", i+1)
		fmt.Fprintf(&b, "Submitted: %s\n", sub.CreatedAt.In(loc).Format(reportTimeLayout))
		for _, q := range questions {
			a, ok := sub.Responses[q.Name]
			if !ok || a.Kind == model.AnswerNone || a.Kind == "" {
				continue
			}
			title := q.Title
			if title == "" {
				title = untitledQuestion
			}
			fmt.Fprintf(&b, "Q: %s\n", title)
			fmt.Fprintf(&b, "A: %s\n", reportAnswer(a))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n=== STATISTICS ===\n\n")
	if summary == nil {
		return b.String()
	}
	for _, name := range summary.Order {
		st := summary.Questions[name]
		if st == nil {
			continue
		}
		fmt.Fprintf(&b, "Question: %s (%s)\n", st.Title, st.Type)
		fmt.Fprintf(&b, "Total answers: %d\n", st.TotalAnswers)
		if st.Average != nil {
			fmt.Fprintf(&b, "Average: %.2f\n", *st.Average)
			fmt.Fprintf(&b, "Range: %s - %s\n", formatNumber(*st.Min), formatNumber(*st.Max))
		}
		if len(st.OptionDistribution) > 0 {
			b.WriteString("Options:\n")
			for _, o := range st.OptionDistribution {
				fmt.Fprintf(&b, "- %s: %d (%.1f%%)\n", o.Name, o.Count, o.Percentage)
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func reportAnswer(a model.Answer) string {
	switch v := a.Value().(type) {
	case []string:
		return strings.Join(v, ", ")
	case float64:
		return formatNumber(v)
	case string:
		return v
	default:
		data, _ := json.Marshal(v)
		return string(data)
	}
}

// FilterSubmissions keeps the submissions whose id is listed, in list order. Unknown ids are ignored.
func FilterSubmissions(subs []*model.Submission, ids []string) []*model.Submission {
	byID := make(map[string]*model.Submission, len(subs))
	for _, s := range subs {
		byID[s.ID] = s
	}
	out := make([]*model.Submission, 0, len(ids))
	for _, id := range ids {
		if s, ok := byID[id]; ok {
			out = append(out, s)
			delete(byID, id)
		}
	}
	return out
}
