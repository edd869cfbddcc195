package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"formsight/internal/model"
	"formsight/internal/repository"
	"formsight/internal/storage"
	"formsight/internal/survey"
	"formsight/pkg/monitoring"
	"formsight/pkg/tracing"

	"github.com/google/uuid"
)

// Export formats
const (
	FormatCSV = "csv"
	FormatTXT = "txt"
)

// Artifact is a rendered export ready to download or archive
type Artifact struct {
	FileName    string
	ContentType string
	Content     []byte
}

// ArchiveResult points at an archived artifact. ID addresses it for deletion.
type ArchiveResult struct {
	ID       string `json:"id"`
	URL      string `json:"url"`
	FileName string `json:"fileName"`
	Size     int    `json:"size"`
}

// ExportOptions are the defaults applied when a request does not choose
type ExportOptions struct {
	Delimiter rune
	Location  *time.Location
}

// ExportService renders delimited tables and text reports
type ExportService struct {
	forms       repository.FormRepository
	submissions repository.SubmissionRepository
	archive     storage.Provider
	opts        ExportOptions
}

// NewExportService creates a new export service. archive may be nil, which disables Archive.
func NewExportService(forms repository.FormRepository, submissions repository.SubmissionRepository, archive storage.Provider, opts ExportOptions) *ExportService {
	if opts.Delimiter == 0 {
		opts.Delimiter = survey.DefaultDelimiter
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &ExportService{
		forms:       forms,
		submissions: submissions,
		archive:     archive,
		opts:        opts,
	}
}

func (s *ExportService) load(ctx context.Context, formID string) (*model.Form, []*model.Submission, error) {
	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, nil, persistErr("get form", err)
	}
	if form == nil {
		return nil, nil, ErrFormNotFound
	}
	subs, err := s.submissions.ListByFormID(ctx, formID)
	if err != nil {
		return nil, nil, persistErr("list submissions", err)
	}
	return form, subs, nil
}

func validDelimiter(r rune) bool {
	return r != '"' && r != '\r' && r != '\n' && r != utf8.RuneError && utf8.ValidRune(r)
}

// Table renders the delimited export. A zero delimiter uses the configured default;
// a non-empty ids list restricts the export to those submissions, in that order.
func (s *ExportService) Table(ctx context.Context, formID string, ids []string, delimiter rune) (*Artifact, error) {
	ctx, span := tracing.Tracer.Start(ctx, "ExportService.Table")
	defer span.End()

	if delimiter == 0 {
		delimiter = s.opts.Delimiter
	}
	if !validDelimiter(delimiter) {
		return nil, &survey.ValidationError{Fields: []survey.FieldError{
			{Field: "delimiter", Message: fmt.Sprintf("%q cannot separate cells", delimiter)},
		}}
	}

	form, subs, err := s.load(ctx, formID)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 {
		subs = survey.FilterSubmissions(subs, ids)
	}

	content, err := survey.ToDelimitedTable(form, subs, delimiter)
	if err != nil {
		return nil, err
	}
	monitoring.ExportsTotal.WithLabelValues(FormatCSV).Inc()
	return &Artifact{
		FileName:    survey.TableFileName(formID),
		ContentType: "text/csv; charset=utf-8",
		Content:     content,
	}, nil
}

// Report renders the plain-text report over all submissions
func (s *ExportService) Report(ctx context.Context, formID string) (*Artifact, error) {
	ctx, span := tracing.Tracer.Start(ctx, "ExportService.Report")
	defer span.End()

	form, subs, err := s.load(ctx, formID)
	if err != nil {
		return nil, err
	}
	summary := survey.Aggregate(form, subs)
	content := survey.ToReport(form, subs, summary, s.opts.Location)

	monitoring.ExportsTotal.WithLabelValues(FormatTXT).Inc()
	return &Artifact{
		FileName:    survey.ReportFileName(form.Title),
		ContentType: "text/plain; charset=utf-8",
		Content:     []byte(content),
	}, nil
}

// Archive renders an artifact and stores it in the archive provider
func (s *ExportService) Archive(ctx context.Context, formID, format string, ids []string) (*ArchiveResult, error) {
	if s.archive == nil {
		return nil, persistErr("archive export", fmt.Errorf("no archive storage configured"))
	}

	var (
		artifact *Artifact
		err      error
	)
	switch format {
	case FormatCSV, "":
		artifact, err = s.Table(ctx, formID, ids, 0)
	case FormatTXT:
		artifact, err = s.Report(ctx, formID)
	default:
		return nil, ErrUnsupportedFormat
	}
	if err != nil {
		return nil, err
	}

	id := uuid.NewString() + "-" + artifact.FileName
	url, err := s.archive.Upload(ctx, archiveName(formID, id), bytes.NewReader(artifact.Content), int64(len(artifact.Content)), artifact.ContentType)
	if err != nil {
		return nil, persistErr("archive export", err)
	}
	return &ArchiveResult{ID: id, URL: url, FileName: artifact.FileName, Size: len(artifact.Content)}, nil
}

// DeleteArchive removes an archived export of the form
func (s *ExportService) DeleteArchive(ctx context.Context, formID, id string) error {
	if s.archive == nil {
		return persistErr("delete archive", fmt.Errorf("no archive storage configured"))
	}
	if id == "" || strings.ContainsAny(id, `/\`) || strings.Contains(id, "..") {
		return ErrArchiveNotFound
	}

	err := s.archive.Delete(ctx, archiveName(formID, id))
	if errors.Is(err, storage.ErrNotFound) {
		return ErrArchiveNotFound
	}
	return persistErr("delete archive", err)
}

func archiveName(formID, id string) string {
	return formID + "/" + id
}
