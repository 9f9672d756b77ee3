package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/vs-portfolio/portfolio/internal/apperror"
	"github.com/vs-portfolio/portfolio/internal/metrics"
	"github.com/vs-portfolio/portfolio/internal/model"
	"github.com/vs-portfolio/portfolio/internal/repository"
)

// ResumeUpload is a file received for the résumé slot.
type ResumeUpload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ResumeService enforces the résumé rules: one stored PDF, replaced
// wholesale on upload.
type ResumeService struct {
	repo     repository.ResumeRepository
	maxBytes int64
	logger   *slog.Logger
	now      func() time.Time
}

func NewResumeService(repo repository.ResumeRepository, maxBytes int64, logger *slog.Logger) *ResumeService {
	return &ResumeService{repo: repo, maxBytes: maxBytes, logger: logger, now: time.Now}
}

// MaxBytes is the largest accepted upload.
func (s *ResumeService) MaxBytes() int64 { return s.maxBytes }

// Upload validates up and replaces the stored résumé with it. Nothing is
// written when validation fails.
func (s *ResumeService) Upload(ctx context.Context, up ResumeUpload) (*model.ResumeFile, error) {
	if up.Content == nil || up.Size == 0 {
		metrics.RecordUpload(metrics.OutcomeInvalid)
		return nil, apperror.ValidationFailed(ResumeField, MsgSelectFile)
	}
	if up.ContentType != model.ContentTypePDF {
		metrics.RecordUpload(metrics.OutcomeInvalid)
		return nil, apperror.ValidationFailed(ResumeField, MsgInvalidPDF)
	}
	if up.Size > s.maxBytes {
		metrics.RecordUpload(metrics.OutcomeInvalid)
		return nil, apperror.ValidationFailed(ResumeField, s.tooLarge())
	}

	content, err := io.ReadAll(io.LimitReader(up.Content, s.maxBytes+1))
	if err != nil {
		metrics.RecordUpload(metrics.OutcomeError)
		return nil, fmt.Errorf("service/resume: reading upload: %w", err)
	}
	if len(content) == 0 {
		metrics.RecordUpload(metrics.OutcomeInvalid)
		return nil, apperror.ValidationFailed(ResumeField, MsgSelectFile)
	}
	if int64(len(content)) > s.maxBytes {
		metrics.RecordUpload(metrics.OutcomeInvalid)
		return nil, apperror.ValidationFailed(ResumeField, s.tooLarge())
	}

	r := &model.ResumeFile{
		FileName:    baseName(up.FileName),
		ContentType: model.ContentTypePDF,
		Content:     content,
		UploadedAt:  s.now().UTC().Truncate(time.Millisecond),
	}
	if err := s.repo.ReplaceResume(ctx, r); err != nil {
		metrics.RecordUpload(metrics.OutcomeError)
		s.logger.Error("storing resume failed",
			slog.String("filename", r.FileName),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("service/resume: storing: %w", err)
	}

	metrics.RecordUpload(metrics.OutcomeSuccess)
	s.logger.Info("resume uploaded",
		slog.String("filename", r.FileName),
		slog.Int("bytes", len(content)),
	)
	return r, nil
}

// Current returns the stored résumé, or an apperror.ErrNotFound error
// carrying "Resume not found.".
func (s *ResumeService) Current(ctx context.Context) (*model.ResumeFile, error) {
	r, err := s.repo.GetResume(ctx)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Missing(MsgResumeNotFound)
		}
		return nil, fmt.Errorf("service/resume: loading: %w", err)
	}
	return r, nil
}

// CurrentName is the dashboard label for the stored résumé.
func (s *ResumeService) CurrentName(ctx context.Context) (string, error) {
	r, err := s.Current(ctx)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return model.NoResumePlaceholder, nil
		}
		return "", err
	}
	return r.FileName, nil
}

func (s *ResumeService) tooLarge() string {
	return fmt.Sprintf("The file must be %d MB or smaller.", s.maxBytes>>20)
}

// baseName drops any client-side directory, including Windows paths some
// browsers send.
func baseName(name string) string {
	name = path.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" {
		return "resume.pdf"
	}
	return name
}
