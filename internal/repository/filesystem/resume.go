// Package filesystem stores the résumé as a PDF file in a directory instead
// of inside the database.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vs-portfolio/portfolio/internal/apperror"
	"github.com/vs-portfolio/portfolio/internal/model"
	"github.com/vs-portfolio/portfolio/internal/repository"
)

var _ repository.ResumeRepository = (*ResumeStore)(nil)

// ResumeStore keeps exactly one *.pdf file in dir. The uploaded file name is
// kept (reduced to its base name); the download name is the file name.
type ResumeStore struct {
	dir string
	mu  sync.Mutex // serialises writers; readers rely on atomic rename
}

// NewResumeStore creates dir if needed.
func NewResumeStore(dir string) (*ResumeStore, error) {
	if dir == "" {
		return nil, errors.New("filesystem: resume directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filesystem: creating %s: %w", dir, err)
	}
	return &ResumeStore{dir: dir}, nil
}

func (s *ResumeStore) GetResume(_ context.Context) (*model.ResumeFile, error) {
	path, info, err := s.current()
	if err != nil {
		return nil, err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		// Replaced between listing and reading.
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperror.Missing("Resume not found.")
		}
		return nil, fmt.Errorf("filesystem: reading %s: %w", path, err)
	}

	return &model.ResumeFile{
		ID:          info.Name(),
		FileName:    info.Name(),
		ContentType: model.ContentTypePDF,
		Content:     content,
		UploadedAt:  info.ModTime().UTC(),
	}, nil
}

// ReplaceResume writes the new file under a temporary name, renames it into
// place and then removes every other PDF in the directory.
func (s *ResumeStore) ReplaceResume(_ context.Context, r *model.ResumeFile) error {
	name := sanitizeFileName(r.FileName)

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return fmt.Errorf("filesystem: creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(r.Content); err != nil {
		tmp.Close()
		return fmt.Errorf("filesystem: writing resume: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("filesystem: closing resume: %w", err)
	}

	final := filepath.Join(s.dir, name)
	if err := os.Rename(tmpName, final); err != nil {
		return fmt.Errorf("filesystem: moving resume into place: %w", err)
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("filesystem: listing %s: %w", s.dir, err)
	}
	for _, e := range entries {
		if e.IsDir() || e.Name() == name || !isPDF(e.Name()) {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, e.Name())); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("filesystem: removing old resume %s: %w", e.Name(), err)
		}
	}

	info, err := os.Stat(final)
	if err == nil {
		r.UploadedAt = info.ModTime().UTC()
	}
	r.ID = name
	r.FileName = name
	return nil
}

// current returns the newest PDF in the directory.
func (s *ResumeStore) current() (string, fs.FileInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil, apperror.Missing("Resume not found.")
		}
		return "", nil, fmt.Errorf("filesystem: listing %s: %w", s.dir, err)
	}

	var (
		bestPath string
		bestInfo fs.FileInfo
	)
	for _, e := range entries {
		if e.IsDir() || !isPDF(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if bestInfo == nil || info.ModTime().After(bestInfo.ModTime()) {
			bestPath = filepath.Join(s.dir, e.Name())
			bestInfo = info
		}
	}
	if bestInfo == nil {
		return "", nil, apperror.Missing("Resume not found.")
	}
	return bestPath, bestInfo, nil
}

func isPDF(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".pdf") && !strings.HasPrefix(name, ".")
}

// sanitizeFileName strips directories and guarantees a .pdf extension.
func sanitizeFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" || strings.HasPrefix(name, ".") {
		name = "resume.pdf"
	}
	if !strings.EqualFold(filepath.Ext(name), ".pdf") {
		name += ".pdf"
	}
	return name
}
