package filesystem

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vs-portfolio/portfolio/internal/apperror"
	"github.com/vs-portfolio/portfolio/internal/model"
)

func newTestStore(t *testing.T) (*ResumeStore, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "cv")
	s, err := NewResumeStore(dir)
	require.NoError(t, err)
	return s, dir
}

func TestGetResume_Empty(t *testing.T) {
	s, _ := newTestStore(t)

	_, err := s.GetResume(context.Background())
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "got %v", err)
}

func TestReplaceResume_KeepsOnlyNewest(t *testing.T) {
	s, dir := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceResume(ctx, &model.ResumeFile{FileName: "old-cv.pdf", Content: []byte("%PDF-old")}))
	require.NoError(t, s.ReplaceResume(ctx, &model.ResumeFile{FileName: "new-cv.pdf", Content: []byte("%PDF-new")}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "new-cv.pdf", entries[0].Name())

	got, err := s.GetResume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new-cv.pdf", got.FileName)
	assert.Equal(t, model.ContentTypePDF, got.ContentType)
	assert.Equal(t, []byte("%PDF-new"), got.Content)
}

func TestReplaceResume_SameNameOverwrites(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.ReplaceResume(ctx, &model.ResumeFile{FileName: "cv.pdf", Content: []byte("one")}))
	require.NoError(t, s.ReplaceResume(ctx, &model.ResumeFile{FileName: "cv.pdf", Content: []byte("two")}))

	got, err := s.GetResume(ctx)
	require.NoError(t, err)
	assert.Equal(t, []byte("two"), got.Content)
}

func TestReplaceResume_LeavesOtherFilesAlone(t *testing.T) {
	s, dir := newTestStore(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep"), 0o644))

	require.NoError(t, s.ReplaceResume(context.Background(), &model.ResumeFile{FileName: "cv.pdf", Content: []byte("%PDF")}))

	_, err := os.Stat(filepath.Join(dir, "notes.txt"))
	assert.NoError(t, err)
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"cv.pdf", "cv.pdf"},
		{"../../etc/passwd", "passwd.pdf"},
		{`C:\Users\me\My CV.PDF`, "My CV.PDF"},
		{"", "resume.pdf"},
		{".hidden.pdf", "resume.pdf"},
		{"resume", "resume.pdf"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeFileName(tt.in))
		})
	}
}
