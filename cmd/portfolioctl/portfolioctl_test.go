package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vs-portfolio/portfolio/internal/repository/sqlite"
)

// setupEnv points the CLI at a fresh SQLite file and returns its path.
func setupEnv(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "portfolio.db")
	t.Setenv("CONFIG_PATH", "")
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", dbPath)
	t.Setenv("RESUME_STORAGE", "database")
	t.Setenv("AUTH_SOURCE", "database")
	t.Setenv("LOG_LEVEL", "error")
	return dbPath
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	err := cmd.Execute()
	return out.String(), err
}

func openDB(t *testing.T, path string) *sqlite.DB {
	t.Helper()
	db, err := sqlite.New(path)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateAdmin(t *testing.T) {
	dbPath := setupEnv(t)

	out, err := run(t, "", "create-admin", "--username", "owner", "--password", "s3cret!")
	require.NoError(t, err)
	assert.Contains(t, out, `Created admin "owner".`)

	admin, err := openDB(t, dbPath).GetAdminByUsername(context.Background(), "owner")
	require.NoError(t, err)
	assert.True(t, admin.PasswordIsHashed())
	assert.NotEqual(t, "s3cret!", admin.Password)
}

func TestCreateAdmin_PasswordFromStdin(t *testing.T) {
	dbPath := setupEnv(t)

	_, err := run(t, "from-stdin\n", "create-admin", "--username", "owner")
	require.NoError(t, err)

	_, err = openDB(t, dbPath).GetAdminByUsername(context.Background(), "owner")
	require.NoError(t, err)
}

func TestCreateAdmin_Duplicate(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "", "create-admin", "-u", "owner", "-p", "one")
	require.NoError(t, err)
	_, err = run(t, "", "create-admin", "-u", "owner", "-p", "two")
	assert.Error(t, err)
}

func TestCreateAdmin_StaticSourceRefused(t *testing.T) {
	setupEnv(t)
	t.Setenv("AUTH_SOURCE", "static")

	_, err := run(t, "", "create-admin", "-u", "owner", "-p", "pw")
	assert.Error(t, err)
}

func TestCreateAdmin_RequiresUsername(t *testing.T) {
	setupEnv(t)

	_, err := run(t, "", "create-admin", "--password", "pw")
	assert.Error(t, err)
}

func TestUploadResume(t *testing.T) {
	dbPath := setupEnv(t)

	pdf := filepath.Join(t.TempDir(), "My CV.pdf")
	require.NoError(t, os.WriteFile(pdf, []byte("%PDF-1.4\n%test document\n"), 0o600))

	out, err := run(t, "", "upload-resume", pdf)
	require.NoError(t, err)
	assert.Contains(t, out, "Uploaded My CV.pdf")

	stored, err := openDB(t, dbPath).GetResume(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "My CV.pdf", stored.FileName)
	assert.Equal(t, "application/pdf", stored.ContentType)
}

func TestUploadResume_Rejections(t *testing.T) {
	setupEnv(t)
	dir := t.TempDir()

	notPDF := filepath.Join(dir, "cv.txt")
	require.NoError(t, os.WriteFile(notPDF, []byte("plain text, not a pdf"), 0o600))
	_, err := run(t, "", "upload-resume", notPDF)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Please upload a valid PDF file.")

	empty := filepath.Join(dir, "empty.pdf")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))
	_, err = run(t, "", "upload-resume", empty)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Please select a file to upload.")

	_, err = run(t, "", "upload-resume", filepath.Join(dir, "missing.pdf"))
	assert.Error(t, err)

	_, err = run(t, "", "upload-resume")
	assert.Error(t, err, "the file argument is required")
}
