package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vs-portfolio/portfolio/internal/apperror"
	"github.com/vs-portfolio/portfolio/internal/model"
)

// currentResumeID is the fixed primary key of the single résumé row.
const currentResumeID = "current"

func (db *DB) GetResume(ctx context.Context) (*model.ResumeFile, error) {
	var (
		r          model.ResumeFile
		uploadedAt int64
	)
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, filename, content_type, content, uploaded_at
		 FROM resumes ORDER BY uploaded_at DESC LIMIT 1`,
	).Scan(&r.ID, &r.FileName, &r.ContentType, &r.Content, &uploadedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.Missing("Resume not found.")
		}
		return nil, fmt.Errorf("sqlite: getting resume: %w", err)
	}
	r.UploadedAt = fromNanos(uploadedAt)
	return &r, nil
}

// ReplaceResume upserts the fixed row and drops any stray rows in one
// transaction, so readers never observe zero or two résumés.
func (db *DB) ReplaceResume(ctx context.Context, r *model.ResumeFile) error {
	if r.UploadedAt.IsZero() {
		r.UploadedAt = time.Now().UTC()
	}
	r.ID = currentResumeID

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning resume transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after Commit

	_, err = tx.ExecContext(ctx,
		`INSERT INTO resumes (id, filename, content_type, content, uploaded_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   filename = excluded.filename,
		   content_type = excluded.content_type,
		   content = excluded.content,
		   uploaded_at = excluded.uploaded_at`,
		r.ID, r.FileName, r.ContentType, r.Content, toNanos(r.UploadedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: upserting resume: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM resumes WHERE id <> ?`, r.ID); err != nil {
		return fmt.Errorf("sqlite: removing stale resumes: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing resume: %w", err)
	}
	return nil
}
