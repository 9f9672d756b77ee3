package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/vs-portfolio/portfolio/internal/model"
)

// ListContacts returns submissions newest first.
func (db *DB) ListContacts(ctx context.Context) ([]model.Contact, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, email, subject, message, submitted_at
		 FROM contacts ORDER BY submitted_at DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing contacts: %w", err)
	}
	defer rows.Close()

	out := []model.Contact{}
	for rows.Next() {
		var (
			c           model.Contact
			submittedAt int64
		)
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Subject, &c.Message, &submittedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning contact row: %w", err)
		}
		c.SubmittedAt = fromNanos(submittedAt)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating contact rows: %w", err)
	}
	return out, nil
}

// CreateContact stamps SubmittedAt if the caller left it zero.
func (db *DB) CreateContact(ctx context.Context, c *model.Contact) error {
	c.ID = xid.New().String()
	if c.SubmittedAt.IsZero() {
		c.SubmittedAt = time.Now().UTC()
	}
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO contacts (id, name, email, subject, message, submitted_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Email, c.Subject, c.Message, toNanos(c.SubmittedAt),
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting contact: %w", err)
	}
	return nil
}

func (db *DB) DeleteContact(ctx context.Context, id string) error {
	return db.deleteByID(ctx, "contacts", id)
}
