package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/xid"

	"github.com/vs-portfolio/portfolio/internal/apperror"
	"github.com/vs-portfolio/portfolio/internal/model"
)

// GetAdminByUsername matches username exactly. SQLite's default BINARY
// collation makes = case-sensitive.
func (db *DB) GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var a model.Admin

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, password FROM admins WHERE username = ? ORDER BY rowid LIMIT 1`,
		username,
	).Scan(&a.ID, &a.Username, &a.Password)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("admin", username)
		}
		return nil, fmt.Errorf("sqlite: getting admin %q: %w", username, err)
	}

	return &a, nil
}

func (db *DB) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	admin.ID = xid.New().String()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO admins (id, username, password) VALUES (?, ?, ?)`,
		admin.ID, admin.Username, admin.Password,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting admin %q: %w", admin.Username, err)
	}
	return nil
}
