package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/xid"

	"github.com/vs-portfolio/portfolio/internal/model"
)

// Rows are returned ascending by display_order; rowid breaks ties so equal
// orders keep insertion order.

// === Educations ===

func (db *DB) ListEducations(ctx context.Context) ([]model.Education, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, year, course, college, description, display_order
		 FROM educations ORDER BY display_order ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing educations: %w", err)
	}
	defer rows.Close()

	out := []model.Education{}
	for rows.Next() {
		var e model.Education
		if err := rows.Scan(&e.ID, &e.Year, &e.Course, &e.College, &e.Description, &e.DisplayOrder); err != nil {
			return nil, fmt.Errorf("sqlite: scanning education row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating education rows: %w", err)
	}
	return out, nil
}

func (db *DB) CreateEducation(ctx context.Context, e *model.Education) error {
	e.ID = xid.New().String()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO educations (id, year, course, college, description, display_order)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Year, e.Course, e.College, e.Description, e.DisplayOrder,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting education: %w", err)
	}
	return nil
}

func (db *DB) DeleteEducation(ctx context.Context, id string) error {
	return db.deleteByID(ctx, "educations", id)
}

// === Experiences ===

func (db *DB) ListExperiences(ctx context.Context) ([]model.Experience, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, year, role, company, description, display_order
		 FROM experiences ORDER BY display_order ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing experiences: %w", err)
	}
	defer rows.Close()

	out := []model.Experience{}
	for rows.Next() {
		var e model.Experience
		if err := rows.Scan(&e.ID, &e.Year, &e.Role, &e.Company, &e.Description, &e.DisplayOrder); err != nil {
			return nil, fmt.Errorf("sqlite: scanning experience row: %w", err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating experience rows: %w", err)
	}
	return out, nil
}

func (db *DB) CreateExperience(ctx context.Context, e *model.Experience) error {
	e.ID = xid.New().String()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO experiences (id, year, role, company, description, display_order)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.Year, e.Role, e.Company, e.Description, e.DisplayOrder,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting experience: %w", err)
	}
	return nil
}

func (db *DB) DeleteExperience(ctx context.Context, id string) error {
	return db.deleteByID(ctx, "experiences", id)
}

// === Projects ===

func (db *DB) ListProjects(ctx context.Context) ([]model.Project, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, name, image_url, tags, display_order
		 FROM projects ORDER BY display_order ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing projects: %w", err)
	}
	defer rows.Close()

	out := []model.Project{}
	for rows.Next() {
		var (
			p    model.Project
			tags string
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.ImageURL, &tags, &p.DisplayOrder); err != nil {
			return nil, fmt.Errorf("sqlite: scanning project row: %w", err)
		}
		if err := json.Unmarshal([]byte(tags), &p.Tags); err != nil {
			return nil, fmt.Errorf("sqlite: decoding tags of project %s: %w", p.ID, err)
		}
		if p.Tags == nil {
			p.Tags = []string{}
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating project rows: %w", err)
	}
	return out, nil
}

func (db *DB) CreateProject(ctx context.Context, p *model.Project) error {
	if p.Tags == nil {
		p.Tags = []string{}
	}
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return fmt.Errorf("sqlite: encoding project tags: %w", err)
	}

	p.ID = xid.New().String()
	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO projects (id, name, image_url, tags, display_order)
		 VALUES (?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.ImageURL, string(tags), p.DisplayOrder,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting project: %w", err)
	}
	return nil
}

func (db *DB) DeleteProject(ctx context.Context, id string) error {
	return db.deleteByID(ctx, "projects", id)
}

// === Blog posts ===

func (db *DB) ListBlogPosts(ctx context.Context) ([]model.BlogPost, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, linkedin_embed_url, post_date, display_order
		 FROM blog_posts ORDER BY display_order ASC, rowid ASC`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing blog posts: %w", err)
	}
	defer rows.Close()

	out := []model.BlogPost{}
	for rows.Next() {
		var (
			b        model.BlogPost
			postDate int64
		)
		if err := rows.Scan(&b.ID, &b.LinkedInEmbedURL, &postDate, &b.DisplayOrder); err != nil {
			return nil, fmt.Errorf("sqlite: scanning blog post row: %w", err)
		}
		b.PostDate = fromNanos(postDate)
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating blog post rows: %w", err)
	}
	return out, nil
}

func (db *DB) CreateBlogPost(ctx context.Context, b *model.BlogPost) error {
	b.ID = xid.New().String()
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO blog_posts (id, linkedin_embed_url, post_date, display_order)
		 VALUES (?, ?, ?, ?)`,
		b.ID, b.LinkedInEmbedURL, toNanos(b.PostDate), b.DisplayOrder,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting blog post: %w", err)
	}
	return nil
}

func (db *DB) DeleteBlogPost(ctx context.Context, id string) error {
	return db.deleteByID(ctx, "blog_posts", id)
}

// deleteByID removes at most one row. A missing row is not an error.
// table is always one of the constants above, never user input.
func (db *DB) deleteByID(ctx context.Context, table, id string) error {
	_, err := db.conn.ExecContext(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, table), id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting from %s (id=%s): %w", table, id, err)
	}
	return nil
}
