// Package memory implements repository.Store in process memory. Nothing is
// persisted; it backs the "memory" store driver and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/rs/xid"

	"github.com/vs-portfolio/portfolio/internal/apperror"
	"github.com/vs-portfolio/portfolio/internal/model"
	"github.com/vs-portfolio/portfolio/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Store is safe for concurrent use. Slices are kept in insertion order and
// sorted on read with a stable sort.
type Store struct {
	mu          sync.RWMutex
	admins      []model.Admin
	educations  []model.Education
	experiences []model.Experience
	projects    []model.Project
	blogPosts   []model.BlogPost
	contacts    []model.Contact
	resume      *model.ResumeFile
}

func New() *Store {
	return &Store{}
}

func (s *Store) Ping(context.Context) error { return nil }
func (s *Store) Close() error               { return nil }

// === Admins ===

func (s *Store) GetAdminByUsername(_ context.Context, username string) (*model.Admin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, a := range s.admins {
		if a.Username == username {
			return &a, nil
		}
	}
	return nil, apperror.NotFound("admin", username)
}

func (s *Store) CreateAdmin(_ context.Context, admin *model.Admin) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	admin.ID = xid.New().String()
	s.admins = append(s.admins, *admin)
	return nil
}

// === Educations ===

func (s *Store) ListEducations(context.Context) ([]model.Education, error) {
	s.mu.RLock()
	out := append([]model.Education{}, s.educations...)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (s *Store) CreateEducation(_ context.Context, e *model.Education) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = xid.New().String()
	s.educations = append(s.educations, *e)
	return nil
}

func (s *Store) DeleteEducation(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.educations = removeFirst(s.educations, func(e model.Education) bool { return e.ID == id })
	return nil
}

// === Experiences ===

func (s *Store) ListExperiences(context.Context) ([]model.Experience, error) {
	s.mu.RLock()
	out := append([]model.Experience{}, s.experiences...)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (s *Store) CreateExperience(_ context.Context, e *model.Experience) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.ID = xid.New().String()
	s.experiences = append(s.experiences, *e)
	return nil
}

func (s *Store) DeleteExperience(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.experiences = removeFirst(s.experiences, func(e model.Experience) bool { return e.ID == id })
	return nil
}

// === Projects ===

func (s *Store) ListProjects(context.Context) ([]model.Project, error) {
	s.mu.RLock()
	out := make([]model.Project, 0, len(s.projects))
	for _, p := range s.projects {
		p.Tags = append([]string{}, p.Tags...)
		out = append(out, p)
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (s *Store) CreateProject(_ context.Context, p *model.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = xid.New().String()
	stored := *p
	stored.Tags = append([]string{}, p.Tags...)
	s.projects = append(s.projects, stored)
	return nil
}

func (s *Store) DeleteProject(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.projects = removeFirst(s.projects, func(p model.Project) bool { return p.ID == id })
	return nil
}

// === Blog posts ===

func (s *Store) ListBlogPosts(context.Context) ([]model.BlogPost, error) {
	s.mu.RLock()
	out := append([]model.BlogPost{}, s.blogPosts...)
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].DisplayOrder < out[j].DisplayOrder })
	return out, nil
}

func (s *Store) CreateBlogPost(_ context.Context, b *model.BlogPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b.ID = xid.New().String()
	s.blogPosts = append(s.blogPosts, *b)
	return nil
}

func (s *Store) DeleteBlogPost(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.blogPosts = removeFirst(s.blogPosts, func(b model.BlogPost) bool { return b.ID == id })
	return nil
}

// === Contacts ===

// ListContacts returns submissions newest first; equal timestamps newest
// insertion first.
func (s *Store) ListContacts(context.Context) ([]model.Contact, error) {
	s.mu.RLock()
	out := make([]model.Contact, 0, len(s.contacts))
	for i := len(s.contacts) - 1; i >= 0; i-- {
		out = append(out, s.contacts[i])
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool { return out[i].SubmittedAt.After(out[j].SubmittedAt) })
	return out, nil
}

func (s *Store) CreateContact(_ context.Context, c *model.Contact) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = xid.New().String()
	if c.SubmittedAt.IsZero() {
		c.SubmittedAt = time.Now().UTC()
	}
	s.contacts = append(s.contacts, *c)
	return nil
}

func (s *Store) DeleteContact(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.contacts = removeFirst(s.contacts, func(c model.Contact) bool { return c.ID == id })
	return nil
}

// === Résumé ===

func (s *Store) GetResume(context.Context) (*model.ResumeFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.resume == nil {
		return nil, apperror.Missing("Resume not found.")
	}
	r := *s.resume
	r.Content = append([]byte(nil), s.resume.Content...)
	return &r, nil
}

func (s *Store) ReplaceResume(_ context.Context, r *model.ResumeFile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = xid.New().String()
	if r.UploadedAt.IsZero() {
		r.UploadedAt = time.Now().UTC()
	}
	stored := *r
	stored.Content = append([]byte(nil), r.Content...)
	s.resume = &stored
	return nil
}

func removeFirst[T any](items []T, match func(T) bool) []T {
	for i, item := range items {
		if match(item) {
			return append(items[:i:i], items[i+1:]...)
		}
	}
	return items
}
