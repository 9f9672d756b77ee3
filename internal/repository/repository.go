// Package repository declares the data-access façade. Each store
// (mongo, sqlite, memory) implements Store; the filesystem package offers an
// alternative ResumeRepository.
//
// Contract shared by every implementation:
//   - List* returns every document ascending by DisplayOrder, ties in
//     insertion order (contacts: newest SubmittedAt first). Never nil.
//   - Create* assigns the ID and stores the document. No uniqueness checks.
//   - Delete* removes the matching document. An unknown or malformed id is
//     not an error.
package repository

import (
	"context"

	"github.com/vs-portfolio/portfolio/internal/model"
)

type AdminRepository interface {
	// GetAdminByUsername matches the username exactly (case-sensitive).
	// Returns apperror.ErrNotFound if there is no such admin.
	GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error)
	CreateAdmin(ctx context.Context, admin *model.Admin) error
}

type EducationRepository interface {
	ListEducations(ctx context.Context) ([]model.Education, error)
	CreateEducation(ctx context.Context, education *model.Education) error
	DeleteEducation(ctx context.Context, id string) error
}

type ExperienceRepository interface {
	ListExperiences(ctx context.Context) ([]model.Experience, error)
	CreateExperience(ctx context.Context, experience *model.Experience) error
	DeleteExperience(ctx context.Context, id string) error
}

type ProjectRepository interface {
	ListProjects(ctx context.Context) ([]model.Project, error)
	CreateProject(ctx context.Context, project *model.Project) error
	DeleteProject(ctx context.Context, id string) error
}

type BlogPostRepository interface {
	ListBlogPosts(ctx context.Context) ([]model.BlogPost, error)
	CreateBlogPost(ctx context.Context, post *model.BlogPost) error
	DeleteBlogPost(ctx context.Context, id string) error
}

type ContactRepository interface {
	ListContacts(ctx context.Context) ([]model.Contact, error)
	CreateContact(ctx context.Context, contact *model.Contact) error
	DeleteContact(ctx context.Context, id string) error
}

// ResumeRepository holds at most one résumé.
type ResumeRepository interface {
	// GetResume returns apperror.ErrNotFound when nothing is stored.
	GetResume(ctx context.Context) (*model.ResumeFile, error)
	// ReplaceResume stores resume as the only résumé, discarding any other.
	ReplaceResume(ctx context.Context, resume *model.ResumeFile) error
}

// ContentRepository groups the ordered list collections.
type ContentRepository interface {
	EducationRepository
	ExperienceRepository
	ProjectRepository
	BlogPostRepository
	ContactRepository
}

// Store is the complete façade over one document store.
type Store interface {
	AdminRepository
	ContentRepository
	ResumeRepository

	// Ping checks the store is reachable.
	Ping(ctx context.Context) error
	Close() error
}
