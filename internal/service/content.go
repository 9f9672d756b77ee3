package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vs-portfolio/portfolio/internal/metrics"
	"github.com/vs-portfolio/portfolio/internal/model"
	"github.com/vs-portfolio/portfolio/internal/repository"
	"github.com/vs-portfolio/portfolio/internal/validate"
)

// Entity names used in log lines, metrics and flash messages.
const (
	EntityEducation  = "Education"
	EntityExperience = "Experience"
	EntityProject    = "Project"
	EntityBlogPost   = "Blog post"
	EntityContact    = "Contact"
)

// ContentService manages the ordered lists shown on the public pages and
// the contact inbox shown on the dashboard.
type ContentService struct {
	repo      repository.ContentRepository
	validator *validate.Validator
	logger    *slog.Logger
}

func NewContentService(repo repository.ContentRepository, validator *validate.Validator, logger *slog.Logger) *ContentService {
	return &ContentService{repo: repo, validator: validator, logger: logger}
}

// Dashboard is everything the admin dashboard lists.
type Dashboard struct {
	Educations  []model.Education
	Experiences []model.Experience
	Projects    []model.Project
	BlogPosts   []model.BlogPost
	Contacts    []model.Contact
}

func (s *ContentService) Dashboard(ctx context.Context) (*Dashboard, error) {
	var (
		d   Dashboard
		err error
	)
	if d.Educations, err = s.repo.ListEducations(ctx); err != nil {
		return nil, fmt.Errorf("service/content: listing educations: %w", err)
	}
	if d.Experiences, err = s.repo.ListExperiences(ctx); err != nil {
		return nil, fmt.Errorf("service/content: listing experiences: %w", err)
	}
	if d.Projects, err = s.repo.ListProjects(ctx); err != nil {
		return nil, fmt.Errorf("service/content: listing projects: %w", err)
	}
	if d.BlogPosts, err = s.repo.ListBlogPosts(ctx); err != nil {
		return nil, fmt.Errorf("service/content: listing blog posts: %w", err)
	}
	if d.Contacts, err = s.repo.ListContacts(ctx); err != nil {
		return nil, fmt.Errorf("service/content: listing contacts: %w", err)
	}
	return &d, nil
}

// === Educations ===

func (s *ContentService) ListEducations(ctx context.Context) ([]model.Education, error) {
	return s.repo.ListEducations(ctx)
}

func (s *ContentService) AddEducation(ctx context.Context, in model.EducationInput) (*model.Education, error) {
	in.Year, in.Course, in.College, in.Description = trim(in.Year), trim(in.Course), trim(in.College), trim(in.Description)
	if err := s.validator.Struct(&in); err != nil {
		return nil, err
	}

	e := &model.Education{
		Year:         in.Year,
		Course:       in.Course,
		College:      in.College,
		Description:  in.Description,
		DisplayOrder: in.DisplayOrder,
	}
	if err := s.repo.CreateEducation(ctx, e); err != nil {
		return nil, s.failed(EntityEducation, "add", err)
	}
	s.changed(EntityEducation, "add", e.ID)
	return e, nil
}

func (s *ContentService) DeleteEducation(ctx context.Context, id string) error {
	return s.delete(ctx, EntityEducation, id, s.repo.DeleteEducation)
}

// === Experiences ===

func (s *ContentService) ListExperiences(ctx context.Context) ([]model.Experience, error) {
	return s.repo.ListExperiences(ctx)
}

func (s *ContentService) AddExperience(ctx context.Context, in model.ExperienceInput) (*model.Experience, error) {
	in.Year, in.Role, in.Company, in.Description = trim(in.Year), trim(in.Role), trim(in.Company), trim(in.Description)
	if err := s.validator.Struct(&in); err != nil {
		return nil, err
	}

	e := &model.Experience{
		Year:         in.Year,
		Role:         in.Role,
		Company:      in.Company,
		Description:  in.Description,
		DisplayOrder: in.DisplayOrder,
	}
	if err := s.repo.CreateExperience(ctx, e); err != nil {
		return nil, s.failed(EntityExperience, "add", err)
	}
	s.changed(EntityExperience, "add", e.ID)
	return e, nil
}

func (s *ContentService) DeleteExperience(ctx context.Context, id string) error {
	return s.delete(ctx, EntityExperience, id, s.repo.DeleteExperience)
}

// === Projects ===

func (s *ContentService) ListProjects(ctx context.Context) ([]model.Project, error) {
	return s.repo.ListProjects(ctx)
}

func (s *ContentService) AddProject(ctx context.Context, in model.ProjectInput) (*model.Project, error) {
	in.Name, in.ImageURL = trim(in.Name), trim(in.ImageURL)
	if err := s.validator.Struct(&in); err != nil {
		return nil, err
	}

	p := &model.Project{
		Name:         in.Name,
		ImageURL:     in.ImageURL,
		Tags:         cleanTags(in.Tags),
		DisplayOrder: in.DisplayOrder,
	}
	if err := s.repo.CreateProject(ctx, p); err != nil {
		return nil, s.failed(EntityProject, "add", err)
	}
	s.changed(EntityProject, "add", p.ID)
	return p, nil
}

func (s *ContentService) DeleteProject(ctx context.Context, id string) error {
	return s.delete(ctx, EntityProject, id, s.repo.DeleteProject)
}

// === Blog posts ===

func (s *ContentService) ListBlogPosts(ctx context.Context) ([]model.BlogPost, error) {
	return s.repo.ListBlogPosts(ctx)
}

func (s *ContentService) AddBlogPost(ctx context.Context, in model.BlogPostInput) (*model.BlogPost, error) {
	in.LinkedInEmbedURL = trim(in.LinkedInEmbedURL)
	if err := s.validator.Struct(&in); err != nil {
		return nil, err
	}

	b := &model.BlogPost{
		LinkedInEmbedURL: in.LinkedInEmbedURL,
		PostDate:         in.PostDate.UTC(),
		DisplayOrder:     in.DisplayOrder,
	}
	if err := s.repo.CreateBlogPost(ctx, b); err != nil {
		return nil, s.failed(EntityBlogPost, "add", err)
	}
	s.changed(EntityBlogPost, "add", b.ID)
	return b, nil
}

func (s *ContentService) DeleteBlogPost(ctx context.Context, id string) error {
	return s.delete(ctx, EntityBlogPost, id, s.repo.DeleteBlogPost)
}

// === Contacts ===

func (s *ContentService) ListContacts(ctx context.Context) ([]model.Contact, error) {
	return s.repo.ListContacts(ctx)
}

func (s *ContentService) DeleteContact(ctx context.Context, id string) error {
	return s.delete(ctx, EntityContact, id, s.repo.DeleteContact)
}

// delete ignores an empty id. Unknown ids are a no-op in every store.
func (s *ContentService) delete(ctx context.Context, entity, id string, del func(context.Context, string) error) error {
	id = trim(id)
	if id == "" {
		return nil
	}
	if err := del(ctx, id); err != nil {
		return s.failed(entity, "delete", err)
	}
	s.changed(entity, "delete", id)
	return nil
}

func (s *ContentService) changed(entity, action, id string) {
	metrics.RecordContentChange(entity, action)
	s.logger.Info("content changed",
		slog.String("entity", entity),
		slog.String("action", action),
		slog.String("id", id),
	)
}

func (s *ContentService) failed(entity, action string, err error) error {
	s.logger.Error("content change failed",
		slog.String("entity", entity),
		slog.String("action", action),
		slog.String("error", err.Error()),
	)
	return fmt.Errorf("service/content: %s %s: %w", action, entity, err)
}

// cleanTags trims every tag and drops blanks. The result is never nil.
func cleanTags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = trim(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
