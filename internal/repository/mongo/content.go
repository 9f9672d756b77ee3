package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/vs-portfolio/portfolio/internal/model"
)

// Create* leave ID empty so the driver generates an ObjectID, then copy its
// hex form back onto the model.

func (s *Store) ListEducations(ctx context.Context) ([]model.Education, error) {
	return findAll[model.Education](ctx, s.educations, byDisplayOrder)
}

func (s *Store) CreateEducation(ctx context.Context, e *model.Education) error {
	e.ID = ""
	id, err := insert(ctx, s.educations, e)
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

func (s *Store) DeleteEducation(ctx context.Context, id string) error {
	return deleteOne(ctx, s.educations, id)
}

func (s *Store) ListExperiences(ctx context.Context) ([]model.Experience, error) {
	return findAll[model.Experience](ctx, s.experiences, byDisplayOrder)
}

func (s *Store) CreateExperience(ctx context.Context, e *model.Experience) error {
	e.ID = ""
	id, err := insert(ctx, s.experiences, e)
	if err != nil {
		return err
	}
	e.ID = id
	return nil
}

func (s *Store) DeleteExperience(ctx context.Context, id string) error {
	return deleteOne(ctx, s.experiences, id)
}

func (s *Store) ListProjects(ctx context.Context) ([]model.Project, error) {
	projects, err := findAll[model.Project](ctx, s.projects, byDisplayOrder)
	if err != nil {
		return nil, err
	}
	for i := range projects {
		if projects[i].Tags == nil {
			projects[i].Tags = []string{}
		}
	}
	return projects, nil
}

func (s *Store) CreateProject(ctx context.Context, p *model.Project) error {
	p.ID = ""
	if p.Tags == nil {
		p.Tags = []string{}
	}
	id, err := insert(ctx, s.projects, p)
	if err != nil {
		return err
	}
	p.ID = id
	return nil
}

func (s *Store) DeleteProject(ctx context.Context, id string) error {
	return deleteOne(ctx, s.projects, id)
}

func (s *Store) ListBlogPosts(ctx context.Context) ([]model.BlogPost, error) {
	posts, err := findAll[model.BlogPost](ctx, s.blogPosts, byDisplayOrder)
	if err != nil {
		return nil, err
	}
	for i := range posts {
		posts[i].PostDate = posts[i].PostDate.UTC()
	}
	return posts, nil
}

func (s *Store) CreateBlogPost(ctx context.Context, b *model.BlogPost) error {
	b.ID = ""
	id, err := insert(ctx, s.blogPosts, b)
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

func (s *Store) DeleteBlogPost(ctx context.Context, id string) error {
	return deleteOne(ctx, s.blogPosts, id)
}

// newestFirst orders contacts by submission time, latest first.
var newestFirst = bson.D{{Key: "submittedAt", Value: -1}, {Key: "_id", Value: -1}}

func (s *Store) ListContacts(ctx context.Context) ([]model.Contact, error) {
	contacts, err := findAll[model.Contact](ctx, s.contacts, newestFirst)
	if err != nil {
		return nil, err
	}
	for i := range contacts {
		contacts[i].SubmittedAt = contacts[i].SubmittedAt.UTC()
	}
	return contacts, nil
}

func (s *Store) CreateContact(ctx context.Context, c *model.Contact) error {
	c.ID = ""
	if c.SubmittedAt.IsZero() {
		c.SubmittedAt = nowUTC()
	}
	id, err := insert(ctx, s.contacts, c)
	if err != nil {
		return err
	}
	c.ID = id
	return nil
}

func (s *Store) DeleteContact(ctx context.Context, id string) error {
	return deleteOne(ctx, s.contacts, id)
}
