// Package repotest holds the behaviour every repository.Store must share.
// Each store's tests call Run with a constructor for a fresh, empty store.
package repotest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vs-portfolio/portfolio/internal/apperror"
	"github.com/vs-portfolio/portfolio/internal/model"
	"github.com/vs-portfolio/portfolio/internal/repository"
)

// Run executes the shared store suite. newStore must return an empty store;
// Run does not close it.
func Run(t *testing.T, newStore func(t *testing.T) repository.Store) {
	t.Helper()

	t.Run("EducationsOrderedByDisplayOrder", func(t *testing.T) { educationOrder(t, newStore(t)) })
	t.Run("EqualDisplayOrderKeepsInsertionOrder", func(t *testing.T) { equalOrder(t, newStore(t)) })
	t.Run("ExperiencesCreateAndDelete", func(t *testing.T) { experiences(t, newStore(t)) })
	t.Run("ProjectsKeepTags", func(t *testing.T) { projects(t, newStore(t)) })
	t.Run("BlogPostsKeepPostDate", func(t *testing.T) { blogPosts(t, newStore(t)) })
	t.Run("ContactsNewestFirst", func(t *testing.T) { contacts(t, newStore(t)) })
	t.Run("DeleteUnknownIDIsNoOp", func(t *testing.T) { deleteUnknown(t, newStore(t)) })
	t.Run("ResumeSingleton", func(t *testing.T) { resumeSingleton(t, newStore(t)) })
	t.Run("AdminLookup", func(t *testing.T) { adminLookup(t, newStore(t)) })
	t.Run("EmptyListsAreNotNil", func(t *testing.T) { emptyLists(t, newStore(t)) })
}

func educationOrder(t *testing.T, s repository.Store) {
	ctx := context.Background()

	for _, order := range []int{7, 1, 3} {
		require.NoError(t, s.CreateEducation(ctx, &model.Education{
			Year: "2020", Course: "Course", College: "College", DisplayOrder: order,
		}))
	}
	added := &model.Education{Year: "2021", Course: "New", College: "College", DisplayOrder: 5}
	require.NoError(t, s.CreateEducation(ctx, added))
	assert.NotEmpty(t, added.ID, "Create should assign an ID")

	got, err := s.ListEducations(ctx)
	require.NoError(t, err)

	orders := make([]int, 0, len(got))
	for _, e := range got {
		orders = append(orders, e.DisplayOrder)
	}
	assert.Equal(t, []int{1, 3, 5, 7}, orders)
	assert.Equal(t, added.ID, got[2].ID)
}

func equalOrder(t *testing.T, s repository.Store) {
	ctx := context.Background()

	first := &model.Project{Name: "first", ImageURL: "/img/1.png", DisplayOrder: 2}
	second := &model.Project{Name: "second", ImageURL: "/img/2.png", DisplayOrder: 2}
	require.NoError(t, s.CreateProject(ctx, first))
	require.NoError(t, s.CreateProject(ctx, second))

	got, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "first", got[0].Name)
	assert.Equal(t, "second", got[1].Name)
}

func experiences(t *testing.T, s repository.Store) {
	ctx := context.Background()

	keep := &model.Experience{Year: "2019-2021", Role: "Engineer", Company: "Acme", DisplayOrder: 1}
	drop := &model.Experience{Year: "2021-2023", Role: "Lead", Company: "Initech", DisplayOrder: 2}
	require.NoError(t, s.CreateExperience(ctx, keep))
	require.NoError(t, s.CreateExperience(ctx, drop))

	require.NoError(t, s.DeleteExperience(ctx, drop.ID))

	got, err := s.ListExperiences(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, keep.ID, got[0].ID)
	assert.Equal(t, "Acme", got[0].Company)
}

func projects(t *testing.T, s repository.Store) {
	ctx := context.Background()

	p := &model.Project{Name: "Portfolio", ImageURL: "/img/p.png", Tags: []string{"go", "mongo"}}
	require.NoError(t, s.CreateProject(ctx, p))

	got, err := s.ListProjects(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"go", "mongo"}, got[0].Tags)
}

func blogPosts(t *testing.T, s repository.Store) {
	ctx := context.Background()

	date := time.Date(2024, time.March, 9, 0, 0, 0, 0, time.UTC)
	b := &model.BlogPost{LinkedInEmbedURL: "https://www.linkedin.com/embed/feed/update/urn:li:share:1", PostDate: date}
	require.NoError(t, s.CreateBlogPost(ctx, b))

	got, err := s.ListBlogPosts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].PostDate.Equal(date), "PostDate = %v, want %v", got[0].PostDate, date)

	require.NoError(t, s.DeleteBlogPost(ctx, b.ID))
	got, err = s.ListBlogPosts(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func contacts(t *testing.T, s repository.Store) {
	ctx := context.Background()
	base := time.Date(2025, time.January, 1, 12, 0, 0, 0, time.UTC)

	older := &model.Contact{Name: "Ann", Email: "ann@example.com", Message: "hi", SubmittedAt: base}
	newer := &model.Contact{Name: "Bob", Email: "bob@example.com", Message: "hello", SubmittedAt: base.Add(time.Hour)}
	require.NoError(t, s.CreateContact(ctx, older))
	require.NoError(t, s.CreateContact(ctx, newer))

	got, err := s.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Bob", got[0].Name)
	assert.Equal(t, "Ann", got[1].Name)

	require.NoError(t, s.DeleteContact(ctx, older.ID))
	got, err = s.ListContacts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, newer.ID, got[0].ID)
}

func deleteUnknown(t *testing.T, s repository.Store) {
	ctx := context.Background()

	e := &model.Education{Year: "2020", Course: "C", College: "U", DisplayOrder: 1}
	require.NoError(t, s.CreateEducation(ctx, e))

	for _, id := range []string{"does-not-exist", "", "65f0c0ffee0000000000beef"} {
		assert.NoError(t, s.DeleteEducation(ctx, id), "id %q", id)
		assert.NoError(t, s.DeleteExperience(ctx, id), "id %q", id)
		assert.NoError(t, s.DeleteProject(ctx, id), "id %q", id)
		assert.NoError(t, s.DeleteBlogPost(ctx, id), "id %q", id)
		assert.NoError(t, s.DeleteContact(ctx, id), "id %q", id)
	}

	got, err := s.ListEducations(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func resumeSingleton(t *testing.T, s repository.Store) {
	ctx := context.Background()

	_, err := s.GetResume(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "empty store should report ErrNotFound, got %v", err)

	require.NoError(t, s.ReplaceResume(ctx, &model.ResumeFile{
		FileName: "old.pdf", ContentType: model.ContentTypePDF, Content: []byte("%PDF-old"),
	}))
	require.NoError(t, s.ReplaceResume(ctx, &model.ResumeFile{
		FileName: "new.pdf", ContentType: model.ContentTypePDF, Content: []byte("%PDF-new"),
	}))

	got, err := s.GetResume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "new.pdf", got.FileName)
	assert.Equal(t, model.ContentTypePDF, got.ContentType)
	assert.Equal(t, []byte("%PDF-new"), got.Content)
	assert.False(t, got.UploadedAt.IsZero(), "UploadedAt should be stamped")
}

func adminLookup(t *testing.T, s repository.Store) {
	ctx := context.Background()

	require.NoError(t, s.CreateAdmin(ctx, &model.Admin{Username: "Admin", Password: "secret"}))

	got, err := s.GetAdminByUsername(ctx, "Admin")
	require.NoError(t, err)
	assert.Equal(t, "Admin", got.Username)
	assert.Equal(t, "secret", got.Password)
	assert.NotEmpty(t, got.ID)

	_, err = s.GetAdminByUsername(ctx, "admin")
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "lookup must be case-sensitive, got %v", err)

	_, err = s.GetAdminByUsername(ctx, "nobody")
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "got %v", err)
}

func emptyLists(t *testing.T, s repository.Store) {
	ctx := context.Background()

	edu, err := s.ListEducations(ctx)
	require.NoError(t, err)
	assert.NotNil(t, edu)
	assert.Empty(t, edu)

	exp, err := s.ListExperiences(ctx)
	require.NoError(t, err)
	assert.NotNil(t, exp)

	prj, err := s.ListProjects(ctx)
	require.NoError(t, err)
	assert.NotNil(t, prj)

	posts, err := s.ListBlogPosts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, posts)

	cs, err := s.ListContacts(ctx)
	require.NoError(t, err)
	assert.NotNil(t, cs)
}
