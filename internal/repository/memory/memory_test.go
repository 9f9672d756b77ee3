package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vs-portfolio/portfolio/internal/model"
	"github.com/vs-portfolio/portfolio/internal/repository"
	"github.com/vs-portfolio/portfolio/internal/repository/repotest"
)

func TestStore(t *testing.T) {
	repotest.Run(t, func(t *testing.T) repository.Store { return New() })
}

func TestListReturnsCopies(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.CreateProject(ctx, &model.Project{Name: "p", Tags: []string{"go"}}))

	got, err := s.ListProjects(ctx)
	require.NoError(t, err)
	got[0].Name = "changed"
	got[0].Tags[0] = "changed"

	again, err := s.ListProjects(ctx)
	require.NoError(t, err)
	assert.Equal(t, "p", again[0].Name)
	assert.Equal(t, []string{"go"}, again[0].Tags)
}

func TestConcurrentCreates(t *testing.T) {
	s := New()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.CreateEducation(ctx, &model.Education{Year: "2020", Course: "c", College: "u", DisplayOrder: i})
		}(i)
	}
	wg.Wait()

	got, err := s.ListEducations(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 50)
	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1].DisplayOrder, got[i].DisplayOrder)
	}
}
