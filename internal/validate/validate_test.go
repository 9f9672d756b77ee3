package validate

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vs-portfolio/portfolio/internal/apperror"
	"github.com/vs-portfolio/portfolio/internal/model"
)

func violationsOf(t *testing.T, err error) []apperror.Violation {
	t.Helper()
	var appErr *apperror.AppError
	require.True(t, errors.As(err, &appErr), "error %v is not an AppError", err)
	require.ErrorIs(t, err, apperror.ErrValidation)
	return appErr.Violations
}

func TestStruct_ContactInput(t *testing.T) {
	v := New()

	t.Run("valid", func(t *testing.T) {
		err := v.Struct(model.ContactInput{Name: "Ada", Email: "ada@example.com", Message: "hi"})
		assert.NoError(t, err)
	})

	t.Run("subject is optional", func(t *testing.T) {
		err := v.Struct(model.ContactInput{Name: "Ada", Email: "ada@example.com", Message: "hi", Subject: ""})
		assert.NoError(t, err)
	})

	t.Run("missing name", func(t *testing.T) {
		err := v.Struct(model.ContactInput{Email: "ada@example.com", Message: "hi"})
		vs := violationsOf(t, err)
		require.Len(t, vs, 1)
		assert.Equal(t, "Name", vs[0].Field)
		assert.Equal(t, "Name is required.", vs[0].Message)
	})

	t.Run("missing email reports required, not format", func(t *testing.T) {
		err := v.Struct(model.ContactInput{Name: "Ada", Message: "hi"})
		vs := violationsOf(t, err)
		require.Len(t, vs, 1)
		assert.Equal(t, "Email is required.", vs[0].Message)
	})

	t.Run("malformed email", func(t *testing.T) {
		err := v.Struct(model.ContactInput{Name: "Ada", Email: "not-an-email", Message: "hi"})
		vs := violationsOf(t, err)
		require.Len(t, vs, 1)
		assert.Equal(t, "Invalid Email Address.", vs[0].Message)
	})

	t.Run("everything missing keeps field order", func(t *testing.T) {
		err := v.Struct(model.ContactInput{})
		vs := violationsOf(t, err)
		require.Len(t, vs, 3)
		assert.Equal(t, []string{"Name", "Email", "Message"}, []string{vs[0].Field, vs[1].Field, vs[2].Field})
	})
}

func TestStruct_BlogPostInput(t *testing.T) {
	v := New()

	err := v.Struct(model.BlogPostInput{LinkedInEmbedURL: "not a url", PostDate: time.Now()})
	vs := violationsOf(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "LinkedInEmbedUrl must be a valid URL.", vs[0].Message)

	err = v.Struct(model.BlogPostInput{LinkedInEmbedURL: "https://www.linkedin.com/embed/feed/update/urn:li:share:1"})
	vs = violationsOf(t, err)
	require.Len(t, vs, 1)
	assert.Equal(t, "PostDate", vs[0].Field)
}

func TestMerge(t *testing.T) {
	v := New()

	pre := []apperror.Violation{{Field: "DisplayOrder", Message: "DisplayOrder must be a whole number."}}

	t.Run("pre-violations alone", func(t *testing.T) {
		err := v.Merge(pre, model.EducationInput{Year: "2020", Course: "CS", College: "MIT", Description: "d"})
		vs := violationsOf(t, err)
		require.Len(t, vs, 1)
		assert.Equal(t, "DisplayOrder", vs[0].Field)
	})

	t.Run("pre-violations plus struct violations", func(t *testing.T) {
		err := v.Merge(pre, model.EducationInput{Year: "2020"})
		vs := violationsOf(t, err)
		assert.Len(t, vs, 4)
		assert.Equal(t, "DisplayOrder", vs[0].Field)
	})

	t.Run("no violations", func(t *testing.T) {
		err := v.Merge(nil, model.EducationInput{Year: "2020", Course: "CS", College: "MIT", Description: "d"})
		assert.NoError(t, err)
	})
}
