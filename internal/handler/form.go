package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vs-portfolio/portfolio/internal/apperror"
	"github.com/vs-portfolio/portfolio/internal/model"
)

// binder collects violations for fields that fail to parse before struct
// validation sees them.
type binder struct {
	r          *http.Request
	violations []apperror.Violation
}

func newBinder(r *http.Request) *binder { return &binder{r: r} }

func (b *binder) str(field string) string {
	return strings.TrimSpace(b.r.PostFormValue(field))
}

func (b *binder) int(field string) int {
	raw := b.str(field)
	if raw == "" {
		b.fail(field, field+" is required.")
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		b.fail(field, field+" must be a whole number.")
		return 0
	}
	return n
}

// date parses YYYY-MM-DD. An empty value is left to the required rule.
func (b *binder) date(field string) time.Time {
	raw := b.str(field)
	if raw == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		b.fail(field, field+" must be a date (YYYY-MM-DD).")
		return time.Time{}
	}
	return t.UTC()
}

// list splits every value of field on commas.
func (b *binder) list(field string) []string {
	var out []string
	for _, v := range b.r.PostForm[field] {
		for _, part := range strings.Split(v, ",") {
			if p := strings.TrimSpace(part); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}

func (b *binder) fail(field, msg string) {
	b.violations = append(b.violations, apperror.Violation{Field: field, Message: msg})
}

func bindEducation(r *http.Request) (model.EducationInput, []apperror.Violation) {
	b := newBinder(r)
	in := model.EducationInput{
		Year:         b.str("Year"),
		Course:       b.str("Course"),
		College:      b.str("College"),
		Description:  b.str("Description"),
		DisplayOrder: b.int("DisplayOrder"),
	}
	return in, b.violations
}

func bindExperience(r *http.Request) (model.ExperienceInput, []apperror.Violation) {
	b := newBinder(r)
	in := model.ExperienceInput{
		Year:         b.str("Year"),
		Role:         b.str("Role"),
		Company:      b.str("Company"),
		Description:  b.str("Description"),
		DisplayOrder: b.int("DisplayOrder"),
	}
	return in, b.violations
}

func bindProject(r *http.Request) (model.ProjectInput, []apperror.Violation) {
	b := newBinder(r)
	in := model.ProjectInput{
		Name:         b.str("Name"),
		ImageURL:     b.str("ImageUrl"),
		Tags:         b.list("Tags"),
		DisplayOrder: b.int("DisplayOrder"),
	}
	return in, b.violations
}

func bindBlogPost(r *http.Request) (model.BlogPostInput, []apperror.Violation) {
	b := newBinder(r)
	in := model.BlogPostInput{
		LinkedInEmbedURL: b.str("LinkedInEmbedUrl"),
		PostDate:         b.date("PostDate"),
		DisplayOrder:     b.int("DisplayOrder"),
	}
	return in, b.violations
}

func bindLogin(r *http.Request) model.LoginInput {
	// Passwords are compared as typed.
	return model.LoginInput{
		Username: strings.TrimSpace(r.PostFormValue("Username")),
		Password: r.PostFormValue("Password"),
	}
}

func bindContact(r *http.Request) model.ContactInput {
	b := newBinder(r)
	return model.ContactInput{
		Name:    b.str("Name"),
		Email:   b.str("Email"),
		Subject: b.str("Subject"),
		Message: b.str("Message"),
	}
}
