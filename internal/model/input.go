package model

import "time"

// Form inputs. They carry no id: the store assigns one on insert.

type LoginInput struct {
	Username string `form:"Username" validate:"required"`
	Password string `form:"Password" validate:"required"`
}

type EducationInput struct {
	Year         string `form:"Year"         validate:"required"`
	Course       string `form:"Course"       validate:"required"`
	College      string `form:"College"      validate:"required"`
	Description  string `form:"Description"  validate:"required"`
	DisplayOrder int    `form:"DisplayOrder"`
}

type ExperienceInput struct {
	Year         string `form:"Year"         validate:"required"`
	Role         string `form:"Role"         validate:"required"`
	Company      string `form:"Company"      validate:"required"`
	Description  string `form:"Description"  validate:"required"`
	DisplayOrder int    `form:"DisplayOrder"`
}

type ProjectInput struct {
	Name         string   `form:"Name"         validate:"required"`
	ImageURL     string   `form:"ImageUrl"     validate:"required"`
	Tags         []string `form:"Tags"`
	DisplayOrder int      `form:"DisplayOrder"`
}

type BlogPostInput struct {
	LinkedInEmbedURL string    `form:"LinkedInEmbedUrl" validate:"required,url"`
	PostDate         time.Time `form:"PostDate"         validate:"required"`
	DisplayOrder     int       `form:"DisplayOrder"`
}

// ContactInput is bound from the public contact form. Subject is optional.
type ContactInput struct {
	Name    string `form:"Name"    json:"name"    validate:"required"`
	Email   string `form:"Email"   json:"email"   validate:"required,email"`
	Subject string `form:"Subject" json:"subject"`
	Message string `form:"Message" json:"message" validate:"required"`
}
