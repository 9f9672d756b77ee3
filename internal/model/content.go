package model

import "time"

// Education, Experience, Project and BlogPost are the ordered list entities.
// Each is presented ascending by DisplayOrder; equal orders keep insertion
// order.

type Education struct {
	ID           string `json:"id"           bson:"_id,omitempty"`
	Year         string `json:"year"         bson:"year"`
	Course       string `json:"course"       bson:"course"`
	College      string `json:"college"      bson:"college"`
	Description  string `json:"description"  bson:"description"`
	DisplayOrder int    `json:"displayOrder" bson:"displayOrder"`
}

type Experience struct {
	ID           string `json:"id"           bson:"_id,omitempty"`
	Year         string `json:"year"         bson:"year"`
	Role         string `json:"role"         bson:"role"`
	Company      string `json:"company"      bson:"company"`
	Description  string `json:"description"  bson:"description"`
	DisplayOrder int    `json:"displayOrder" bson:"displayOrder"`
}

type Project struct {
	ID           string   `json:"id"           bson:"_id,omitempty"`
	Name         string   `json:"name"         bson:"name"`
	ImageURL     string   `json:"imageUrl"     bson:"imageUrl"`
	Tags         []string `json:"tags"         bson:"tags"`
	DisplayOrder int      `json:"displayOrder" bson:"displayOrder"`
}

// BlogPost is a LinkedIn post embedded on the blog page.
type BlogPost struct {
	ID               string    `json:"id"               bson:"_id,omitempty"`
	LinkedInEmbedURL string    `json:"linkedInEmbedUrl" bson:"linkedInEmbedUrl"`
	PostDate         time.Time `json:"postDate"         bson:"postDate"`
	DisplayOrder     int       `json:"displayOrder"     bson:"displayOrder"`
}
