package model

import "time"

// Contact is a message left through the public contact form. Contacts are
// listed newest first.
type Contact struct {
	ID          string    `json:"id"                bson:"_id,omitempty"`
	Name        string    `json:"name"              bson:"name"`
	Email       string    `json:"email"             bson:"email"`
	Subject     string    `json:"subject,omitempty" bson:"subject,omitempty"`
	Message     string    `json:"message"           bson:"message"`
	SubmittedAt time.Time `json:"submittedAt"       bson:"submittedAt"`
}
