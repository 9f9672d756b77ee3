package model

import "time"

// ContentTypePDF is the only content type accepted for the résumé.
const ContentTypePDF = "application/pdf"

// NoResumePlaceholder is shown on the dashboard when no résumé is stored.
const NoResumePlaceholder = "No CV uploaded yet."

// ResumeFile is the single stored résumé.
type ResumeFile struct {
	ID          string    `json:"id"          bson:"_id,omitempty"`
	FileName    string    `json:"filename"    bson:"filename"`
	ContentType string    `json:"contentType" bson:"contentType"`
	Content     []byte    `json:"-"           bson:"content"`
	UploadedAt  time.Time `json:"uploadedAt"  bson:"uploadedAt,omitempty"`
}
