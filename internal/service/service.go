// Package service holds the business rules between the HTTP handlers and
// the repositories: input validation, credential checks, résumé rules and
// contact submission. Services return apperror values for anything the
// caller should show to the user and wrapped errors for everything else.
package service

import "strings"

// Messages shown to users.
const (
	MsgInvalidLogin     = "Invalid login attempt."
	MsgSelectFile       = "Please select a file to upload."
	MsgInvalidPDF       = "Please upload a valid PDF file."
	MsgResumeUploaded   = "Resume uploaded successfully!"
	MsgResumeNotFound   = "Resume not found."
	MsgContactReceived  = "Thank you! Your message has been received."
	MsgValidationFailed = "Validation failed."
	MsgInternalError    = "An internal error occurred. Please try again later."
)

// ResumeField is the form field name of the résumé upload.
const ResumeField = "NewCvFile"

func trim(s string) string { return strings.TrimSpace(s) }
