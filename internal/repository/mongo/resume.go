package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vs-portfolio/portfolio/internal/apperror"
	"github.com/vs-portfolio/portfolio/internal/model"
)

// currentResumeID is the fixed _id of the résumé document.
const currentResumeID = "current"

func nowUTC() time.Time {
	// BSON datetimes carry millisecond precision.
	return time.Now().UTC().Truncate(time.Millisecond)
}

// GetResume returns the most recently uploaded résumé. Databases written by
// earlier deployments may hold a document with a generated _id instead of
// the fixed one; it is served until the next upload replaces it.
func (s *Store) GetResume(ctx context.Context) (*model.ResumeFile, error) {
	var r model.ResumeFile
	opts := options.FindOne().SetSort(bson.D{{Key: "uploadedAt", Value: -1}})
	err := s.resumes.FindOne(ctx, bson.M{}, opts).Decode(&r)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.Missing("Resume not found.")
		}
		return nil, fmt.Errorf("mongo: finding resume: %w", err)
	}
	r.UploadedAt = r.UploadedAt.UTC()
	return &r, nil
}

// ReplaceResume upserts the fixed document, then removes every other one.
// A reader racing the upload sees either the old or the new file.
func (s *Store) ReplaceResume(ctx context.Context, r *model.ResumeFile) error {
	if r.UploadedAt.IsZero() {
		r.UploadedAt = nowUTC()
	}
	r.ID = currentResumeID

	_, err := s.resumes.ReplaceOne(ctx,
		bson.M{"_id": currentResumeID},
		r,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("mongo: upserting resume: %w", err)
	}

	if _, err := s.resumes.DeleteMany(ctx, bson.M{"_id": bson.M{"$ne": currentResumeID}}); err != nil {
		return fmt.Errorf("mongo: removing stale resumes: %w", err)
	}
	return nil
}
