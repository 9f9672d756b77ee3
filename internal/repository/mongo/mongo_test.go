package mongo

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/rs/xid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/vs-portfolio/portfolio/internal/model"
	"github.com/vs-portfolio/portfolio/internal/repository"
	"github.com/vs-portfolio/portfolio/internal/repository/repotest"
)

// These tests need a running MongoDB. Set MONGODB_TEST_URI, e.g.
// mongodb://localhost:27017, to enable them. Each test uses its own
// database, dropped on cleanup.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}

	ctx := context.Background()
	s, err := New(ctx, Options{
		URI:            uri,
		Database:       fmt.Sprintf("portfolio_test_%s", xid.New().String()),
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = s.educations.Database().Drop(context.Background())
		_ = s.Close()
	})
	return s
}

func TestStore(t *testing.T) {
	if os.Getenv("MONGODB_TEST_URI") == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}
	repotest.Run(t, func(t *testing.T) repository.Store { return newTestStore(t) })
}

func TestIDFilter(t *testing.T) {
	oid := primitive.NewObjectID()

	got := idFilter(oid.Hex())
	want := bson.M{"_id": bson.M{"$in": bson.A{oid, oid.Hex()}}}
	assert.Equal(t, want, got)

	assert.Equal(t, bson.M{"_id": "not-hex"}, idFilter("not-hex"))
}

func TestCreateAssignsObjectIDHex(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	e := &model.Education{Year: "2020", Course: "c", College: "u"}
	require.NoError(t, s.CreateEducation(ctx, e))

	_, err := primitive.ObjectIDFromHex(e.ID)
	assert.NoError(t, err, "ID %q should be an ObjectID hex string", e.ID)
}

func TestGetResumeReadsLegacyDocument(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// A document written before the fixed _id existed.
	_, err := s.resumes.InsertOne(ctx, bson.M{
		"filename":    "legacy.pdf",
		"contentType": model.ContentTypePDF,
		"content":     []byte("%PDF-legacy"),
		"uploadedAt":  time.Now().UTC(),
	})
	require.NoError(t, err)

	got, err := s.GetResume(ctx)
	require.NoError(t, err)
	assert.Equal(t, "legacy.pdf", got.FileName)

	require.NoError(t, s.ReplaceResume(ctx, &model.ResumeFile{
		FileName: "new.pdf", ContentType: model.ContentTypePDF, Content: []byte("%PDF-new"),
	}))

	n, err := s.resumes.CountDocuments(ctx, bson.M{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
}

func TestDefaultCollectionsFillBlanks(t *testing.T) {
	s := newTestStore(t)
	assert.Equal(t, "Admins", s.admins.Name())
	assert.Equal(t, "BlogPosts", s.blogPosts.Name())
}
