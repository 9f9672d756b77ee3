// Package mongo implements repository.Store on MongoDB, the production store.
// Documents use the collection names and field names of the existing
// database, so an instance populated by earlier deployments keeps working.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/vs-portfolio/portfolio/internal/repository"
)

var _ repository.Store = (*Store)(nil)

// Collections names the collection used for each entity.
type Collections struct {
	Admins      string `yaml:"admins"`
	Educations  string `yaml:"educations"`
	Experiences string `yaml:"experiences"`
	BlogPosts   string `yaml:"blog_posts"`
	Contacts    string `yaml:"contacts"`
	Projects    string `yaml:"projects"`
	Resumes     string `yaml:"resumes"`
}

// DefaultCollections matches the names used by the deployed database.
func DefaultCollections() Collections {
	return Collections{
		Admins:      "Admins",
		Educations:  "Educations",
		Experiences: "Experiences",
		BlogPosts:   "BlogPosts",
		Contacts:    "Contacts",
		Projects:    "Projects",
		Resumes:     "Resumes",
	}
}

type Options struct {
	URI            string
	Database       string
	Collections    Collections
	ConnectTimeout time.Duration
}

type Store struct {
	client *mongo.Client

	admins      *mongo.Collection
	educations  *mongo.Collection
	experiences *mongo.Collection
	blogPosts   *mongo.Collection
	contacts    *mongo.Collection
	projects    *mongo.Collection
	resumes     *mongo.Collection
}

// New connects to MongoDB and pings the primary before returning.
func New(ctx context.Context, opts Options) (*Store, error) {
	if opts.URI == "" {
		return nil, errors.New("mongo: connection URI is empty")
	}
	if opts.Database == "" {
		return nil, errors.New("mongo: database name is empty")
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = 10 * time.Second
	}

	connectCtx, cancel := context.WithTimeout(ctx, opts.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().
		ApplyURI(opts.URI).
		SetConnectTimeout(opts.ConnectTimeout).
		SetServerSelectionTimeout(opts.ConnectTimeout))
	if err != nil {
		return nil, fmt.Errorf("mongo: connecting: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo: pinging primary: %w", err)
	}

	return newStore(client, opts.Database, opts.Collections), nil
}

func newStore(client *mongo.Client, database string, names Collections) *Store {
	def := DefaultCollections()
	pick := func(name, fallback string) string {
		if name == "" {
			return fallback
		}
		return name
	}

	db := client.Database(database)
	return &Store{
		client:      client,
		admins:      db.Collection(pick(names.Admins, def.Admins)),
		educations:  db.Collection(pick(names.Educations, def.Educations)),
		experiences: db.Collection(pick(names.Experiences, def.Experiences)),
		blogPosts:   db.Collection(pick(names.BlogPosts, def.BlogPosts)),
		contacts:    db.Collection(pick(names.Contacts, def.Contacts)),
		projects:    db.Collection(pick(names.Projects, def.Projects)),
		resumes:     db.Collection(pick(names.Resumes, def.Resumes)),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo: ping: %w", err)
	}
	return nil
}

// Close disconnects, waiting at most five seconds for in-flight operations.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// byDisplayOrder sorts ascending by displayOrder. ObjectIDs grow with
// insertion time, so _id keeps equal orders in insertion order.
var byDisplayOrder = bson.D{{Key: "displayOrder", Value: 1}, {Key: "_id", Value: 1}}

// idFilter matches documents whose _id is either the ObjectID spelled by id
// or the literal string id. Malformed ids simply match nothing.
func idFilter(id string) bson.M {
	if oid, err := primitive.ObjectIDFromHex(id); err == nil {
		return bson.M{"_id": bson.M{"$in": bson.A{oid, id}}}
	}
	return bson.M{"_id": id}
}

// insertedID renders the driver-generated _id as the string form used in
// the model.
func insertedID(res *mongo.InsertOneResult) string {
	switch v := res.InsertedID.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// findAll runs a sorted Find and decodes every document into a fresh slice.
func findAll[T any](ctx context.Context, coll *mongo.Collection, sort bson.D) ([]T, error) {
	cur, err := coll.Find(ctx, bson.M{}, options.Find().SetSort(sort))
	if err != nil {
		return nil, fmt.Errorf("mongo: finding in %s: %w", coll.Name(), err)
	}
	out := []T{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("mongo: decoding %s: %w", coll.Name(), err)
	}
	return out, nil
}

func insert(ctx context.Context, coll *mongo.Collection, doc any) (string, error) {
	res, err := coll.InsertOne(ctx, doc)
	if err != nil {
		return "", fmt.Errorf("mongo: inserting into %s: %w", coll.Name(), err)
	}
	return insertedID(res), nil
}

func deleteOne(ctx context.Context, coll *mongo.Collection, id string) error {
	if _, err := coll.DeleteOne(ctx, idFilter(id)); err != nil {
		return fmt.Errorf("mongo: deleting %s from %s: %w", id, coll.Name(), err)
	}
	return nil
}
