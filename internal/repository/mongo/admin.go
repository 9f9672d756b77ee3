package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/vs-portfolio/portfolio/internal/apperror"
	"github.com/vs-portfolio/portfolio/internal/model"
)

func (s *Store) GetAdminByUsername(ctx context.Context, username string) (*model.Admin, error) {
	var a model.Admin
	err := s.admins.FindOne(ctx, bson.M{"Username": username}).Decode(&a)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperror.NotFound("admin", username)
		}
		return nil, fmt.Errorf("mongo: finding admin %q: %w", username, err)
	}
	return &a, nil
}

func (s *Store) CreateAdmin(ctx context.Context, admin *model.Admin) error {
	admin.ID = ""
	id, err := insert(ctx, s.admins, admin)
	if err != nil {
		return err
	}
	admin.ID = id
	return nil
}
