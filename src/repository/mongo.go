package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

// NewMongoStores builds the Mongo-backed stores and makes sure their indexes exist.
func NewMongoStores(ctx context.Context, db *mongo.Database) (*Stores, error) {
	users := NewUserRepo(db)
	forms := NewFormRepo(db)
	subs := NewSubmissionRepo(db)

	if err := users.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("user indexes: %w", err)
	}
	if err := forms.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("form indexes: %w", err)
	}
	if err := subs.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("submission indexes: %w", err)
	}

	return &Stores{Users: users, Forms: forms, Submissions: subs}, nil
}
