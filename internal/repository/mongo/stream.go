package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/ahl-official/ahl-utm-tracking/internal/domain"
)

// clickStream adapts a MongoDB change stream to repository.ClickStream
type clickStream struct {
	cs *mongo.ChangeStream
}

// Next blocks until the next qualifying change arrives. A malformed change
// document is returned as an error; the caller resubscribes.
func (s *clickStream) Next(ctx context.Context) (*domain.ClickRecord, error) {
	if s.cs.Next(ctx) {
		var change struct {
			FullDocument domain.ClickRecord `bson:"fullDocument"`
		}
		if err := s.cs.Decode(&change); err != nil {
			return nil, fmt.Errorf("failed to decode change event: %w", err)
		}
		return &change.FullDocument, nil
	}

	if err := s.cs.Err(); err != nil {
		return nil, err
	}

	return nil, errors.New("change stream exhausted")
}

// Close releases the underlying change stream
func (s *clickStream) Close(ctx context.Context) error {
	return s.cs.Close(ctx)
}
