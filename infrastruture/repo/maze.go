package repo

import (
	"context"
	"errors"
	"fmt"

	dmn "github.com/beka-birhanu/vinom-carver/domain"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MazeRepo stores carved mazes.
type MazeRepo struct {
	collection *mongo.Collection
}

// NewMazeRepo creates a MazeRepo on the given database and collection.
func NewMazeRepo(client *mongo.Client, dbName, collectionName string) *MazeRepo {
	return &MazeRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// Save inserts a maze record. Records are immutable once stored.
func (m *MazeRepo) Save(ctx context.Context, record *dmn.MazeRecord) error {
	if _, err := m.collection.InsertOne(ctx, record); err != nil {
		return fmt.Errorf("saving maze %s: %w", record.ID, err)
	}
	return nil
}

// ByID retrieves a maze record by its ID.
func (m *MazeRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.MazeRecord, error) {
	var record dmn.MazeRecord
	if err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&record); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrMazeNotFound
		}
		return nil, fmt.Errorf("finding maze %s: %w", id, err)
	}
	return &record, nil
}
