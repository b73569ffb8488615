package archive

import (
	"context"
	"errors"
	"fmt"

	"sopwriter/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const archiveCollection = "sops"

// MongoStore keeps records in the "sops" collection.
type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(archiveCollection)}
}

func (s *MongoStore) Save(ctx context.Context, rec models.ArchiveRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if _, err := s.coll.InsertOne(ctx, rec); err != nil {
		return "", fmt.Errorf("archive: failed to insert record: %w", err)
	}
	return rec.ID, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*models.ArchiveRecord, error) {
	var rec models.ArchiveRecord
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&rec)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("archive: failed to find record: %w", err)
	}
	return &rec, nil
}

func (s *MongoStore) Enabled() bool { return true }

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.coll.Database().Client().Ping(ctx, nil)
}
