package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyWarden/pkg/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// DocumentsCollection holds one record per stored document
const DocumentsCollection = "documents"

// documentRecord is a whole document keyed by its storage path
type documentRecord struct {
	Path      string    `bson:"_id"`
	Doc       bson.Raw  `bson:"doc"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

// DocumentBackend implements storage.Backend on a MongoDB collection
type DocumentBackend struct {
	col     *mongo.Collection
	timeout time.Duration
}

var (
	_ storage.Backend        = (*DocumentBackend)(nil)
	_ storage.StatusReporter = (*DocumentBackend)(nil)
)

// NewDocumentBackend stores documents in col. Each operation is bounded by timeout.
func NewDocumentBackend(col *mongo.Collection, timeout time.Duration) *DocumentBackend {
	return &DocumentBackend{col: col, timeout: timeout}
}

// Load decodes the document stored under path into v
func (b *DocumentBackend) Load(path string, v any) error {
	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	var rec documentRecord
	err := b.col.FindOne(ctx, bson.M{"_id": path}).Decode(&rec)
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return storage.ErrNotFound
	case err != nil:
		return fmt.Errorf("load %s: %w", path, err)
	}

	if len(rec.Doc) == 0 {
		return &storage.CorruptError{Path: path, Err: errors.New("record has no document")}
	}
	if err := bson.Unmarshal(rec.Doc, v); err != nil {
		return &storage.CorruptError{Path: path, Err: err}
	}
	return nil
}

// Save replaces the document stored under path, creating it when missing
func (b *DocumentBackend) Save(path string, v any) error {
	raw, err := bson.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), b.timeout)
	defer cancel()

	rec := documentRecord{Path: path, Doc: raw, UpdatedAt: time.Now().UTC()}
	_, err = b.col.ReplaceOne(ctx, bson.M{"_id": path}, rec, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// Status reports whether the database answers pings
func (b *DocumentBackend) Status() (string, bool) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := b.col.Database().Client().Ping(ctx, readpref.Primary()); err != nil {
		return "🔴 | MongoDB desconectado", false
	}
	return "🟢 | MongoDB", true
}
