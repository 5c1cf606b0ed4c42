package sqlite

import (
	"context"
	"time"

	"grocery/internal/domain/repository"
	"grocery/internal/errors"
	"grocery/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type blobStore struct {
	db *gorm.DB
}

// NewBlobStore creates the sqlite-backed implementation of the blob store.
func NewBlobStore(db *gorm.DB) repository.BlobStore {
	return &blobStore{db: db}
}

// Put stores value under key, replacing any previous value.
func (s *blobStore) Put(ctx context.Context, key string, value []byte) error {
	blob := model.BlobModel{
		Key:       key,
		Value:     value,
		UpdatedAt: time.Now(),
	}

	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&blob).Error
	if err != nil {
		return errors.Wrapf(err, "failed to put blob %q", key)
	}

	return nil
}

// Get returns the value stored under key, or repository.ErrKeyNotFound.
func (s *blobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var blob model.BlobModel
	err := s.db.WithContext(ctx).First(&blob, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, repository.ErrKeyNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get blob %q", key)
	}

	return blob.Value, nil
}

// Remove deletes the value stored under key. Absent keys are not an error.
func (s *blobStore) Remove(ctx context.Context, key string) error {
	err := s.db.WithContext(ctx).Delete(&model.BlobModel{}, "key = ?", key).Error

	return errors.Wrapf(err, "failed to remove blob %q", key)
}
