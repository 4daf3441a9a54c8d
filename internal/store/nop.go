package store

import (
	"context"
	"time"

	"github.com/amishk599/hoyotext/internal/model"
)

// NopStore is used when the archive is disabled. It keeps nothing.
type NopStore struct{}

func NewNopStore() *NopStore { return &NopStore{} }

func (s *NopStore) Save(ctx context.Context, rec model.ArchivedRecord) error { return nil }
func (s *NopStore) Get(ctx context.Context, family model.GameFamily, pageID int) (*model.ArchivedRecord, error) {
	return nil, nil
}
func (s *NopStore) List(ctx context.Context, family model.GameFamily, limit int) ([]model.ArchivedRecord, error) {
	return nil, nil
}
func (s *NopStore) Cleanup(ctx context.Context, olderThan time.Duration) error { return nil }
