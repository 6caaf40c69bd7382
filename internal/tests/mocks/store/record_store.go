// Package mock_store holds testify mocks for the store interfaces.
package mock_store

import (
	"context"

	"shopdesk/internal/models"
	"shopdesk/internal/store"

	"github.com/stretchr/testify/mock"
)

// RecordStore is a mock of store.RecordStore.
type RecordStore struct {
	mock.Mock
}

var _ store.RecordStore = (*RecordStore)(nil)

func (m *RecordStore) LoadAll(ctx context.Context) ([]models.Record, error) {
	args := m.Called(ctx)
	var records []models.Record
	if v := args.Get(0); v != nil {
		records = v.([]models.Record)
	}
	return records, args.Error(1)
}

func (m *RecordStore) SaveAll(ctx context.Context, records []models.Record) error {
	args := m.Called(ctx, records)
	return args.Error(0)
}

func (m *RecordStore) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
