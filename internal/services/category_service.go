package services

import (
	"context"
	"fmt"

	"shopdesk/internal/category"
	"shopdesk/internal/store"
)

type CategoryService struct {
	store   store.RecordStore
	builder *category.Builder
}

func NewCategoryService(rs store.RecordStore, builder *category.Builder) *CategoryService {
	return &CategoryService{store: rs, builder: builder}
}

// Tree rebuilds the category tree from the current product rows.
func (cs *CategoryService) Tree(ctx context.Context) (category.Result, error) {
	records, err := cs.store.LoadAll(ctx)
	if err != nil {
		return category.Result{}, fmt.Errorf("load products: %w", err)
	}
	return cs.builder.Build(records), nil
}
