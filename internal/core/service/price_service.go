package service

import (
	"context"
	"fmt"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
	"github.com/heyheyboy777/SAD-project/internal/port"
)

// CacheInvalidator is notified after the catalog changes.
type CacheInvalidator interface {
	Invalidate(ctx context.Context)
}

type PriceService struct {
	prices      port.PriceRepository
	invalidator CacheInvalidator
}

func NewPriceService(prices port.PriceRepository, invalidator CacheInvalidator) *PriceService {
	return &PriceService{prices: prices, invalidator: invalidator}
}

func (s *PriceService) List(ctx context.Context) ([]domain.PriceData, error) {
	prices, err := s.prices.ListPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("list prices: %w", err)
	}
	return prices, nil
}

func (s *PriceService) Get(ctx context.Context, item domain.ItemType) (domain.PriceData, error) {
	prices, err := s.List(ctx)
	if err != nil {
		return domain.PriceData{}, err
	}
	for _, p := range prices {
		if p.Item == item {
			return p, nil
		}
	}
	return domain.PriceData{}, domain.ErrUnknownItem
}

// Save applies edits on top of the current catalog and replaces it as a
// whole. Any invalid entry rejects the save and leaves the catalog untouched.
func (s *PriceService) Save(ctx context.Context, edits []domain.PriceEdit) ([]domain.PriceData, error) {
	current, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	next := make([]domain.PriceData, len(current))
	index := make(map[domain.ItemType]int, len(current))
	for i, p := range current {
		next[i] = p.Clone()
		index[p.Item] = i
	}

	for _, e := range edits {
		i, ok := index[e.Item]
		if !ok {
			return nil, fmt.Errorf("%q: %w", e.Item, domain.ErrUnknownItem)
		}
		next[i].MinPrice = e.MinPrice
		next[i].MaxPrice = e.MaxPrice
	}

	for _, p := range next {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	if err := s.prices.ReplacePrices(ctx, next); err != nil {
		return nil, fmt.Errorf("replace prices: %w", err)
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx)
	}
	return next, nil
}
