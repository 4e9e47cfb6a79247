package service

import (
	"sort"
	"strings"

	"github.com/vistago/vistago-api/internal/catalog"
	"github.com/vistago/vistago-api/internal/domain"
)

type SortKey string

const (
	SortByRating SortKey = "rating" // descending
	SortByPrice  SortKey = "price"  // ascending
)

// SearchParams narrows and orders the catalog. A zero Category means no
// category filter; a zero Sort means SortByRating.
type SearchParams struct {
	Query    string
	Category domain.Category
	Sort     SortKey
}

// DestinationService answers read-only queries against the static catalog.
// It never mutates the catalog; every call works on a fresh copy.
type DestinationService struct{}

func NewDestinationService() *DestinationService {
	return &DestinationService{}
}

// Search applies the free-text filter, then the category filter, then the
// sort. Text matching is a case-insensitive substring test against name,
// country and description (a hit in any field keeps the record). Ties keep
// catalog order.
func (s *DestinationService) Search(p SearchParams) []domain.Destination {
	results := catalog.All()

	if q := strings.ToLower(strings.TrimSpace(p.Query)); q != "" {
		filtered := results[:0]
		for _, d := range results {
			if strings.Contains(strings.ToLower(d.Name), q) ||
				strings.Contains(strings.ToLower(d.Country), q) ||
				strings.Contains(strings.ToLower(d.Description), q) {
				filtered = append(filtered, d)
			}
		}
		results = filtered
	}

	if p.Category != "" {
		filtered := results[:0]
		for _, d := range results {
			if d.Category == p.Category {
				filtered = append(filtered, d)
			}
		}
		results = filtered
	}

	switch p.Sort {
	case SortByPrice:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Price < results[j].Price
		})
	default:
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Rating > results[j].Rating
		})
	}
	return results
}

func (s *DestinationService) Get(id string) (*domain.Destination, error) {
	dest, ok := catalog.Get(id)
	if !ok {
		return nil, ErrDestinationNotFound
	}
	return &dest, nil
}

// Featured returns the leading catalog entries shown on the home screen.
func (s *DestinationService) Featured(n int) []domain.Destination {
	return sliceCatalog(0, n)
}

// Popular returns the slice of entries following the featured ones.
func (s *DestinationService) Popular(n int) []domain.Destination {
	if n <= 0 {
		n = defaultHomeCount
	}
	return sliceCatalog(n, n)
}

const defaultHomeCount = 3

func sliceCatalog(offset, n int) []domain.Destination {
	if n <= 0 {
		n = defaultHomeCount
	}
	all := catalog.All()
	if offset >= len(all) {
		return []domain.Destination{}
	}
	end := offset + n
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
