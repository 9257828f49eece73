// Package similar answers "movies like this one" queries against TMDB.
package similar

import (
	"context"

	"reelist/services/tmdb"
)

type catalog interface {
	ResolveID(ctx context.Context, title string) (int64, error)
	Similar(ctx context.Context, id int64) ([]string, error)
}

var _ catalog = (*tmdb.Client)(nil)

// Service performs the two-hop similarity lookup.
type Service struct {
	source catalog
}

func NewService(source catalog) *Service {
	return &Service{source: source}
}

// ForTitle resolves the title to a TMDB id and fetches that id's similar
// listing. Both hops run on every call; nothing is cached. An empty result
// is a valid outcome.
func (s *Service) ForTitle(ctx context.Context, title string) ([]string, error) {
	id, err := s.source.ResolveID(ctx, title)
	if err != nil {
		return nil, err
	}
	return s.source.Similar(ctx, id)
}
