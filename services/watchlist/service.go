// Package watchlist aggregates provider data into persisted entries and is
// the service behind every movie operation.
package watchlist

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/sourcegraph/conc"

	"reelist/models"
)

var (
	ErrTitleRequired    = errors.New("title is required")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
)

const defaultPageSize = 10

type metadataProvider interface {
	Lookup(ctx context.Context, title string) (models.MovieMetadata, error)
}

type artworkProvider interface {
	Fetch(ctx context.Context, title string) (models.ImageBundle, error)
}

type similarityProvider interface {
	ForTitle(ctx context.Context, title string) ([]string, error)
}

type movieStore interface {
	Create(m *models.Movie) error
	Get(id int64) (models.Movie, error)
	List(page, size int) ([]models.Movie, error)
	Count() (int64, error)
	UpdateWatched(id int64, watched bool) error
	UpdateRating(id int64, rating int) error
	Delete(id int64) error
}

// Service merges metadata and artwork into movie records and manages their
// lifecycle in the store.
type Service struct {
	store    movieStore
	metadata metadataProvider
	artwork  artworkProvider
	similar  similarityProvider
}

func NewService(store movieStore, metadata metadataProvider, artwork artworkProvider, similar similarityProvider) *Service {
	return &Service{store: store, metadata: metadata, artwork: artwork, similar: similar}
}

// Add fetches metadata and artwork for the title in parallel, waits for both
// and persists the merged record. The two fetches are independent; each
// writes its own result slot, read only after the join. Metadata failure
// fails the whole operation. Artwork failure degrades to the unavailable
// sentinel since a poster is cosmetic.
func (s *Service) Add(ctx context.Context, title string) (models.Movie, error) {
	if strings.TrimSpace(title) == "" {
		return models.Movie{}, ErrTitleRequired
	}

	var (
		meta    models.MovieMetadata
		metaErr error
		bundle  models.ImageBundle
		imgErr  error
	)

	var wg conc.WaitGroup
	wg.Go(func() {
		meta, metaErr = s.metadata.Lookup(ctx, title)
	})
	wg.Go(func() {
		bundle, imgErr = s.artwork.Fetch(ctx, title)
	})
	wg.Wait()

	if metaErr != nil {
		return models.Movie{}, metaErr
	}

	imagePath := models.ImageUnavailable
	if imgErr != nil {
		log.Printf("[watchlist] artwork unavailable for %q: %v", title, imgErr)
	} else {
		imagePath = bundle.Primary
	}

	movie := models.Movie{
		Title:       meta.Title,
		Director:    meta.Director,
		ReleaseYear: meta.Year,
		Genre:       meta.Genre,
		Watched:     false,
		Rating:      0,
		ImagePath:   imagePath,
	}
	if err := s.store.Create(&movie); err != nil {
		return models.Movie{}, err
	}

	log.Printf("[watchlist] added %q id=%d imagePath=%s", movie.Title, movie.ID, movie.ImagePath)
	return movie, nil
}

// List returns one zero-based page of the watchlist.
func (s *Service) List(page, size int) (models.Page, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}

	items, err := s.store.List(page, size)
	if err != nil {
		return models.Page{}, err
	}
	total, err := s.store.Count()
	if err != nil {
		return models.Page{}, err
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return models.Page{
		Items:      items,
		Page:       page,
		Size:       size,
		TotalItems: total,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) SetWatched(id int64, watched bool) error {
	return s.store.UpdateWatched(id, watched)
}

// SetRating stores a rating after validating it against the 1-5 scale.
func (s *Service) SetRating(id int64, rating int) error {
	if rating < 1 || rating > 5 {
		return ErrRatingOutOfRange
	}
	return s.store.UpdateRating(id, rating)
}

func (s *Service) Remove(id int64) error {
	return s.store.Delete(id)
}

// SimilarTo reads the stored title for id and runs the two-hop similarity
// lookup against the catalog. Provider errors propagate unchanged.
func (s *Service) SimilarTo(ctx context.Context, id int64) ([]string, error) {
	movie, err := s.store.Get(id)
	if err != nil {
		return nil, err
	}
	return s.similar.ForTitle(ctx, movie.Title)
}
