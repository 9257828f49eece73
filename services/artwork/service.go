// Package artwork downloads movie posters and backdrops to local storage.
//
// The pipeline is search, resolve images, download: the title is resolved to
// a TMDB id (first search result wins), up to three artwork paths are picked
// from the images listing, and every pick is downloaded. A failed download
// discards the whole bundle; a partial set is never returned.
package artwork

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"

	"reelist/models"
	"reelist/services/providers"
	"reelist/services/tmdb"
	"reelist/utils"
)

const maxImages = 3

type imageSource interface {
	ResolveID(ctx context.Context, title string) (int64, error)
	Images(ctx context.Context, id int64) (tmdb.ImageListing, error)
	DownloadImage(ctx context.Context, filePath string) ([]byte, error)
}

var _ imageSource = (*tmdb.Client)(nil)

// Service stores artwork for watchlist entries under root, one directory per
// sanitized title.
type Service struct {
	source imageSource
	fs     afero.Fs
	root   string
}

// NewService builds the artwork pipeline. A nil fs means the real filesystem.
func NewService(source imageSource, fs afero.Fs, root string) *Service {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Service{source: source, fs: fs, root: root}
}

// Fetch resolves the title and downloads its artwork bundle. Posters are
// preferred; backdrops fill the remaining slots up to three. Directory
// creation is idempotent, so re-adding a title overwrites its images.
func (s *Service) Fetch(ctx context.Context, title string) (models.ImageBundle, error) {
	id, err := s.source.ResolveID(ctx, title)
	if err != nil {
		return models.ImageBundle{}, err
	}

	listing, err := s.source.Images(ctx, id)
	if err != nil {
		return models.ImageBundle{}, err
	}

	candidates := selectCandidates(listing)
	if len(candidates) == 0 {
		return models.ImageBundle{}, fmt.Errorf("artwork for %q: %w", title, providers.ErrNoImages)
	}

	dir := filepath.Join(s.root, utils.SanitizeTitle(title))
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return models.ImageBundle{}, fmt.Errorf("create image dir: %w", err)
	}

	paths := make([]string, 0, len(candidates))
	for i, remote := range candidates {
		data, err := s.source.DownloadImage(ctx, remote)
		if err != nil {
			return models.ImageBundle{}, err
		}
		local := filepath.Join(dir, fmt.Sprintf("image%d%s", i+1, imageExtension(data)))
		if err := afero.WriteFile(s.fs, local, data, 0o644); err != nil {
			return models.ImageBundle{}, fmt.Errorf("write %s: %w", local, err)
		}
		paths = append(paths, local)
	}

	log.Printf("[artwork] stored %d images for %q in %s", len(paths), title, dir)
	return models.ImageBundle{Paths: paths, Primary: paths[0]}, nil
}

// selectCandidates picks up to maxImages paths, posters before backdrops,
// preserving listing order within each category.
func selectCandidates(listing tmdb.ImageListing) []string {
	candidates := make([]string, 0, maxImages)
	for _, img := range listing.Posters {
		if len(candidates) == maxImages {
			return candidates
		}
		candidates = append(candidates, img.FilePath)
	}
	for _, img := range listing.Backdrops {
		if len(candidates) == maxImages {
			return candidates
		}
		candidates = append(candidates, img.FilePath)
	}
	return candidates
}

// imageExtension sniffs the downloaded bytes for a file extension, falling
// back to .jpg for anything mimetype cannot name.
func imageExtension(data []byte) string {
	if ext := mimetype.Detect(data).Extension(); ext != "" {
		return ext
	}
	return ".jpg"
}
