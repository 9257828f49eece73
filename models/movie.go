package models

// ImageUnavailable is stored as the ImagePath when artwork retrieval fails
// while metadata succeeds. Artwork is cosmetic; a missing poster never blocks
// an entry from being added.
const ImageUnavailable = "unavailable"

// Movie is one aggregated watchlist entry. The metadata fields come from the
// metadata catalog, ImagePath from the artwork pipeline; both are set once at
// creation. Watched and Rating are the only fields mutated afterwards.
type Movie struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Director    string `json:"director"`
	ReleaseYear string `json:"releaseYear"`
	Genre       string `json:"genre"`
	Watched     bool   `json:"watched"`
	Rating      int    `json:"rating"`
	ImagePath   string `json:"imagePath"`
}

// MovieMetadata is what the metadata catalog reports for a title. The
// reported title may differ in casing or spelling from the query.
type MovieMetadata struct {
	Title    string
	Director string
	Year     string
	Genre    string
}

// ImageBundle is an ordered set of locally stored artwork files. Primary is
// always the first entry and is what gets persisted on the movie record.
type ImageBundle struct {
	Paths   []string
	Primary string
}

// Page is one page of the watchlist.
type Page struct {
	Items      []Movie `json:"items"`
	Page       int     `json:"page"`
	Size       int     `json:"size"`
	TotalItems int64   `json:"totalItems"`
	TotalPages int     `json:"totalPages"`
}
