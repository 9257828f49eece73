package database

import (
	"database/sql"
	"errors"
	"fmt"

	"reelist/models"
)

// ErrMovieNotFound reports a lookup for an id the store does not hold.
var ErrMovieNotFound = errors.New("movie not found")

const movieColumns = "id, title, director, release_year, genre, watched, rating, image_path"

// MovieRepository persists watchlist entries.
type MovieRepository struct {
	db *sql.DB
}

func NewMovieRepository(db *sql.DB) *MovieRepository {
	return &MovieRepository{db: db}
}

// Create inserts the movie and fills in its store-assigned id.
func (r *MovieRepository) Create(m *models.Movie) error {
	res, err := r.db.Exec(
		`INSERT INTO movies (title, director, release_year, genre, watched, rating, image_path)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.Title, m.Director, m.ReleaseYear, m.Genre, m.Watched, m.Rating, m.ImagePath)
	if err != nil {
		return fmt.Errorf("insert movie: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("read insert id: %w", err)
	}
	m.ID = id
	return nil
}

func (r *MovieRepository) Get(id int64) (models.Movie, error) {
	var m models.Movie
	err := r.db.QueryRow(`SELECT `+movieColumns+` FROM movies WHERE id = ?`, id).
		Scan(&m.ID, &m.Title, &m.Director, &m.ReleaseYear, &m.Genre, &m.Watched, &m.Rating, &m.ImagePath)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Movie{}, ErrMovieNotFound
	}
	if err != nil {
		return models.Movie{}, fmt.Errorf("get movie %d: %w", id, err)
	}
	return m, nil
}

// List returns one zero-based page of movies ordered by id.
func (r *MovieRepository) List(page, size int) ([]models.Movie, error) {
	rows, err := r.db.Query(
		`SELECT `+movieColumns+` FROM movies ORDER BY id LIMIT ? OFFSET ?`,
		size, page*size)
	if err != nil {
		return nil, fmt.Errorf("list movies: %w", err)
	}
	defer rows.Close()

	movies := make([]models.Movie, 0, size)
	for rows.Next() {
		var m models.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Director, &m.ReleaseYear, &m.Genre,
			&m.Watched, &m.Rating, &m.ImagePath); err != nil {
			return nil, fmt.Errorf("scan movie: %w", err)
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}

func (r *MovieRepository) Count() (int64, error) {
	var n int64
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM movies`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count movies: %w", err)
	}
	return n, nil
}

// UpdateWatched flips the watched flag. Only that column is touched.
func (r *MovieRepository) UpdateWatched(id int64, watched bool) error {
	return r.updateColumn(id, "watched", watched)
}

// UpdateRating sets the rating. Only that column is touched.
func (r *MovieRepository) UpdateRating(id int64, rating int) error {
	return r.updateColumn(id, "rating", rating)
}

func (r *MovieRepository) updateColumn(id int64, column string, value any) error {
	res, err := r.db.Exec(`UPDATE movies SET `+column+` = ? WHERE id = ?`, value, id)
	if err != nil {
		return fmt.Errorf("update %s for movie %d: %w", column, id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrMovieNotFound
	}
	return nil
}

// Delete removes the movie. Image files on disk are left alone.
func (r *MovieRepository) Delete(id int64) error {
	res, err := r.db.Exec(`DELETE FROM movies WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete movie %d: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return ErrMovieNotFound
	}
	return nil
}
