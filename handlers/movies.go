package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"reelist/internal/database"
	"reelist/models"
	"reelist/services/providers"
	"reelist/services/watchlist"
)

type watchlistService interface {
	Add(ctx context.Context, title string) (models.Movie, error)
	List(page, size int) (models.Page, error)
	SetWatched(id int64, watched bool) error
	SetRating(id int64, rating int) error
	Remove(id int64) error
	SimilarTo(ctx context.Context, id int64) ([]string, error)
}

var _ watchlistService = (*watchlist.Service)(nil)

// MoviesHandler exposes the watchlist over HTTP.
type MoviesHandler struct {
	Service watchlistService
}

func NewMoviesHandler(service watchlistService) *MoviesHandler {
	return &MoviesHandler{Service: service}
}

// Register attaches the movie routes to the router.
func (h *MoviesHandler) Register(r *mux.Router) {
	r.HandleFunc("/movies", h.Add).Methods(http.MethodPost)
	r.HandleFunc("/movies", h.List).Methods(http.MethodGet)
	r.HandleFunc("/movies/{id}/watched", h.UpdateWatched).Methods(http.MethodPut)
	r.HandleFunc("/movies/{id}/rating", h.UpdateRating).Methods(http.MethodPut)
	r.HandleFunc("/movies/{id}/similar", h.Similar).Methods(http.MethodGet)
	r.HandleFunc("/movies/{id}", h.Delete).Methods(http.MethodDelete)
}

func (h *MoviesHandler) Add(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title string `json:"title"`
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	movie, err := h.Service.Add(r.Context(), body.Title)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(movie)
}

func (h *MoviesHandler) List(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 0)
	size := queryInt(r, "size", 10)

	result, err := h.Service.List(page, size)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *MoviesHandler) UpdateWatched(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireID(w, r)
	if !ok {
		return
	}

	watched, err := strconv.ParseBool(r.URL.Query().Get("watched"))
	if err != nil {
		http.Error(w, "watched must be true or false", http.StatusBadRequest)
		return
	}

	if err := h.Service.SetWatched(id, watched); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *MoviesHandler) UpdateRating(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireID(w, r)
	if !ok {
		return
	}

	rating, err := strconv.Atoi(r.URL.Query().Get("rating"))
	if err != nil {
		http.Error(w, "rating must be an integer", http.StatusBadRequest)
		return
	}

	if err := h.Service.SetRating(id, rating); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *MoviesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireID(w, r)
	if !ok {
		return
	}

	if err := h.Service.Remove(id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MoviesHandler) Similar(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireID(w, r)
	if !ok {
		return
	}

	titles, err := h.Service.SimilarTo(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if titles == nil {
		titles = []string{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(titles)
}

func (h *MoviesHandler) requireID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "movie id must be an integer", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var perr *providers.Error
	switch {
	case errors.Is(err, watchlist.ErrTitleRequired), errors.Is(err, watchlist.ErrRatingOutOfRange):
		status = http.StatusBadRequest
	case errors.Is(err, database.ErrMovieNotFound), errors.Is(err, providers.ErrNotFound):
		status = http.StatusNotFound
	case errors.As(err, &perr):
		status = http.StatusBadGateway
	}
	http.Error(w, err.Error(), status)
}

func queryInt(r *http.Request, key string, fallback int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}
