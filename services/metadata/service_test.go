package metadata_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"reelist/services/metadata"
	"reelist/services/providers"
)

func TestLookupSuccess(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"Title":"Inception","Director":"Christopher Nolan","Year":"2010","Genre":"Sci-Fi","Response":"True"}`))
	}))
	defer srv.Close()

	svc := metadata.NewService("key", srv.URL, srv.Client())
	meta, err := svc.Lookup(context.Background(), "inception")
	if err != nil {
		t.Fatalf("lookup returned error: %v", err)
	}

	if meta.Title != "Inception" {
		t.Fatalf("expected provider casing to win, got %q", meta.Title)
	}
	if meta.Director != "Christopher Nolan" || meta.Year != "2010" || meta.Genre != "Sci-Fi" {
		t.Fatalf("unexpected metadata %+v", meta)
	}
	if !strings.Contains(gotQuery, "apikey=key") {
		t.Fatalf("expected api key in query, got %q", gotQuery)
	}
}

func TestLookupSubstitutesSpaces(t *testing.T) {
	var gotRawQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRawQuery = r.URL.RawQuery
		w.Write([]byte(`{"Title":"The Matrix"}`))
	}))
	defer srv.Close()

	svc := metadata.NewService("key", srv.URL, srv.Client())
	if _, err := svc.Lookup(context.Background(), "The Matrix"); err != nil {
		t.Fatalf("lookup returned error: %v", err)
	}

	if !strings.Contains(gotRawQuery, "t=The+Matrix") {
		t.Fatalf("expected plus-separated title, got %q", gotRawQuery)
	}
}

func TestLookupNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Response":"False","Error":"Movie not found!"}`))
	}))
	defer srv.Close()

	svc := metadata.NewService("key", srv.URL, srv.Client())
	_, err := svc.Lookup(context.Background(), "no such movie")
	if !errors.Is(err, providers.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLookupBadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	svc := metadata.NewService("key", srv.URL, srv.Client())
	_, err := svc.Lookup(context.Background(), "anything")

	var perr *providers.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *providers.Error, got %v", err)
	}
	if perr.Provider != "omdb" {
		t.Fatalf("expected provider omdb, got %q", perr.Provider)
	}
}

func TestLookupBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Title": `))
	}))
	defer srv.Close()

	svc := metadata.NewService("key", srv.URL, srv.Client())
	_, err := svc.Lookup(context.Background(), "anything")

	var perr *providers.Error
	if !errors.As(err, &perr) {
		t.Fatalf("expected *providers.Error, got %v", err)
	}
}
