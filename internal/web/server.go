// Package web serves the booking directory pages.
package web

import (
	"context"
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fyyur/internal/app"
	"fyyur/internal/app/artists"
	"fyyur/internal/app/shows"
	"fyyur/internal/app/venues"
	"fyyur/internal/http/middleware"
	"fyyur/internal/models"
)

// VenueService describes venue browsing and mutation workflows.
type VenueService interface {
	Directory(ctx context.Context) ([]venues.Area, error)
	Search(ctx context.Context, term string) (app.SearchResult, error)
	Detail(ctx context.Context, id int64) (venues.Detail, error)
	Get(ctx context.Context, id int64) (models.Venue, error)
	Create(ctx context.Context, venue models.Venue) (models.Venue, error)
	Update(ctx context.Context, id int64, venue models.Venue) (models.Venue, error)
	Delete(ctx context.Context, id int64) error
}

// ArtistService describes artist browsing and mutation workflows.
type ArtistService interface {
	List(ctx context.Context) ([]artists.Entry, error)
	Search(ctx context.Context, term string) (app.SearchResult, error)
	Detail(ctx context.Context, id int64) (artists.Detail, error)
	Get(ctx context.Context, id int64) (models.Artist, error)
	Create(ctx context.Context, artist models.Artist) (models.Artist, error)
	Update(ctx context.Context, id int64, artist models.Artist) (models.Artist, error)
}

// ShowService describes show listing and booking workflows.
type ShowService interface {
	Upcoming(ctx context.Context) ([]shows.Listing, error)
	Create(ctx context.Context, show models.Show) (models.Show, error)
}

// Pinger reports database liveness for /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server wires HTTP handlers to the underlying services.
type Server struct {
	venues  VenueService
	artists ArtistService
	shows   ShowService
	db      Pinger
	pages   *renderer
}

// New configures a Server. db may be nil, in which case /health does not
// probe the database.
func New(venues VenueService, artists ArtistService, shows ShowService, db Pinger) *Server {
	return &Server{
		venues:  venues,
		artists: artists,
		shows:   shows,
		db:      db,
		pages:   mustLoadTemplates(),
	}
}

// Routes exposes the page handlers on a ServeMux.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServerFS(staticFS)))

	mux.HandleFunc("GET /{$}", s.handleHome)

	mux.HandleFunc("GET /venues", s.handleVenueDirectory)
	mux.HandleFunc("POST /venues/search", s.handleSearchVenues)
	mux.HandleFunc("GET /venues/create", s.handleNewVenueForm)
	mux.HandleFunc("POST /venues/create", s.handleCreateVenue)
	mux.HandleFunc("GET /venues/{id}", s.handleShowVenue)
	mux.HandleFunc("DELETE /venues/{id}", s.handleDeleteVenue)
	mux.HandleFunc("GET /venues/{id}/edit", s.handleEditVenueForm)
	mux.HandleFunc("POST /venues/{id}/edit", s.handleEditVenue)

	mux.HandleFunc("GET /artists", s.handleArtistList)
	mux.HandleFunc("POST /artists/search", s.handleSearchArtists)
	mux.HandleFunc("GET /artists/create", s.handleNewArtistForm)
	mux.HandleFunc("POST /artists/create", s.handleCreateArtist)
	mux.HandleFunc("GET /artists/{id}", s.handleShowArtist)
	mux.HandleFunc("GET /artists/{id}/edit", s.handleEditArtistForm)
	mux.HandleFunc("POST /artists/{id}/edit", s.handleEditArtist)

	mux.HandleFunc("GET /shows", s.handleShowListing)
	mux.HandleFunc("GET /shows/create", s.handleNewShowForm)
	mux.HandleFunc("POST /shows/create", s.handleCreateShow)

	mux.HandleFunc("/", s.handleNotFound)

	return mux
}

// Handler returns the routes wrapped in the standard middleware stack.
func (s *Server) Handler(allowedOrigins []string) http.Handler {
	return middleware.Chain(s.Routes(),
		middleware.RequestLogging(),
		middleware.Recovery(http.HandlerFunc(s.renderServerError)),
		middleware.CORS(allowedOrigins),
		middleware.Metrics(),
	)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.db != nil {
		if err := s.db.Ping(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "database unavailable"})
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "home", nil)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusNotFound, "404", nil)
}

func (s *Server) renderServerError(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusInternalServerError, "500", nil)
}

// pathID parses the {id} path value. ok is false for anything that is not a
// positive integer.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
