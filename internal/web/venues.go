package web

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"fyyur/internal/forms"
	"fyyur/internal/logging"
	"fyyur/internal/models"
	"fyyur/internal/store"
)

type searchPage struct {
	SearchTerm string `json:"search_term"`
	Count      int    `json:"count"`
	Data       any    `json:"data"`
}

func (s *Server) handleVenueDirectory(w http.ResponseWriter, r *http.Request) {
	areas, err := s.venues.Directory(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "venues", areas)
}

func (s *Server) handleSearchVenues(w http.ResponseWriter, r *http.Request) {
	term := r.PostFormValue("search_term")
	result, err := s.venues.Search(r.Context(), term)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "search_venues", searchPage{SearchTerm: term, Count: result.Count, Data: result.Data})
}

func (s *Server) handleShowVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	detail, err := s.venues.Detail(r.Context(), id)
	if err != nil {
		s.readError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "show_venue", detail)
}

func (s *Server) handleNewVenueForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "new_venue", models.Venue{})
}

func (s *Server) handleCreateVenue(w http.ResponseWriter, r *http.Request) {
	values := postedValues(r)
	name := forms.DisplayName(values)

	venue, err := forms.VenueFromForm(values)
	if err == nil {
		_, err = s.venues.Create(r.Context(), venue)
	}
	if err != nil {
		s.logMutationFailure(r, err)
		s.render(w, r, http.StatusOK, "home", nil, fmt.Sprintf("An error occurred. Venue %s could not be listed.", name))
		return
	}
	s.render(w, r, http.StatusOK, "home", nil, fmt.Sprintf("Venue %s was successfully listed!", name))
}

func (s *Server) handleDeleteVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	if err := s.venues.Delete(r.Context(), id); err != nil {
		s.logMutationFailure(r, err)
		s.render(w, r, http.StatusOK, "home", nil, "Deleting the venue encountered an issue")
		return
	}
	s.render(w, r, http.StatusOK, "home", nil, "Venue was successfully deleted!")
}

func (s *Server) handleEditVenueForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	venue, err := s.venues.Get(r.Context(), id)
	if err != nil {
		s.readError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "edit_venue", venue)
}

func (s *Server) handleEditVenue(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	values := postedValues(r)
	name := forms.DisplayName(values)

	venue, err := forms.VenueFromForm(values)
	if err == nil {
		_, err = s.venues.Update(r.Context(), id, venue)
	}
	if err != nil {
		s.logMutationFailure(r, err)
		setFlash(w, fmt.Sprintf("Venue: %s details could not be updated.", name))
	} else {
		setFlash(w, fmt.Sprintf("Venue: %s details have been successfully changed!", name))
	}
	http.Redirect(w, r, fmt.Sprintf("/venues/%d", id), http.StatusSeeOther)
}

// postedValues returns the parsed form body. A body that cannot be parsed
// yields no values, so every required field reports absent.
func postedValues(r *http.Request) url.Values {
	if err := r.ParseForm(); err != nil {
		logging.WithContext(r.Context()).Warn().Err(err).Msg("parse form")
		return url.Values{}
	}
	return r.PostForm
}

// readError maps a failed lookup to the 404 page when the row is missing
// and to the 500 page otherwise.
func (s *Server) readError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, store.ErrVenueNotFound),
		errors.Is(err, store.ErrArtistNotFound),
		errors.Is(err, store.ErrShowNotFound):
		s.handleNotFound(w, r)
	default:
		s.serverError(w, r, err)
	}
}

func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	logging.WithContext(r.Context()).Error().Err(err).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Msg("request failed")
	s.renderServerError(w, r)
}

func (s *Server) logMutationFailure(r *http.Request, err error) {
	event := logging.WithContext(r.Context()).Error()
	if errors.Is(err, forms.ErrFieldAbsent) || errors.Is(err, forms.ErrInvalidField) {
		event = logging.WithContext(r.Context()).Warn()
	}
	event.Err(err).Str("path", r.URL.Path).Msg("submission rejected")
}
