package web

import (
	"net/http"

	"fyyur/internal/forms"
)

func (s *Server) handleShowListing(w http.ResponseWriter, r *http.Request) {
	listings, err := s.shows.Upcoming(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "shows", listings)
}

func (s *Server) handleNewShowForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "new_show", nil)
}

func (s *Server) handleCreateShow(w http.ResponseWriter, r *http.Request) {
	show, err := forms.ShowFromForm(postedValues(r))
	if err == nil {
		_, err = s.shows.Create(r.Context(), show)
	}
	if err != nil {
		s.logMutationFailure(r, err)
		s.render(w, r, http.StatusOK, "home", nil, "An error occurred. Show could not be listed.")
		return
	}
	s.render(w, r, http.StatusOK, "home", nil, "Show was successfully listed!")
}
