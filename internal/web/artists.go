package web

import (
	"fmt"
	"net/http"

	"fyyur/internal/forms"
	"fyyur/internal/models"
)

func (s *Server) handleArtistList(w http.ResponseWriter, r *http.Request) {
	entries, err := s.artists.List(r.Context())
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "artists", entries)
}

func (s *Server) handleSearchArtists(w http.ResponseWriter, r *http.Request) {
	term := r.PostFormValue("search_term")
	result, err := s.artists.Search(r.Context(), term)
	if err != nil {
		s.serverError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "search_artists", searchPage{SearchTerm: term, Count: result.Count, Data: result.Data})
}

func (s *Server) handleShowArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	detail, err := s.artists.Detail(r.Context(), id)
	if err != nil {
		s.readError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "show_artist", detail)
}

func (s *Server) handleNewArtistForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, http.StatusOK, "new_artist", models.Artist{})
}

func (s *Server) handleCreateArtist(w http.ResponseWriter, r *http.Request) {
	values := postedValues(r)
	name := forms.DisplayName(values)

	artist, err := forms.ArtistFromForm(values)
	if err == nil {
		_, err = s.artists.Create(r.Context(), artist)
	}
	if err != nil {
		s.logMutationFailure(r, err)
		s.render(w, r, http.StatusOK, "home", nil, fmt.Sprintf("An error occurred. Artist %s could not be listed.", name))
		return
	}
	s.render(w, r, http.StatusOK, "home", nil, fmt.Sprintf("Artist %s was successfully listed!", name))
}

func (s *Server) handleEditArtistForm(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	artist, err := s.artists.Get(r.Context(), id)
	if err != nil {
		s.readError(w, r, err)
		return
	}
	s.render(w, r, http.StatusOK, "edit_artist", artist)
}

func (s *Server) handleEditArtist(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	values := postedValues(r)
	name := forms.DisplayName(values)

	artist, err := forms.ArtistFromForm(values)
	if err == nil {
		_, err = s.artists.Update(r.Context(), id, artist)
	}
	if err != nil {
		s.logMutationFailure(r, err)
		setFlash(w, fmt.Sprintf("Artist: %s details could not be updated.", name))
	} else {
		setFlash(w, fmt.Sprintf("Artist: %s details have been successfully changed!", name))
	}
	http.Redirect(w, r, fmt.Sprintf("/artists/%d", id), http.StatusSeeOther)
}
