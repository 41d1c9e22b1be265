package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fpang/prompt-gallery/internal/catalog"
)

type categoryResponse struct {
	catalog.Category
	Prompts []catalog.Prompt `json:"prompts"`
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, s.catalog.Categories())
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	c, err := s.catalog.Category(id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, categoryResponse{Category: c, Prompts: s.catalog.PromptsInCategory(id)})
}

func (s *Server) handleListPrompts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	respondJSON(w, http.StatusOK, s.catalog.Search(catalog.Filter{
		Query:      q.Get("q"),
		CategoryID: q.Get("category"),
	}))
}

func (s *Server) handleGetPrompt(w http.ResponseWriter, r *http.Request) {
	p, err := s.catalog.Prompt(chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, p)
}
