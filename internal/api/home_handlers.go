package api

import (
	"net/http"
)

// handleHome serves the public marketing page.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.render(w, r, "home.html", pageData{
		"Title": "LexPrep - Legal Exam Preparation",
	})
}
