// File: internal/handlers/page_handlers.go
package handlers

import (
	"html/template"
	"log"
	"net/http"
	"sync"

	"github.com/tunegen/tunegen/internal/services/tags"
)

// Template cache to avoid parsing templates on every request
var (
	indexTemplate     *template.Template
	templateCacheOnce sync.Once
)

func loadTemplateCache() {
	t, err := template.ParseFiles("web/templates/index.html")
	if err != nil {
		log.Fatalf("Error parsing index.html: %v", err)
	}
	indexTemplate = t
}

type PageHandler struct{}

func NewPageHandler() *PageHandler {
	return &PageHandler{}
}

// ShowIndexPage renders the landing page with the selectable moods.
func (h *PageHandler) ShowIndexPage(w http.ResponseWriter, r *http.Request) {
	templateCacheOnce.Do(loadTemplateCache)
	addSecurityHeaders(w)

	data := map[string]interface{}{
		"Moods": tags.Moods(),
	}
	if err := indexTemplate.Execute(w, data); err != nil {
		log.Printf("Template render error for index.html: %v", err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
	}
}

func addSecurityHeaders(w http.ResponseWriter) {
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
}
