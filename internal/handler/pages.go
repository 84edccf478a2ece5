package handler

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
)

//go:embed templates/page.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// PageTitle heads every callback page.
const PageTitle = "Spotify"

// Page is a one-screen HTML message.
type Page struct {
	Title   string
	Message string
	IsError bool
}

// errorPage builds the standard failure page.
func errorPage(message string) Page {
	return Page{Title: PageTitle, Message: message, IsError: true}
}

// renderPage writes page with status. The template escapes every value.
func renderPage(w http.ResponseWriter, status int, page Page) {
	buf := getBuffer()
	defer putBuffer(buf)

	if err := pageTemplate.Execute(buf, page); err != nil {
		slog.Error(LogMsgRenderFailed, "error", err)
		http.Error(w, PageMsgGeneric, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// HandleInternalErrorPage renders the generic failure page with status 500.
func HandleInternalErrorPage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderPage(w, http.StatusInternalServerError, errorPage(PageMsgGeneric))
	}
}
