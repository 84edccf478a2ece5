package handler

import (
	"net/http"
	"strings"
)

// allowGetOnly answers non-GET requests with 405 and reports whether the
// handler may continue.
func allowGetOnly(w http.ResponseWriter, r *http.Request) bool {
	if r.Method == http.MethodGet {
		return true
	}
	w.Header().Set("Allow", http.MethodGet)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusMethodNotAllowed)
	_, _ = w.Write([]byte(ErrMsgMethodNotAllowed))
	return false
}

// firstQueryValue returns the first non-blank value among names, trimmed.
func firstQueryValue(r *http.Request, names ...string) string {
	q := r.URL.Query()
	for _, name := range names {
		if v := strings.TrimSpace(q.Get(name)); v != "" {
			return v
		}
	}
	return ""
}
