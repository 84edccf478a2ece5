package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecurityHeadersMiddleware(t *testing.T) {
	h := SecurityHeadersMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	expected := map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"X-XSS-Protection":       "1; mode=block",
		"Referrer-Policy":        "no-referrer",
	}
	for header, want := range expected {
		assert.Equal(t, want, rec.Header().Get(header), header)
	}
}

func TestExtractIP(t *testing.T) {
	tests := []struct {
		name      string
		remote    string
		forwarded string
		trusted   []string
		want      string
	}{
		{"direct", "10.0.0.5:1234", "", nil, "10.0.0.5"},
		{"untrusted forwarded ignored", "10.0.0.5:1234", "1.2.3.4", nil, "10.0.0.5"},
		{"trusted proxy", "10.0.0.1:443", "1.2.3.4, 5.6.7.8", []string{"10.0.0.1"}, "5.6.7.8"},
		{"no port", "10.0.0.9", "", nil, "10.0.0.9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			assert.Equal(t, tt.want, extractIP(req, tt.trusted))
		})
	}
}

func TestRedactQuery(t *testing.T) {
	got := redactQuery("code=AQBsecret&state=123456789012345678&bot=hunter2")
	assert.NotContains(t, got, "AQBsecret")
	assert.NotContains(t, got, "hunter2")
	assert.Contains(t, got, "state=123456789012345678")

	assert.Equal(t, "", redactQuery(""))
	assert.Equal(t, "[REDACTED]", redactQuery("%zz"))
}
