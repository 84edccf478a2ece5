package handler

import (
	"errors"
	"net/http"

	"github.com/osse101/spotifylink/internal/domain"
	"github.com/osse101/spotifylink/internal/logger"
	"github.com/osse101/spotifylink/internal/metrics"
)

// URLBuilder builds authorization URLs for Discord user ids.
type URLBuilder interface {
	Build(userID string) (string, error)
}

// AuthURLHandlers serves the authorization URL endpoint
type AuthURLHandlers struct {
	builder URLBuilder
}

// NewAuthURLHandlers creates new auth-url handlers
func NewAuthURLHandlers(builder URLBuilder) *AuthURLHandlers {
	return &AuthURLHandlers{builder: builder}
}

// HandleAuthURL returns the Spotify authorization URL for a Discord user
// @Summary Get Spotify authorization URL
// @Description Builds the URL that starts the Spotify link flow for a Discord user
// @Tags spotify
// @Produce json
// @Param user_id query string true "Discord user id (userId is accepted too)"
// @Success 200 {object} AuthURLResponse
// @Failure 400 {object} ErrorResponse
// @Failure 405 {string} string "Method not allowed"
// @Failure 500 {object} ErrorResponse
// @Router /api/auth-url [get]
func (h *AuthURLHandlers) HandleAuthURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowGetOnly(w, r) {
			return
		}
		log := logger.FromContext(r.Context())

		userID := firstQueryValue(r, "user_id", "userId")
		url, err := h.builder.Build(userID)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrInvalidUserID):
			respondError(w, http.StatusBadRequest, ErrMsgInvalidUserIDParam)
			return
		case errors.Is(err, domain.ErrNotConfigured):
			respondError(w, http.StatusInternalServerError, ErrMsgSpotifyNotConfig)
			return
		default:
			log.Error(LogMsgUnhandledAuthURLError, "error", err)
			respondError(w, http.StatusInternalServerError, ErrMsgInternalError)
			return
		}

		metrics.AuthURLsIssued.Inc()
		log.Info(LogMsgAuthURLIssued, "user_id", userID)
		respondJSON(w, http.StatusOK, AuthURLResponse{URL: url})
	}
}
