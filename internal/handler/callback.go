package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/osse101/spotifylink/internal/domain"
	"github.com/osse101/spotifylink/internal/logger"
	"github.com/osse101/spotifylink/internal/metrics"
	"github.com/osse101/spotifylink/internal/spotify"
)

// SuccessQuery is appended to the web base URL after a successful link.
const SuccessQuery = "/?success=1"

// CallbackProcessor runs the callback checks, exchange and merge.
type CallbackProcessor interface {
	Handle(ctx context.Context, q spotify.CallbackQuery) (*spotify.LinkResult, error)
}

// CallbackHandlers serves the OAuth redirect endpoint
type CallbackHandlers struct {
	processor  CallbackProcessor
	webBaseURL string
}

// NewCallbackHandlers creates new callback handlers. webBaseURL is where the
// browser lands after a successful link.
func NewCallbackHandlers(processor CallbackProcessor, webBaseURL string) *CallbackHandlers {
	return &CallbackHandlers{
		processor:  processor,
		webBaseURL: strings.TrimRight(strings.TrimSpace(webBaseURL), "/"),
	}
}

// HandleCallback receives the Spotify redirect
// @Summary Spotify OAuth callback
// @Description Exchanges the authorization code and stores the tokens for the Discord user in state
// @Tags spotify
// @Produce html
// @Param code query string false "Authorization code"
// @Param state query string false "Discord user id"
// @Param error query string false "Authorization error reported by Spotify"
// @Param bot query string false "Redirect binding token"
// @Success 302 {string} string "Redirect to the web front-end"
// @Success 200 {string} string "Failure page"
// @Failure 403 {string} string "Invalid redirect page"
// @Failure 405 {string} string "Method not allowed"
// @Failure 500 {string} string "Failure page"
// @Router /api/callback [get]
func (h *CallbackHandlers) HandleCallback() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !allowGetOnly(w, r) {
			return
		}
		log := logger.FromContext(r.Context())

		query := r.URL.Query()
		q := spotify.CallbackQuery{
			Code:  query.Get(spotify.ParamCode),
			State: query.Get(spotify.ParamState),
			Error: query.Get(spotify.ParamError),
			Bot:   query.Get(spotify.ParamBot),
		}

		if _, err := h.processor.Handle(r.Context(), q); err != nil {
			outcome, status, page := callbackFailure(err, q.Error)
			if outcome == metrics.OutcomeInternalError {
				log.Error(LogMsgUnhandledCallbackError, "error", err)
			}
			metrics.CallbackResults.WithLabelValues(outcome).Inc()
			renderPage(w, status, page)
			return
		}

		if h.webBaseURL == "" {
			log.Error(LogMsgWebBaseMissing)
			metrics.CallbackResults.WithLabelValues(metrics.OutcomeNotConfigured).Inc()
			renderPage(w, http.StatusInternalServerError, errorPage(PageMsgNotConfigured))
			return
		}

		metrics.CallbackResults.WithLabelValues(metrics.OutcomeLinked).Inc()
		w.Header().Set("Location", h.webBaseURL+SuccessQuery)
		w.WriteHeader(http.StatusFound)
	}
}

// callbackFailure maps a processor error onto its metric outcome, status
// and page. upstreamError is the raw error parameter from Spotify.
func callbackFailure(err error, upstreamError string) (string, int, Page) {
	switch {
	case errors.Is(err, domain.ErrForbiddenRedirect):
		return metrics.OutcomeForbidden, http.StatusForbidden, errorPage(PageMsgForbiddenRedirect)
	case errors.Is(err, domain.ErrUpstreamDenied):
		return metrics.OutcomeDenied, http.StatusOK, errorPage(fmt.Sprintf(PageMsgDeniedFormat, upstreamError))
	case errors.Is(err, domain.ErrMissingExchangeFields):
		return metrics.OutcomeMissingFields, http.StatusOK, errorPage(PageMsgMissingSession)
	case errors.Is(err, domain.ErrInvalidUserID):
		return metrics.OutcomeInvalidState, http.StatusOK, errorPage(PageMsgInvalidSession)
	case errors.Is(err, domain.ErrNotConfigured):
		return metrics.OutcomeNotConfigured, http.StatusInternalServerError, errorPage(PageMsgNotConfigured)
	case errors.Is(err, domain.ErrExchangeFailed):
		return metrics.OutcomeExchangeFailed, http.StatusInternalServerError, errorPage(PageMsgExchangeFailed)
	case errors.Is(err, domain.ErrPersistenceFailed):
		return metrics.OutcomeSaveFailed, http.StatusInternalServerError, errorPage(PageMsgSaveFailed)
	default:
		return metrics.OutcomeInternalError, http.StatusInternalServerError, errorPage(PageMsgGeneric)
	}
}
