package spotify

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/osse101/spotifylink/internal/domain"
	"github.com/osse101/spotifylink/internal/logger"
	"github.com/osse101/spotifylink/internal/metrics"
	"github.com/osse101/spotifylink/internal/validation"
)

// CallbackQuery is the inbound redirect from the authorization server.
type CallbackQuery struct {
	Code  string
	State string
	Error string
	Bot   string
}

// LinkStore persists exchanged credentials. UpsertLink reports whether a new
// record was created.
type LinkStore interface {
	UpsertLink(ctx context.Context, rec domain.LinkRecord) (created bool, err error)
}

// Notifier is told about successful links. Failures never affect the callback.
type Notifier interface {
	NotifyLinked(ctx context.Context, userID string) error
}

// LinkResult describes a successfully persisted link.
type LinkResult struct {
	UserID  string
	Created bool
}

// CallbackExchanger validates a callback, exchanges its code and merges the
// resulting tokens into the link store.
type CallbackExchanger struct {
	botToken  string
	exchanger TokenExchanger
	store     LinkStore
	notifier  Notifier

	// pending tracks detached notifications so shutdown can drain them.
	pending sync.WaitGroup
}

// NewCallbackExchanger wires the collaborators. notifier may be nil.
func NewCallbackExchanger(botToken string, exchanger TokenExchanger, store LinkStore, notifier Notifier) *CallbackExchanger {
	return &CallbackExchanger{
		botToken:  strings.TrimSpace(botToken),
		exchanger: exchanger,
		store:     store,
		notifier:  notifier,
	}
}

// Handle evaluates the callback in a fixed order; the first failing check
// ends the request. Errors wrap one of ErrForbiddenRedirect,
// ErrUpstreamDenied, ErrMissingExchangeFields, ErrInvalidUserID,
// ErrExchangeFailed or ErrPersistenceFailed.
func (c *CallbackExchanger) Handle(ctx context.Context, q CallbackQuery) (*LinkResult, error) {
	log := logger.FromContext(ctx)

	if c.botToken != "" {
		bot := strings.TrimSpace(q.Bot)
		if subtle.ConstantTimeCompare([]byte(bot), []byte(c.botToken)) != 1 {
			log.Warn(LogMsgBindingMismatch, "has_bot", bot != "")
			return nil, domain.ErrForbiddenRedirect
		}
	}

	if q.Error != "" {
		log.Info(LogMsgUpstreamDenied, "error_code", q.Error)
		return nil, fmt.Errorf("%w: %s", domain.ErrUpstreamDenied, q.Error)
	}

	if q.Code == "" || q.State == "" {
		log.Info(LogMsgMissingFields, "has_code", q.Code != "", "has_state", q.State != "")
		return nil, domain.ErrMissingExchangeFields
	}

	userID := strings.TrimSpace(q.State)
	if !validation.IsValidUserID(userID) {
		log.Info(LogMsgInvalidState)
		return nil, domain.ErrInvalidUserID
	}
	log = log.With("user_id", userID)

	tokens, err := c.exchanger.Exchange(ctx, q.Code)
	if err != nil {
		metrics.TokenExchanges.WithLabelValues(metrics.ResultFailure).Inc()
		log.Error(LogMsgExchangeFailed, "error", err)
		return nil, asKind(err, domain.ErrExchangeFailed)
	}
	metrics.TokenExchanges.WithLabelValues(metrics.ResultSuccess).Inc()
	log.Debug(LogMsgExchangeComplete, "has_refresh_token", tokens.RefreshToken != "", "expires_at", tokens.Expiry)

	created, err := c.store.UpsertLink(ctx, domain.NewLinkRecord(userID, tokens))
	if err != nil {
		log.Error(LogMsgPersistFailed, "error", err)
		return nil, asKind(err, domain.ErrPersistenceFailed)
	}

	if created {
		metrics.LinkWrites.WithLabelValues(metrics.OpCreated).Inc()
		log.Info(LogMsgAccountLinked)
	} else {
		metrics.LinkWrites.WithLabelValues(metrics.OpUpdated).Inc()
		log.Info(LogMsgAccountRelinked)
	}

	if c.notifier != nil {
		c.pending.Add(1)
		go c.notifyLinked(context.WithoutCancel(ctx), userID)
	}

	return &LinkResult{UserID: userID, Created: created}, nil
}

// notifyLinked runs after the response is decided, so a slow Discord API
// never delays the redirect. Failures are logged only.
func (c *CallbackExchanger) notifyLinked(ctx context.Context, userID string) {
	defer c.pending.Done()

	ctx, cancel := context.WithTimeout(ctx, NotifyTimeout)
	defer cancel()

	if err := c.notifier.NotifyLinked(ctx, userID); err != nil {
		logger.FromContext(ctx).Warn(LogMsgNotifyFailed, "user_id", userID, "error", err)
	}
}

// Shutdown waits for in-flight link notifications until ctx is done.
func (c *CallbackExchanger) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		c.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// asKind makes sure err matches kind under errors.Is while keeping the
// original chain inspectable.
func asKind(err, kind error) error {
	if errors.Is(err, kind) {
		return err
	}
	return fmt.Errorf("%w: %w", kind, err)
}
