package spotify

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/osse101/spotifylink/internal/domain"
)

// MockExchanger implements TokenExchanger for testing
type MockExchanger struct {
	mock.Mock
}

func (m *MockExchanger) Exchange(ctx context.Context, code string) (domain.TokenSet, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(domain.TokenSet), args.Error(1)
}

// MockLinkStore implements LinkStore for testing
type MockLinkStore struct {
	mock.Mock
}

func (m *MockLinkStore) UpsertLink(ctx context.Context, rec domain.LinkRecord) (bool, error) {
	args := m.Called(ctx, rec)
	return args.Bool(0), args.Error(1)
}

// MockNotifier implements Notifier for testing
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyLinked(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
