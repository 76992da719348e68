package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"copilot/internal/domain"
	"copilot/internal/prompt"
	"copilot/internal/service"
	"copilot/mocks"
)

func TestSessionService_Start(t *testing.T) {
	store := new(mocks.MockSessionStore)
	svc := service.NewSessionService(store, testCatalog(t), nil)
	store.On("Save", mock.Anything, mock.AnythingOfType("*domain.Session")).Return(nil)

	sess, err := svc.Start(context.Background())
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, sess.ID)
	assert.Equal(t, "india", sess.Standard)
	require.Len(t, sess.Messages, 1)
	assert.Equal(t, prompt.WelcomeMessage, sess.Messages[0].Content)
	assert.Nil(t, sess.LastScan)
	store.AssertExpectations(t)
}

func TestSessionService_Resolve_Existing(t *testing.T) {
	store := new(mocks.MockSessionStore)
	svc := service.NewSessionService(store, testCatalog(t), nil)
	existing := newSession()
	store.On("Get", mock.Anything, existing.ID).Return(existing, nil)

	sess, created, err := svc.Resolve(context.Background(), existing.ID.String())
	require.NoError(t, err)
	assert.False(t, created)
	assert.Same(t, existing, sess)
}

func TestSessionService_Resolve_StartsFresh(t *testing.T) {
	tests := []struct {
		name  string
		rawID string
		setup func(*mocks.MockSessionStore)
	}{
		{"absent", "", func(*mocks.MockSessionStore) {}},
		{"malformed", "not-a-uuid", func(*mocks.MockSessionStore) {}},
		{"expired", uuid.NewString(), func(s *mocks.MockSessionStore) {
			s.On("Get", mock.Anything, mock.Anything).Return(nil, domain.ErrSessionNotFound)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := new(mocks.MockSessionStore)
			tt.setup(store)
			store.On("Save", mock.Anything, mock.Anything).Return(nil)
			svc := service.NewSessionService(store, testCatalog(t), nil)

			sess, created, err := svc.Resolve(context.Background(), tt.rawID)
			require.NoError(t, err)
			assert.True(t, created)
			assert.NotEqual(t, tt.rawID, sess.ID.String())
		})
	}
}

func TestSessionService_Resolve_StoreError(t *testing.T) {
	store := new(mocks.MockSessionStore)
	svc := service.NewSessionService(store, testCatalog(t), nil)
	store.On("Get", mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))

	_, _, err := svc.Resolve(context.Background(), uuid.NewString())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis down")
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestSessionService_SaveAndEnd(t *testing.T) {
	store := new(mocks.MockSessionStore)
	svc := service.NewSessionService(store, testCatalog(t), nil)
	sess := newSession()
	store.On("Save", mock.Anything, sess).Return(nil)
	store.On("Delete", mock.Anything, sess.ID).Return(nil)

	require.NoError(t, svc.Save(context.Background(), sess))
	assert.False(t, sess.UpdatedAt.IsZero())
	require.NoError(t, svc.End(context.Background(), sess.ID))
	store.AssertExpectations(t)
}
