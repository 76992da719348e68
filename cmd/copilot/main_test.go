package main

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"copilot/internal/bootstrap"
	"copilot/internal/domain"
	"copilot/mocks"
)

func TestExecute_ReleasesSessionWhenCommandFails(t *testing.T) {
	sessions := new(mocks.MockSessionService)
	current := &domain.Session{ID: uuid.New()}
	sessions.On("End", mock.Anything, current.ID).Return(nil).Once()

	failing := &cobra.Command{
		Use:         "fail-for-test",
		Annotations: map[string]string{"bootstrap": "skip"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return errors.New("upload rejected")
		},
	}
	rootCmd.AddCommand(failing)
	t.Cleanup(func() {
		rootCmd.RemoveCommand(failing)
		rootCmd.SetArgs(nil)
	})

	app = &bootstrap.App{Sessions: sessions}
	sess = current
	logger = zap.NewNop()
	rootCmd.SetArgs([]string{"fail-for-test"})

	err := execute(context.Background())
	require.EqualError(t, err, "upload rejected")

	sessions.AssertExpectations(t)
	assert.Nil(t, app)
	assert.Nil(t, sess)
	assert.Nil(t, logger)
}

func TestShutdown_Idempotent(t *testing.T) {
	sessions := new(mocks.MockSessionService)
	current := &domain.Session{ID: uuid.New()}
	sessions.On("End", mock.Anything, current.ID).Return(errors.New("store down")).Once()

	app = &bootstrap.App{Sessions: sessions}
	sess = current

	shutdown()
	shutdown()

	sessions.AssertNumberOfCalls(t, "End", 1)
}

func TestShutdown_NothingStarted(t *testing.T) {
	app, sess, logger = nil, nil, nil
	assert.NotPanics(t, shutdown)
}
