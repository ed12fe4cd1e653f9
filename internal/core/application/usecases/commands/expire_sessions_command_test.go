package commands_test

import (
	"testing"
	"time"

	"ordering/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewExpireSessionsCommand(t *testing.T) {
	now := time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)

	cmd, err := commands.NewExpireSessionsCommand(now, 72*time.Hour)

	require.NoError(t, err)
	require.NoError(t, cmd.Validate())
	assert.Equal(t, time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC), cmd.Cutoff())
}

func TestNewExpireSessionsCommand_RejectsNonPositiveTTL(t *testing.T) {
	for _, ttl := range []time.Duration{0, -time.Hour} {
		_, err := commands.NewExpireSessionsCommand(time.Now(), ttl)

		require.ErrorIs(t, err, commands.ErrSessionTTLMustBePositive)
	}
}

func TestExpireSessionsCommand_Validate_WhenNotConstructed(t *testing.T) {
	var cmd commands.ExpireSessionsCommand

	assert.Equal(t, commands.ErrExpireSessionsCommandIsNotConstructed, cmd.Validate())
}
