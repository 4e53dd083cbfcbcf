package events

import (
	"testing"
	"time"

	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsNewJoin(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	assert.True(t, isNewJoin(now.Add(-2*time.Second), now))
	assert.False(t, isNewJoin(now.Add(-time.Hour), now), "guilds replayed on reconnect are not greeted")
}

func TestRegisterAll(t *testing.T) {
	client, err := discord.NewClient("token", "")
	require.NoError(t, err)

	RegisterAll(client)
	assert.Equal(t, 3, client.EventHandler.Count())
}

func TestWelcomeEmbed(t *testing.T) {
	embed := welcomeEmbed()
	assert.Contains(t, embed.Description, "/utils help")
	assert.Len(t, embed.Fields, 3)
}
