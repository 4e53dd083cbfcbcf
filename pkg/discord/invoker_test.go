package discord

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiCall struct {
	method  string
	guild   string
	user    string
	reason  string
	days    int
	until   *time.Time
	opts    int
	channel string
}

type fakeAPI struct {
	calls []apiCall
	err   error
}

func (f *fakeAPI) GuildBanCreateWithReason(guildID, userID, reason string, days int, options ...discordgo.RequestOption) error {
	f.calls = append(f.calls, apiCall{method: "ban", guild: guildID, user: userID, reason: reason, days: days, opts: len(options)})
	return f.err
}

func (f *fakeAPI) GuildMemberDeleteWithReason(guildID, userID, reason string, options ...discordgo.RequestOption) error {
	f.calls = append(f.calls, apiCall{method: "kick", guild: guildID, user: userID, reason: reason, opts: len(options)})
	return f.err
}

func (f *fakeAPI) GuildMemberTimeout(guildID, userID string, until *time.Time, options ...discordgo.RequestOption) error {
	f.calls = append(f.calls, apiCall{method: "timeout", guild: guildID, user: userID, until: until, opts: len(options)})
	return f.err
}

func (f *fakeAPI) ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	f.calls = append(f.calls, apiCall{method: "send", channel: channelID, reason: content, opts: len(options)})
	if f.err != nil {
		return nil, f.err
	}
	return &discordgo.Message{ChannelID: channelID, Content: content}, nil
}

func TestInvokerMapsActions(t *testing.T) {
	api := &fakeAPI{}
	inv := &Invoker{api: api}
	ctx := context.Background()
	until := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, inv.Ban(ctx, "g", "u", "raid", 3))
	require.NoError(t, inv.Kick(ctx, "g", "u", "spam"))
	require.NoError(t, inv.SuspendUntil(ctx, "g", "u", until))
	require.NoError(t, inv.ReleaseSuspension(ctx, "g", "u"))
	require.NoError(t, inv.SendAuditLog(ctx, "log", "hola"))

	require.Len(t, api.calls, 5)
	assert.Equal(t, apiCall{method: "ban", guild: "g", user: "u", reason: "raid", days: 3, opts: 1}, api.calls[0])
	assert.Equal(t, apiCall{method: "kick", guild: "g", user: "u", reason: "spam", opts: 1}, api.calls[1])

	require.NotNil(t, api.calls[2].until)
	assert.Equal(t, until, *api.calls[2].until)
	assert.Nil(t, api.calls[3].until, "release clears the timeout")
	assert.Equal(t, "log", api.calls[4].channel)
}

func TestInvokerPropagatesErrors(t *testing.T) {
	boom := errors.New("Missing Permissions")
	inv := &Invoker{api: &fakeAPI{err: boom}}
	ctx := context.Background()

	assert.ErrorIs(t, inv.Ban(ctx, "g", "u", "r", 0), boom)
	assert.ErrorIs(t, inv.Kick(ctx, "g", "u", "r"), boom)
	assert.ErrorIs(t, inv.SuspendUntil(ctx, "g", "u", time.Now()), boom)
	assert.ErrorIs(t, inv.ReleaseSuspension(ctx, "g", "u"), boom)
	assert.ErrorIs(t, inv.SendAuditLog(ctx, "c", "x"), boom)
}
