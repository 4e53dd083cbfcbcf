package discord

import (
	"context"
	"time"

	"github.com/PancyStudios/PancyWarden/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// memberAPI is the part of discordgo.Session the invoker needs
type memberAPI interface {
	GuildBanCreateWithReason(guildID, userID, reason string, days int, options ...discordgo.RequestOption) error
	GuildMemberDeleteWithReason(guildID, userID, reason string, options ...discordgo.RequestOption) error
	GuildMemberTimeout(guildID, userID string, until *time.Time, options ...discordgo.RequestOption) error
	ChannelMessageSend(channelID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Invoker applies moderation actions through the Discord REST API
type Invoker struct {
	api memberAPI
}

var (
	_ moderation.Invoker     = (*Invoker)(nil)
	_ moderation.AuditLogger = (*Invoker)(nil)
)

// NewInvoker creates an Invoker over a discordgo session
func NewInvoker(s *discordgo.Session) *Invoker {
	return &Invoker{api: s}
}

// Ban bans the user and deletes deleteHistoryDays of their messages
func (inv *Invoker) Ban(ctx context.Context, guildID, userID, reason string, deleteHistoryDays int) error {
	return inv.api.GuildBanCreateWithReason(guildID, userID, reason, deleteHistoryDays, discordgo.WithContext(ctx))
}

// Kick removes the member from the guild
func (inv *Invoker) Kick(ctx context.Context, guildID, userID, reason string) error {
	return inv.api.GuildMemberDeleteWithReason(guildID, userID, reason, discordgo.WithContext(ctx))
}

// SuspendUntil times the member out until the given instant
func (inv *Invoker) SuspendUntil(ctx context.Context, guildID, userID string, until time.Time) error {
	return inv.api.GuildMemberTimeout(guildID, userID, &until, discordgo.WithContext(ctx))
}

// ReleaseSuspension removes the member's timeout
func (inv *Invoker) ReleaseSuspension(ctx context.Context, guildID, userID string) error {
	return inv.api.GuildMemberTimeout(guildID, userID, nil, discordgo.WithContext(ctx))
}

// SendAuditLog posts content to the guild's log channel
func (inv *Invoker) SendAuditLog(ctx context.Context, channelID, content string) error {
	_, err := inv.api.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	return err
}
