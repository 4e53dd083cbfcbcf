// Package moderation decides and carries out escalations when users collect warnings,
// and turns every moderation outcome into the message shown to moderators.
package moderation

import (
	"context"
	"fmt"
	"time"
)

// Invoker performs moderation actions on the chat platform.
// Implementations report platform failures as errors; they never retry.
type Invoker interface {
	Ban(ctx context.Context, guildID, userID, reason string, deleteHistoryDays int) error
	Kick(ctx context.Context, guildID, userID, reason string) error
	SuspendUntil(ctx context.Context, guildID, userID string, until time.Time) error
	ReleaseSuspension(ctx context.Context, guildID, userID string) error
}

// AuditLogger is implemented by invokers that can post to a guild's log channel
type AuditLogger interface {
	SendAuditLog(ctx context.Context, channelID, content string) error
}

// Target identifies the user an operation applies to. Name is only used for display.
type Target struct {
	GuildID string
	UserID  string
	Name    string
}

// Label returns the display form of the target used in messages
func (t Target) Label() string {
	if t.Name != "" {
		return fmt.Sprintf("**%s**", t.Name)
	}
	return fmt.Sprintf("<@%s>", t.UserID)
}
