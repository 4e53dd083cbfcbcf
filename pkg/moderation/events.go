package moderation

import (
	"time"

	"github.com/PancyStudios/PancyWarden/pkg/models"
)

// Inbound events handled by the Engine

type WarnEvent struct {
	Target    Target
	Reason    string
	Moderator string
}

type GetWarningsQuery struct {
	Target Target
}

type ClearWarningsCommand struct {
	Target Target
}

type RemoveWarningCommand struct {
	Target    Target
	WarningID string
}

type SetEscalationPolicyCommand struct {
	GuildID string
	Policy  models.EscalationPolicy
}

// Topics moderation events are published to
const (
	TopicWarn   = "pancywarden/events/warn"
	TopicAction = "pancywarden/events/action"
)

// Publisher delivers moderation events to external subscribers
type Publisher interface {
	Publish(topic string, payload interface{}) error
}

// WarningIssued is published after a warning is recorded
type WarningIssued struct {
	GuildID    string              `json:"guildId"`
	UserID     string              `json:"userId"`
	Reason     string              `json:"reason"`
	Moderator  string              `json:"moderator,omitempty"`
	Count      int                 `json:"count"`
	Escalation models.PolicyAction `json:"escalation,omitempty"`
	IssuedAt   time.Time           `json:"issuedAt"`
}

// ActionTaken is published after every ban, kick, timeout or release attempt
type ActionTaken struct {
	GuildID   string     `json:"guildId"`
	UserID    string     `json:"userId"`
	Action    string     `json:"action"`
	Reason    string     `json:"reason,omitempty"`
	Automatic bool       `json:"automatic"`
	Until     *time.Time `json:"until,omitempty"`
	Error     string     `json:"error,omitempty"`
	At        time.Time  `json:"at"`
}
