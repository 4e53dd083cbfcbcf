package models

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// MaxPolicyThreshold is the highest warning count a policy can wait for
const MaxPolicyThreshold = 255

// TimeSpec is a sparse duration: every present component is added together.
// A duration with no components is empty and never yields an end time.
type TimeSpec struct {
	Days    *int64 `toml:"days,omitempty" bson:"days,omitempty" json:"days,omitempty"`
	Hours   *int64 `toml:"hours,omitempty" bson:"hours,omitempty" json:"hours,omitempty"`
	Minutes *int64 `toml:"minutes,omitempty" bson:"minutes,omitempty" json:"minutes,omitempty"`
	Seconds *int64 `toml:"seconds,omitempty" bson:"seconds,omitempty" json:"seconds,omitempty"`
}

// NewTimeSpec builds a TimeSpec keeping only the non-zero components
func NewTimeSpec(days, hours, minutes, seconds int64) TimeSpec {
	var ts TimeSpec
	if days != 0 {
		ts.Days = &days
	}
	if hours != 0 {
		ts.Hours = &hours
	}
	if minutes != 0 {
		ts.Minutes = &minutes
	}
	if seconds != 0 {
		ts.Seconds = &seconds
	}
	return ts
}

// IsEmpty reports whether no component is present
func (ts TimeSpec) IsEmpty() bool {
	return ts.Days == nil && ts.Hours == nil && ts.Minutes == nil && ts.Seconds == nil
}

// MaxTimeout is the longest suspension the platform accepts
const MaxTimeout = 28 * 24 * time.Hour

type timePart struct {
	name  string
	value *int64
	unit  time.Duration
}

func (ts TimeSpec) parts() []timePart {
	return []timePart{
		{"days", ts.Days, 24 * time.Hour},
		{"hours", ts.Hours, time.Hour},
		{"minutes", ts.Minutes, time.Minute},
		{"seconds", ts.Seconds, time.Second},
	}
}

// MaxComponent returns the largest value a component measured in unit may hold
func MaxComponent(unit time.Duration) int64 {
	return int64(MaxTimeout / unit)
}

// Validate rejects negative components and durations longer than MaxTimeout.
// Components are checked in order from days to seconds.
func (ts TimeSpec) Validate() error {
	var total time.Duration
	for _, p := range ts.parts() {
		if p.value == nil {
			continue
		}
		if *p.value < 0 {
			return fmt.Errorf("%s must not be negative", p.name)
		}
		if *p.value > MaxComponent(p.unit) {
			return fmt.Errorf("%s must be at most %d", p.name, MaxComponent(p.unit))
		}
		total += time.Duration(*p.value) * p.unit
	}
	if total > MaxTimeout {
		return fmt.Errorf("duration must not exceed %d days", MaxComponent(24*time.Hour))
	}
	return nil
}

// Duration returns the sum of every present component. Only validated specs are
// guaranteed not to overflow.
func (ts TimeSpec) Duration() time.Duration {
	var d time.Duration
	for _, p := range ts.parts() {
		if p.value != nil {
			d += time.Duration(*p.value) * p.unit
		}
	}
	return d
}

// EndTime returns now plus the duration. ok is false for an empty duration.
func (ts TimeSpec) EndTime(now time.Time) (end time.Time, ok bool) {
	if ts.IsEmpty() {
		return time.Time{}, false
	}
	return now.Add(ts.Duration()), true
}

// Clone returns a copy that shares no pointers with ts
func (ts TimeSpec) Clone() TimeSpec {
	var out TimeSpec
	if ts.Days != nil {
		v := *ts.Days
		out.Days = &v
	}
	if ts.Hours != nil {
		v := *ts.Hours
		out.Hours = &v
	}
	if ts.Minutes != nil {
		v := *ts.Minutes
		out.Minutes = &v
	}
	if ts.Seconds != nil {
		v := *ts.Seconds
		out.Seconds = &v
	}
	return out
}

func (ts TimeSpec) String() string {
	if ts.IsEmpty() {
		return "sin duración"
	}
	var parts []string
	if ts.Days != nil {
		parts = append(parts, fmt.Sprintf("%dd", *ts.Days))
	}
	if ts.Hours != nil {
		parts = append(parts, fmt.Sprintf("%dh", *ts.Hours))
	}
	if ts.Minutes != nil {
		parts = append(parts, fmt.Sprintf("%dm", *ts.Minutes))
	}
	if ts.Seconds != nil {
		parts = append(parts, fmt.Sprintf("%ds", *ts.Seconds))
	}
	return strings.Join(parts, " ")
}

// PolicyAction is the closed set of escalation actions
type PolicyAction string

const (
	ActionNothing PolicyAction = "nothing"
	ActionBan     PolicyAction = "ban"
	ActionKick    PolicyAction = "kick"
	ActionTimeout PolicyAction = "timeout"
)

// ParsePolicyAction accepts the action names case-insensitively
func ParsePolicyAction(s string) (PolicyAction, error) {
	switch PolicyAction(strings.ToLower(strings.TrimSpace(s))) {
	case ActionNothing, "":
		return ActionNothing, nil
	case ActionBan:
		return ActionBan, nil
	case ActionKick:
		return ActionKick, nil
	case ActionTimeout:
		return ActionTimeout, nil
	}
	return "", fmt.Errorf("unknown escalation action %q", s)
}

// EscalationPolicy decides what happens once a user collects Threshold warnings in a guild.
// Threshold and Duration are only meaningful for the actions that use them.
type EscalationPolicy struct {
	Action    PolicyAction `toml:"action" bson:"action" json:"action"`
	Threshold int          `toml:"threshold,omitempty" bson:"threshold,omitempty" json:"threshold,omitempty"`
	Duration  *TimeSpec    `toml:"duration,omitempty" bson:"duration,omitempty" json:"duration,omitempty"`
}

func NothingPolicy() EscalationPolicy {
	return EscalationPolicy{Action: ActionNothing}
}

func BanPolicy(threshold int) EscalationPolicy {
	return EscalationPolicy{Action: ActionBan, Threshold: threshold}
}

func KickPolicy(threshold int) EscalationPolicy {
	return EscalationPolicy{Action: ActionKick, Threshold: threshold}
}

func TimeoutPolicy(threshold int, d TimeSpec) EscalationPolicy {
	return EscalationPolicy{Action: ActionTimeout, Threshold: threshold, Duration: &d}
}

var errEmptyTimeout = errors.New("timeout policy needs a non-empty duration")

// Validate checks the threshold range and the timeout duration
func (p EscalationPolicy) Validate() error {
	switch p.Action {
	case ActionNothing, "":
		return nil
	case ActionBan, ActionKick, ActionTimeout:
	default:
		return fmt.Errorf("unknown escalation action %q", p.Action)
	}

	if p.Threshold < 1 || p.Threshold > MaxPolicyThreshold {
		return fmt.Errorf("threshold must be between 1 and %d, got %d", MaxPolicyThreshold, p.Threshold)
	}

	if p.Action == ActionTimeout {
		if p.Duration == nil || p.Duration.IsEmpty() {
			return errEmptyTimeout
		}
		if err := p.Duration.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TimeoutDuration returns the configured duration, empty when unset
func (p EscalationPolicy) TimeoutDuration() TimeSpec {
	if p.Duration == nil {
		return TimeSpec{}
	}
	return *p.Duration
}

// Clone returns a deep copy of the policy
func (p EscalationPolicy) Clone() EscalationPolicy {
	out := p
	if p.Duration != nil {
		d := p.Duration.Clone()
		out.Duration = &d
	}
	return out
}

func (p EscalationPolicy) String() string {
	switch p.Action {
	case ActionBan:
		return fmt.Sprintf("ban al llegar a %d advertencias", p.Threshold)
	case ActionKick:
		return fmt.Sprintf("kick al llegar a %d advertencias", p.Threshold)
	case ActionTimeout:
		return fmt.Sprintf("timeout de %s al llegar a %d advertencias", p.TimeoutDuration(), p.Threshold)
	default:
		return "ninguna acción"
	}
}

// ChannelRef identifies the channel moderation events are logged to
type ChannelRef struct {
	ID   string `toml:"id" bson:"id" json:"id"`
	Name string `toml:"name,omitempty" bson:"name,omitempty" json:"name,omitempty"`
}

// GuildSettings holds the per-guild moderation configuration
type GuildSettings struct {
	EscalationPolicy     EscalationPolicy `toml:"escalationPolicy" bson:"escalationPolicy" json:"escalationPolicy"`
	LogChannel           *ChannelRef      `toml:"logChannel,omitempty" bson:"logChannel,omitempty" json:"logChannel,omitempty"`
	ResponseCharLimit    *int             `toml:"responseCharLimit,omitempty" bson:"responseCharLimit,omitempty" json:"responseCharLimit,omitempty"`
	ExtraRestrictedTerms []string         `toml:"extraRestrictedTerms" bson:"extraRestrictedTerms" json:"extraRestrictedTerms"`
}

// DefaultGuildSettings returns the settings used for guilds with no record
func DefaultGuildSettings() GuildSettings {
	return GuildSettings{
		EscalationPolicy:     NothingPolicy(),
		ExtraRestrictedTerms: []string{},
	}
}

// Clone returns a deep copy of the settings
func (gs GuildSettings) Clone() GuildSettings {
	out := gs
	out.EscalationPolicy = gs.EscalationPolicy.Clone()
	if gs.LogChannel != nil {
		ch := *gs.LogChannel
		out.LogChannel = &ch
	}
	if gs.ResponseCharLimit != nil {
		n := *gs.ResponseCharLimit
		out.ResponseCharLimit = &n
	}
	out.ExtraRestrictedTerms = append([]string{}, gs.ExtraRestrictedTerms...)
	return out
}

// GuildSetting pairs a guild with its settings in the persisted document
type GuildSetting struct {
	GuildID  string        `toml:"guildId" bson:"guildId" json:"guildId"`
	Settings GuildSettings `toml:"settings" bson:"settings" json:"settings"`
}

// GuildSettingsDocument is the persisted settings document
type GuildSettingsDocument struct {
	Guilds []GuildSetting `toml:"guilds" bson:"guilds" json:"guilds"`
}
