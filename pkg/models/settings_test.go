package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSpecEmpty(t *testing.T) {
	var ts TimeSpec
	assert.True(t, ts.IsEmpty())

	_, ok := ts.EndTime(time.Now())
	assert.False(t, ok, "empty duration must not produce an end time")

	assert.True(t, NewTimeSpec(0, 0, 0, 0).IsEmpty())
}

func TestTimeSpecEndTime(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ts   TimeSpec
		want time.Time
	}{
		{"minutes only", NewTimeSpec(0, 0, 10, 0), now.Add(10 * time.Minute)},
		{"days and seconds", NewTimeSpec(1, 0, 0, 30), now.Add(24*time.Hour + 30*time.Second)},
		{"all parts", NewTimeSpec(1, 2, 3, 4), now.Add(26*time.Hour + 3*time.Minute + 4*time.Second)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.ts.EndTime(now)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeSpecValidate(t *testing.T) {
	tests := []struct {
		name    string
		ts      TimeSpec
		wantErr string
	}{
		{"one hour", NewTimeSpec(0, 1, 0, 0), ""},
		{"exactly the cap", NewTimeSpec(28, 0, 0, 0), ""},
		{"cap in seconds", NewTimeSpec(0, 0, 0, 28*24*3600), ""},
		{"negative hours", NewTimeSpec(0, -1, 0, 0), "hours must not be negative"},
		{"days over the cap", NewTimeSpec(29, 0, 0, 0), "days must be at most 28"},
		{"overflowing days", NewTimeSpec(200000, 0, 0, 0), "days must be at most 28"},
		{"sum over the cap", NewTimeSpec(28, 0, 0, 1), "duration must not exceed 28 days"},
		{"first bad component wins", NewTimeSpec(0, -1, -1, -1), "hours must not be negative"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ts.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestTimeSpecValidateIsStable(t *testing.T) {
	ts := NewTimeSpec(-1, -1, -1, -1)
	for i := 0; i < 20; i++ {
		require.EqualError(t, ts.Validate(), "days must not be negative")
	}
}

func TestMaxComponent(t *testing.T) {
	assert.Equal(t, int64(28), MaxComponent(24*time.Hour))
	assert.Equal(t, int64(672), MaxComponent(time.Hour))
	assert.Equal(t, int64(40320), MaxComponent(time.Minute))
	assert.Equal(t, int64(2419200), MaxComponent(time.Second))
}

func TestTimeSpecClone(t *testing.T) {
	ts := NewTimeSpec(0, 0, 5, 0)
	c := ts.Clone()
	*c.Minutes = 9
	assert.Equal(t, int64(5), *ts.Minutes)
}

func TestTimeSpecString(t *testing.T) {
	assert.Equal(t, "1d 30m", NewTimeSpec(1, 0, 30, 0).String())
	assert.Equal(t, "sin duración", TimeSpec{}.String())
}

func TestParsePolicyAction(t *testing.T) {
	tests := []struct {
		in   string
		want PolicyAction
	}{
		{"Nothing", ActionNothing},
		{"BAN", ActionBan},
		{"kick", ActionKick},
		{" Timeout ", ActionTimeout},
	}
	for _, tt := range tests {
		got, err := ParsePolicyAction(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParsePolicyAction("mute")
	assert.Error(t, err)
}

func TestEscalationPolicyValidate(t *testing.T) {
	tests := []struct {
		name    string
		policy  EscalationPolicy
		wantErr bool
	}{
		{"nothing", NothingPolicy(), false},
		{"zero value", EscalationPolicy{}, false},
		{"ban", BanPolicy(3), false},
		{"kick at max", KickPolicy(MaxPolicyThreshold), false},
		{"ban zero threshold", BanPolicy(0), true},
		{"kick above max", KickPolicy(MaxPolicyThreshold + 1), true},
		{"timeout", TimeoutPolicy(2, NewTimeSpec(0, 0, 10, 0)), false},
		{"timeout empty", TimeoutPolicy(2, TimeSpec{}), true},
		{"timeout nil duration", EscalationPolicy{Action: ActionTimeout, Threshold: 2}, true},
		{"timeout negative", TimeoutPolicy(2, NewTimeSpec(0, 0, -1, 0)), true},
		{"timeout too long", TimeoutPolicy(1, NewTimeSpec(200000, 0, 0, 0)), true},
		{"unknown", EscalationPolicy{Action: "mute", Threshold: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.policy.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGuildSettingsClone(t *testing.T) {
	limit := 500
	gs := GuildSettings{
		EscalationPolicy:     TimeoutPolicy(2, NewTimeSpec(0, 1, 0, 0)),
		LogChannel:           &ChannelRef{ID: "1", Name: "mod-log"},
		ResponseCharLimit:    &limit,
		ExtraRestrictedTerms: []string{"foo"},
	}

	c := gs.Clone()
	c.LogChannel.Name = "changed"
	*c.ResponseCharLimit = 10
	*c.EscalationPolicy.Duration.Hours = 7
	c.ExtraRestrictedTerms[0] = "bar"

	assert.Equal(t, "mod-log", gs.LogChannel.Name)
	assert.Equal(t, 500, *gs.ResponseCharLimit)
	assert.Equal(t, int64(1), *gs.EscalationPolicy.Duration.Hours)
	assert.Equal(t, "foo", gs.ExtraRestrictedTerms[0])
}

func TestDefaultGuildSettings(t *testing.T) {
	gs := DefaultGuildSettings()
	assert.Equal(t, ActionNothing, gs.EscalationPolicy.Action)
	assert.Nil(t, gs.LogChannel)
	assert.Nil(t, gs.ResponseCharLimit)
	assert.Empty(t, gs.ExtraRestrictedTerms)
}
