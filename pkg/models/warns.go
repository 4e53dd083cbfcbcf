package models

import "time"

// Warning representa una advertencia individual registrada a un usuario
type Warning struct {
	ID        string    `toml:"id" bson:"id" json:"id"`
	Reason    string    `toml:"reason" bson:"reason" json:"reason"`
	Moderator string    `toml:"moderator,omitempty" bson:"moderator,omitempty" json:"moderator,omitempty"`
	IssuedAt  time.Time `toml:"issuedAt" bson:"issuedAt" json:"issuedAt"`
}

// UserWarnings holds every warning recorded for one user in one guild.
// WarningCount always equals len(Warnings); only the ledger mutates either.
type UserWarnings struct {
	UserID       string    `toml:"userId" bson:"userId" json:"userId"`
	Warnings     []Warning `toml:"warnings" bson:"warnings" json:"warnings"`
	WarningCount int       `toml:"warningCount" bson:"warningCount" json:"warningCount"`
}

// GuildWarnings groups the warning records of a single guild
type GuildWarnings struct {
	GuildID string         `toml:"guildId" bson:"guildId" json:"guildId"`
	Users   []UserWarnings `toml:"users" bson:"users" json:"users"`
}

// WarningLedger is the persisted document holding all guilds
type WarningLedger struct {
	Guilds []GuildWarnings `toml:"guilds" bson:"guilds" json:"guilds"`
}

// TotalWarnings returns the number of warnings recorded across all users of the guild
func (g GuildWarnings) TotalWarnings() int {
	total := 0
	for _, u := range g.Users {
		total += u.WarningCount
	}
	return total
}

// Clone returns a deep copy of the record
func (u UserWarnings) Clone() UserWarnings {
	out := u
	if u.Warnings != nil {
		out.Warnings = make([]Warning, len(u.Warnings))
		copy(out.Warnings, u.Warnings)
	}
	return out
}
