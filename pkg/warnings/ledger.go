// Package warnings keeps the per-guild, per-user warning ledger.
// Every mutation persists the whole ledger while holding the ledger lock.
package warnings

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/PancyStudios/PancyWarden/pkg/logger"
	"github.com/PancyStudios/PancyWarden/pkg/models"
	"github.com/PancyStudios/PancyWarden/pkg/storage"
	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when the user has no warning record in the guild
	ErrNotFound = errors.New("warnings: no warning record")
	// ErrWarningNotFound is returned when a warning ID does not exist in the record
	ErrWarningNotFound = errors.New("warnings: warning not found")
)

type userKey struct {
	guildID string
	userID  string
}

// Ledger is the in-memory warning ledger backed by a storage.Backend
type Ledger struct {
	mu      sync.Mutex
	backend storage.Backend
	path    string
	doc     models.WarningLedger
	guilds  map[string]int
	users   map[userKey]int
	now     func() time.Time
	newID   func() string
}

// Open loads the ledger at path. A missing document starts an empty ledger.
// A corrupt document is returned as an error and must abort startup.
func Open(backend storage.Backend, path string) (*Ledger, error) {
	l := &Ledger{
		backend: backend,
		path:    path,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}

	err := backend.Load(path, &l.doc)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		logger.Warn(fmt.Sprintf("No existe el registro de advertencias en %s, se creará uno nuevo", path), "Warnings")
		l.doc = models.WarningLedger{}
		if err := backend.Save(path, &l.doc); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	l.reindex()
	return l, nil
}

// WithClock replaces the time source used for IssuedAt
func (l *Ledger) WithClock(now func() time.Time) *Ledger {
	l.now = now
	return l
}

// reindex rebuilds the lookup maps and repairs counts that drifted from the warning lists
func (l *Ledger) reindex() {
	l.guilds = make(map[string]int, len(l.doc.Guilds))
	l.users = make(map[userKey]int)

	for gi := range l.doc.Guilds {
		g := &l.doc.Guilds[gi]
		l.guilds[g.GuildID] = gi
		for ui := range g.Users {
			u := &g.Users[ui]
			if u.WarningCount != len(u.Warnings) {
				logger.Warn(fmt.Sprintf("Contador de advertencias inconsistente para %s en %s (%d != %d), corrigiendo",
					u.UserID, g.GuildID, u.WarningCount, len(u.Warnings)), "Warnings")
				u.WarningCount = len(u.Warnings)
			}
			l.users[userKey{g.GuildID, u.UserID}] = ui
		}
	}
}

func (l *Ledger) record(guildID, userID string) *models.UserWarnings {
	gi, ok := l.guilds[guildID]
	if !ok {
		return nil
	}
	ui, ok := l.users[userKey{guildID, userID}]
	if !ok {
		return nil
	}
	return &l.doc.Guilds[gi].Users[ui]
}

// AddWarning records a warning and returns the user's new warning count.
// If the ledger cannot be persisted the warning is discarded and the error returned.
func (l *Ledger) AddWarning(guildID, userID, reason, moderator string) (int, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	gi, guildExisted := l.guilds[guildID]
	if !guildExisted {
		l.doc.Guilds = append(l.doc.Guilds, models.GuildWarnings{GuildID: guildID})
		gi = len(l.doc.Guilds) - 1
		l.guilds[guildID] = gi
	}

	key := userKey{guildID, userID}
	ui, userExisted := l.users[key]
	if !userExisted {
		l.doc.Guilds[gi].Users = append(l.doc.Guilds[gi].Users, models.UserWarnings{UserID: userID, Warnings: []models.Warning{}})
		ui = len(l.doc.Guilds[gi].Users) - 1
		l.users[key] = ui
	}

	rec := &l.doc.Guilds[gi].Users[ui]
	rec.Warnings = append(rec.Warnings, models.Warning{
		ID:        l.newID(),
		Reason:    reason,
		Moderator: moderator,
		IssuedAt:  l.now().UTC(),
	})
	rec.WarningCount++
	count := rec.WarningCount

	if err := l.backend.Save(l.path, &l.doc); err != nil {
		rec.Warnings = rec.Warnings[:len(rec.Warnings)-1]
		rec.WarningCount--
		if !userExisted {
			users := l.doc.Guilds[gi].Users
			l.doc.Guilds[gi].Users = users[:len(users)-1]
			delete(l.users, key)
		}
		if !guildExisted {
			l.doc.Guilds = l.doc.Guilds[:len(l.doc.Guilds)-1]
			delete(l.guilds, guildID)
		}
		return 0, err
	}

	return count, nil
}

// CountWarnings returns the user's warning count, 0 when there is no record
func (l *Ledger) CountWarnings(guildID, userID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()

	if rec := l.record(guildID, userID); rec != nil {
		return rec.WarningCount
	}
	return 0
}

// GetWarnings returns a copy of the user's warnings in issue order.
// ok is false when the user has no record; a cleared record returns an empty slice.
func (l *Ledger) GetWarnings(guildID, userID string) (warnings []models.Warning, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := l.record(guildID, userID)
	if rec == nil {
		return nil, false
	}
	return append([]models.Warning{}, rec.Warnings...), true
}

// ClearWarnings empties the user's record. It returns ErrNotFound when there is no record.
func (l *Ledger) ClearWarnings(guildID, userID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := l.record(guildID, userID)
	if rec == nil {
		return ErrNotFound
	}

	before := rec.Clone()
	rec.Warnings = []models.Warning{}
	rec.WarningCount = 0

	if err := l.backend.Save(l.path, &l.doc); err != nil {
		*rec = before
		return err
	}
	return nil
}

// RemoveWarning deletes a single warning by ID and returns it
func (l *Ledger) RemoveWarning(guildID, userID, warningID string) (models.Warning, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rec := l.record(guildID, userID)
	if rec == nil {
		return models.Warning{}, ErrNotFound
	}

	idx := -1
	for i, w := range rec.Warnings {
		if w.ID == warningID {
			idx = i
			break
		}
	}
	if idx < 0 {
		return models.Warning{}, ErrWarningNotFound
	}

	before := rec.Clone()
	removed := rec.Warnings[idx]
	rec.Warnings = append(rec.Warnings[:idx:idx], rec.Warnings[idx+1:]...)
	rec.WarningCount--

	if err := l.backend.Save(l.path, &l.doc); err != nil {
		*rec = before
		return models.Warning{}, err
	}
	return removed, nil
}

// GuildSummary is the per-guild overview returned by Guilds
type GuildSummary struct {
	GuildID  string `json:"guildId"`
	Users    int    `json:"users"`
	Warnings int    `json:"warnings"`
}

// Guilds summarizes every guild present in the ledger
func (l *Ledger) Guilds() []GuildSummary {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]GuildSummary, 0, len(l.doc.Guilds))
	for _, g := range l.doc.Guilds {
		out = append(out, GuildSummary{GuildID: g.GuildID, Users: len(g.Users), Warnings: g.TotalWarnings()})
	}
	return out
}
