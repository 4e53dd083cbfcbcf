// Package settings stores per-guild moderation settings, including the escalation policy.
package settings

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/PancyStudios/PancyWarden/pkg/logger"
	"github.com/PancyStudios/PancyWarden/pkg/models"
	"github.com/PancyStudios/PancyWarden/pkg/storage"
)

var (
	// ErrNotFound is returned when a restricted term is not in the guild's list
	ErrNotFound = errors.New("settings: not found")
	// ErrInvalidPolicy wraps the validation error of a rejected escalation policy
	ErrInvalidPolicy = errors.New("settings: invalid escalation policy")
	// ErrInvalidLimit is returned for a response character limit below 1
	ErrInvalidLimit = errors.New("settings: response character limit must be at least 1")
	// ErrEmptyTerm is returned for a restricted term that is blank after trimming
	ErrEmptyTerm = errors.New("settings: restricted term must not be empty")
)

// errUnchanged lets an update callback report that nothing needs saving
var errUnchanged = errors.New("settings: unchanged")

// Store is the settings document for all guilds, backed by a storage.Backend
type Store struct {
	mu      sync.Mutex
	backend storage.Backend
	path    string
	doc     models.GuildSettingsDocument
	index   map[string]int
}

// Open loads the settings document at path. A missing document starts empty.
func Open(backend storage.Backend, path string) (*Store, error) {
	s := &Store{
		backend: backend,
		path:    path,
	}

	err := backend.Load(path, &s.doc)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		logger.Warn(fmt.Sprintf("No existe el archivo de configuración en %s, se creará uno nuevo", path), "Settings")
		s.doc = models.GuildSettingsDocument{}
		if err := backend.Save(path, &s.doc); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	}

	s.index = make(map[string]int, len(s.doc.Guilds))
	for i, g := range s.doc.Guilds {
		s.index[g.GuildID] = i
	}
	return s, nil
}

// GetOrDefault returns a copy of the guild's settings, or the defaults when it has none.
// It never creates a record.
func (s *Store) GetOrDefault(guildID string) models.GuildSettings {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.index[guildID]; ok {
		return s.doc.Guilds[i].Settings.Clone()
	}
	return models.DefaultGuildSettings()
}

// Has reports whether the guild has a settings record
func (s *Store) Has(guildID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.index[guildID]
	return ok
}

// Guilds returns the IDs of every guild with a settings record
func (s *Store) Guilds() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]string, 0, len(s.doc.Guilds))
	for _, g := range s.doc.Guilds {
		out = append(out, g.GuildID)
	}
	return out
}

// update applies fn to the guild's settings, creating a default record first if needed,
// then persists the document. Any failure restores the previous in-memory state.
// A callback returning errUnchanged skips the save and leaves no new record behind.
func (s *Store) update(guildID string, fn func(gs *models.GuildSettings) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, existed := s.index[guildID]
	var before models.GuildSettings
	if existed {
		before = s.doc.Guilds[i].Settings.Clone()
	} else {
		s.doc.Guilds = append(s.doc.Guilds, models.GuildSetting{GuildID: guildID, Settings: models.DefaultGuildSettings()})
		i = len(s.doc.Guilds) - 1
		s.index[guildID] = i
	}

	rollback := func() {
		if existed {
			s.doc.Guilds[i].Settings = before
			return
		}
		s.doc.Guilds = s.doc.Guilds[:len(s.doc.Guilds)-1]
		delete(s.index, guildID)
	}

	if err := fn(&s.doc.Guilds[i].Settings); err != nil {
		rollback()
		if errors.Is(err, errUnchanged) {
			return nil
		}
		return err
	}
	if err := s.backend.Save(s.path, &s.doc); err != nil {
		rollback()
		return err
	}
	return nil
}

// SetEscalationPolicy replaces the guild's escalation policy
func (s *Store) SetEscalationPolicy(guildID string, policy models.EscalationPolicy) error {
	if err := policy.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPolicy, err)
	}
	if policy.Action == "" {
		policy.Action = models.ActionNothing
	}

	return s.update(guildID, func(gs *models.GuildSettings) error {
		gs.EscalationPolicy = policy.Clone()
		return nil
	})
}

// SetLogChannel sets the channel moderation events are posted to
func (s *Store) SetLogChannel(guildID string, ch models.ChannelRef) error {
	return s.update(guildID, func(gs *models.GuildSettings) error {
		gs.LogChannel = &ch
		return nil
	})
}

// ClearLogChannel removes the guild's log channel
func (s *Store) ClearLogChannel(guildID string) error {
	return s.update(guildID, func(gs *models.GuildSettings) error {
		gs.LogChannel = nil
		return nil
	})
}

// SetResponseCharLimit sets the maximum length of listing responses
func (s *Store) SetResponseCharLimit(guildID string, limit int) error {
	if limit < 1 {
		return ErrInvalidLimit
	}
	return s.update(guildID, func(gs *models.GuildSettings) error {
		gs.ResponseCharLimit = &limit
		return nil
	})
}

// AddRestrictedTerm adds a term to the guild's list. Terms are compared case-insensitively.
// It reports whether the term was new; a duplicate is not saved again.
func (s *Store) AddRestrictedTerm(guildID, term string) (bool, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return false, ErrEmptyTerm
	}

	added := false
	err := s.update(guildID, func(gs *models.GuildSettings) error {
		for _, t := range gs.ExtraRestrictedTerms {
			if strings.EqualFold(t, term) {
				return errUnchanged
			}
		}
		gs.ExtraRestrictedTerms = append(gs.ExtraRestrictedTerms, term)
		added = true
		return nil
	})
	return added, err
}

// RemoveRestrictedTerm removes a term from the guild's list, returning ErrNotFound if absent
func (s *Store) RemoveRestrictedTerm(guildID, term string) error {
	term = strings.TrimSpace(term)
	return s.update(guildID, func(gs *models.GuildSettings) error {
		for i, t := range gs.ExtraRestrictedTerms {
			if strings.EqualFold(t, term) {
				gs.ExtraRestrictedTerms = append(gs.ExtraRestrictedTerms[:i:i], gs.ExtraRestrictedTerms[i+1:]...)
				return nil
			}
		}
		return ErrNotFound
	})
}
