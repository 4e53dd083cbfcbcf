package moderation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PancyStudios/PancyWarden/pkg/logger"
	"github.com/PancyStudios/PancyWarden/pkg/models"
	"github.com/PancyStudios/PancyWarden/pkg/settings"
	"github.com/PancyStudios/PancyWarden/pkg/warnings"
)

// DefaultResponseCharLimit caps listing responses for guilds without a configured limit.
// It matches the Discord message length limit.
const DefaultResponseCharLimit = 2000

// Engine runs the warning flow and the direct moderation actions.
// It holds no lock of its own; platform calls never happen inside a store lock.
type Engine struct {
	ledger    *warnings.Ledger
	settings  *settings.Store
	publisher Publisher
	now       func() time.Time
}

// NewEngine creates an Engine over the given stores
func NewEngine(ledger *warnings.Ledger, store *settings.Store) *Engine {
	return &Engine{
		ledger:   ledger,
		settings: store,
		now:      time.Now,
	}
}

// WithPublisher sets where moderation events are published
func (e *Engine) WithPublisher(p Publisher) *Engine {
	e.publisher = p
	return e
}

// WithClock replaces the time source used for timeout end times
func (e *Engine) WithClock(now func() time.Time) *Engine {
	e.now = now
	return e
}

// OnWarningIssued records the warning, applies the guild's escalation policy and
// returns the message for the moderator. The error is non-nil only when the warning
// could not be persisted; platform failures are reported in the message instead.
func (e *Engine) OnWarningIssued(ctx context.Context, inv Invoker, ev WarnEvent) (string, error) {
	t := ev.Target

	count, err := e.ledger.AddWarning(t.GuildID, t.UserID, ev.Reason, ev.Moderator)
	if err != nil {
		persistenceFailures.WithLabelValues("warnings").Inc()
		logger.Error(fmt.Sprintf("No se pudo guardar la advertencia de %s en %s: %v", t.UserID, t.GuildID, err), "Moderation")
		return fmt.Sprintf("❌ No se pudo guardar la advertencia de %s, no fue registrada.", t.Label()), err
	}
	warningsIssued.Inc()

	gs := e.settings.GetOrDefault(t.GuildID)
	decision := Decide(count, gs.EscalationPolicy, e.now())

	msg := fmt.Sprintf("⚠️ %s ha sido advertido.\n**Razón:** %s\n**Advertencias:** %d", t.Label(), ev.Reason, count)

	var outcome string
	switch decision.Action {
	case models.ActionBan:
		escalationsTriggered.WithLabelValues(string(models.ActionBan)).Inc()
		outcome = e.ban(ctx, inv, t, decision.Reason, 0, true)
	case models.ActionKick:
		escalationsTriggered.WithLabelValues(string(models.ActionKick)).Inc()
		outcome = e.kick(ctx, inv, t, decision.Reason, true)
	case models.ActionTimeout:
		escalationsTriggered.WithLabelValues(string(models.ActionTimeout)).Inc()
		outcome = e.suspend(ctx, inv, t, decision.Until, decision.Reason, true, true)
	}
	if outcome != "" {
		msg += "\n" + outcome
	}

	e.publish(TopicWarn, WarningIssued{
		GuildID:    t.GuildID,
		UserID:     t.UserID,
		Reason:     ev.Reason,
		Moderator:  ev.Moderator,
		Count:      count,
		Escalation: decision.Action,
		IssuedAt:   e.now().UTC(),
	})
	e.auditWith(ctx, inv, gs, msg)

	return msg, nil
}

// GetWarnings formats the user's warnings, truncated to the guild's response limit
func (e *Engine) GetWarnings(q GetWarningsQuery) string {
	t := q.Target
	warns, ok := e.ledger.GetWarnings(t.GuildID, t.UserID)
	if !ok || len(warns) == 0 {
		return fmt.Sprintf("✅ %s no tiene advertencias registradas.", t.Label())
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "🔖 **Advertencias de %s** (%d)\n", t.Label(), len(warns))
	for i, w := range warns {
		fmt.Fprintf(&sb, "> `%d.` %s · <t:%d:R> · ID `%s`\n", i+1, w.Reason, w.IssuedAt.Unix(), w.ID)
	}

	return truncate(strings.TrimRight(sb.String(), "\n"), e.responseLimit(t.GuildID))
}

// ClearWarnings removes every warning of the user. A user without record is not an error.
func (e *Engine) ClearWarnings(cmd ClearWarningsCommand) (string, error) {
	t := cmd.Target
	err := e.ledger.ClearWarnings(t.GuildID, t.UserID)
	switch {
	case errors.Is(err, warnings.ErrNotFound):
		return "ℹ️ No hay advertencias que eliminar.", nil
	case err != nil:
		persistenceFailures.WithLabelValues("warnings").Inc()
		logger.Error(fmt.Sprintf("No se pudieron borrar las advertencias de %s en %s: %v", t.UserID, t.GuildID, err), "Moderation")
		return "❌ No se pudieron eliminar las advertencias, inténtalo de nuevo más tarde.", err
	}
	return fmt.Sprintf("🧹 Se eliminaron todas las advertencias de %s.", t.Label()), nil
}

// RemoveWarning removes a single warning by ID
func (e *Engine) RemoveWarning(cmd RemoveWarningCommand) (string, error) {
	t := cmd.Target
	removed, err := e.ledger.RemoveWarning(t.GuildID, t.UserID, cmd.WarningID)
	switch {
	case errors.Is(err, warnings.ErrNotFound):
		return fmt.Sprintf("❌ %s no tiene advertencias.", t.Label()), nil
	case errors.Is(err, warnings.ErrWarningNotFound):
		return "❌ No se encontró una advertencia con ese ID.", nil
	case err != nil:
		persistenceFailures.WithLabelValues("warnings").Inc()
		logger.Error(fmt.Sprintf("No se pudo eliminar la advertencia %s: %v", cmd.WarningID, err), "Moderation")
		return "❌ No se pudo eliminar la advertencia, inténtalo de nuevo más tarde.", err
	}
	return fmt.Sprintf("✅ Advertencia de %s eliminada.\n**Razón original:** %s\n**ID:** `%s`", t.Label(), removed.Reason, removed.ID), nil
}

// WarningChoice is a warning offered in autocomplete lists
type WarningChoice struct {
	ID     string
	Reason string
}

// WarningChoices lists the user's warnings for autocomplete, newest last
func (e *Engine) WarningChoices(guildID, userID string) []WarningChoice {
	warns, _ := e.ledger.GetWarnings(guildID, userID)
	out := make([]WarningChoice, 0, len(warns))
	for _, w := range warns {
		out = append(out, WarningChoice{ID: w.ID, Reason: w.Reason})
	}
	return out
}

func (e *Engine) responseLimit(guildID string) int {
	if limit := e.settings.GetOrDefault(guildID).ResponseCharLimit; limit != nil && *limit > 0 {
		return *limit
	}
	return DefaultResponseCharLimit
}

func (e *Engine) publish(topic string, payload interface{}) {
	if e.publisher == nil {
		return
	}
	if err := e.publisher.Publish(topic, payload); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo publicar el evento en %s: %v", topic, err), "Moderation")
	}
}

func (e *Engine) audit(ctx context.Context, inv Invoker, guildID, msg string) {
	e.auditWith(ctx, inv, e.settings.GetOrDefault(guildID), msg)
}

func (e *Engine) auditWith(ctx context.Context, inv Invoker, gs models.GuildSettings, msg string) {
	al, ok := inv.(AuditLogger)
	if !ok || gs.LogChannel == nil {
		return
	}
	if err := al.SendAuditLog(ctx, gs.LogChannel.ID, msg); err != nil {
		logger.Warn(fmt.Sprintf("No se pudo enviar el registro al canal %s: %v", gs.LogChannel.ID, err), "Moderation")
	}
}

// truncate shortens s to at most limit runes, marking the cut with an ellipsis
func truncate(s string, limit int) string {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s
	}
	runes := []rune(s)
	if limit == 1 {
		return "…"
	}
	return string(runes[:limit-1]) + "…"
}
