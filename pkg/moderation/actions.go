package moderation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/PancyStudios/PancyWarden/pkg/logger"
	"github.com/PancyStudios/PancyWarden/pkg/models"
)

// MaxDeleteHistoryDays is the largest message history a ban can delete
const MaxDeleteHistoryDays = 7

// ErrNoDuration is returned by Timeout when the duration has no components
var ErrNoDuration = errors.New("moderation: timeout needs a duration")

// Ban bans the user, deleting deleteHistoryDays of their messages
func (e *Engine) Ban(ctx context.Context, inv Invoker, t Target, reason string, deleteHistoryDays int) string {
	if deleteHistoryDays < 0 || deleteHistoryDays > MaxDeleteHistoryDays {
		return fmt.Sprintf("❌ Los días de mensajes a eliminar deben estar entre 0 y %d.", MaxDeleteHistoryDays)
	}
	msg := e.ban(ctx, inv, t, reason, deleteHistoryDays, false)
	e.audit(ctx, inv, t.GuildID, msg)
	return msg
}

// Kick removes the user from the guild
func (e *Engine) Kick(ctx context.Context, inv Invoker, t Target, reason string) string {
	msg := e.kick(ctx, inv, t, reason, false)
	e.audit(ctx, inv, t.GuildID, msg)
	return msg
}

// Timeout suspends the user for d. A silent timeout returns an empty message on success
// but always reports failures. An empty duration returns ErrNoDuration without calling the platform.
func (e *Engine) Timeout(ctx context.Context, inv Invoker, t Target, d models.TimeSpec, silent bool) (string, error) {
	if d.IsEmpty() {
		return "❌ Debes especificar una duración.", ErrNoDuration
	}
	if err := d.Validate(); err != nil {
		return fmt.Sprintf("❌ Duración inválida: %v", err), err
	}
	until, _ := d.EndTime(e.now())

	msg := e.suspend(ctx, inv, t, until, "", silent, false)
	if msg != "" {
		e.audit(ctx, inv, t.GuildID, msg)
	}
	return msg, nil
}

// Release lifts the user's suspension
func (e *Engine) Release(ctx context.Context, inv Invoker, t Target) string {
	err := inv.ReleaseSuspension(ctx, t.GuildID, t.UserID)
	e.recordAction(t, "release", "", nil, false, err)

	var msg string
	if err != nil {
		msg = fmt.Sprintf("❌ Error al quitar el aislamiento de %s: %v", t.Label(), err)
	} else {
		msg = fmt.Sprintf("🔊 Se quitó el aislamiento de %s.", t.Label())
	}
	e.audit(ctx, inv, t.GuildID, msg)
	return msg
}

func (e *Engine) ban(ctx context.Context, inv Invoker, t Target, reason string, days int, automatic bool) string {
	err := inv.Ban(ctx, t.GuildID, t.UserID, reason, days)
	e.recordAction(t, "ban", reason, nil, automatic, err)
	if err != nil {
		return fmt.Sprintf("❌ Error al banear a %s: %v", t.Label(), err)
	}
	return fmt.Sprintf("🔨 %s ha sido baneado.\n**Razón:** %s", t.Label(), reason)
}

func (e *Engine) kick(ctx context.Context, inv Invoker, t Target, reason string, automatic bool) string {
	err := inv.Kick(ctx, t.GuildID, t.UserID, reason)
	e.recordAction(t, "kick", reason, nil, automatic, err)
	if err != nil {
		return fmt.Sprintf("❌ Error al expulsar a %s: %v", t.Label(), err)
	}
	return fmt.Sprintf("👢 %s ha sido expulsado.\n**Razón:** %s", t.Label(), reason)
}

func (e *Engine) suspend(ctx context.Context, inv Invoker, t Target, until time.Time, reason string, silent, automatic bool) string {
	err := inv.SuspendUntil(ctx, t.GuildID, t.UserID, until)
	e.recordAction(t, "timeout", reason, &until, automatic, err)
	if err != nil {
		return fmt.Sprintf("❌ Error al aislar a %s: %v", t.Label(), err)
	}
	if silent {
		return ""
	}
	return fmt.Sprintf("🔇 %s ha sido aislado hasta <t:%d:F>.", t.Label(), until.Unix())
}

// recordAction logs, counts and publishes the result of a platform call
func (e *Engine) recordAction(t Target, action, reason string, until *time.Time, automatic bool, err error) {
	ev := ActionTaken{
		GuildID:   t.GuildID,
		UserID:    t.UserID,
		Action:    action,
		Reason:    reason,
		Automatic: automatic,
		Until:     until,
		At:        e.now().UTC(),
	}

	if err != nil {
		platformActionFailures.WithLabelValues(action).Inc()
		logger.Error(fmt.Sprintf("Fallo la acción %s sobre %s en %s: %v", action, t.UserID, t.GuildID, err), "Moderation")
		ev.Error = err.Error()
	} else {
		logger.Info(fmt.Sprintf("Acción %s aplicada a %s en %s", action, t.UserID, t.GuildID), "Moderation")
	}

	e.publish(TopicAction, ev)
}
