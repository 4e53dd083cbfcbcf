package moderation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/PancyStudios/PancyWarden/pkg/logger"
	"github.com/PancyStudios/PancyWarden/pkg/models"
	"github.com/PancyStudios/PancyWarden/pkg/settings"
)

const saveFailedMsg = "❌ No se pudo guardar la configuración, inténtalo de nuevo más tarde."

func (e *Engine) settingsFailed(guildID, what string, err error) string {
	persistenceFailures.WithLabelValues("settings").Inc()
	logger.Error(fmt.Sprintf("No se pudo guardar %s para %s: %v", what, guildID, err), "Moderation")
	return saveFailedMsg
}

// SetEscalationPolicy replaces the guild's policy
func (e *Engine) SetEscalationPolicy(cmd SetEscalationPolicyCommand) (string, error) {
	if verr := cmd.Policy.Validate(); verr != nil {
		return fmt.Sprintf("❌ Política inválida: %v", verr), fmt.Errorf("%w: %v", settings.ErrInvalidPolicy, verr)
	}
	if err := e.settings.SetEscalationPolicy(cmd.GuildID, cmd.Policy); err != nil {
		return e.settingsFailed(cmd.GuildID, "la política de advertencias", err), err
	}
	return fmt.Sprintf("✅ Política de advertencias actualizada: %s.", cmd.Policy), nil
}

// SetLogChannel sets the channel moderation events are posted to
func (e *Engine) SetLogChannel(guildID string, ch models.ChannelRef) (string, error) {
	if err := e.settings.SetLogChannel(guildID, ch); err != nil {
		return e.settingsFailed(guildID, "el canal de registros", err), err
	}
	return fmt.Sprintf("✅ Los registros de moderación se enviarán a <#%s>.", ch.ID), nil
}

// ClearLogChannel stops posting moderation events for the guild
func (e *Engine) ClearLogChannel(guildID string) (string, error) {
	if err := e.settings.ClearLogChannel(guildID); err != nil {
		return e.settingsFailed(guildID, "el canal de registros", err), err
	}
	return "✅ Canal de registros eliminado.", nil
}

// SetResponseCharLimit sets the maximum length of listing responses
func (e *Engine) SetResponseCharLimit(guildID string, limit int) (string, error) {
	err := e.settings.SetResponseCharLimit(guildID, limit)
	switch {
	case errors.Is(err, settings.ErrInvalidLimit):
		return "❌ El límite debe ser al menos 1 caracter.", err
	case err != nil:
		return e.settingsFailed(guildID, "el límite de caracteres", err), err
	}
	return fmt.Sprintf("✅ Límite de caracteres establecido en %d.", limit), nil
}

// AddRestrictedTerm adds a term to the guild's restricted list
func (e *Engine) AddRestrictedTerm(guildID, term string) (string, error) {
	added, err := e.settings.AddRestrictedTerm(guildID, term)
	switch {
	case errors.Is(err, settings.ErrEmptyTerm):
		return "❌ Debes especificar un término.", nil
	case err != nil:
		return e.settingsFailed(guildID, "los términos restringidos", err), err
	}
	if !added {
		return fmt.Sprintf("ℹ️ `%s` ya estaba en la lista.", term), nil
	}
	return fmt.Sprintf("✅ `%s` agregado a los términos restringidos.", term), nil
}

// RemoveRestrictedTerm removes a term from the guild's restricted list
func (e *Engine) RemoveRestrictedTerm(guildID, term string) (string, error) {
	err := e.settings.RemoveRestrictedTerm(guildID, term)
	switch {
	case errors.Is(err, settings.ErrNotFound):
		return fmt.Sprintf("❌ `%s` no está en la lista.", term), nil
	case err != nil:
		return e.settingsFailed(guildID, "los términos restringidos", err), err
	}
	return fmt.Sprintf("✅ `%s` eliminado de los términos restringidos.", term), nil
}

// DescribeSettings summarizes the guild's current settings
func (e *Engine) DescribeSettings(guildID string) string {
	gs := e.settings.GetOrDefault(guildID)

	logChannel := "Ninguno"
	if gs.LogChannel != nil {
		logChannel = fmt.Sprintf("<#%s>", gs.LogChannel.ID)
	}
	limit := fmt.Sprintf("%d (predeterminado)", DefaultResponseCharLimit)
	if gs.ResponseCharLimit != nil {
		limit = fmt.Sprintf("%d", *gs.ResponseCharLimit)
	}
	terms := "Ninguno"
	if len(gs.ExtraRestrictedTerms) > 0 {
		terms = "`" + strings.Join(gs.ExtraRestrictedTerms, "`, `") + "`"
	}

	return fmt.Sprintf(
		"⚙️ **Configuración del servidor**\n"+
			"• Política de advertencias: %s\n"+
			"• Canal de registros: %s\n"+
			"• Límite de caracteres: %s\n"+
			"• Términos restringidos: %s",
		gs.EscalationPolicy, logChannel, limit, terms,
	)
}
