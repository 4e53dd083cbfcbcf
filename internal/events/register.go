// Package events provides a registry for organizing bot events
package events

import (
	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/PancyStudios/PancyWarden/pkg/logger"
)

// RegisterAll registers all events with the Discord client
func RegisterAll(client *discord.ExtendedClient) {
	logger.System("📋 Registrando eventos del bot...", "Events")

	RegisterReadyEvent(client)
	RegisterGuildEvents(client)

	logger.Success("✅ Todos los eventos registrados correctamente", "Events")
}
