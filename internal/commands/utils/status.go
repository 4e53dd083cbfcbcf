package utils

import (
	"fmt"

	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/PancyStudios/PancyWarden/pkg/storage"
)

// createStatusCommand creates the /utils status subcommand
func createStatusCommand(deps Deps) *discord.Command {
	return discord.NewCommand(
		"status",
		"Muestra el estado del bot",
		"utils",
		func(ctx *discord.CommandContext) error {
			return ctx.Reply(statusText(deps, ctx.Client.GuildCount()))
		},
	)
}

func statusText(deps Deps, guilds int) string {
	broker := "⚪ | Deshabilitado"
	if deps.Broker != nil {
		broker = "🔴 | Desconectado"
		if deps.Broker.IsConnected() {
			broker = "🟢 | Conectado"
		}
	}

	storageStatus, _ := storage.Status(deps.Storage)

	return fmt.Sprintf(
		"📊 **Estado del Bot**\n"+
			"• Bot: 🟢 Online\n"+
			"• Almacenamiento: %s\n"+
			"• Eventos: %s\n"+
			"• Servidores: %d",
		storageStatus,
		broker,
		guilds,
	)
}
