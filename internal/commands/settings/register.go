// Package settings provides the /settings subcommands that configure moderation per guild
package settings

import (
	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/PancyStudios/PancyWarden/pkg/moderation"
)

// RegisterSettingsCommands registers all settings commands as /settings subcommands
func RegisterSettingsCommands(client *discord.ExtendedClient, engine *moderation.Engine) {
	group := client.CommandHandler.BuildCommandGroup(
		"settings",
		"Configuración de moderación del servidor",
		createSetLogCommand(engine),
		createRemoveLogCommand(engine),
		createWarnPolicyCommand(engine),
		createCharLimitCommand(engine),
		createAddTermCommand(engine),
		createRemoveTermCommand(engine),
		createShowCommand(engine),
	)

	client.CommandHandler.AddGlobalCommand(group)
}
