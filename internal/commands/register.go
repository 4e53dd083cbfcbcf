// Package commands provides a registry for organizing bot commands.
// Commands are organized in subdirectories by category (mod, settings, utils).
package commands

import (
	"github.com/PancyStudios/PancyWarden/internal/commands/mod"
	"github.com/PancyStudios/PancyWarden/internal/commands/settings"
	"github.com/PancyStudios/PancyWarden/internal/commands/utils"
	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/PancyStudios/PancyWarden/pkg/moderation"
)

// RegisterAll registers all commands with the Discord client
func RegisterAll(client *discord.ExtendedClient, engine *moderation.Engine, deps utils.Deps) {
	// /mod warn, /mod ban, /mod timeout, ...
	mod.RegisterModCommands(client, engine)

	// /settings warnpolicy, /settings setlog, ...
	settings.RegisterSettingsCommands(client, engine)

	// /utils ping, /utils status, ...
	utils.RegisterUtilsCommands(client, deps)
}
