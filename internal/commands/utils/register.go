// Package utils provides the /utils subcommands
package utils

import (
	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/PancyStudios/PancyWarden/pkg/storage"
)

// Broker reports the state of the event broker connection
type Broker interface {
	IsConnected() bool
}

// Deps are the services the utility commands report on. Broker may be nil.
type Deps struct {
	Storage storage.Backend
	Broker  Broker
}

// RegisterUtilsCommands registers all utility commands as /utils subcommands
func RegisterUtilsCommands(client *discord.ExtendedClient, deps Deps) {
	utilsGroup := client.CommandHandler.BuildCommandGroup(
		"utils",
		"Comandos de utilidad",
		createPingCommand(),
		createStatusCommand(deps),
		createHelpCommand(),
		createStatsCommand(),
	)

	client.CommandHandler.AddGlobalCommand(utilsGroup)
}
