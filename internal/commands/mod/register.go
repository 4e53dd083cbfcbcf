// Package mod provides moderation commands organized as subcommands under /mod.
// Each command is in its own file.
package mod

import (
	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/PancyStudios/PancyWarden/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// RegisterModCommands registers all moderation commands as /mod subcommands
func RegisterModCommands(client *discord.ExtendedClient, engine *moderation.Engine) {
	modGroup := client.CommandHandler.BuildCommandGroup(
		"mod",
		"Comandos de moderación",
		createWarnCommand(engine),
		createWarningsCommand(engine),
		createClearWarnsCommand(engine),
		createRemoveWarnCommand(engine),
		createBanCommand(engine),
		createKickCommand(engine),
		createTimeoutCommand(engine),
		createReleaseCommand(engine),
	)

	client.CommandHandler.AddGlobalCommand(modGroup)
}

func userOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "usuario",
		Description: description,
		Required:    true,
	}
}

func reasonOption(description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "razon",
		Description: description,
		Required:    required,
		MaxLength:   512,
	}
}

// reasonOrDefault returns the reason option, or a placeholder when it was left empty
func reasonOrDefault(ctx *discord.CommandContext) string {
	if reason := ctx.GetStringOption("razon"); reason != "" {
		return reason
	}
	return "Sin razón especificada"
}
