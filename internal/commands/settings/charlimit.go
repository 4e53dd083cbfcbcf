package settings

import (
	"context"

	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/PancyStudios/PancyWarden/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createCharLimitCommand creates the /settings charlimit subcommand
func createCharLimitCommand(engine *moderation.Engine) *discord.Command {
	minLimit := 1.0
	return discord.NewCommand(
		"charlimit",
		"Límite de caracteres de las respuestas con listas",
		"settings",
		func(ctx *discord.CommandContext) error {
			limit := int(ctx.GetIntOption("limit"))
			guildID := ctx.Interaction.GuildID

			return ctx.RunDeferred("CMD-CharLimit", true, func(context.Context) string {
				msg, _ := engine.SetResponseCharLimit(guildID, limit)
				return msg
			})
		},
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "limit",
			Description: "Cantidad máxima de caracteres",
			Required:    true,
			MinValue:    &minLimit,
			MaxValue:    moderation.DefaultResponseCharLimit,
		},
	).WithUserPermissions(discordgo.PermissionManageGuild)
}
