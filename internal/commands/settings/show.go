package settings

import (
	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/PancyStudios/PancyWarden/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createShowCommand creates the /settings show subcommand
func createShowCommand(engine *moderation.Engine) *discord.Command {
	return discord.NewCommand(
		"show",
		"Muestra la configuración actual",
		"settings",
		func(ctx *discord.CommandContext) error {
			return ctx.ReplyEphemeral(engine.DescribeSettings(ctx.Interaction.GuildID))
		},
	).WithUserPermissions(discordgo.PermissionManageGuild)
}
