package settings

import (
	"context"

	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/PancyStudios/PancyWarden/pkg/models"
	"github.com/PancyStudios/PancyWarden/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createSetLogCommand creates the /settings setlog subcommand
func createSetLogCommand(engine *moderation.Engine) *discord.Command {
	return discord.NewCommand(
		"setlog",
		"Establece el canal de registros de moderación",
		"settings",
		func(ctx *discord.CommandContext) error {
			ch := ctx.GetChannelOption("channel")
			if ch == nil {
				return ctx.ReplyEphemeral("❌ Debes especificar un canal.")
			}
			ref := models.ChannelRef{ID: ch.ID, Name: ch.Name}
			guildID := ctx.Interaction.GuildID

			return ctx.RunDeferred("CMD-SetLog", true, func(context.Context) string {
				msg, _ := engine.SetLogChannel(guildID, ref)
				return msg
			})
		},
	).WithOptions(
		&discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionChannel,
			Name:         "channel",
			Description:  "Canal donde se publicarán los registros",
			Required:     true,
			ChannelTypes: []discordgo.ChannelType{discordgo.ChannelTypeGuildText},
		},
	).WithUserPermissions(discordgo.PermissionManageGuild)
}

// createRemoveLogCommand creates the /settings removelog subcommand
func createRemoveLogCommand(engine *moderation.Engine) *discord.Command {
	return discord.NewCommand(
		"removelog",
		"Deja de publicar registros de moderación",
		"settings",
		func(ctx *discord.CommandContext) error {
			guildID := ctx.Interaction.GuildID
			return ctx.RunDeferred("CMD-RemoveLog", true, func(context.Context) string {
				msg, _ := engine.ClearLogChannel(guildID)
				return msg
			})
		},
	).WithUserPermissions(discordgo.PermissionManageGuild)
}
