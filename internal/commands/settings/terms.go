package settings

import (
	"context"

	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/PancyStudios/PancyWarden/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

func termOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "term",
		Description: description,
		Required:    true,
		MaxLength:   100,
	}
}

// createAddTermCommand creates the /settings addterm subcommand
func createAddTermCommand(engine *moderation.Engine) *discord.Command {
	return discord.NewCommand(
		"addterm",
		"Agrega un término restringido",
		"settings",
		func(ctx *discord.CommandContext) error {
			term := ctx.GetStringOption("term")
			guildID := ctx.Interaction.GuildID
			return ctx.RunDeferred("CMD-AddTerm", true, func(context.Context) string {
				msg, _ := engine.AddRestrictedTerm(guildID, term)
				return msg
			})
		},
	).WithOptions(termOption("Término a restringir")).
		WithUserPermissions(discordgo.PermissionManageGuild)
}

// createRemoveTermCommand creates the /settings removeterm subcommand
func createRemoveTermCommand(engine *moderation.Engine) *discord.Command {
	return discord.NewCommand(
		"removeterm",
		"Quita un término restringido",
		"settings",
		func(ctx *discord.CommandContext) error {
			term := ctx.GetStringOption("term")
			guildID := ctx.Interaction.GuildID
			return ctx.RunDeferred("CMD-RemoveTerm", true, func(context.Context) string {
				msg, _ := engine.RemoveRestrictedTerm(guildID, term)
				return msg
			})
		},
	).WithOptions(termOption("Término a quitar")).
		WithUserPermissions(discordgo.PermissionManageGuild)
}
