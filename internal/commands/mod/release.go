package mod

import (
	"context"

	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/PancyStudios/PancyWarden/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createReleaseCommand creates the /mod release subcommand
func createReleaseCommand(engine *moderation.Engine) *discord.Command {
	return discord.NewCommand(
		"release",
		"Quita el aislamiento de un usuario",
		"mod",
		releaseHandler(engine),
	).WithOptions(
		userOption("Usuario a liberar"),
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithBotPermissions(discordgo.PermissionModerateMembers)
}

func releaseHandler(engine *moderation.Engine) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		user := ctx.GetUserOption("usuario")
		if user == nil {
			return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
		}
		target := ctx.Target(user)

		return ctx.RunDeferred("CMD-Release", false, func(pctx context.Context) string {
			return engine.Release(pctx, ctx.Client.Invoker, target)
		})
	}
}
