package mod

import (
	"context"

	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/PancyStudios/PancyWarden/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createKickCommand creates the /mod kick subcommand
func createKickCommand(engine *moderation.Engine) *discord.Command {
	return discord.NewCommand(
		"kick",
		"Expulsa a un usuario del servidor",
		"mod",
		kickHandler(engine),
	).WithOptions(
		userOption("Usuario a expulsar"),
		reasonOption("Razón de la expulsión", false),
	).WithUserPermissions(discordgo.PermissionKickMembers).
		WithBotPermissions(discordgo.PermissionKickMembers)
}

func kickHandler(engine *moderation.Engine) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		user := ctx.GetUserOption("usuario")
		if user == nil {
			return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
		}

		target := ctx.Target(user)
		reason := reasonOrDefault(ctx)

		return ctx.RunDeferred("CMD-Kick", false, func(pctx context.Context) string {
			return engine.Kick(pctx, ctx.Client.Invoker, target, reason)
		})
	}
}
