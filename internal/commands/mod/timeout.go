package mod

import (
	"context"

	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/PancyStudios/PancyWarden/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createTimeoutCommand creates the /mod timeout subcommand
func createTimeoutCommand(engine *moderation.Engine) *discord.Command {
	opts := append([]*discordgo.ApplicationCommandOption{userOption("Usuario a aislar")}, discord.DurationOptions()...)

	return discord.NewCommand(
		"timeout",
		"Aísla a un usuario temporalmente",
		"mod",
		timeoutHandler(engine),
	).WithOptions(opts...).
		WithUserPermissions(discordgo.PermissionModerateMembers).
		WithBotPermissions(discordgo.PermissionModerateMembers)
}

func timeoutHandler(engine *moderation.Engine) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		user := ctx.GetUserOption("usuario")
		if user == nil {
			return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
		}

		duration := ctx.GetTimeSpec()
		if duration.IsEmpty() {
			return ctx.ReplyEphemeral("❌ Debes especificar una duración.")
		}
		target := ctx.Target(user)

		return ctx.RunDeferred("CMD-Timeout", false, func(pctx context.Context) string {
			msg, _ := engine.Timeout(pctx, ctx.Client.Invoker, target, duration, false)
			return msg
		})
	}
}
