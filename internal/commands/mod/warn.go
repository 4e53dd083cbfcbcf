package mod

import (
	"context"

	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/PancyStudios/PancyWarden/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createWarnCommand creates the /mod warn subcommand
func createWarnCommand(engine *moderation.Engine) *discord.Command {
	return discord.NewCommand(
		"warn",
		"Advierte a un usuario",
		"mod",
		warnHandler(engine),
	).WithOptions(
		userOption("Usuario a advertir"),
		reasonOption("Razón de la advertencia", true),
	).WithUserPermissions(discordgo.PermissionModerateMembers)
}

func warnHandler(engine *moderation.Engine) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		user := ctx.GetUserOption("usuario")
		if user == nil {
			return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
		}
		if user.Bot {
			return ctx.ReplyEphemeral("❌ No puedes advertir a un bot.")
		}

		ev := moderation.WarnEvent{
			Target:    ctx.Target(user),
			Reason:    reasonOrDefault(ctx),
			Moderator: ctx.User().ID,
		}

		return ctx.RunDeferred("CMD-Warn", false, func(pctx context.Context) string {
			msg, _ := engine.OnWarningIssued(pctx, ctx.Client.Invoker, ev)
			return msg
		})
	}
}
