package mod

import (
	"context"

	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/PancyStudios/PancyWarden/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createClearWarnsCommand creates the /mod clearwarns subcommand
func createClearWarnsCommand(engine *moderation.Engine) *discord.Command {
	return discord.NewCommand(
		"clearwarns",
		"Elimina todas las advertencias de un usuario",
		"mod",
		clearWarnsHandler(engine),
	).WithOptions(
		userOption("Usuario a perdonar"),
	).WithUserPermissions(discordgo.PermissionModerateMembers)
}

func clearWarnsHandler(engine *moderation.Engine) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		user := ctx.GetUserOption("usuario")
		if user == nil {
			return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
		}

		cmd := moderation.ClearWarningsCommand{Target: ctx.Target(user)}
		return ctx.RunDeferred("CMD-ClearWarns", false, func(context.Context) string {
			msg, _ := engine.ClearWarnings(cmd)
			return msg
		})
	}
}
