package mod

import (
	"context"

	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/PancyStudios/PancyWarden/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createWarningsCommand creates the /mod warnings subcommand
func createWarningsCommand(engine *moderation.Engine) *discord.Command {
	return discord.NewCommand(
		"warnings",
		"Lista de advertencias de un usuario",
		"mod",
		warningsHandler(engine),
	).WithOptions(
		userOption("Usuario a consultar"),
	).WithUserPermissions(discordgo.PermissionModerateMembers)
}

func warningsHandler(engine *moderation.Engine) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		user := ctx.GetUserOption("usuario")
		if user == nil {
			return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
		}

		q := moderation.GetWarningsQuery{Target: ctx.Target(user)}
		return ctx.RunDeferred("CMD-Warnings", true, func(context.Context) string {
			return engine.GetWarnings(q)
		})
	}
}
