package mod

import (
	"context"

	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/PancyStudios/PancyWarden/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createBanCommand creates the /mod ban subcommand
func createBanCommand(engine *moderation.Engine) *discord.Command {
	minDays := 0.0
	return discord.NewCommand(
		"ban",
		"Banea a un usuario del servidor",
		"mod",
		banHandler(engine),
	).WithOptions(
		userOption("Usuario a banear"),
		reasonOption("Razón del ban", false),
		&discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "dias",
			Description: "Días de mensajes a eliminar (0-7)",
			Required:    false,
			MinValue:    &minDays,
			MaxValue:    moderation.MaxDeleteHistoryDays,
		},
	).WithUserPermissions(discordgo.PermissionBanMembers).
		WithBotPermissions(discordgo.PermissionBanMembers)
}

func banHandler(engine *moderation.Engine) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		user := ctx.GetUserOption("usuario")
		if user == nil {
			return ctx.ReplyEphemeral("❌ Debes especificar un usuario.")
		}

		target := ctx.Target(user)
		reason := reasonOrDefault(ctx)
		days := int(ctx.GetIntOption("dias"))

		return ctx.RunDeferred("CMD-Ban", false, func(pctx context.Context) string {
			return engine.Ban(pctx, ctx.Client.Invoker, target, reason, days)
		})
	}
}
