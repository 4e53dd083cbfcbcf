package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/PancyStudios/PancyWarden/pkg/models"
	"github.com/PancyStudios/PancyWarden/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createWarnPolicyCommand creates the /settings warnpolicy subcommand
func createWarnPolicyCommand(engine *moderation.Engine) *discord.Command {
	minMax := 1.0
	opts := []*discordgo.ApplicationCommandOption{
		{
			Type:        discordgo.ApplicationCommandOptionString,
			Name:        "behavior",
			Description: "Acción al alcanzar el límite de advertencias",
			Required:    true,
			Choices: []*discordgo.ApplicationCommandOptionChoice{
				{Name: "Nada", Value: string(models.ActionNothing)},
				{Name: "Banear", Value: string(models.ActionBan)},
				{Name: "Expulsar", Value: string(models.ActionKick)},
				{Name: "Aislar", Value: string(models.ActionTimeout)},
			},
		},
		{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        "max",
			Description: "Cantidad de advertencias que activan la acción",
			MinValue:    &minMax,
			MaxValue:    models.MaxPolicyThreshold,
		},
	}
	opts = append(opts, discord.DurationOptions()...)

	return discord.NewCommand(
		"warnpolicy",
		"Define qué ocurre cuando un usuario acumula advertencias",
		"settings",
		func(ctx *discord.CommandContext) error {
			policy, err := policyFromArgs(ctx.GetStringOption("behavior"), ctx.GetIntOption("max"), ctx.GetTimeSpec())
			if err != nil {
				return ctx.ReplyEphemeral("❌ " + err.Error())
			}
			cmd := moderation.SetEscalationPolicyCommand{GuildID: ctx.Interaction.GuildID, Policy: policy}

			return ctx.RunDeferred("CMD-WarnPolicy", true, func(context.Context) string {
				msg, _ := engine.SetEscalationPolicy(cmd)
				return msg
			})
		},
	).WithOptions(opts...).
		WithUserPermissions(discordgo.PermissionManageGuild)
}

// policyFromArgs builds a policy from the command options. Every action other than
// nothing needs max; timeout also needs a duration.
func policyFromArgs(behavior string, max int64, duration models.TimeSpec) (models.EscalationPolicy, error) {
	action, err := models.ParsePolicyAction(behavior)
	if err != nil {
		return models.EscalationPolicy{}, fmt.Errorf("comportamiento desconocido: %s", behavior)
	}
	if action == models.ActionNothing {
		return models.NothingPolicy(), nil
	}
	if max < 1 || max > models.MaxPolicyThreshold {
		return models.EscalationPolicy{}, fmt.Errorf("debes indicar un máximo entre 1 y %d", models.MaxPolicyThreshold)
	}

	switch action {
	case models.ActionBan:
		return models.BanPolicy(int(max)), nil
	case models.ActionKick:
		return models.KickPolicy(int(max)), nil
	default:
		if duration.IsEmpty() {
			return models.EscalationPolicy{}, errors.New("el aislamiento necesita una duración")
		}
		return models.TimeoutPolicy(int(max), duration), nil
	}
}
