package mod

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/PancyStudios/PancyWarden/pkg/errors"
	"github.com/PancyStudios/PancyWarden/pkg/logger"
	"github.com/PancyStudios/PancyWarden/pkg/moderation"
	"github.com/bwmarrin/discordgo"
)

// createRemoveWarnCommand creates the /mod removewarn subcommand
func createRemoveWarnCommand(engine *moderation.Engine) *discord.Command {
	return discord.NewCommand(
		"removewarn",
		"Elimina una advertencia específica de un usuario",
		"mod",
		removeWarnHandler(engine),
	).WithOptions(
		userOption("Usuario del cual eliminar la advertencia"),
		&discordgo.ApplicationCommandOption{
			Type:         discordgo.ApplicationCommandOptionString,
			Name:         "id",
			Description:  "ID de la advertencia a eliminar",
			Required:     true,
			Autocomplete: true,
		},
	).WithUserPermissions(discordgo.PermissionModerateMembers).
		WithAutoComplete(removeWarnAutoComplete(engine))
}

func removeWarnHandler(engine *moderation.Engine) discord.CommandRunFunc {
	return func(ctx *discord.CommandContext) error {
		user := ctx.GetUserOption("usuario")
		if user == nil {
			return ctx.ReplyEphemeral("❌ Debes especificar un usuario válido.")
		}
		warnID := ctx.GetStringOption("id")
		if warnID == "" {
			return ctx.ReplyEphemeral("❌ Debes especificar el ID de la advertencia.")
		}

		cmd := moderation.RemoveWarningCommand{Target: ctx.Target(user), WarningID: warnID}
		return ctx.RunDeferred("CMD-RemoveWarn", false, func(context.Context) string {
			msg, _ := engine.RemoveWarning(cmd)
			return msg
		})
	}
}

// removeWarnAutoComplete offers the selected user's warnings
func removeWarnAutoComplete(engine *moderation.Engine) discord.AutoCompleteFunc {
	return func(ctx *discord.CommandContext) {
		go func() {
			defer errors.RecoverMiddleware()()

			userOpt := ctx.GetOption("usuario")
			if userOpt == nil {
				return
			}
			userID, _ := userOpt.Value.(string)

			typed := ""
			if focused := ctx.FocusedOption(); focused != nil {
				typed = focused.StringValue()
			}

			choices := warningChoices(engine.WarningChoices(ctx.Interaction.GuildID, userID), typed)
			if err := ctx.SendAutoCompleteChoices(choices); err != nil {
				logger.Error(fmt.Sprintf("Error enviando autocompletado: %v", err), "CMD-RemoveWarn")
			}
		}()
	}
}

// warningChoices builds autocomplete entries, keeping those whose ID or reason contains typed
func warningChoices(warns []moderation.WarningChoice, typed string) []*discordgo.ApplicationCommandOptionChoice {
	typed = strings.ToLower(typed)
	choices := make([]*discordgo.ApplicationCommandOptionChoice, 0, 25)

	for _, w := range warns {
		if len(choices) == 25 {
			break
		}
		if typed != "" && !strings.Contains(strings.ToLower(w.ID), typed) && !strings.Contains(strings.ToLower(w.Reason), typed) {
			continue
		}

		name := fmt.Sprintf("ID: %s - Razón: %s", w.ID, w.Reason)
		if utf8.RuneCountInString(name) > 100 {
			name = string([]rune(name)[:97]) + "..."
		}
		choices = append(choices, &discordgo.ApplicationCommandOptionChoice{Name: name, Value: w.ID})
	}
	return choices
}
