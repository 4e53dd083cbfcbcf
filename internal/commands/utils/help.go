package utils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/PancyStudios/PancyWarden/pkg/discord"
)

// createHelpCommand creates the /utils help subcommand
func createHelpCommand() *discord.Command {
	return discord.NewCommand(
		"help",
		"Muestra información de ayuda",
		"utils",
		func(ctx *discord.CommandContext) error {
			return ctx.ReplyEphemeral(helpText(ctx.Client.Commands.All()))
		},
	)
}

// helpText lists every loaded command as "/group sub" grouped by category
func helpText(cmds map[string]*discord.Command) string {
	names := make([]string, 0, len(cmds))
	for name, cmd := range cmds {
		if cmd.IsDev {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString("📖 **Ayuda de PancyWarden**\n")

	category := ""
	for _, name := range names {
		cmd := cmds[name]
		if cmd.Category != category {
			category = cmd.Category
			fmt.Fprintf(&sb, "\n**%s**\n", category)
		}
		fmt.Fprintf(&sb, "• `/%s` - %s\n", strings.ReplaceAll(name, ".", " "), cmd.Description)
	}
	return strings.TrimRight(sb.String(), "\n")
}
