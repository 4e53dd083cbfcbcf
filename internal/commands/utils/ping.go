package utils

import (
	"fmt"
	"time"

	"github.com/PancyStudios/PancyWarden/pkg/discord"
)

// createPingCommand creates the /utils ping subcommand
func createPingCommand() *discord.Command {
	return discord.NewCommand(
		"ping",
		"Comprueba la latencia del bot",
		"utils",
		func(ctx *discord.CommandContext) error {
			return ctx.Reply(pingText(ctx.Client.Latency()))
		},
	)
}

func pingText(latency time.Duration) string {
	icon := "🟢"
	switch {
	case latency > 500*time.Millisecond:
		icon = "🔴"
	case latency > 200*time.Millisecond:
		icon = "🟡"
	}
	return fmt.Sprintf("🏓 Pong! %s Latencia del gateway: %dms", icon, latency.Milliseconds())
}
