package utils

import (
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/PancyStudios/PancyWarden/pkg/config"
	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/bwmarrin/discordgo"
)

// createStatsCommand creates the /utils stats subcommand
func createStatsCommand() *discord.Command {
	return discord.NewCommand(
		"stats",
		"Muestra estadísticas del bot",
		"utils",
		statsHandler,
	)
}

func statsHandler(ctx *discord.CommandContext) error {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	memberCount := 0
	ctx.Session.State.RLock()
	for _, guild := range ctx.Session.State.Guilds {
		memberCount += guild.MemberCount
	}
	ctx.Session.State.RUnlock()

	field := func(name, value string) *discordgo.MessageEmbedField {
		return &discordgo.MessageEmbedField{Name: name, Value: value, Inline: true}
	}

	embed := &discordgo.MessageEmbed{
		Title: "📊 Estadísticas del Bot",
		Color: 0x5865F2,
		Fields: []*discordgo.MessageEmbedField{
			field("🤖 Versión del Bot", config.Version),
			field("🐹 Versión de Go", strings.TrimPrefix(runtime.Version(), "go")),
			field("📚 Versión de DiscordGo", discordgo.VERSION),
			field("🖥 Uso de RAM", fmt.Sprintf("%.2f MB", float64(m.Alloc)/1024/1024)),
			field("⚙️ Goroutines", fmt.Sprintf("%d Goroutines / %d CPUs", runtime.NumGoroutine(), runtime.NumCPU())),
			field("⏱ Uptime", formatDuration(time.Since(ctx.Client.StartTime))),
			field("🏠 Guilds", fmt.Sprintf("%d", ctx.Client.GuildCount())),
			field("👥 Miembros", fmt.Sprintf("%d", memberCount)),
		},
		Footer: &discordgo.MessageEmbedFooter{
			Text: "🛡️ - PancyWarden",
		},
		Timestamp: time.Now().Format(time.RFC3339),
	}

	return ctx.ReplyEmbed(embed)
}

// formatDuration formats a time.Duration into a human-readable string
func formatDuration(dur time.Duration) string {
	days := int(dur.Hours() / 24)
	hours := int(dur.Hours()) % 24
	minutes := int(dur.Minutes()) % 60
	seconds := int(dur.Seconds()) % 60

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d días", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d horas", hours))
	}
	if minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d minutos", minutes))
	}
	if seconds > 0 {
		parts = append(parts, fmt.Sprintf("%d segundos", seconds))
	}

	if len(parts) == 0 {
		return "0 segundos"
	}
	return strings.Join(parts, ", ")
}
