package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/PancyStudios/PancyWarden/pkg/config"
	"github.com/PancyStudios/PancyWarden/pkg/logger"
	"github.com/PancyStudios/PancyWarden/pkg/warnings"
	"github.com/spf13/cobra"
)

var (
	infoGuildID string
	infoUserID  string
)

var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Consulta los documentos guardados sin iniciar el bot",
}

var infoGuildsCmd = &cobra.Command{
	Use:   "guilds",
	Short: "Lista los servidores con advertencias o configuración",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStores(cmd, func(st *stores) error {
			printGuilds(cmd.OutOrStdout(), st)
			return nil
		})
	},
}

var infoWarningsCmd = &cobra.Command{
	Use:   "warnings",
	Short: "Muestra las advertencias de un usuario",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withStores(cmd, func(st *stores) error {
			printWarnings(cmd.OutOrStdout(), st, infoGuildID, infoUserID)
			return nil
		})
	},
}

func init() {
	infoWarningsCmd.Flags().StringVar(&infoGuildID, "guild", "", "ID del servidor (requerido)")
	infoWarningsCmd.Flags().StringVar(&infoUserID, "user", "", "ID del usuario (requerido)")
	_ = infoWarningsCmd.MarkFlagRequired("guild")
	_ = infoWarningsCmd.MarkFlagRequired("user")

	infoCmd.AddCommand(infoGuildsCmd)
	infoCmd.AddCommand(infoWarningsCmd)
}

func withStores(cmd *cobra.Command, fn func(st *stores) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	st, err := openStores(cmd.Context(), cfg)
	if err != nil {
		return err
	}
	defer st.close()

	return fn(st)
}

// guildRow is one line of "info guilds"
type guildRow struct {
	GuildID    string
	Users      int
	Warnings   int
	Configured bool
}

// guildRows merges the guilds of both documents, sorted by ID
func guildRows(summaries []warnings.GuildSummary, configured []string) []guildRow {
	byID := make(map[string]*guildRow, len(summaries)+len(configured))
	for _, s := range summaries {
		byID[s.GuildID] = &guildRow{GuildID: s.GuildID, Users: s.Users, Warnings: s.Warnings}
	}
	for _, id := range configured {
		row, ok := byID[id]
		if !ok {
			row = &guildRow{GuildID: id}
			byID[id] = row
		}
		row.Configured = true
	}

	rows := make([]guildRow, 0, len(byID))
	for _, row := range byID {
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].GuildID < rows[j].GuildID })
	return rows
}

func printGuilds(w io.Writer, st *stores) {
	rows := guildRows(st.ledger.Guilds(), st.settings.Guilds())
	if len(rows) == 0 {
		fmt.Fprintln(w, "No hay servidores registrados.")
		return
	}

	for _, r := range rows {
		configured := "no"
		if r.Configured {
			configured = "sí"
		}
		fmt.Fprintf(w, "%s\tusuarios: %d\tadvertencias: %d\tconfigurado: %s\n", r.GuildID, r.Users, r.Warnings, configured)
	}
}

func printWarnings(w io.Writer, st *stores, guildID, userID string) {
	warns, ok := st.ledger.GetWarnings(guildID, userID)
	if !ok || len(warns) == 0 {
		fmt.Fprintf(w, "El usuario %s no tiene advertencias en %s.\n", userID, guildID)
		return
	}

	fmt.Fprintf(w, "Advertencias de %s en %s (%d):\n", userID, guildID, len(warns))
	for i, warn := range warns {
		moderator := warn.Moderator
		if moderator == "" {
			moderator = "desconocido"
		}
		fmt.Fprintf(w, "  %d. [%s] %s (moderador: %s, %s)\n", i+1, warn.ID, warn.Reason, moderator, warn.IssuedAt.Format("2006-01-02 15:04"))
	}
}
