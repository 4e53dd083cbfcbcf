// Package main is the entry point for PancyWarden.
// The root command runs the bot; info and commands are maintenance tools.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pancywarden",
	Short: "Bot de moderación para Discord",
	Long: `PancyWarden registra advertencias por servidor y aplica la política de
escalado configurada (baneo, expulsión o aislamiento) cuando se alcanza el límite.

Sin subcomando se comporta igual que "pancywarden run".`,
	SilenceUsage: true,
	RunE:         runBot,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Inicia el bot, la API web y el publicador MQTT",
	RunE:  runBot,
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(commandsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
