package main

import (
	"fmt"
	"io"

	"github.com/PancyStudios/PancyWarden/internal/commands"
	"github.com/PancyStudios/PancyWarden/internal/commands/utils"
	"github.com/PancyStudios/PancyWarden/pkg/config"
	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/PancyStudios/PancyWarden/pkg/logger"
	"github.com/PancyStudios/PancyWarden/pkg/moderation"
	"github.com/PancyStudios/PancyWarden/pkg/settings"
	"github.com/PancyStudios/PancyWarden/pkg/storage"
	"github.com/PancyStudios/PancyWarden/pkg/warnings"
	"github.com/bwmarrin/discordgo"
	"github.com/spf13/cobra"
)

var commandsGuildID string

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Administra los comandos de barra registrados en Discord",
}

var commandsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Lista los comandos registrados",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *discord.ExtendedClient) error {
			return listCommands(cmd.OutOrStdout(), client, commandsGuildID)
		})
	},
}

var commandsCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Elimina todos los comandos sin registrar nuevos",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *discord.ExtendedClient) error {
			return cleanCommands(client, commandsGuildID)
		})
	},
}

var commandsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Reemplaza los comandos registrados por los actuales",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *discord.ExtendedClient) error {
			return syncCommands(cmd.OutOrStdout(), client, commandsGuildID)
		})
	},
}

func init() {
	commandsCmd.PersistentFlags().StringVar(&commandsGuildID, "guild", "", "Servidor objetivo (vacío para comandos globales)")

	commandsCmd.AddCommand(commandsListCmd)
	commandsCmd.AddCommand(commandsCleanCmd)
	commandsCmd.AddCommand(commandsSyncCmd)
}

// withClient builds a client with every command definition registered. The gateway
// is never opened; only REST calls are made.
func withClient(fn func(client *discord.ExtendedClient) error) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	client, err := discord.NewClient(cfg.BotToken, cfg.DevGuildID)
	if err != nil {
		return err
	}

	engine, err := definitionEngine()
	if err != nil {
		return err
	}
	commands.RegisterAll(client, engine, utils.Deps{Storage: storage.NewMemoryBackend()})

	return fn(client)
}

// definitionEngine backs the command definitions. Its handlers never run.
func definitionEngine() (*moderation.Engine, error) {
	backend := storage.NewMemoryBackend()
	ledger, err := warnings.Open(backend, "warnings")
	if err != nil {
		return nil, err
	}
	store, err := settings.Open(backend, "guild_settings")
	if err != nil {
		return nil, err
	}
	return moderation.NewEngine(ledger, store), nil
}

func printCommands(w io.Writer, cmds []*discordgo.ApplicationCommand) {
	if len(cmds) == 0 {
		fmt.Fprintln(w, "No hay comandos registrados")
		return
	}

	fmt.Fprintf(w, "Comandos encontrados: %d\n", len(cmds))
	for i, cmd := range cmds {
		fmt.Fprintf(w, "  %d. /%s - %s (ID: %s)\n", i+1, cmd.Name, cmd.Description, cmd.ID)
		for _, opt := range cmd.Options {
			if opt.Type == discordgo.ApplicationCommandOptionSubCommand {
				fmt.Fprintf(w, "       /%s %s - %s\n", cmd.Name, opt.Name, opt.Description)
			}
		}
	}
}

func listCommands(w io.Writer, client *discord.ExtendedClient, guildID string) error {
	var cmds []*discordgo.ApplicationCommand
	var err error

	if guildID != "" {
		logger.Info(fmt.Sprintf("Obteniendo comandos del servidor: %s", guildID), "Commands")
		cmds, err = client.CommandHandler.ListGuildCommands(guildID)
	} else {
		logger.Info("Obteniendo comandos globales", "Commands")
		cmds, err = client.CommandHandler.ListGlobalCommands()
	}
	if err != nil {
		return fmt.Errorf("list commands: %w", err)
	}

	printCommands(w, cmds)
	return nil
}

func cleanCommands(client *discord.ExtendedClient, guildID string) error {
	var err error
	if guildID != "" {
		logger.Info(fmt.Sprintf("Eliminando comandos del servidor: %s", guildID), "Commands")
		err = client.CommandHandler.UnregisterGuildCommands(guildID)
	} else {
		logger.Info("Eliminando comandos globales", "Commands")
		err = client.CommandHandler.UnregisterCommands()
	}
	if err != nil {
		return err
	}

	logger.Success("Todos los comandos han sido eliminados", "Commands")
	return nil
}

func syncCommands(w io.Writer, client *discord.ExtendedClient, guildID string) error {
	logger.Info("Sincronizando comandos...", "Commands")

	cmds, err := client.CommandHandler.SyncCommands(guildID)
	if err != nil {
		return fmt.Errorf("sync commands: %w", err)
	}

	printCommands(w, cmds)
	logger.Success("Comandos sincronizados correctamente", "Commands")
	return nil
}
