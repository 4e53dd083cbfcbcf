// Package discord provides the command handler for loading and registering commands.
package discord

import (
	"fmt"

	"github.com/PancyStudios/PancyWarden/pkg/logger"
	"github.com/bwmarrin/discordgo"
)

// commandAPI is the part of discordgo.Session used to manage application commands
type commandAPI interface {
	ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error
	ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
	User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error)
}

// CommandHandler manages command loading and registration
type CommandHandler struct {
	client           *ExtendedClient
	api              commandAPI
	appID            string
	slashCommands    []*discordgo.ApplicationCommand
	slashCommandsDev []*discordgo.ApplicationCommand
}

// NewCommandHandler creates a new CommandHandler
func NewCommandHandler(client *ExtendedClient) *CommandHandler {
	return &CommandHandler{
		client:           client,
		api:              client.Session,
		slashCommands:    make([]*discordgo.ApplicationCommand, 0),
		slashCommandsDev: make([]*discordgo.ApplicationCommand, 0),
	}
}

// RegisterCommand adds a top-level command to the handler
func (ch *CommandHandler) RegisterCommand(cmd *Command) {
	ch.client.Commands.Set(cmd.Name, cmd)

	appCmd := cmd.ToApplicationCommand()

	if cmd.IsDev {
		ch.slashCommandsDev = append(ch.slashCommandsDev, appCmd)
	} else {
		ch.slashCommands = append(ch.slashCommands, appCmd)
	}

	logger.Debug("Comando registrado: "+cmd.Name, "CommandHandler")
}

// BuildCommandGroup creates a command group with subcommands. The group is gated on the
// union of its subcommands' permissions; each subcommand is still checked on execution.
func (ch *CommandHandler) BuildCommandGroup(name, description string, subcommands ...*Command) *discordgo.ApplicationCommand {
	options := make([]*discordgo.ApplicationCommandOption, 0, len(subcommands))
	var perms int64

	for _, cmd := range subcommands {
		fullName := name + "." + cmd.Name
		ch.client.Commands.Set(fullName, cmd)
		perms |= cmd.UserPermissions

		options = append(options, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionSubCommand,
			Name:        cmd.Name,
			Description: cmd.Description,
			Options:     cmd.Options,
		})
		logger.Debug("Subcomando registrado: "+fullName, "CommandHandler")
	}

	group := &discordgo.ApplicationCommand{
		Name:        name,
		Description: description,
		Options:     options,
	}
	if perms != 0 {
		group.DefaultMemberPermissions = &perms
	}
	return group
}

// AddGlobalCommand adds a command to the global command list
func (ch *CommandHandler) AddGlobalCommand(cmd *discordgo.ApplicationCommand) {
	ch.slashCommands = append(ch.slashCommands, cmd)
}

// AddDevCommand adds a command to the dev command list
func (ch *CommandHandler) AddDevCommand(cmd *discordgo.ApplicationCommand) {
	ch.slashCommandsDev = append(ch.slashCommandsDev, cmd)
}

// GlobalCommands returns the commands that will be registered globally
func (ch *CommandHandler) GlobalCommands() []*discordgo.ApplicationCommand {
	return ch.slashCommands
}

// applicationID returns the bot's application ID, asking the API when the gateway is not open
func (ch *CommandHandler) applicationID() (string, error) {
	if ch.appID != "" {
		return ch.appID, nil
	}
	if s := ch.client.Session; s != nil && s.State != nil && s.State.User != nil {
		ch.appID = s.State.User.ID
		return ch.appID, nil
	}
	me, err := ch.api.User("@me")
	if err != nil {
		return "", fmt.Errorf("resolve application id: %w", err)
	}
	ch.appID = me.ID
	return ch.appID, nil
}

// RegisterCommands overwrites the registered slash commands with the loaded ones
func (ch *CommandHandler) RegisterCommands() {
	logger.Info("🔄 Registrando comandos globales...", "CommandHandler")

	if _, err := ch.SyncCommands(""); err != nil {
		logger.Error("Error registrando comandos globales: "+err.Error(), "CommandHandler")
	} else {
		logger.Success("✅ Comandos globales registrados.", "CommandHandler")
	}

	if ch.client.DevGuildID == "" || len(ch.slashCommandsDev) == 0 {
		return
	}

	logger.Info("🔄 Registrando comandos de desarrollo en el servidor "+ch.client.DevGuildID+"...", "CommandHandler")
	if _, err := ch.SyncCommands(ch.client.DevGuildID); err != nil {
		logger.Error("Error registrando comandos de desarrollo: "+err.Error(), "CommandHandler")
		return
	}
	logger.Success("✅ Comandos de desarrollo registrados.", "CommandHandler")
}

// SyncCommands replaces the commands of guildID (global when empty) with the loaded ones
func (ch *CommandHandler) SyncCommands(guildID string) ([]*discordgo.ApplicationCommand, error) {
	appID, err := ch.applicationID()
	if err != nil {
		return nil, err
	}

	cmds := ch.slashCommands
	if guildID != "" && guildID == ch.client.DevGuildID {
		cmds = append(append([]*discordgo.ApplicationCommand{}, ch.slashCommands...), ch.slashCommandsDev...)
	}
	return ch.api.ApplicationCommandBulkOverwrite(appID, guildID, cmds)
}

// ListGlobalCommands returns the commands registered globally on Discord
func (ch *CommandHandler) ListGlobalCommands() ([]*discordgo.ApplicationCommand, error) {
	return ch.ListGuildCommands("")
}

// ListGuildCommands returns the commands registered on Discord for guildID
func (ch *CommandHandler) ListGuildCommands(guildID string) ([]*discordgo.ApplicationCommand, error) {
	appID, err := ch.applicationID()
	if err != nil {
		return nil, err
	}
	return ch.api.ApplicationCommands(appID, guildID)
}

// UnregisterCommands removes all global commands from Discord
func (ch *CommandHandler) UnregisterCommands() error {
	return ch.UnregisterGuildCommands("")
}

// UnregisterGuildCommands removes every command registered for guildID.
// Failed deletions are logged and the rest are still attempted.
func (ch *CommandHandler) UnregisterGuildCommands(guildID string) error {
	appID, err := ch.applicationID()
	if err != nil {
		return err
	}

	commands, err := ch.api.ApplicationCommands(appID, guildID)
	if err != nil {
		return err
	}

	failed := 0
	for _, cmd := range commands {
		if err := ch.api.ApplicationCommandDelete(appID, guildID, cmd.ID); err != nil {
			failed++
			logger.Error("Error eliminando comando "+cmd.Name+": "+err.Error(), "CommandHandler")
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d commands could not be deleted", failed, len(commands))
	}

	logger.Success(fmt.Sprintf("%d comandos eliminados.", len(commands)), "CommandHandler")
	return nil
}
