package discord

import (
	"errors"
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSendAutoCompleteChoicesExists verifies the autocomplete reply signature (compile-time check)
func TestSendAutoCompleteChoicesExists(t *testing.T) {
	type sendChoicesFunc func(*CommandContext, []*discordgo.ApplicationCommandOptionChoice) error

	var _ sendChoicesFunc = (*CommandContext).SendAutoCompleteChoices
}

// TestCommandCreation verifies that commands can be created with the builder pattern
func TestCommandCreation(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	cmd := NewCommand("test", "Test command", "test", handler)

	if cmd == nil {
		t.Fatal("NewCommand returned nil")
	}

	if cmd.Name != "test" {
		t.Errorf("Name = %v, want %v", cmd.Name, "test")
	}

	if cmd.Description != "Test command" {
		t.Errorf("Description = %v, want %v", cmd.Description, "Test command")
	}

	if cmd.Category != "test" {
		t.Errorf("Category = %v, want %v", cmd.Category, "test")
	}

	if cmd.Run == nil {
		t.Error("Run function is nil")
	}
}

// TestCommandWithOptions verifies the WithOptions builder method
func TestCommandWithOptions(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	option := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "test-option",
		Description: "Test option",
		Required:    true,
	}

	cmd := NewCommand("test", "Test command", "test", handler).
		WithOptions(option)

	if cmd.Options == nil {
		t.Fatal("Options is nil")
	}

	if len(cmd.Options) != 1 {
		t.Fatalf("Options length = %v, want %v", len(cmd.Options), 1)
	}

	if cmd.Options[0].Name != "test-option" {
		t.Errorf("Option name = %v, want %v", cmd.Options[0].Name, "test-option")
	}
}

// TestCommandWithPermissions verifies the permission builder methods
func TestCommandWithPermissions(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	cmd := NewCommand("test", "Test command", "test", handler).
		WithUserPermissions(discordgo.PermissionAdministrator).
		WithBotPermissions(discordgo.PermissionSendMessages)

	if cmd.UserPermissions != discordgo.PermissionAdministrator {
		t.Errorf("UserPermissions = %v, want %v", cmd.UserPermissions, discordgo.PermissionAdministrator)
	}

	if cmd.BotPermissions != discordgo.PermissionSendMessages {
		t.Errorf("BotPermissions = %v, want %v", cmd.BotPermissions, discordgo.PermissionSendMessages)
	}
}

// TestCommandAsDev verifies the AsDev builder method
func TestCommandAsDev(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	cmd := NewCommand("test", "Test command", "test", handler).AsDev()

	if !cmd.IsDev {
		t.Error("IsDev should be true after calling AsDev()")
	}
}

// TestToApplicationCommand verifies conversion to Discord application command
func TestToApplicationCommand(t *testing.T) {
	handler := func(ctx *CommandContext) error {
		return nil
	}

	option := &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "test-option",
		Description: "Test option",
		Required:    true,
	}

	cmd := NewCommand("test", "Test command", "test", handler).
		WithOptions(option)

	appCmd := cmd.ToApplicationCommand()

	if appCmd == nil {
		t.Fatal("ToApplicationCommand returned nil")
	}

	if appCmd.Name != "test" {
		t.Errorf("ApplicationCommand Name = %v, want %v", appCmd.Name, "test")
	}

	if appCmd.Description != "Test command" {
		t.Errorf("ApplicationCommand Description = %v, want %v", appCmd.Description, "Test command")
	}

	if len(appCmd.Options) != 1 {
		t.Fatalf("ApplicationCommand Options length = %v, want %v", len(appCmd.Options), 1)
	}
}

func TestToApplicationCommandPermissions(t *testing.T) {
	cmd := NewCommand("ban", "Ban", "mod", nil).WithUserPermissions(discordgo.PermissionBanMembers)

	appCmd := cmd.ToApplicationCommand()
	require.NotNil(t, appCmd.DefaultMemberPermissions)
	assert.Equal(t, int64(discordgo.PermissionBanMembers), *appCmd.DefaultMemberPermissions)

	assert.Nil(t, NewCommand("ping", "Ping", "utils", nil).ToApplicationCommand().DefaultMemberPermissions)
}

func TestCommandKey(t *testing.T) {
	tests := []struct {
		name string
		data discordgo.ApplicationCommandInteractionData
		want string
	}{
		{"plain", discordgo.ApplicationCommandInteractionData{Name: "ping"}, "ping"},
		{
			"subcommand",
			discordgo.ApplicationCommandInteractionData{Name: "mod", Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: "warn", Type: discordgo.ApplicationCommandOptionSubCommand},
			}},
			"mod.warn",
		},
		{
			"subcommand group",
			discordgo.ApplicationCommandInteractionData{Name: "settings", Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: "terms", Type: discordgo.ApplicationCommandOptionSubCommandGroup, Options: []*discordgo.ApplicationCommandInteractionDataOption{
					{Name: "add", Type: discordgo.ApplicationCommandOptionSubCommand},
				}},
			}},
			"settings.terms.add",
		},
		{
			"plain options",
			discordgo.ApplicationCommandInteractionData{Name: "echo", Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: "text", Type: discordgo.ApplicationCommandOptionString},
			}},
			"echo",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, commandKey(tt.data))
		})
	}
}

func TestHasPermissions(t *testing.T) {
	mod := &discordgo.Member{Permissions: discordgo.PermissionBanMembers | discordgo.PermissionKickMembers}
	admin := &discordgo.Member{Permissions: discordgo.PermissionAdministrator}

	assert.True(t, hasPermissions(nil, 0))
	assert.False(t, hasPermissions(nil, discordgo.PermissionBanMembers))
	assert.True(t, hasPermissions(mod, discordgo.PermissionBanMembers))
	assert.False(t, hasPermissions(mod, discordgo.PermissionManageGuild))
	assert.False(t, hasPermissions(mod, discordgo.PermissionBanMembers|discordgo.PermissionManageGuild))
	assert.True(t, hasPermissions(admin, discordgo.PermissionManageGuild))
}

func TestFindFocused(t *testing.T) {
	opts := []*discordgo.ApplicationCommandInteractionDataOption{
		{Name: "removewarn", Type: discordgo.ApplicationCommandOptionSubCommand, Options: []*discordgo.ApplicationCommandInteractionDataOption{
			{Name: "usuario", Type: discordgo.ApplicationCommandOptionUser},
			{Name: "id", Type: discordgo.ApplicationCommandOptionString, Focused: true},
		}},
	}

	focused := findFocused(opts)
	require.NotNil(t, focused)
	assert.Equal(t, "id", focused.Name)
	assert.Nil(t, findFocused(opts[0].Options[:1]))
}

type fakeCommandAPI struct {
	registered map[string][]*discordgo.ApplicationCommand
	deleted    []string
	deleteErr  error
	userCalls  int
}

func (f *fakeCommandAPI) ApplicationCommands(appID, guildID string, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	return f.registered[guildID], nil
}

func (f *fakeCommandAPI) ApplicationCommandDelete(appID, guildID, cmdID string, options ...discordgo.RequestOption) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, cmdID)
	return nil
}

func (f *fakeCommandAPI) ApplicationCommandBulkOverwrite(appID, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error) {
	if f.registered == nil {
		f.registered = make(map[string][]*discordgo.ApplicationCommand)
	}
	f.registered[guildID] = commands
	return commands, nil
}

func (f *fakeCommandAPI) User(userID string, options ...discordgo.RequestOption) (*discordgo.User, error) {
	f.userCalls++
	return &discordgo.User{ID: "app"}, nil
}

func newTestHandler(api *fakeCommandAPI, devGuild string) *CommandHandler {
	c := &ExtendedClient{Commands: NewCommandCollection(), DevGuildID: devGuild}
	ch := &CommandHandler{client: c, api: api}
	c.CommandHandler = ch
	return ch
}

func TestBuildCommandGroup(t *testing.T) {
	ch := newTestHandler(&fakeCommandAPI{}, "")

	ban := NewCommand("ban", "Ban", "mod", nil).WithUserPermissions(discordgo.PermissionBanMembers)
	kick := NewCommand("kick", "Kick", "mod", nil).WithUserPermissions(discordgo.PermissionKickMembers)
	group := ch.BuildCommandGroup("mod", "Moderación", ban, kick)

	assert.Equal(t, "mod", group.Name)
	require.Len(t, group.Options, 2)
	assert.Equal(t, discordgo.ApplicationCommandOptionSubCommand, group.Options[0].Type)
	require.NotNil(t, group.DefaultMemberPermissions)
	assert.Equal(t, int64(discordgo.PermissionBanMembers|discordgo.PermissionKickMembers), *group.DefaultMemberPermissions)

	got, ok := ch.client.Commands.Get("mod.kick")
	require.True(t, ok)
	assert.Same(t, kick, got)
}

func TestSyncCommands(t *testing.T) {
	api := &fakeCommandAPI{}
	ch := newTestHandler(api, "dev")

	ch.AddGlobalCommand(&discordgo.ApplicationCommand{Name: "mod"})
	ch.RegisterCommand(NewCommand("debug", "Debug", "dev", nil).AsDev())

	_, err := ch.SyncCommands("")
	require.NoError(t, err)
	_, err = ch.SyncCommands("dev")
	require.NoError(t, err)

	assert.Len(t, api.registered[""], 1)
	assert.Len(t, api.registered["dev"], 2, "the dev guild also receives dev commands")
	assert.Equal(t, 1, api.userCalls, "the application id is resolved once")

	list, err := ch.ListGuildCommands("dev")
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestUnregisterGuildCommands(t *testing.T) {
	api := &fakeCommandAPI{registered: map[string][]*discordgo.ApplicationCommand{
		"g": {{ID: "1", Name: "mod"}, {ID: "2", Name: "utils"}},
	}}
	ch := newTestHandler(api, "")

	require.NoError(t, ch.UnregisterGuildCommands("g"))
	assert.Equal(t, []string{"1", "2"}, api.deleted)

	api.deleteErr = errors.New("unknown command")
	assert.Error(t, ch.UnregisterGuildCommands("g"))
}

func TestDurationOptionsCapped(t *testing.T) {
	want := map[string]float64{"days": 28, "hours": 672, "minutes": 40320, "seconds": 2419200}

	opts := DurationOptions()
	require.Len(t, opts, 4)
	for _, opt := range opts {
		require.NotNil(t, opt.MinValue, opt.Name)
		assert.Equal(t, 0.0, *opt.MinValue, opt.Name)
		assert.Equal(t, want[opt.Name], opt.MaxValue, opt.Name)
		assert.False(t, opt.Required, opt.Name)
	}
}
