package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/PancyStudios/PancyWarden/internal/commands"
	"github.com/PancyStudios/PancyWarden/internal/commands/utils"
	"github.com/PancyStudios/PancyWarden/internal/events"
	"github.com/PancyStudios/PancyWarden/pkg/config"
	"github.com/PancyStudios/PancyWarden/pkg/discord"
	"github.com/PancyStudios/PancyWarden/pkg/errors"
	"github.com/PancyStudios/PancyWarden/pkg/logger"
	"github.com/PancyStudios/PancyWarden/pkg/moderation"
	"github.com/PancyStudios/PancyWarden/pkg/mqtt"
	"github.com/PancyStudios/PancyWarden/pkg/storage"
	"github.com/PancyStudios/PancyWarden/pkg/web"
	"github.com/spf13/cobra"
)

func runBot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	log := logger.Init(cfg.ErrorWebhook, cfg.LogsWebhook)
	defer log.Close()

	logger.System("Iniciando PancyWarden...", "Main")
	logger.Info(fmt.Sprintf("Versión %s (%s), almacenamiento: %s", config.Version, config.BuildTime, cfg.StorageBackend), "Main")

	var discordClient *discord.ExtendedClient
	errors.Init(cfg.ErrorWebhook, func() {
		if discordClient != nil {
			_ = discordClient.Stop()
		}
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	defer stop()

	st, err := openStores(ctx, cfg)
	if err != nil {
		if storage.IsCorrupt(err) {
			logger.Critical(fmt.Sprintf("Documento corrupto, se aborta el inicio sin modificarlo: %v", err), "Main")
		} else {
			logger.Critical(fmt.Sprintf("Error abriendo el almacenamiento: %v", err), "Main")
		}
		return err
	}
	defer st.close()

	engine := moderation.NewEngine(st.ledger, st.settings)
	deps := utils.Deps{Storage: st.backend}

	// Initialize MQTT
	if cfg.MQTTEnabled {
		mqttClientID := "pancywarden"
		if !cfg.IsProd() {
			mqttClientID = "pancywarden_canary"
		}

		mqttClient := mqtt.NewMqttCommunicator(cfg.MQTTHost, cfg.MQTTPort, cfg.MQTTUser, cfg.MQTTPassword, mqttClientID)
		defer mqttClient.Destroy()

		mqtt.RegisterWarningQueries(mqttClient, st.ledger)
		engine.WithPublisher(mqttClient)
		deps.Broker = mqttClient
	}

	// Initialize Discord client
	discordClient, err = discord.NewClient(cfg.BotToken, cfg.DevGuildID)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error creating Discord client: %v", err), "Main")
		return err
	}

	commands.RegisterAll(discordClient, engine, deps)
	events.RegisterAll(discordClient)

	// Initialize web server
	webServer, err := web.NewServer(cfg.LogsWebServerHook, cfg.WebAllowedHosts, web.DefaultRateLimit)
	if err != nil {
		logger.Critical(fmt.Sprintf("Error configurando el servidor web: %v", err), "Main")
		return err
	}
	web.SetupAPIRoutes(webServer, web.APIDeps{
		Ledger:   st.ledger,
		Settings: st.settings,
		Storage:  st.backend,
		Bot:      discordClient,
	})
	webServer.StartAsync(cfg.Port)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := webServer.Shutdown(shutdownCtx); err != nil {
			logger.Error(fmt.Sprintf("Error apagando el servidor web: %v", err), "Main")
		}
	}()

	if err := discordClient.Start(); err != nil {
		logger.Critical(fmt.Sprintf("Error starting Discord client: %v", err), "Main")
		return err
	}
	defer func() {
		if err := discordClient.Stop(); err != nil {
			logger.Error(fmt.Sprintf("Error cerrando la sesión de Discord: %v", err), "Main")
		}
	}()

	logger.Success("PancyWarden iniciado correctamente!", "Main")

	<-ctx.Done()

	logger.System("Apagando PancyWarden...", "Main")
	return nil
}
