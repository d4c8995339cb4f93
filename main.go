package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rpupo63/contractor-marketplace-backend/api"
	"github.com/rpupo63/contractor-marketplace-backend/config"
	"github.com/rpupo63/contractor-marketplace-backend/database"
	"github.com/rpupo63/contractor-marketplace-backend/database/memstore"
	"github.com/rpupo63/contractor-marketplace-backend/marketplace"
	"github.com/rpupo63/contractor-marketplace-backend/models"
	"github.com/rpupo63/contractor-marketplace-backend/services"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	log.Info().Msg("Initializing app...")

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("Error loading .env file")
	}

	ctx := context.Background()
	cfg := config.New()

	if config.NeedsSSM(cfg) {
		client, err := config.NewSSMClient(ctx)
		if err != nil {
			log.Fatal().Err(err).Msg("Error creating SSM client")
		}
		if err := config.ResolveSecrets(ctx, cfg, client); err != nil {
			log.Fatal().Err(err).Msg("Error resolving secrets")
		}
	}

	var stores marketplace.Stores
	dbType := config.GetString(cfg, "DB_TYPE", "")
	log.Info().Str("dbType", dbType).Msg("Selecting storage")

	if dbType == "memory" {
		stores = memstore.New().Stores()
	} else {
		db, err := database.Open(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Error connecting to database")
		}
		if err := database.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("Error running migrations")
		}

		if config.GetBool(cfg, "GENERATE_MODELS", false) {
			log.Info().Msg("Generating models and query helpers...")
			if err := models.GenerateModels(db); err != nil {
				log.Fatal().Err(err).Msg("Error generating models")
			}
			return
		}
		if config.GetBool(cfg, "GENERATE_COLUMN_REPORT", false) {
			log.Info().Msg("Generating column mismatch report...")
			if err := models.LogColumnReport(db); err != nil {
				log.Fatal().Err(err).Msg("Error generating column report")
			}
			return
		}

		stores = database.New(db).Stores()
	}

	opts := []marketplace.Option{
		marketplace.WithNotifier(services.NewDispatcher(stores.Users, notificationChannels(cfg)...)),
	}
	storage, err := services.NewPlanStorage(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Error configuring plan storage")
	}
	if storage != nil {
		opts = append(opts, marketplace.WithFileStore(storage))
	}
	market := marketplace.New(stores, opts...)

	errChannel := make(chan error)
	defer close(errChannel)

	server, err := api.NewServer(cfg, market)
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing server")
	}

	go server.Start(errChannel)
	go listenToInterrupt(errChannel)

	fatalErr := <-errChannel
	log.Info().Msgf("Closing server: %v", fatalErr)

	server.ShutdownGracefully(30 * time.Second)
}

// notificationChannels returns the configured channels. Unconfigured senders
// come back as nil pointers and must not be wrapped in the interface.
func notificationChannels(cfg map[string]string) []services.Channel {
	var channels []services.Channel
	if email := services.NewEmailSender(cfg); email != nil {
		channels = append(channels, email)
	}
	if sms := services.NewSMSSender(cfg); sms != nil {
		channels = append(channels, sms)
	}
	return channels
}

// listenToInterrupt waits for SIGINT or SIGTERM and then sends an error to the error channel.
func listenToInterrupt(errChannel chan<- error) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
	errChannel <- fmt.Errorf("%s", <-c)
}
