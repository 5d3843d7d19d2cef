package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"smilingtears/internal/access"
	"smilingtears/internal/content"
	"smilingtears/internal/db"
	"smilingtears/internal/mail"
	"smilingtears/internal/payments"
	"smilingtears/internal/server"
	"smilingtears/internal/sms"
	"smilingtears/internal/storage"
	"smilingtears/internal/store"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var serveCommand = &cli.Command{
	Name:   "serve",
	Usage:  "Start the HTTP server",
	Action: serve,
}

func serve(cCtx *cli.Context) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	config, err := loadConfig()
	if err != nil {
		return err
	}

	awsConfig, err := loadAWSConfig(ctx)
	if err != nil {
		return err
	}

	snsClient := sns.NewFromConfig(awsConfig)
	s3Client := s3.NewFromConfig(awsConfig)

	pool, err := db.Connect(ctx, config)
	if err != nil {
		return err
	}
	defer pool.Close()

	applicationRepo := store.NewApplicationRepository(pool)
	accountRepo := store.NewAccountRepository(pool)
	donationRepo := store.NewDonationRepository(pool)
	contactRepo := store.NewContactRepository(pool)

	smsSender := sms.NewSNSSender(snsClient, config.SMSCountryPrefix)
	accessSvc := access.NewService(logger, applicationRepo, accountRepo, smsSender)

	mailer := mail.NewSMTPMailer(config.MailServer, config.MailPort, config.MailUsername, config.MailPassword)
	loader := content.NewLoader(config.DataDir, logger)
	archive := storage.NewReceiptArchive(s3Client, config.ReceiptBucket)

	var charger payments.Charger = payments.SimulatedCharger{}
	if config.StripeSecretKey != "" {
		charger = payments.NewStripeCharger(config.StripeSecretKey)
	} else {
		logger.Warn("STRIPE_SECRET_KEY not set, donations run in simulated mode")
	}

	srv, err := server.New(
		config,
		logger,
		loader,
		applicationRepo,
		accountRepo,
		donationRepo,
		contactRepo,
		accessSvc,
		mailer,
		charger,
		archive,
	)
	if err != nil {
		return err
	}

	go func() {
		logger.WithField("port", config.ServerPort).Infof("server starting http://localhost:%d", config.ServerPort)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Fatal("server failed")
		}
	}()

	<-ctx.Done()
	logger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return srv.Stop(shutdownCtx)
}
