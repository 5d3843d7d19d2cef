package main

import (
	"context"
	"errors"
	"fmt"

	"smilingtears/internal/db"
	"smilingtears/internal/store"
	"smilingtears/pkg/types"

	"github.com/k0kubun/pp/v3"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"
)

var seedCommand = &cli.Command{
	Name:  "seed",
	Usage: "Seed the database with an admin account and sample applications",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "admin-username",
			Usage: "Username for the seeded admin account",
			Value: "admin",
		},
		&cli.StringFlag{
			Name:  "admin-email",
			Usage: "Email for the seeded admin account",
			Value: "admin@smilingtears.org",
		},
		&cli.StringFlag{
			Name:     "admin-password",
			Usage:    "Password for the seeded admin account",
			Required: true,
		},
	},
	Action: func(c *cli.Context) error {
		cfg, err := loadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		ctx := context.Background()

		pool, err := db.Connect(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer pool.Close()

		logrus.Info("Connected to database")

		if err := db.Migrate(ctx, pool); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		accountRepo := store.NewAccountRepository(pool)
		applicationRepo := store.NewApplicationRepository(pool)

		email := c.String("admin-email")
		if _, err := accountRepo.ByEmail(ctx, email); err == nil {
			logrus.WithField("email", email).Info("Admin account already exists, skipping")
			return nil
		} else if !errors.Is(err, types.ErrAccountNotFound) {
			return fmt.Errorf("failed to check existing admin: %w", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(c.String("admin-password")), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash admin password: %w", err)
		}

		admin := &types.Account{
			Username: c.String("admin-username"),
			Email:    email,
			Password: string(hash),
			Role:     types.RoleAdmin,
		}

		if err := accountRepo.Create(ctx, admin); err != nil {
			return fmt.Errorf("failed to create admin account: %w", err)
		}

		logrus.Info("Seeding sample volunteer applications...")

		for _, app := range sampleApplications() {
			if err := applicationRepo.Create(ctx, app); err != nil {
				return fmt.Errorf("failed to seed application for %s: %w", app.Email, err)
			}
			if cfg.Environment == "development" {
				pp.Println(app)
			}
		}

		logrus.Info("Database seeded successfully")

		return nil
	},
}

func sampleApplications() []*types.VolunteerApplication {
	return []*types.VolunteerApplication{
		{
			Name:      "Priya Sharma",
			Email:     "priya.sharma@example.com",
			Phone:     "9876543210",
			City:      "Mumbai",
			Interests: types.JoinInterests([]string{"Education", "Events"}),
			Message:   "I have been teaching weekend classes for two years.",
		},
		{
			Name:      "Arjun Mehta",
			Email:     "arjun.mehta@example.com",
			Phone:     "9123456780",
			City:      "Pune",
			Interests: types.JoinInterests([]string{"Healthcare"}),
			Message:   "Registered nurse looking to help at health camps.",
		},
	}
}
