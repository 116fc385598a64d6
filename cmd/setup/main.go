// smarthr-setup provisions a fresh deployment: env file, schema
// migrations, the first admin account and the object-storage bucket.
// Each step is idempotent, so the tool can run on every deploy.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"smarthr_backend/database"
	"smarthr_backend/internal/app"
	"smarthr_backend/internal/config"
	"smarthr_backend/internal/logger"
	"smarthr_backend/internal/storage"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	adminEmail    string
	adminPassword string
)

var rootCmd = &cobra.Command{
	Use:   "smarthr-setup",
	Short: "One-shot provisioning for a SmartHR deployment",
	Long: `smarthr-setup prepares a deployment environment.

Every subcommand is safe to re-run: existing .env files are never
overwritten, migrations only apply what is missing, the admin user is
created once and bucket creation tolerates an existing bucket.`,
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Create .env from .env.example if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEnv()
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database schema migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := connect()
		if err != nil {
			return err
		}
		return runMigrate(db)
	},
}

var superuserCmd = &cobra.Command{
	Use:   "superuser",
	Short: "Create the first admin user if missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := connect()
		if err != nil {
			return err
		}
		return runSuperuser(db)
	},
}

var bucketCmd = &cobra.Command{
	Use:   "bucket",
	Short: "Ensure the object-storage bucket exists",
	RunE: func(cmd *cobra.Command, args []string) error {
		loadConfig()
		return runBucket()
	},
}

var allCmd = &cobra.Command{
	Use:   "all",
	Short: "Run env, migrate, superuser and bucket in order",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runEnv(); err != nil {
			return err
		}
		db, err := connect()
		if err != nil {
			return err
		}
		if err := runMigrate(db); err != nil {
			return err
		}
		if err := runSuperuser(db); err != nil {
			return err
		}
		return runBucket()
	},
}

func loadConfig() {
	config.LoadConfig()
	cfg := config.GetConfig()
	logger.Init(cfg.Server.Env)
}

func connect() (*gorm.DB, error) {
	loadConfig()
	db, err := database.Connect()
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	return db, nil
}

func runEnv() error {
	created, err := config.EnsureEnvFile(".env", ".env.example")
	if err != nil {
		return fmt.Errorf("ensure env file: %w", err)
	}
	if created {
		fmt.Println("Created .env from .env.example, fill in real credentials")
	} else {
		fmt.Println(".env already exists, left untouched")
	}
	return nil
}

func runMigrate(db *gorm.DB) error {
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	fmt.Println("Migrations applied")
	return nil
}

func runSuperuser(db *gorm.DB) error {
	cfg := config.GetConfig()
	if adminEmail != "" {
		cfg.FirstAdminEmail = adminEmail
	}
	if adminPassword != "" {
		cfg.FirstAdminPassword = adminPassword
	}
	if err := app.SeedFirstAdmin(db, cfg); err != nil {
		return fmt.Errorf("seed admin user: %w", err)
	}
	return nil
}

func runBucket() error {
	cfg := config.GetConfig()
	store, err := app.BuildStorage(cfg)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	provisioner, ok := store.(storage.Provisioner)
	if !ok {
		fmt.Printf("Storage type %q needs no bucket provisioning\n", cfg.Storage.Type)
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := provisioner.EnsureBucket(ctx); err != nil {
		return fmt.Errorf("ensure bucket %q: %w", cfg.Storage.Bucket, err)
	}
	fmt.Printf("Bucket %q is ready\n", cfg.Storage.Bucket)
	return nil
}

func main() {
	superuserCmd.Flags().StringVar(&adminEmail, "email", "", "admin email (overrides FIRST_ADMIN_EMAIL)")
	superuserCmd.Flags().StringVar(&adminPassword, "password", "", "admin password (overrides FIRST_ADMIN_PASSWORD)")

	rootCmd.AddCommand(envCmd, migrateCmd, superuserCmd, bucketCmd, allCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
