// Package main is the entry point of the migration pack service. By default it
// serves the packer API; the -pack and -issue-token flags run a single export or
// mint an operator token and exit.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/migrationpack/internal/auth"
	"github.com/yasinhessnawi1/migrationpack/internal/config"
	"github.com/yasinhessnawi1/migrationpack/internal/constants"
	"github.com/yasinhessnawi1/migrationpack/internal/database"
	"github.com/yasinhessnawi1/migrationpack/internal/server"
	"github.com/yasinhessnawi1/migrationpack/internal/utils"
)

// Version information is set during build time through linker flags.
var (
	// version represents the release version of the application.
	version = "dev"

	// commit is the git commit hash from which the application was built.
	commit = "none"

	// buildDate is the timestamp when the application was built.
	buildDate = "unknown"
)

// init loads environment variables from a .env file if present.
func init() {
	// Not finding a .env file is fine; configuration may come from the environment.
	if err := godotenv.Load(); err != nil {
		fmt.Fprintln(os.Stderr, "Warning: .env file not found or couldn't be loaded")
	}
}

func main() {
	var (
		configPath  string
		showVersion bool
		runPack     bool
		issueToken  string
	)

	flag.StringVar(&configPath, "config", "./configs/config.yaml", "Path to configuration file")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&runPack, "pack", false, "Build one migration pack, print its path and exit")
	flag.StringVar(&issueToken, "issue-token", "", "Print an operator token for the given username and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("Migration pack server\nVersion: %s\nCommit: %s\nBuild Date: %s\n", version, commit, buildDate)
		os.Exit(0)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	if version != "dev" {
		cfg.App.Version = version
	}

	utils.InitLogger(cfg)
	utils.InitValidator()

	switch {
	case issueToken != "":
		if err := printToken(cfg, issueToken); err != nil {
			log.Fatal().Err(err).Msg("Failed to issue token")
		}
	case runPack:
		if err := packOnce(cfg); err != nil {
			log.Fatal().Err(err).Msg("Migration pack failed")
		}
	default:
		serve(cfg)
	}
}

func serve(cfg *config.AppConfig) {
	log.Info().
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Environment).
		Msg("Starting migration pack server")

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	// Blocks until termination
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}

// packOnce runs a single export and prints the archive path on stdout.
// An interrupt cancels the run between steps.
func packOnce(cfg *config.AppConfig) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Connect(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	packService, err := server.NewPackService(ctx, cfg, db)
	if err != nil {
		return err
	}

	result, err := packService.PackExport(ctx)
	if err != nil {
		return err
	}

	log.Info().
		Str("archive", result.FilePath).
		Int64("size", result.Size).
		Int("documents", result.Documents).
		Str("published_url", result.PublishedURL).
		Msg("Migration pack created")
	fmt.Println(result.FilePath)
	return nil
}

func printToken(cfg *config.AppConfig, username string) error {
	token, _, err := auth.NewJWTService(&cfg.JWT).GenerateAccessToken(username, constants.CLITokenExpiry)
	if err != nil {
		return err
	}
	fmt.Println(token)
	return nil
}
