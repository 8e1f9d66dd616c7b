package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-playground/validator/v10"

	// Platform packages
	"github.com/aradsms/phonebook/internal/platform/config"
	"github.com/aradsms/phonebook/internal/platform/logger"

	// Phonebook specific packages
	"github.com/aradsms/phonebook/internal/phonebook_service/adapters/cli"
	phonebookApp "github.com/aradsms/phonebook/internal/phonebook_service/app"
	"github.com/aradsms/phonebook/internal/phonebook_service/domain"
	"github.com/aradsms/phonebook/internal/phonebook_service/repository/file"
)

const serviceName = "phonebook"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load Configuration
	cfg, err := config.Load(serviceName)
	if err != nil {
		slog.Error("Failed to load configuration", "service", serviceName, "error", err)
		return 1
	}

	// Initialize Logger
	appLogger := logger.New(cfg.LogLevel, cfg.LogFormat).With("service", serviceName)
	appLogger.Debug("Configuration loaded",
		"log_level", cfg.LogLevel,
		"storage_path", cfg.StoragePath,
		"verify_checksum", cfg.VerifyChecksum,
	)

	fileMode, _ := cfg.ParsedFileMode() // checked by config.Validate
	repo := file.NewContactRepository(cfg.StoragePath, file.Options{
		FileMode:     fileMode,
		SkipChecksum: !cfg.VerifyChecksum,
	}, appLogger)
	store := phonebookApp.NewContactStore(repo, appLogger)
	handler := cli.NewHandler(store, appLogger, validator.New(validator.WithRequiredStructEnabled()), os.Stdout)

	if err := handler.Run(ctx, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "phonebook:", describe(err))
		if errors.Is(err, cli.ErrUsage) {
			return 2
		}
		return 1
	}
	return 0
}

// describe turns store failures into a message for the user.
func describe(err error) string {
	switch {
	case errors.Is(err, domain.ErrDecodeFailure):
		return fmt.Sprintf("the phonebook file is damaged or not a phonebook, it was left untouched (%v)", err)
	case errors.Is(err, domain.ErrIOFailure):
		return fmt.Sprintf("could not access the phonebook file (%v)", err)
	default:
		return err.Error()
	}
}
