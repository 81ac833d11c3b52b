package main

import (
	"errors"
	"os"

	"github.com/matsen/cvpubs/internal/ads"
	"github.com/matsen/cvpubs/internal/builder"
	"github.com/matsen/cvpubs/internal/config"
	"github.com/matsen/cvpubs/internal/export"
	"github.com/matsen/cvpubs/internal/logging"
	"github.com/matsen/cvpubs/internal/storage"
	"github.com/matsen/cvpubs/internal/venue"
	"github.com/rs/zerolog"
)

// newLogger returns the stderr logger; debug level with --verbose,
// warnings only otherwise.
func newLogger() zerolog.Logger {
	cfg := logging.DefaultConfig()
	cfg.Level = "warn"
	if verbose {
		cfg.Level = "debug"
	}
	return logging.New(cfg)
}

// mustLoadConfig loads cvpubs.yml from --config or by searching upward.
func mustLoadConfig() *config.Config {
	path := configPath
	if path == "" {
		cwd, err := os.Getwd()
		if err != nil {
			exitWithError(ExitError, "getting current directory: %v", err)
		}
		path, err = config.FindConfig(cwd)
		if err != nil {
			exitWithError(ExitConfigError, "%v (use --config to point at one)", err)
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		exitWithError(ExitConfigError, "%v", err)
	}
	return cfg
}

// newADSClient builds an ADS client from the environment and global config.
func newADSClient(logger zerolog.Logger) *ads.Client {
	opts := []ads.ClientOption{ads.WithLogger(logger)}
	if token := config.GetADSToken(); token != "" {
		opts = append(opts, ads.WithToken(token))
	}
	if baseURL := config.GetADSBaseURL(); baseURL != "" {
		opts = append(opts, ads.WithBaseURL(baseURL))
	}
	return ads.NewClient(opts...)
}

// newSource returns the snapshot source when --snapshot is set, ADS otherwise.
func newSource(logger zerolog.Logger) builder.Source {
	if snapshotPath != "" {
		logger.Debug().Str("path", snapshotPath).Msg("reading records from snapshot")
		return storage.SnapshotSource{Path: snapshotPath}
	}
	return newADSClient(logger)
}

// newBuilder wires a builder for cfg to its record source.
func newBuilder(cfg *config.Config) *builder.Builder {
	logger := newLogger()
	return builder.New(*cfg, newSource(logger), builder.WithLogger(logger))
}

// exitCodeFor maps pipeline errors to exit codes.
func exitCodeFor(err error) int {
	var apiErr *ads.APIError
	switch {
	case ads.IsAuthError(err), ads.IsRateLimited(err), ads.IsNotFound(err), errors.As(err, &apiErr),
		errors.Is(err, ads.ErrNetworkError), errors.Is(err, ads.ErrInvalidResponse):
		return ExitAPIError
	case venue.IsUnknown(err),
		errors.Is(err, export.ErrNameNotFound), errors.Is(err, export.ErrNameAmbiguous),
		errors.Is(err, builder.ErrNoAuthors):
		return ExitDataError
	case errors.Is(err, os.ErrNotExist):
		return ExitConfigError
	default:
		return ExitError
	}
}
