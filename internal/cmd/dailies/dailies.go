// Package dailies parses dailies service flags and launches the service.
package dailies

import (
	"context"
	"flag"

	entrypoint "github.com/planagil/dailies/internal/platform/cmd"
	server "github.com/planagil/dailies/internal/services/dailies/app"
)

// Config holds dailies command configuration.
type Config struct {
	Port int `env:"PLANAGIL_DAILIES_PORT" envDefault:"8097"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The dailies gRPC server port")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the dailies gRPC service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceDailies, func(context.Context) error {
		return server.Run(ctx, cfg.Port)
	})
}
