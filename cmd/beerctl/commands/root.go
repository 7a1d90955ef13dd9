package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/urfave/cli/v3"

	"github.com/GooseZen/spring-6-resttemplate/beerclient"
	"github.com/GooseZen/spring-6-resttemplate/config"
	"github.com/GooseZen/spring-6-resttemplate/httpclient"
	"github.com/GooseZen/spring-6-resttemplate/internal/logger"
	"github.com/GooseZen/spring-6-resttemplate/oauth2client"
)

// Execute runs the root command with the given context and arguments, printing results to out.
func Execute(ctx context.Context, args []string, out io.Writer, version string) error {
	cmd := &cli.Command{
		Name:    "beerctl",
		Usage:   "Manage beers through the OAuth2-protected beer API",
		Version: version,
		Writer:  out,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "log level (debug|info|warn|error), overrides " + config.EnvLogLevel,
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "log format (json|console), overrides " + config.EnvLogFormat,
			},
		},
		Commands: []*cli.Command{
			listCommand(),
			getCommand(),
			createCommand(),
			updateCommand(),
			deleteCommand(),
		},
	}

	return cmd.Run(ctx, args)
}

// newClient wires configuration, logging, token provider and HTTP client into a beer client.
func newClient(ctx context.Context, cmd *cli.Command) (*beerclient.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level, format := cfg.Log.Level, cfg.Log.Format
	if cmd.IsSet("log-level") {
		level = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		format = cmd.String("log-format")
	}
	log := logger.New(logger.Options{
		ServiceName: "beerctl",
		Level:       logger.ParseLevel(level),
		Format:      format,
	})

	tokens := oauth2client.NewTokenProvider(ctx,
		cfg.OAuth2.TokenURL,
		cfg.OAuth2.ClientID,
		cfg.OAuth2.ClientSecret,
		cfg.OAuth2.Scopes,
		oauth2client.WithExpiryLeeway(cfg.OAuth2.ExpiryLeeway),
		oauth2client.WithLogger(logger.Printf{Logger: log}),
	)

	if cfg.TLS.InsecureSkipVerify {
		log.Warn().Msg("TLS certificate verification is disabled")
	}
	hc, err := httpclient.FromConfig(cfg).Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build HTTP client: %w", err)
	}

	client, err := beerclient.New(cfg.API.BaseURL, tokens,
		beerclient.WithHTTPClient(hc),
		beerclient.WithLogger(log),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create beer client: %w", err)
	}

	log.Debug().Str("base_url", cfg.API.BaseURL).Dur("timeout", cfg.API.Timeout).Bool("tls", cfg.TLS.Enabled()).Msg("beer client ready")
	return client, nil
}

func writeJSON(cmd *cli.Command, v any) error {
	enc := json.NewEncoder(cmd.Root().Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeRawJSON(cmd *cli.Command, data []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return err
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(cmd.Root().Writer)
	return err
}
