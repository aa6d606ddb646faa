package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"aaaas/sequence-api/pkg/api/validation"
	"aaaas/sequence-api/pkg/log"
)

const (
	serviceName    = "sequence-api"
	serviceVersion = "0.3.0"
)

func main() {
	rootCmd := &cobra.Command{Use: serviceName, SilenceUsage: true}
	rootCmd.AddCommand(newServeCmd(), newValidateCmd())
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the sequence API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			logLevel, _ := cmd.Flags().GetString("log-level")

			cfg, err := loadConfig(configPath, []string{"server"})
			if err != nil {
				return err
			}
			log.SetLogFile(cfg.GetLogFile())
			log.SetLogLevelName(cfg.GetLogLevel())
			log.SetLogLevelName(logLevel)
			backend := "template"
			if url := cfg.GetGenerationUrl(); url != "" {
				backend = url
			}
			log.PrintStartupBanner(log.StartupInfo{
				Name:       serviceName,
				Version:    serviceVersion,
				ConfigPath: configPath,
				Backend:    backend,
				Listen:     cfg.GetApiUri(),
			})
			defer log.Sync()

			apiServer, err := buildServer(cfg, nil)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return apiServer.Listen(ctx)
		},
	}
	cmd.Flags().String("config", "conf/api.conf", "path to the ini config file (CONFIG_PATH overrides)")
	cmd.Flags().String("log-level", "", "override the configured log level")
	return cmd
}

// newValidateCmd checks a request body offline and prints what the API would answer
func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a sequence request body without generating anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			simple, _ := cmd.Flags().GetBool("simple")
			raw, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(err, "reading request file")
			}
			var body interface{}
			if err := json.Unmarshal(raw, &body); err != nil {
				return errors.Wrapf(err, "invalid JSON in %s", args[0])
			}

			schema := validation.StructuredSchema
			if simple {
				schema = validation.SimpleSchema
			}
			params, errs := validation.NewValidator().Validate(schema, body)

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			if len(errs) > 0 {
				_ = enc.Encode(map[string]interface{}{"valid": false, "details": errs})
				return errors.Errorf("%d invalid field(s)", len(errs))
			}
			return enc.Encode(map[string]interface{}{"valid": true, "params": params})
		},
	}
	cmd.Flags().Bool("simple", false, "use the simple generate schema")
	return cmd
}
