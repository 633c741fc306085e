package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/internal-tools/org-activity-reports/internal/config"
	"github.com/internal-tools/org-activity-reports/internal/log"
	"github.com/internal-tools/org-activity-reports/internal/models"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfgFile               string
	flagAddr              string
	flagLogLevel          string
	flagLogFormat         string
	flagDirectoryEndpoint string
	flagDirectoryToken    string
	flagGroups            string

	lambdaHandler func(ctx context.Context, event models.LambdaEvent) (*models.LambdaResponse, error)
	runServe      func(ctx context.Context, cfg *config.Config) error
)

// SetLambdaHandler registers the Lambda handler used in Lambda mode.
func SetLambdaHandler(handler func(ctx context.Context, event models.LambdaEvent) (*models.LambdaResponse, error)) {
	lambdaHandler = handler
}

// SetRunServe registers the server runner used by the CLI.
func SetRunServe(handler func(ctx context.Context, cfg *config.Config) error) {
	runServe = handler
}

var rootCmd = &cobra.Command{
	Use:   "org-reports",
	Short: "Serve the member picker and cross-system activity reporting API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		overrideConfigFromFlags(cmd, cfg)
		if err := config.Validate(cfg); err != nil {
			return err
		}

		logger := log.NewLogger(cfg.Log.Level, cfg.Log.Format)
		logrus.SetFormatter(logger.Formatter)
		logrus.SetLevel(logger.Level)
		logrus.SetOutput(logger.Out)

		if runServe == nil {
			return fmt.Errorf("server is not configured")
		}

		return runServe(context.Background(), cfg)
	},
}

// Execute runs the CLI or Lambda handler depending on environment.
func Execute() {
	if isLambda() {
		if lambdaHandler == nil {
			logrus.Fatal("lambda handler is not configured")
		}
		lambda.Start(lambdaHandler)
		return
	}

	if err := rootCmd.Execute(); err != nil {
		logrus.Fatal(err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file path")
	rootCmd.PersistentFlags().StringVar(&flagAddr, "addr", "", "API listen address")
	rootCmd.PersistentFlags().StringVar(&flagDirectoryEndpoint, "directory-endpoint", "", "Directory-lookup service base URL")
	rootCmd.PersistentFlags().StringVar(&flagDirectoryToken, "directory-token", "", "Directory-lookup service bearer token")
	rootCmd.PersistentFlags().StringVar(&flagGroups, "groups", "", "Comma-separated default group scope")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: text, json, or pretty")
}

func isLambda() bool {
	return os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""
}

func overrideConfigFromFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("addr") {
		cfg.Server.Addr = flagAddr
	}
	if cmd.Flags().Changed("directory-endpoint") {
		cfg.Directory.Endpoint = flagDirectoryEndpoint
	}
	if cmd.Flags().Changed("directory-token") {
		cfg.Directory.Token = flagDirectoryToken
	}
	if cmd.Flags().Changed("groups") {
		cfg.Directory.Groups = splitFlagList(flagGroups)
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Log.Level = flagLogLevel
	}
	if cmd.Flags().Changed("log-format") {
		cfg.Log.Format = flagLogFormat
	}
}

func splitFlagList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
