package config

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Load reads configuration from file, environment variables, and defaults.
func Load(configFile string) (*Config, error) {
	v := viper.New()
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("directory.timeout_seconds", 15)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("snapshots.enabled", false)
	v.SetDefault("snapshots.table_name", "activity-report-snapshots")
	v.SetDefault("snapshots.region", "eu-west-1")
	v.SetDefault("snapshots.ttl_days", 180)
	v.SetDefault("snapshots.range_days", 7)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.namespace", "OrgActivityReports")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	_ = v.BindEnv("directory.endpoint", "DIRECTORY_ENDPOINT")
	_ = v.BindEnv("directory.token", "DIRECTORY_TOKEN")
	_ = v.BindEnv("directory.token_secret", "DIRECTORY_TOKEN_SECRET")
	_ = v.BindEnv("directory.token_file", "DIRECTORY_TOKEN_FILE")
	_ = v.BindEnv("directory.groups", "DIRECTORY_GROUPS")
	_ = v.BindEnv("directory.timeout_seconds", "DIRECTORY_TIMEOUT_SECONDS")
	_ = v.BindEnv("server.addr", "SERVER_ADDR")
	_ = v.BindEnv("sources.slack.token", "SLACK_TOKEN")
	_ = v.BindEnv("sources.slack.token_secret", "SLACK_TOKEN_SECRET")
	_ = v.BindEnv("sources.jira.base_url", "JIRA_BASE_URL")
	_ = v.BindEnv("sources.jira.username", "JIRA_USERNAME")
	_ = v.BindEnv("sources.jira.token", "JIRA_TOKEN")
	_ = v.BindEnv("sources.jira.token_secret", "JIRA_TOKEN_SECRET")
	_ = v.BindEnv("sources.github.organization", "GITHUB_ORG")
	_ = v.BindEnv("sources.github.token", "GITHUB_TOKEN")
	_ = v.BindEnv("sources.github.token_secret", "GITHUB_TOKEN_SECRET")
	_ = v.BindEnv("sources.calendar.credentials_file", "CALENDAR_CREDENTIALS_FILE")
	_ = v.BindEnv("sources.calendar.credentials_secret", "CALENDAR_CREDENTIALS_SECRET")
	_ = v.BindEnv("sources.calendar.impersonate_email", "CALENDAR_IMPERSONATE_EMAIL")
	_ = v.BindEnv("sources.calendar.email_domain", "CALENDAR_EMAIL_DOMAIN")
	_ = v.BindEnv("snapshots.enabled", "SNAPSHOTS_ENABLED")
	_ = v.BindEnv("snapshots.table_name", "SNAPSHOTS_TABLE_NAME")
	_ = v.BindEnv("snapshots.region", "SNAPSHOTS_REGION")
	_ = v.BindEnv("snapshots.endpoint", "SNAPSHOTS_ENDPOINT")
	_ = v.BindEnv("snapshots.ttl_days", "SNAPSHOTS_TTL_DAYS")
	_ = v.BindEnv("snapshots.range_days", "SNAPSHOTS_RANGE_DAYS")
	_ = v.BindEnv("metrics.enabled", "METRICS_ENABLED")
	_ = v.BindEnv("metrics.namespace", "METRICS_NAMESPACE")
	_ = v.BindEnv("metrics.region", "METRICS_REGION")
	_ = v.BindEnv("log.level", "LOG_LEVEL")
	_ = v.BindEnv("log.format", "LOG_FORMAT")

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	// Explicitly map values to avoid tag mismatch issues.
	cfg.Directory.Endpoint = v.GetString("directory.endpoint")
	cfg.Directory.Token = v.GetString("directory.token")
	cfg.Directory.TokenSecret = v.GetString("directory.token_secret")
	cfg.Directory.TokenFile = v.GetString("directory.token_file")
	cfg.Directory.Groups = splitGroups(v.GetString("directory.groups"))
	cfg.Directory.TimeoutSeconds = v.GetInt("directory.timeout_seconds")

	cfg.Server.Addr = v.GetString("server.addr")

	cfg.Sources.Slack.Token = v.GetString("sources.slack.token")
	cfg.Sources.Slack.TokenSecret = v.GetString("sources.slack.token_secret")
	cfg.Sources.Jira.BaseURL = v.GetString("sources.jira.base_url")
	cfg.Sources.Jira.Username = v.GetString("sources.jira.username")
	cfg.Sources.Jira.Token = v.GetString("sources.jira.token")
	cfg.Sources.Jira.TokenSecret = v.GetString("sources.jira.token_secret")
	cfg.Sources.GitHub.Organization = v.GetString("sources.github.organization")
	cfg.Sources.GitHub.Token = v.GetString("sources.github.token")
	cfg.Sources.GitHub.TokenSecret = v.GetString("sources.github.token_secret")
	cfg.Sources.Calendar.CredentialsFile = v.GetString("sources.calendar.credentials_file")
	cfg.Sources.Calendar.CredentialsSecret = v.GetString("sources.calendar.credentials_secret")
	cfg.Sources.Calendar.ImpersonateEmail = v.GetString("sources.calendar.impersonate_email")
	cfg.Sources.Calendar.EmailDomain = v.GetString("sources.calendar.email_domain")

	cfg.Snapshots.Enabled = v.GetBool("snapshots.enabled")
	cfg.Snapshots.TableName = v.GetString("snapshots.table_name")
	cfg.Snapshots.Region = v.GetString("snapshots.region")
	cfg.Snapshots.Endpoint = v.GetString("snapshots.endpoint")
	cfg.Snapshots.TTLDays = v.GetInt("snapshots.ttl_days")
	cfg.Snapshots.RangeDays = v.GetInt("snapshots.range_days")

	cfg.Metrics.Enabled = v.GetBool("metrics.enabled")
	cfg.Metrics.Namespace = v.GetString("metrics.namespace")
	cfg.Metrics.Region = v.GetString("metrics.region")

	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")

	cfg.IsLambda = os.Getenv("AWS_LAMBDA_FUNCTION_NAME") != ""

	return cfg, nil
}

func splitGroups(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	groups := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			groups = append(groups, trimmed)
		}
	}
	return groups
}
