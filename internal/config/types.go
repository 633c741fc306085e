package config

// Config holds all configuration for the reporting service.
type Config struct {
	Directory DirectoryConfig `json:"directory"`
	Server    ServerConfig    `json:"server"`
	Sources   SourcesConfig   `json:"sources"`
	Snapshots SnapshotsConfig `json:"snapshots"`
	Metrics   MetricsConfig   `json:"metrics"`
	Log       LogConfig       `json:"log"`
	IsLambda  bool            `json:"-"`
}

// DirectoryConfig holds settings for the directory-lookup service.
type DirectoryConfig struct {
	Endpoint       string   `json:"endpoint"`
	Token          string   `json:"-"`
	TokenSecret    string   `json:"token_secret,omitempty"`
	TokenFile      string   `json:"token_file,omitempty"`
	Groups         []string `json:"groups,omitempty"`
	TimeoutSeconds int      `json:"timeout_seconds"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr string `json:"addr"`
}

// SourcesConfig holds per-source report settings. A source with no
// credentials is disabled and contributes zero counts.
type SourcesConfig struct {
	Slack    SlackConfig    `json:"slack"`
	Jira     JiraConfig     `json:"jira"`
	GitHub   GitHubConfig   `json:"github"`
	Calendar CalendarConfig `json:"calendar"`
}

// SlackConfig holds chat source settings.
type SlackConfig struct {
	Token       string `json:"-"`
	TokenSecret string `json:"token_secret,omitempty"`
}

// JiraConfig holds issue-tracking source settings.
type JiraConfig struct {
	BaseURL     string `json:"base_url,omitempty"`
	Username    string `json:"username,omitempty"`
	Token       string `json:"-"`
	TokenSecret string `json:"token_secret,omitempty"`
}

// GitHubConfig holds code-review source settings.
type GitHubConfig struct {
	Organization string `json:"organization,omitempty"`
	Token        string `json:"-"`
	TokenSecret  string `json:"token_secret,omitempty"`
}

// CalendarConfig holds calendar source settings.
type CalendarConfig struct {
	CredentialsFile   string `json:"credentials_file,omitempty"`
	CredentialsSecret string `json:"credentials_secret,omitempty"`
	ImpersonateEmail  string `json:"impersonate_email,omitempty"`
	EmailDomain       string `json:"email_domain,omitempty"`
}

// SnapshotsConfig holds DynamoDB settings for report snapshots.
type SnapshotsConfig struct {
	Enabled   bool   `json:"enabled"`
	TableName string `json:"table_name"`
	Region    string `json:"region"`
	Endpoint  string `json:"endpoint,omitempty"`
	TTLDays   int    `json:"ttl_days"`
	RangeDays int    `json:"range_days"`
}

// MetricsConfig holds CloudWatch metrics settings.
type MetricsConfig struct {
	Enabled   bool   `json:"enabled"`
	Namespace string `json:"namespace"`
	Region    string `json:"region,omitempty"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}
