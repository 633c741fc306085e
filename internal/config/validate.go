package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/internal-tools/org-activity-reports/internal/models"
)

// Validate ensures configuration is complete and well-formed.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	var errs []string

	requireNonEmpty := func(value string, field string) {
		if value == "" {
			errs = append(errs, fmt.Sprintf("%s is required", field))
		}
	}

	requireNonEmpty(cfg.Directory.Endpoint, "directory.endpoint")
	if cfg.Directory.Endpoint != "" {
		if u, err := url.Parse(cfg.Directory.Endpoint); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, "directory.endpoint must be a valid URL")
		}
	}
	if cfg.Directory.TimeoutSeconds <= 0 {
		errs = append(errs, "directory.timeout_seconds must be positive")
	}
	for _, label := range cfg.Directory.Groups {
		if _, ok := models.ParseGroupTag(label); !ok {
			errs = append(errs, fmt.Sprintf("directory.groups contains unrecognized group %q", label))
		}
	}

	if !cfg.IsLambda {
		requireNonEmpty(cfg.Server.Addr, "server.addr")
	}

	// Sources are individually optional, but a partially configured source is
	// a misconfiguration rather than a disabled one.
	if cfg.Sources.Jira.Token != "" || cfg.Sources.Jira.TokenSecret != "" {
		requireNonEmpty(cfg.Sources.Jira.BaseURL, "sources.jira.base_url")
		requireNonEmpty(cfg.Sources.Jira.Username, "sources.jira.username")
	}
	if cfg.Sources.GitHub.Token != "" || cfg.Sources.GitHub.TokenSecret != "" {
		requireNonEmpty(cfg.Sources.GitHub.Organization, "sources.github.organization")
	}
	if cfg.Sources.Calendar.CredentialsFile != "" || cfg.Sources.Calendar.CredentialsSecret != "" {
		requireNonEmpty(cfg.Sources.Calendar.ImpersonateEmail, "sources.calendar.impersonate_email")
		requireNonEmpty(cfg.Sources.Calendar.EmailDomain, "sources.calendar.email_domain")
	}

	if cfg.Snapshots.Enabled {
		requireNonEmpty(cfg.Snapshots.TableName, "snapshots.table_name")
		requireNonEmpty(cfg.Snapshots.Region, "snapshots.region")
		if cfg.Snapshots.TTLDays <= 0 {
			errs = append(errs, "snapshots.ttl_days must be positive")
		}
		if cfg.Snapshots.RangeDays <= 0 {
			errs = append(errs, "snapshots.range_days must be positive")
		}
	}

	if cfg.Metrics.Enabled {
		requireNonEmpty(cfg.Metrics.Namespace, "metrics.namespace")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GroupScope resolves the configured group labels into GroupTags, defaulting
// to the canonical groups when none are configured.
func (c *DirectoryConfig) GroupScope() []models.GroupTag {
	if len(c.Groups) == 0 {
		return models.CanonicalGroups()
	}
	groups := make([]models.GroupTag, 0, len(c.Groups))
	for _, label := range c.Groups {
		if g, ok := models.ParseGroupTag(label); ok {
			groups = append(groups, g)
		}
	}
	return groups
}
