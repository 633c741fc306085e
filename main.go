package main

import (
	"context"
	"fmt"
	"time"

	"github.com/internal-tools/org-activity-reports/cmd"
	"github.com/internal-tools/org-activity-reports/internal/config"
	"github.com/internal-tools/org-activity-reports/internal/directory"
	"github.com/internal-tools/org-activity-reports/internal/interfaces"
	"github.com/internal-tools/org-activity-reports/internal/metrics"
	"github.com/internal-tools/org-activity-reports/internal/models"
	"github.com/internal-tools/org-activity-reports/internal/picker"
	"github.com/internal-tools/org-activity-reports/internal/reports"
	"github.com/internal-tools/org-activity-reports/internal/reports/sources"
	"github.com/internal-tools/org-activity-reports/internal/secrets"
	"github.com/internal-tools/org-activity-reports/internal/server"
	"github.com/internal-tools/org-activity-reports/internal/snapshots"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/sirupsen/logrus"
)

func main() {
	cmd.SetLambdaHandler(HandleRequest)
	cmd.SetRunServe(runServe)
	cmd.Execute()
}

// HandleRequest is the AWS Lambda handler: on a scheduled event it builds an
// activity report for the default scope and stores a snapshot.
func HandleRequest(ctx context.Context, event models.LambdaEvent) (*models.LambdaResponse, error) {
	if event.Source != "" || event.DetailType != "" {
		if !isScheduledEvent(event) {
			return models.NewErrorResponse(fmt.Errorf("unsupported event source")), nil
		}
	}
	cfg, err := config.Load("")
	if err != nil {
		return models.NewErrorResponse(err), nil
	}
	if err := config.Validate(cfg); err != nil {
		return models.NewErrorResponse(err), nil
	}

	report, err := runSnapshot(ctx, cfg, event.EffectiveRangeDays(cfg.Snapshots.RangeDays))
	if err != nil {
		return models.NewErrorResponse(err), nil
	}

	return models.NewSuccessResponse(report), nil
}

func isScheduledEvent(event models.LambdaEvent) bool {
	return event.Source == "aws.events" && event.DetailType == "Scheduled Event"
}

var runServe = func(ctx context.Context, cfg *config.Config) error {
	deps, err := buildDependencies(ctx, cfg)
	if err != nil {
		return err
	}

	srv := server.New(server.Options{
		Cache:         deps.cache,
		Directory:     deps.directory,
		Engine:        deps.engine,
		Store:         deps.store,
		DefaultGroups: cfg.Directory.GroupScope(),
		SnapshotTTL:   cfg.Snapshots.TTLDays,
	})
	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

// runSnapshot is the scheduled job: select every member in the default scope
// and persist the report.
var runSnapshot = func(ctx context.Context, cfg *config.Config, rangeDays int) (*models.ActivityReport, error) {
	deps, err := buildDependencies(ctx, cfg)
	if err != nil {
		return nil, err
	}

	groups := cfg.Directory.GroupScope()
	key := picker.Key(groups)

	members, _, err := deps.cache.GetOrFetch(ctx, key, models.ScopeActive, func(ctx context.Context) ([]models.Member, error) {
		return deps.directory.FetchMembers(ctx, groups, false)
	})
	if err != nil {
		return nil, fmt.Errorf("loading directory: %w", err)
	}

	now := time.Now().UTC()
	rng := models.DateRange{From: now.AddDate(0, 0, -rangeDays), To: now}
	report, err := deps.engine.Build(ctx, members, rng)
	if err != nil {
		return nil, err
	}

	snapshotSaved := false
	if deps.store != nil {
		snapshot := models.NewReportSnapshot(key, *report, cfg.Snapshots.TTLDays)
		if err := deps.store.SaveSnapshot(ctx, snapshot); err != nil {
			logrus.WithError(err).Warn("⚠ Snapshot save failed (report is still returned)")
		} else {
			snapshotSaved = true
		}
	}

	if deps.metrics != nil {
		hits, misses := deps.cache.Stats()
		stats := metrics.RunStats{
			MembersSelected: len(members),
			SourceErrors:    len(report.SourceErrors),
			CacheHits:       hits,
			CacheMisses:     misses,
			DurationMs:      report.DurationMs,
			SnapshotSaved:   snapshotSaved,
		}
		if err := deps.metrics.EmitRun(ctx, stats); err != nil {
			logrus.WithError(err).Warn("⚠ Metrics emission failed")
		}
	}

	return report, nil
}

type dependencies struct {
	cache     *picker.Cache
	directory interfaces.DirectoryClient
	engine    *reports.Engine
	store     interfaces.SnapshotStore
	metrics   *metrics.Emitter
}

func buildDependencies(ctx context.Context, cfg *config.Config) (*dependencies, error) {
	dirToken, err := secrets.ResolveToken(cfg.Directory.Token, cfg.Directory.TokenSecret, cfg.Directory.TokenFile)
	if err != nil {
		return nil, fmt.Errorf("directory token: %w", err)
	}

	dirClient, err := directory.NewClient(cfg.Directory.Endpoint, dirToken, time.Duration(cfg.Directory.TimeoutSeconds)*time.Second)
	if err != nil {
		return nil, err
	}

	engine, err := buildEngine(ctx, cfg)
	if err != nil {
		return nil, err
	}

	deps := &dependencies{
		cache:     picker.NewCache(),
		directory: dirClient,
		engine:    engine,
	}

	if cfg.Snapshots.Enabled {
		store, storeErr := snapshots.NewStore(ctx, cfg.Snapshots)
		if storeErr != nil {
			logrus.WithError(storeErr).Warn("⚠ Snapshot store init failed — report snapshots disabled")
		} else {
			deps.store = store
			logrus.WithFields(logrus.Fields{
				"table":    cfg.Snapshots.TableName,
				"region":   cfg.Snapshots.Region,
				"ttl_days": cfg.Snapshots.TTLDays,
			}).Info("✅ Report snapshots enabled (DynamoDB)")
		}
	}

	if cfg.Metrics.Enabled {
		var opts []func(*awsconfig.LoadOptions) error
		if cfg.Metrics.Region != "" {
			opts = append(opts, awsconfig.WithRegion(cfg.Metrics.Region))
		}
		awsCfg, awsErr := awsconfig.LoadDefaultConfig(ctx, opts...)
		if awsErr != nil {
			logrus.WithError(awsErr).Warn("⚠ CloudWatch init failed — metrics disabled")
		} else {
			deps.metrics = metrics.NewEmitter(awsCfg, cfg.Metrics.Namespace)
		}
	}

	return deps, nil
}

// buildEngine wires every report source that has credentials configured.
func buildEngine(ctx context.Context, cfg *config.Config) (*reports.Engine, error) {
	var (
		chat     interfaces.ChatSource
		issues   interfaces.IssueSource
		reviews  interfaces.ReviewSource
		calendar interfaces.CalendarSource
	)

	slackToken, err := secrets.ResolveToken(cfg.Sources.Slack.Token, cfg.Sources.Slack.TokenSecret, "")
	if err != nil {
		return nil, fmt.Errorf("slack token: %w", err)
	}
	if slackToken != "" {
		client, clientErr := sources.NewChatClient(slackToken)
		if clientErr != nil {
			return nil, clientErr
		}
		chat = client
	}

	jiraToken, err := secrets.ResolveToken(cfg.Sources.Jira.Token, cfg.Sources.Jira.TokenSecret, "")
	if err != nil {
		return nil, fmt.Errorf("jira token: %w", err)
	}
	if jiraToken != "" {
		client, clientErr := sources.NewIssueClient(cfg.Sources.Jira.BaseURL, cfg.Sources.Jira.Username, jiraToken)
		if clientErr != nil {
			return nil, clientErr
		}
		issues = client
	}

	githubToken, err := secrets.ResolveToken(cfg.Sources.GitHub.Token, cfg.Sources.GitHub.TokenSecret, "")
	if err != nil {
		return nil, fmt.Errorf("github token: %w", err)
	}
	if githubToken != "" {
		client, clientErr := sources.NewReviewClient(githubToken, cfg.Sources.GitHub.Organization)
		if clientErr != nil {
			return nil, clientErr
		}
		reviews = client
	}

	if cfg.Sources.Calendar.CredentialsFile != "" || cfg.Sources.Calendar.CredentialsSecret != "" {
		creds, credsErr := secrets.ResolveToken("", cfg.Sources.Calendar.CredentialsSecret, cfg.Sources.Calendar.CredentialsFile)
		if credsErr != nil {
			return nil, fmt.Errorf("calendar credentials: %w", credsErr)
		}
		client, clientErr := sources.NewCalendarClient(ctx, []byte(creds), cfg.Sources.Calendar.ImpersonateEmail, cfg.Sources.Calendar.EmailDomain)
		if clientErr != nil {
			return nil, clientErr
		}
		calendar = client
	}

	logrus.WithFields(logrus.Fields{
		"chat":     chat != nil,
		"issues":   issues != nil,
		"reviews":  reviews != nil,
		"calendar": calendar != nil,
	}).Info("report sources configured")

	return reports.NewEngine(chat, issues, reviews, calendar), nil
}
