package cfg

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// GitHub context
	GitHubToken string `long:"github-token" env:"GITHUB_TOKEN" description:"GitHub API token"`
	Repository  string `long:"repository" env:"GITHUB_REPOSITORY" description:"Repository slug as owner/name"`
	APIBaseURL  string `long:"api-base-url" env:"GITHUB_API_URL" default:"https://api.github.com" description:"GitHub API base URL"`

	// Issue event context
	IssueNumber   string `long:"issue-number" env:"ISSUE_NUMBER" description:"Issue number of the triggering event"`
	IssueState    string `long:"issue-state" env:"ISSUE_STATE" default:"open" description:"Issue state of the triggering event (open/closed)"`
	CommentBody   string `long:"comment-body" env:"COMMENT_BODY" description:"Comment body for chatops commands"`
	CommentAuthor string `long:"comment-author" env:"COMMENT_AUTHOR" description:"Comment author login for chatops commands"`

	// Data layout
	DataDir string `long:"data-dir" env:"DATA_DIR" default:"./data" description:"Directory containing record files and aggregated collections"`
	SiteURL string `long:"site-url" env:"SITE_URL" default:"" description:"Public base URL of the published directory site"`
	Admins  string `long:"admins" env:"ADMINS" default:"" description:"Comma-separated extra admin logins notified on broken sites"`
	Port    string `long:"port" env:"PORT" default:"8080" description:"HTTP server port for the catalog server"`

	// Health checker
	HealthBatchSize int `long:"health-batch-size" env:"HEALTH_BATCH_SIZE" default:"50" description:"Maximum number of sites probed per health run"`
	HealthTimeout   int `long:"health-timeout" env:"HEALTH_TIMEOUT" default:"10" description:"Per-probe timeout in seconds"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"LinkHubBot/1.0" description:"User agent string for HTTP requests"`
	LogFile   string `long:"log-file" env:"LOG_FILE" default:"" description:"Optional JSON log file path"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

// Load reads configuration from environment variables only. Command-line
// arguments belong to the cobra layer, so go-flags is handed an empty
// argument list and fills the struct from env tags and defaults.
func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.IgnoreUnknown)

	if _, err := parser.ParseArgs([]string{}); err != nil {
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		GitHubToken:     raw.GitHubToken,
		Repository:      raw.Repository,
		APIBaseURL:      raw.APIBaseURL,
		IssueNumber:     raw.IssueNumber,
		IssueState:      strings.ToLower(raw.IssueState),
		CommentBody:     strings.TrimSpace(raw.CommentBody),
		CommentAuthor:   raw.CommentAuthor,
		DataDir:         raw.DataDir,
		SiteURL:         raw.SiteURL,
		Admins:          splitAdmins(raw.Admins),
		Port:            raw.Port,
		HealthBatchSize: raw.HealthBatchSize,
		HealthTimeout:   raw.HealthTimeout,
		UserAgent:       raw.UserAgent,
		LogFile:         raw.LogFile,
		Debug:           raw.Debug,
		Version:         GetVersion(),
	}

	if owner, repo, ok := strings.Cut(cfg.Repository, "/"); ok {
		cfg.Owner = owner
		cfg.Repo = repo
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// Set replaces the global configuration. Intended for tests.
func Set(c *Cfg) {
	globalCfg = c
}

func splitAdmins(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	admins := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			admins = append(admins, p)
		}
	}
	return admins
}
