package health

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/linkhub-io/linkhub/app/github"
	"github.com/linkhub-io/linkhub/app/labels"
	"github.com/linkhub-io/linkhub/app/record"
)

// Prober performs a bounded batch of reachability checks against the listed
// sites, oldest last_check first, and applies the resulting lifecycle
// transitions to the record store and the remote issue labels.
type Prober struct {
	store      *record.Store[record.SiteRecord]
	gh         github.Client
	httpClient *http.Client
	timeout    time.Duration
	batchSize  int
	userAgent  string
	admins     []string
	now        func() time.Time
}

func NewProber(store *record.Store[record.SiteRecord], gh github.Client,
	timeout time.Duration, batchSize int, userAgent string, admins []string) *Prober {
	return &Prober{
		store: store,
		gh:    gh,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		timeout:   timeout,
		batchSize: batchSize,
		userAgent: userAgent,
		admins:    admins,
		now:       time.Now,
	}
}

// Check probes a single URL. It never returns an error: timeouts, connection
// failures, and non-success statuses all resolve to unreachable.
func (p *Prober) Check(ctx context.Context, url string) bool {
	timeoutCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(timeoutCtx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", p.userAgent)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode >= 200 && resp.StatusCode < 400
}

// Run executes one health check pass. Each site is an isolated unit of work:
// collaborator failures are logged and do not stop the batch.
func (p *Prober) Run(ctx context.Context) error {
	entries, err := p.store.List()
	if err != nil {
		return fmt.Errorf("failed to list site records: %w", err)
	}

	// Oldest check first; last_check is a sortable "YYYY-MM-DD HH:MM"
	// string, so plain string comparison matches chronological order.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Record.LastCheck < entries[j].Record.LastCheck
	})

	if len(entries) > p.batchSize {
		entries = entries[:p.batchSize]
	}

	slog.Info("Starting health check", "sites", len(entries))

	for _, entry := range entries {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		p.checkSite(ctx, entry.Key, entry.Record)
	}

	slog.Info("Health check complete")
	return nil
}

func (p *Prober) checkSite(ctx context.Context, key string, rec record.SiteRecord) {
	slog.Info("Checking site", "name", rec.Name, "url", rec.URL)

	reachable := p.Check(ctx, rec.URL)
	res := Transition(labels.Status(rec.Status), rec.FailCount, reachable)

	rec.LastCheck = p.now().Format("2006-01-02 15:04")
	rec.Status = string(res.Status)
	rec.FailCount = res.FailCount

	issueNumber, err := strconv.Atoi(key)
	if err != nil {
		slog.Warn("Record key is not an issue number, skipping label sync", "key", key)
	} else {
		p.syncLabels(ctx, issueNumber, res)
	}

	if err := p.store.Save(key, rec); err != nil {
		slog.Error("Failed to save health check result", "site", rec.Name, "error", err)
	}
}

// syncLabels performs the remote label swap and, when a site crosses the
// broken threshold, posts the admin notification. The label mutations are
// awaited before the record write in checkSite completes the transition.
func (p *Prober) syncLabels(ctx context.Context, issueNumber int, res Result) {
	for _, name := range res.RemoveLabels {
		if err := p.gh.RemoveLabel(ctx, issueNumber, name); err != nil {
			slog.Error("Failed to remove label", "issue", issueNumber, "label", name, "error", err)
		}
	}

	if len(res.AddLabels) > 0 {
		if err := p.gh.AddLabels(ctx, issueNumber, res.AddLabels); err != nil {
			slog.Error("Failed to add labels", "issue", issueNumber, "labels", res.AddLabels, "error", err)
		}
	}

	if res.NotifyAdmins {
		if err := p.gh.CreateComment(ctx, issueNumber, p.notifyMessage()); err != nil {
			slog.Error("Failed to post admin notification", "issue", issueNumber, "error", err)
		}
	}
}

func (p *Prober) notifyMessage() string {
	mentions := make([]string, 0, len(p.admins))
	for _, a := range p.admins {
		mentions = append(mentions, "@"+a)
	}

	return joinMentions(mentions) +
		"⚠️ **站点检测异常** | Site health check failed.\n\n" +
		"该站点已连续 3 次探测失败，状态已变更为 `broken`。请检查站点是否可用并决定是否保留。\n" +
		"This site has failed 3 consecutive checks and status has been set to `broken`. Please check the site availability."
}

func joinMentions(mentions []string) string {
	if len(mentions) == 0 {
		return ""
	}
	return strings.Join(mentions, " ") + "\n\n"
}

// WithClock returns a copy of the prober using the given clock. Intended
// for tests.
func (p *Prober) WithClock(now func() time.Time) *Prober {
	clone := *p
	clone.now = now
	return &clone
}
