package chatops

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/linkhub-io/linkhub/app/form"
	"github.com/linkhub-io/linkhub/app/github"
	"github.com/linkhub-io/linkhub/app/record"
)

// syncedField maps a correction-form alias chain onto a target record field.
// Alias tables are data: adding a syncable field is a table entry, not code.
type syncedField struct {
	aliases []string
	get     func(*record.SiteRecord) string
	set     func(*record.SiteRecord, string)
}

var syncedFields = []syncedField{
	{
		aliases: []string{"site_name", "name"},
		get:     func(r *record.SiteRecord) string { return r.Name },
		set:     func(r *record.SiteRecord, v string) { r.Name = v },
	},
	{
		aliases: []string{"new_site_url", "site_url"},
		get:     func(r *record.SiteRecord) string { return r.URL },
		set:     func(r *record.SiteRecord, v string) { r.URL = v },
	},
	{
		aliases: []string{"description", "detailed_description"},
		get:     func(r *record.SiteRecord) string { return r.Description },
		set:     func(r *record.SiteRecord, v string) { r.Description = v },
	},
	{
		aliases: []string{"cover_image", "cover"},
		get:     func(r *record.SiteRecord) string { return r.Cover },
		set:     func(r *record.SiteRecord, v string) { r.Cover = v },
	},
}

// approveMerge applies an approved correction issue onto its target site
// record: field-level sync for the syncable keys, wholesale category list
// replacement, and cleanup of the correction issue itself.
func (d *Dispatcher) approveMerge(ctx context.Context, issue *github.Issue) error {
	data := form.Parse(issue.Body)

	targetID := form.First(data, "site_id", "id", "target_id")
	if targetID == "" {
		return d.gh.CreateComment(ctx, issue.Number,
			"❌ **无法解析目标站点 ID** | Unable to resolve the target site id from the form.")
	}

	target, err := d.sites.Store().Load(targetID)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return d.gh.CreateComment(ctx, issue.Number,
				fmt.Sprintf("❌ **目标记录不存在** | Target record `%s.json` not found.", targetID))
		}
		return fmt.Errorf("failed to load target record %s: %w", targetID, err)
	}

	changed := false
	for _, f := range syncedFields {
		value := form.First(data, f.aliases...)
		if value == "" || value == f.get(&target) {
			continue
		}
		f.set(&target, value)
		changed = true
	}

	if raw := data["categories"]; raw != "" {
		if cats := form.Checkboxes(raw); len(cats) > 0 && !equalStrings(cats, target.Categories) {
			target.Categories = cats
			changed = true
		}
	}

	if !changed {
		return d.gh.CreateComment(ctx, issue.Number,
			"ℹ️ **没有有效变更** | No valid changes to apply; the record is already up to date.")
	}

	if err := d.sites.Store().Save(targetID, target); err != nil {
		return fmt.Errorf("failed to save merged record %s: %w", targetID, err)
	}

	// Older automation staged a file for correction issues; remove it if
	// one is present.
	if err := d.sites.Store().Delete(strconv.Itoa(issue.Number)); err != nil {
		slog.Warn("Failed to delete staged correction file", "issue", issue.Number, "error", err)
	}

	if err := d.gh.UpdateIssue(ctx, issue.Number, github.IssueUpdate{State: "closed"}); err != nil {
		return fmt.Errorf("failed to close correction issue #%d: %w", issue.Number, err)
	}

	return d.gh.CreateComment(ctx, issue.Number,
		fmt.Sprintf("✅ **更新成功** | Correction merged into `%s.json`.", targetID))
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
