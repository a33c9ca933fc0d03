package aggregate

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/linkhub-io/linkhub/app/labels"
	"github.com/linkhub-io/linkhub/app/record"
)

// Published collection filenames under the data directory.
const (
	SiteCollectionFile     = "site_all.json"
	CategoryCollectionFile = "category_all.json"
	DefaultCategoryFile    = "category_all_default.json"
)

// Aggregator folds the per-issue record files into the two published
// collections consumed by the frontend.
type Aggregator struct {
	sites      *record.Store[record.SiteRecord]
	categories *record.Store[record.CategoryRecord]
	dataDir    string
}

func NewAggregator(sites *record.Store[record.SiteRecord],
	categories *record.Store[record.CategoryRecord], dataDir string) *Aggregator {
	return &Aggregator{
		sites:      sites,
		categories: categories,
		dataDir:    dataDir,
	}
}

// Run rebuilds both collections and returns them for downstream emission
// (sitemap, template sync).
func (a *Aggregator) Run() ([]record.SiteRecord, []record.CategoryRecord, error) {
	sites, err := a.CollectSites()
	if err != nil {
		return nil, nil, err
	}
	if err := a.writeCollection(SiteCollectionFile, sites); err != nil {
		return nil, nil, err
	}
	slog.Info("Aggregated sites", "count", len(sites))

	categories, err := a.CollectCategories()
	if err != nil {
		return nil, nil, err
	}
	if err := a.writeCollection(CategoryCollectionFile, categories); err != nil {
		return nil, nil, err
	}
	slog.Info("Aggregated categories", "count", len(categories))

	return sites, categories, nil
}

// CollectSites returns every site record that is published: active sites,
// plus warning ones so flaky sites stay visible while being watched.
func (a *Aggregator) CollectSites() ([]record.SiteRecord, error) {
	entries, err := a.sites.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list site records: %w", err)
	}

	sites := make([]record.SiteRecord, 0, len(entries))
	for _, entry := range entries {
		switch labels.Status(entry.Record.Status) {
		case labels.StatusValActive, labels.StatusValWarning:
			sites = append(sites, entry.Record)
		}
	}

	return sites, nil
}

// CollectCategories merges the static default seed list underneath the
// dynamically approved category records. A dynamic record with a matching id
// overrides the default entry in place; new ids are appended.
func (a *Aggregator) CollectCategories() ([]record.CategoryRecord, error) {
	categories := a.loadDefaults()

	entries, err := a.categories.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list category records: %w", err)
	}

	for _, entry := range entries {
		if labels.Status(entry.Record.Status) != labels.StatusValActive {
			continue
		}

		replaced := false
		for i := range categories {
			if categories[i].ID == entry.Record.ID {
				categories[i] = entry.Record
				replaced = true
				break
			}
		}
		if !replaced {
			categories = append(categories, entry.Record)
		}
	}

	return categories, nil
}

func (a *Aggregator) loadDefaults() []record.CategoryRecord {
	data, err := os.ReadFile(filepath.Join(a.dataDir, DefaultCategoryFile))
	if err != nil {
		if !os.IsNotExist(err) {
			slog.Warn("Failed to read default categories", "error", err)
		}
		return nil
	}

	var defaults []record.CategoryRecord
	if err := json.Unmarshal(data, &defaults); err != nil {
		slog.Warn("Failed to parse default categories", "error", err)
		return nil
	}

	slog.Debug("Loaded default categories", "count", len(defaults))
	return defaults
}

func (a *Aggregator) writeCollection(name string, collection any) error {
	data, err := json.MarshalIndent(collection, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	if err := os.MkdirAll(a.dataDir, 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := os.WriteFile(filepath.Join(a.dataDir, name), data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}

	return nil
}
