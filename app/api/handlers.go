package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/linkhub-io/linkhub/app/aggregate"
	"github.com/linkhub-io/linkhub/app/record"
)

func NewHandler(aggregator *aggregate.Aggregator, sites *record.Store[record.SiteRecord],
	categories *record.Store[record.CategoryRecord]) *Handler {
	return &Handler{
		aggregator: aggregator,
		sites:      sites,
		categories: categories,
	}
}

// GetSites serves the published site collection, aggregated on demand so
// the endpoint reflects the record files without a rebuild step.
func (h *Handler) GetSites(c *gin.Context) {
	sites, err := h.aggregator.CollectSites()
	if err != nil {
		slog.Error("Failed to collect sites", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to collect sites"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sites": sites,
		"total": len(sites),
	})
}

// GetCategories serves the published category collection (default seed plus
// approved overrides).
func (h *Handler) GetCategories(c *gin.Context) {
	categories, err := h.aggregator.CollectCategories()
	if err != nil {
		slog.Error("Failed to collect categories", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to collect categories"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"categories": categories,
		"total":      len(categories),
	})
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := gin.H{
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}

	if entries, err := h.sites.List(); err == nil {
		health["site_records"] = len(entries)
	}
	if entries, err := h.categories.List(); err == nil {
		health["category_records"] = len(entries)
	}

	c.JSON(http.StatusOK, health)
}
