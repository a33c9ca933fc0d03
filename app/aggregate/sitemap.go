package aggregate

import (
	"bytes"
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/linkhub-io/linkhub/app/record"
)

// WriteSitemap emits a sitemap.xml for the published site collection: the
// directory root plus one /site/<id> detail URL per site.
func WriteSitemap(sites []record.SiteRecord, siteURL, outPath string) error {
	baseURL := strings.TrimSuffix(siteURL, "/")
	now := time.Now().UTC().Format(time.RFC3339)

	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	buf.WriteString("\n")

	writeURL(&buf, baseURL+"/", now, "daily", "1.0")
	for _, site := range sites {
		writeURL(&buf, fmt.Sprintf("%s/site/%s", baseURL, site.ID), now, "weekly", "0.8")
	}

	buf.WriteString("</urlset>\n")

	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return fmt.Errorf("failed to create sitemap directory: %w", err)
	}
	if err := os.WriteFile(outPath, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write sitemap: %w", err)
	}

	return nil
}

func writeURL(buf *bytes.Buffer, loc, lastmod, changefreq, priority string) {
	buf.WriteString("  <url>\n")
	buf.WriteString(fmt.Sprintf("    <loc>%s</loc>\n", html.EscapeString(loc)))
	buf.WriteString(fmt.Sprintf("    <lastmod>%s</lastmod>\n", lastmod))
	buf.WriteString(fmt.Sprintf("    <changefreq>%s</changefreq>\n", changefreq))
	buf.WriteString(fmt.Sprintf("    <priority>%s</priority>\n", priority))
	buf.WriteString("  </url>\n")
}
