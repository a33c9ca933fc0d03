package aggregate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/linkhub-io/linkhub/app/record"
)

const submissionTemplate = `name: 站点提交 | Site Submission
labels:
  - triage
  - kind:site
assignees:
  - acme
body:
  - type: input
    id: site_name
    attributes:
      label: 站点名称 (Name)
    validations:
      required: true
  - type: dropdown
    id: priority
    attributes:
      label: 优先级 (Priority)
      multiple: false
      options:
        - high
        - low
  - type: checkboxes
    id: categories
    attributes:
      label: 分类 (Categories)
      options:
        - label: stale (旧分类)
  - type: textarea
    id: description
    attributes:
      label: 站点描述 (Description)
      render: markdown
`

func writeTemplate(t *testing.T, repoRoot string) string {
	t.Helper()

	dir := filepath.Join(repoRoot, ".github", "ISSUE_TEMPLATE")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "site_submission.yml")
	if err := os.WriteFile(path, []byte(submissionTemplate), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func syncAndReload(t *testing.T, repoRoot, path string) (*yaml.Node, string) {
	t.Helper()

	categories := []record.CategoryRecord{
		{ID: "tool", Name: "工具"},
		{ID: "doc", Name: "文档"},
	}
	if err := SyncTemplates(repoRoot, categories); err != nil {
		t.Fatalf("SyncTemplates failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		t.Fatalf("Rewritten template is not valid YAML: %v", err)
	}
	return doc.Content[0], string(data)
}

func TestSyncTemplatesRewritesCategoryOptions(t *testing.T) {
	repoRoot := t.TempDir()
	path := writeTemplate(t, repoRoot)

	root, _ := syncAndReload(t, repoRoot, path)

	body := mappingValue(root, "body")
	if body == nil {
		t.Fatal("Expected body sequence in rewritten template")
	}

	var options *yaml.Node
	for _, item := range body.Content {
		if mappingScalar(item, "id") == "categories" {
			options = mappingValue(mappingValue(item, "attributes"), "options")
		}
	}
	if options == nil || len(options.Content) != 2 {
		t.Fatalf("Expected 2 category options, got %v", options)
	}
	if got := mappingScalar(options.Content[0], "label"); got != "tool (工具)" {
		t.Errorf("Expected first option 'tool (工具)', got %q", got)
	}
	if got := mappingScalar(options.Content[1], "label"); got != "doc (文档)" {
		t.Errorf("Expected second option 'doc (文档)', got %q", got)
	}
}

func TestSyncTemplatesToleratesDropdownBlocks(t *testing.T) {
	// Dropdown options are plain strings, not label mappings; the rewrite
	// must neither choke on them nor touch them.
	repoRoot := t.TempDir()
	path := writeTemplate(t, repoRoot)

	root, _ := syncAndReload(t, repoRoot, path)

	body := mappingValue(root, "body")
	var dropdown *yaml.Node
	for _, item := range body.Content {
		if mappingScalar(item, "id") == "priority" {
			dropdown = item
		}
	}
	if dropdown == nil {
		t.Fatal("Expected dropdown item preserved")
	}
	options := mappingValue(mappingValue(dropdown, "attributes"), "options")
	if options == nil || len(options.Content) != 2 || options.Content[0].Value != "high" {
		t.Errorf("Expected dropdown options untouched, got %v", options)
	}
}

func TestSyncTemplatesPreservesUnrelatedAttributes(t *testing.T) {
	repoRoot := t.TempDir()
	path := writeTemplate(t, repoRoot)

	root, out := syncAndReload(t, repoRoot, path)

	if !strings.Contains(out, "render: markdown") {
		t.Error("Expected the textarea's render attribute preserved")
	}
	if !strings.Contains(out, "multiple: false") {
		t.Error("Expected the dropdown's multiple attribute preserved")
	}

	assignees := mappingValue(root, "assignees")
	if assignees == nil || len(assignees.Content) != 1 || assignees.Content[0].Value != "acme" {
		t.Errorf("Expected top-level assignees preserved, got %v", assignees)
	}

	labels := mappingValue(root, "labels")
	if labels == nil || len(labels.Content) != 2 || labels.Content[1].Value != "kind:site" {
		t.Errorf("Expected form labels preserved, got %v", labels)
	}

	body := mappingValue(root, "body")
	input := body.Content[0]
	if mappingScalar(input, "id") != "site_name" {
		t.Errorf("Expected input item first, got %v", input)
	}
	if mappingScalar(mappingValue(input, "validations"), "required") != "true" {
		t.Error("Expected input validations preserved")
	}
}

func TestSyncTemplatesWithoutCategoriesBlockLeavesFileUntouched(t *testing.T) {
	repoRoot := t.TempDir()
	dir := filepath.Join(repoRoot, ".github", "ISSUE_TEMPLATE")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	original := "name: 站点纠错\nbody:\n  - type: input\n    id: site_id\n    attributes:\n      label: 站点 ID (Site ID)\n"
	path := filepath.Join(dir, "site_correction.yml")
	if err := os.WriteFile(path, []byte(original), 0644); err != nil {
		t.Fatal(err)
	}

	if err := SyncTemplates(repoRoot, []record.CategoryRecord{{ID: "tool"}}); err != nil {
		t.Fatalf("SyncTemplates failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != original {
		t.Error("A form without a categories block must not be rewritten")
	}
}

func TestSyncTemplatesSkipsMissingFiles(t *testing.T) {
	if err := SyncTemplates(t.TempDir(), []record.CategoryRecord{{ID: "tool"}}); err != nil {
		t.Fatalf("Missing templates must not be an error: %v", err)
	}
}

func TestWriteSitemap(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "public", "sitemap.xml")

	sites := []record.SiteRecord{
		{ID: "42", Name: "Example & Co"},
	}
	if err := WriteSitemap(sites, "https://links.example.com/", outPath); err != nil {
		t.Fatalf("WriteSitemap failed: %v", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)

	if !strings.Contains(out, "<loc>https://links.example.com/</loc>") {
		t.Error("Expected root URL without a doubled slash")
	}
	if !strings.Contains(out, "<loc>https://links.example.com/site/42</loc>") {
		t.Error("Expected a detail URL per site")
	}
	if !strings.Contains(out, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`) {
		t.Error("Expected sitemap namespace declaration")
	}
	if strings.Count(out, "<url>") != 2 {
		t.Errorf("Expected 2 url entries, got %d", strings.Count(out, "<url>"))
	}
}
