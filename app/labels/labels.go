package labels

// Label vocabulary. The issue's label names are the sole source of truth for
// what kind of request an issue is and for its lifecycle status.
const (
	Triage          = "triage"
	StatusActive    = "status:active"
	StatusWarning   = "status:warning"
	StatusBroken    = "status:broken"
	StatusDuplicate = "status:duplicate"

	KindSite        = "kind:site"
	KindCategory    = "kind:category"
	KindNewCategory = "kind:new-category" // legacy alias still present on old issues
	KindCorrection  = "kind:correction"
	KindMigration   = "kind:domain-migration"
	SiteCorrection  = "site:correction"
	CategoryDelete  = "category:delete"
)

// Status is a record lifecycle status as stored in the data files.
type Status string

const (
	StatusValTriage    Status = "triage"
	StatusValActive    Status = "active"
	StatusValWarning   Status = "warning"
	StatusValBroken    Status = "broken"
	StatusValDuplicate Status = "duplicate"
)

// statusPrecedence is the ordered lookup for DeriveStatus. First label
// present wins; the order is the auditable precedence contract.
var statusPrecedence = []struct {
	label  string
	status Status
}{
	{Triage, StatusValTriage},
	{StatusActive, StatusValActive},
	{StatusWarning, StatusValWarning},
	{StatusBroken, StatusValBroken},
	{StatusDuplicate, StatusValDuplicate},
}

// DeriveStatus maps a label set to exactly one lifecycle status. The result
// is total and independent of the ordering of the input slice; issues with
// no status label default to triage.
func DeriveStatus(labelNames []string) Status {
	set := toSet(labelNames)
	for _, entry := range statusPrecedence {
		if set[entry.label] {
			return entry.status
		}
	}
	return StatusValTriage
}

// IsSiteKind reports whether the label set marks a site submission.
func IsSiteKind(labelNames []string) bool {
	return contains(labelNames, KindSite)
}

// IsCorrectionKind reports whether the label set marks a site correction or
// domain migration request.
func IsCorrectionKind(labelNames []string) bool {
	return contains(labelNames, KindCorrection) ||
		contains(labelNames, KindMigration) ||
		contains(labelNames, SiteCorrection)
}

// IsCategoryKind reports whether the label set marks a category proposal.
func IsCategoryKind(labelNames []string) bool {
	return contains(labelNames, KindCategory) || contains(labelNames, KindNewCategory)
}

// IsCategoryDeleteKind reports whether the label set marks a category
// deletion request.
func IsCategoryDeleteKind(labelNames []string) bool {
	return contains(labelNames, CategoryDelete)
}

func contains(labelNames []string, name string) bool {
	for _, l := range labelNames {
		if l == name {
			return true
		}
	}
	return false
}

func toSet(labelNames []string) map[string]bool {
	set := make(map[string]bool, len(labelNames))
	for _, l := range labelNames {
		set[l] = true
	}
	return set
}

// Seed is the repository label vocabulary created by the init command.
type Seed struct {
	Name        string
	Color       string
	Description string
}

// ProjectLabels is the canonical label seed list, bilingual descriptions
// matching the issue templates.
var ProjectLabels = []Seed{
	{StatusActive, "0e8a16", "Verified and active site | 已验证且活跃的站点"},
	{StatusWarning, "fbca04", "Site has accessibility issues | 站点存在访问问题"},
	{StatusBroken, "d93f0b", "Site is offline or link is broken | 站点已下线或链接失效"},
	{StatusDuplicate, "cfd3d7", "Duplicate submission | 重复提交"},
	{Triage, "ededed", "Awaiting approval | 等待审核"},
	{KindSite, "1d76db", "New site submission | 新站点提交"},
	{SiteCorrection, "5319e7", "Request to fix site info | 站点信息更正请求"},
	{KindCategory, "c2e0c6", "New category proposal | 新分类提案"},
	{CategoryDelete, "e4e669", "Category deletion request | 分类删除请求"},
}
