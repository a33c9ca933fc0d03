package form

// fieldMap resolves bilingual issue-form labels to canonical record keys.
// The issue templates render Chinese labels (with English hints); the data
// files must always carry English keys.
var fieldMap = map[string]string{
	"站点名称 (Name)":                  "site_name",
	"站点 ID (Site ID)":              "site_id",
	"站点链接":                         "site_url",
	"站点链接 (URL)":                   "site_url",
	"新站点链接":                        "new_site_url",
	"旧站点链接":                        "old_site_url",
	"分类 (Categories)":              "categories",
	"分类":                           "categories",
	"站点封面 (Cover)":                 "cover",
	"站点描述 (Description)":           "description",
	"详细描述 (Detailed Description)":  "description",
	"分类 ID (Category ID)":          "category_id",
	"分类名称 (中文)":                    "name",
	"分类名称 (英文 - English Name)":     "name_en",
	"分类图标 (Icon)":                  "icon",
	"分类描述 (中文)":                    "description",
	"分类描述 (英文 - English Description)": "desc_en",
}

// First returns the value of the first key present in data with a non-empty
// value. Alias chains for logical fields are expressed as plain key lists at
// the call site.
func First(data map[string]string, keys ...string) string {
	for _, k := range keys {
		if v, ok := data[k]; ok && v != "" {
			return v
		}
	}
	return ""
}
