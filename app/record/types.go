package record

// SiteRecord is one persisted site entry. The JSON field names are the wire
// contract consumed by the aggregator and the frontend; id is the source
// issue number as a string.
type SiteRecord struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Categories  []string `json:"categories"`
	Cover       string   `json:"cover"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
	AddedAt     string   `json:"added_at"`
	LastCheck   string   `json:"last_check"`
	FailCount   int      `json:"fail_count"`
}

// CategoryRecord is one persisted category entry with bilingual naming.
type CategoryRecord struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	NameEN      string `json:"name_en"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	DescEN      string `json:"desc_en"`
	Status      string `json:"status"`
}
