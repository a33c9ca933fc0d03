package cfg

type Cfg struct {
	// GitHub context
	GitHubToken string
	Repository  string
	Owner       string
	Repo        string
	APIBaseURL  string

	// Issue event context
	IssueNumber   string
	IssueState    string
	CommentBody   string
	CommentAuthor string

	// Data layout
	DataDir string
	SiteURL string
	Admins  []string
	Port    string

	// Health checker
	HealthBatchSize int
	HealthTimeout   int

	// Application metadata
	UserAgent string
	LogFile   string
	Debug     bool
	Version   string
}
