package resource

// Resource is one entry of the self-help library.
type Resource struct {
	ID          int    `json:"id" yaml:"id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Type        string `json:"type" yaml:"type"`
	Duration    string `json:"duration" yaml:"duration"`
	Category    string `json:"category" yaml:"category"`
	Difficulty  string `json:"difficulty" yaml:"difficulty"`
}

// Filter narrows a catalog listing. Empty fields match everything and
// comparisons ignore case.
type Filter struct {
	Category string
	Type     string
}
