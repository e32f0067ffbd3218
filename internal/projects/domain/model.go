package domain

// Project represents a single portfolio entry. It is intentionally
// storage-agnostic and used across store and HTTP layers.
type Project struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Tags        []string `json:"tags"`
	GithubURL   string   `json:"githubUrl"`
	LiveURL     string   `json:"liveUrl,omitempty"`
}
