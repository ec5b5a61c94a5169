package types

import "time"

// HTTPConfig holds shared HTTP settings used by stages that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pubmed-screen/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// PubMedConfig holds settings for the NCBI E-utilities client.
type PubMedConfig struct {
	HTTPConfig `yaml:",inline"`

	// Tool identifies this client to NCBI, per the E-utilities usage policy.
	Tool string `json:"tool" yaml:"tool"`

	// Email is the contact address NCBI asks callers to send with every
	// request. Required by the usage policy, not enforced by the API.
	Email string `json:"email" yaml:"email"`

	// APIKey raises the NCBI rate limit from 3 to 10 requests/second.
	// Optional; loaded from .secrets/ncbi-api-key when present.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// MaxResults bounds the esearch result window (default 100).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// ScreenConfig holds settings for the screening stage.
type ScreenConfig struct {
	// Workers is the size of the extraction worker pool (default 4).
	Workers int `json:"workers" yaml:"workers"`
}

// StoreConfig holds settings for the run-history store.
type StoreConfig struct {
	// DBPath is the SQLite database file (default "pubmed-screen.db").
	DBPath string `json:"db_path" yaml:"db_path"`

	// MaxResults is the default maximum number of listed runs (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	PubMed PubMedConfig `json:"pubmed" yaml:"pubmed"`
	Screen ScreenConfig `json:"screen" yaml:"screen"`
	Store  StoreConfig  `json:"store" yaml:"store"`
}
