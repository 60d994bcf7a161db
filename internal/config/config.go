package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	GitHub   GitHubConfig   `yaml:"github"`
	Index    IndexConfig    `yaml:"index"`
	Database DatabaseConfig `yaml:"database"`
	EmbedLLM LLMConfig      `yaml:"embed_llm"`
	GenLLM   LLMConfig      `yaml:"gen_llm"`
	RAG      RAGConfig      `yaml:"rag"`
}

type GitHubConfig struct {
	Repo  string `yaml:"repo"`
	Path  string `yaml:"path"`
	Token string `yaml:"token"`
}

// IndexConfig selects the index backend. Backend is one of
// "solr", "postgres" or "memory".
type IndexConfig struct {
	Backend string `yaml:"backend"`
	SolrURL string `yaml:"solr_url"`
}

type DatabaseConfig struct {
	DSN      string `yaml:"dsn"`
	Password string `yaml:"password"`
	Debug    bool   `yaml:"debug"`
}

type LLMConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	Key     string `yaml:"key"`
}

type RAGConfig struct {
	TopK     int    `yaml:"top_k"`
	SyncMode string `yaml:"sync_mode"`
}

const (
	defaultTopK     = 3
	defaultSyncMode = "article"
)

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	return &cfg, nil
}

// applyEnv lets deployment environment override the file for the two
// endpoint secrets that are usually injected rather than committed.
func (c *Config) applyEnv() {
	if v := os.Getenv("SOLR_URL"); v != "" {
		c.Index.SolrURL = v
	}
	if v := os.Getenv("GITHUB_TOKEN"); v != "" {
		c.GitHub.Token = v
	}
}

func (c *Config) applyDefaults() {
	if c.RAG.TopK == 0 {
		c.RAG.TopK = defaultTopK
	}
	if c.RAG.SyncMode == "" {
		c.RAG.SyncMode = defaultSyncMode
	}
	if c.Index.Backend == "" {
		c.Index.Backend = "solr"
	}
}
