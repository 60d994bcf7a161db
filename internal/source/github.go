// Package source lists and downloads documents from a GitHub repository
// directory, the system's source of truth for the document set.
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	gh "github.com/google/go-github/v80/github"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"regolamento-rag/internal/config"
	"regolamento-rag/internal/extractor"
	"regolamento-rag/internal/models"
)

const requestTimeout = 30 * time.Second

type Client struct {
	gh    *gh.Client
	http  *http.Client
	owner string
	repo  string
	path  string
}

// NewClient builds a client for one repository directory. Repo is in
// "owner/name" form; token is optional and only needed for private repos.
func NewClient(cfg *config.GitHubConfig) (*Client, error) {
	owner, repo, ok := strings.Cut(cfg.Repo, "/")
	if !ok {
		return nil, fmt.Errorf("invalid repo %q, expected owner/name", cfg.Repo)
	}

	httpClient := &http.Client{Timeout: requestTimeout}
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = requestTimeout
	}

	return &Client{
		gh:    gh.NewClient(httpClient),
		http:  httpClient,
		owner: owner,
		repo:  repo,
		path:  cfg.Path,
	}, nil
}

// List returns the documents currently in the source directory, filtered to
// extractable formats. A failed or unexpectedly shaped listing degrades to an
// empty list so a synchronization pass completes with zero work.
func (c *Client) List(ctx context.Context) []models.SourceDocument {
	_, dir, _, err := c.gh.Repositories.GetContents(ctx, c.owner, c.repo, c.path, nil)
	if err != nil {
		log.Warn().Err(err).Str("repo", c.owner+"/"+c.repo).Msg("listing source directory failed, treating as empty")
		return nil
	}
	if dir == nil {
		log.Warn().Str("path", c.path).Msg("source path is not a directory, treating as empty")
		return nil
	}

	var docs []models.SourceDocument
	for _, entry := range dir {
		if entry.GetType() != "file" || !extractor.Supported(entry.GetName()) {
			continue
		}
		docs = append(docs, models.SourceDocument{
			Name:        entry.GetName(),
			DownloadURL: entry.GetDownloadURL(),
			SHA:         entry.GetSHA(),
		})
	}
	return docs
}

// Download fetches the raw bytes of one listed document.
func (c *Client) Download(ctx context.Context, doc models.SourceDocument) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, doc.DownloadURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download %s failed: %d", doc.Name, resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}
