// Package solr implements the index store against Solr's JSON HTTP API.
package solr

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"regolamento-rag/internal/models"
)

const (
	requestTimeout = 30 * time.Second
	listPageSize   = 1000
)

// Client talks to a single Solr core, e.g.
// http://localhost:8983/solr/regolamento_unisannio.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}
}

// flexString tolerates Solr returning a field either as a plain string or as
// a single-element array, which depends on the core's schema.
type flexString string

func (s *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var arr []string
		if err := json.Unmarshal(data, &arr); err != nil {
			return err
		}
		if len(arr) > 0 {
			*s = flexString(arr[0])
		}
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	*s = flexString(str)
	return nil
}

type selectResponse struct {
	Response struct {
		NumFound int `json:"numFound"`
		Docs     []struct {
			ID      string     `json:"id"`
			Title   flexString `json:"title"`
			Content string     `json:"content"`
			FileSHA flexString `json:"file_sha"`
			Score   float64    `json:"score"`
		} `json:"docs"`
	} `json:"response"`
}

func (c *Client) Get(ctx context.Context, id string) (string, bool, error) {
	q := url.Values{}
	q.Set("q", fmt.Sprintf("id:%q", id))
	q.Set("fl", "id,file_sha")
	q.Set("wt", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/select?"+q.Encode(), nil)
	if err != nil {
		return "", false, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return "", false, err
	}
	defer resp.Body.Close()

	var body selectResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Warn().Err(err).Str("id", id).Msg("malformed index response, treating id as absent")
		return "", false, nil
	}
	if body.Response.NumFound == 0 || len(body.Response.Docs) == 0 {
		return "", false, nil
	}
	return string(body.Response.Docs[0].FileSHA), true, nil
}

func (c *Client) Upsert(ctx context.Context, rec models.ArticleRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return c.post(ctx, "/update/json/docs?commit=true", payload)
}

func (c *Client) Query(ctx context.Context, vector []float32, k int) ([]models.Hit, error) {
	vec, err := json.Marshal(vector)
	if err != nil {
		return nil, err
	}
	payload, err := json.Marshal(map[string]any{
		"params": map[string]string{
			"q":  fmt.Sprintf("{!knn f=embedding_vector topK=%d}%s", k, vec),
			"fl": "id,title,content,score",
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("knn query failed: %d, %s", resp.StatusCode, string(body))
	}

	var body selectResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		log.Warn().Err(err).Msg("malformed knn query response, treating as no candidates")
		return nil, nil
	}

	hits := make([]models.Hit, 0, len(body.Response.Docs))
	for _, doc := range body.Response.Docs {
		hits = append(hits, models.Hit{
			ID:      doc.ID,
			Title:   string(doc.Title),
			Content: doc.Content,
			Score:   doc.Score,
		})
	}
	return hits, nil
}

func (c *Client) Delete(ctx context.Context, id string) error {
	payload, err := json.Marshal(map[string]any{"delete": map[string]string{"id": id}})
	if err != nil {
		return err
	}
	return c.post(ctx, "/update?commit=true", payload)
}

func (c *Client) ListIDs(ctx context.Context) ([]string, error) {
	var ids []string
	for start := 0; ; start += listPageSize {
		q := url.Values{}
		q.Set("q", "*:*")
		q.Set("fl", "id")
		q.Set("rows", fmt.Sprint(listPageSize))
		q.Set("start", fmt.Sprint(start))
		q.Set("wt", "json")

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/select?"+q.Encode(), nil)
		if err != nil {
			return ids, err
		}
		resp, err := c.http.Do(req)
		if err != nil {
			return ids, err
		}

		var body selectResponse
		err = json.NewDecoder(resp.Body).Decode(&body)
		resp.Body.Close()
		if err != nil {
			log.Warn().Err(err).Msg("malformed id listing response, stopping listing")
			return ids, nil
		}
		if len(body.Response.Docs) == 0 {
			return ids, nil
		}
		for _, doc := range body.Response.Docs {
			ids = append(ids, doc.ID)
		}
		if start+listPageSize >= body.Response.NumFound {
			return ids, nil
		}
	}
}

func (c *Client) post(ctx context.Context, path string, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("index write failed: %d, %s", resp.StatusCode, string(body))
	}
	return nil
}
