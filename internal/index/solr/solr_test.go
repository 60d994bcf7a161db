package solr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"regolamento-rag/internal/models"
)

func TestGetFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/select", r.URL.Path)
		assert.Equal(t, `id:"Regolamento Didattico 2"`, r.URL.Query().Get("q"))
		_, _ = w.Write([]byte(`{"response":{"numFound":1,"docs":[{"id":"Regolamento Didattico 2","file_sha":"abc123"}]}}`))
	}))
	defer server.Close()

	version, found, err := NewClient(server.URL).Get(context.Background(), "Regolamento Didattico 2")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "abc123", version)
}

func TestGetAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":{"numFound":0,"docs":[]}}`))
	}))
	defer server.Close()

	_, found, err := NewClient(server.URL).Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetMalformedResponseDegradesToAbsent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	_, found, err := NewClient(server.URL).Get(context.Background(), "x")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetMultiValuedVersionField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"response":{"numFound":1,"docs":[{"id":"x","file_sha":["abc123"]}]}}`))
	}))
	defer server.Close()

	version, found, err := NewClient(server.URL).Get(context.Background(), "x")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "abc123", version)
}

func TestQueryBuildsKnnRequestAndParsesHits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/query", r.URL.Path)

		var body struct {
			Params map[string]string `json:"params"`
		}
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &body))
		assert.Equal(t, "{!knn f=embedding_vector topK=3}[0.5,0.25]", body.Params["q"])
		assert.Equal(t, "id,title,content,score", body.Params["fl"])

		_, _ = w.Write([]byte(`{"response":{"numFound":2,"docs":[
			{"id":"a","title":["ARTICOLO 1 Finalità"],"content":"corpo a","score":0.41},
			{"id":"b","title":["ARTICOLO 2 Obblighi"],"content":"corpo b","score":0.93}
		]}}`))
	}))
	defer server.Close()

	hits, err := NewClient(server.URL).Query(context.Background(), []float32{0.5, 0.25}, 3)
	require.NoError(t, err)
	require.Len(t, hits, 2)
	assert.Equal(t, models.Hit{ID: "b", Title: "ARTICOLO 2 Obblighi", Content: "corpo b", Score: 0.93}, hits[1])
}

func TestQueryMalformedResponseDegradesToEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`oops`))
	}))
	defer server.Close()

	hits, err := NewClient(server.URL).Query(context.Background(), []float32{1}, 3)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestQueryErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad query", http.StatusBadRequest)
	}))
	defer server.Close()

	_, err := NewClient(server.URL).Query(context.Background(), []float32{1}, 3)
	assert.Error(t, err)
}

func TestUpsertPostsRecord(t *testing.T) {
	var gotPath string
	var gotBody models.ArticleRecord
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
	}))
	defer server.Close()

	rec := models.ArticleRecord{
		ID:        "Regolamento Didattico 2",
		Title:     []string{"ARTICOLO 2 Obblighi formativi"},
		Content:   "corpo",
		Embedding: []float32{0.1, 0.2},
		FileSHA:   "abc123",
	}
	require.NoError(t, NewClient(server.URL).Upsert(context.Background(), rec))
	assert.Equal(t, "/update/json/docs", gotPath)
	assert.Equal(t, rec, gotBody)
}

func TestUpsertFailureStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "schema mismatch", http.StatusBadRequest)
	}))
	defer server.Close()

	err := NewClient(server.URL).Upsert(context.Background(), models.ArticleRecord{ID: "x"})
	assert.ErrorContains(t, err, "schema mismatch")
}

func TestDeletePostsDeleteCommand(t *testing.T) {
	var gotPath, gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
	}))
	defer server.Close()

	require.NoError(t, NewClient(server.URL).Delete(context.Background(), "Vecchio Regolamento 1"))
	assert.Equal(t, "/update", gotPath)
	assert.JSONEq(t, `{"delete":{"id":"Vecchio Regolamento 1"}}`, gotBody)
}

func TestListIDsPagesThroughResults(t *testing.T) {
	// two pages worth of ids
	total := listPageSize + 2
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start, _ := strconv.Atoi(r.URL.Query().Get("start"))
		count := listPageSize
		if start+count > total {
			count = total - start
		}
		docs := make([]map[string]string, 0, count)
		for i := 0; i < count; i++ {
			docs = append(docs, map[string]string{"id": fmt.Sprintf("Regolamento %d", start+i)})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"response": map[string]any{"numFound": total, "docs": docs},
		})
	}))
	defer server.Close()

	ids, err := NewClient(server.URL).ListIDs(context.Background())
	require.NoError(t, err)
	assert.Len(t, ids, total)
	assert.Equal(t, "Regolamento 0", ids[0])
	assert.Equal(t, fmt.Sprintf("Regolamento %d", total-1), ids[total-1])
}
