package models

// SourceDocument is one file advertised by the source repository listing.
// SHA is the opaque content-version marker supplied by the host.
type SourceDocument struct {
	Name        string
	DownloadURL string
	SHA         string
}

// Segment is one article slice of a document, in document order.
// Ordinal is 1-based; Caption is empty when no title line was recognized.
type Segment struct {
	Ordinal int
	Caption string
	Body    string
}

// ArticleRecord is the unit persisted to the search index.
// Title is an array because the index schema stores it as a multi-valued field.
type ArticleRecord struct {
	ID        string    `json:"id"`
	Title     []string  `json:"title"`
	Content   string    `json:"content"`
	Embedding []float32 `json:"embedding_vector"`
	FileSHA   string    `json:"file_sha"`
}

// Hit is the retrieval projection returned by a similarity query.
type Hit struct {
	ID      string
	Title   string
	Content string
	Score   float64
}

// PromptResponse carries a question, the source article it was answered
// from, and the generated answer.
type PromptResponse struct {
	Query   string
	Source  string
	Content string
}
