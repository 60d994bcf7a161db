// Package identity derives stable article identifiers and display titles
// from a source document name and an article ordinal.
package identity

import (
	"fmt"
	"regexp"
	"strings"

	"regolamento-rag/internal/models"
)

var (
	delimiterRe    = regexp.MustCompile(`[_\-.]`)
	academicYearRe = regexp.MustCompile(models.AcademicYearRegex)
	spaceRunRe     = regexp.MustCompile(`\s+`)
	regulationRe   = regexp.MustCompile(models.RegulationRegex)
)

// BaseID normalizes a document filename into the shared identifier stem:
// extension stripped, delimiters mapped to spaces, the academic-year token
// removed so the same regulation does not fragment across years, whitespace
// collapsed. Pure function of its input.
func BaseID(documentName string) string {
	base := documentName
	if idx := strings.LastIndex(base, "."); idx >= 0 {
		base = base[:idx]
	}
	base = delimiterRe.ReplaceAllString(base, " ")
	base = academicYearRe.ReplaceAllString(base, "")
	base = spaceRunRe.ReplaceAllString(base, " ")
	return strings.TrimSpace(base)
}

// BuildID returns the globally unique identifier for one article.
func BuildID(documentName string, ordinal int) string {
	return strings.TrimSpace(fmt.Sprintf("%s %d", BaseID(documentName), ordinal))
}

// Stem is the shortened form used for embedding computation: the base id
// with a leading "Regolamento" word removed. The id itself keeps the word.
func Stem(documentName string) string {
	return strings.TrimSpace(regulationRe.ReplaceAllString(BaseID(documentName), ""))
}

// EmbeddingText is the only text handed to the embedder at index time.
// Embeddings are computed over identity and topic rather than full body text,
// so retrieval matches on what an article is about.
func EmbeddingText(documentName, caption string) string {
	return fmt.Sprintf("%s. %s", Stem(documentName), caption)
}

// Title builds the human-readable display title for an article.
func Title(ordinal int, caption string) string {
	title := fmt.Sprintf("%s%d", models.ArticleMarker, ordinal)
	if caption != "" {
		title += " " + caption
	}
	return title
}
