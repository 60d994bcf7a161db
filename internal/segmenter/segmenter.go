// Package segmenter splits extracted document text into ordered article
// segments, keyed by the literal article marker used throughout the corpus.
package segmenter

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"regolamento-rag/internal/models"
)

var (
	inlineCaptionRe = regexp.MustCompile(models.InlineCaptionRegex)
	bareNumberRe    = regexp.MustCompile(models.BareNumberRegex)
)

// Segment splits document text on the article marker and returns one segment
// per marker occurrence, ordinals assigned in document order starting at 1.
// Content before the first marker is discarded. A document without any marker
// contributes zero segments.
func Segment(text string) []models.Segment {
	pieces := strings.Split(text, models.ArticleMarker)
	if len(pieces) == 1 {
		pieces = strings.Split(text, models.ArticleMarkerTitleCase)
	}
	if len(pieces) == 1 {
		log.Info().Msg("no article marker found in document")
		return nil
	}

	segments := make([]models.Segment, 0, len(pieces)-1)
	for i, piece := range pieces[1:] {
		caption, body := splitCaption(strings.TrimSpace(piece))
		segments = append(segments, models.Segment{
			Ordinal: i + 1,
			Caption: caption,
			Body:    body,
		})
	}
	return segments
}

// splitCaption extracts the article caption from the head of a segment.
// Two shapes are recognized, tried in order: an inline "N - caption" prefix,
// and a bare article number on its own line followed by the caption line.
// Anything else leaves the caption empty and the body untouched.
func splitCaption(piece string) (caption, body string) {
	if m := inlineCaptionRe.FindStringSubmatch(piece); m != nil {
		return strings.TrimSpace(m[1]), strings.TrimSpace(piece[len(m[0]):])
	}
	lines := strings.Split(piece, "\n")
	if len(lines) > 1 && bareNumberRe.MatchString(lines[0]) {
		return strings.TrimSpace(lines[1]), strings.TrimSpace(strings.Join(lines[2:], "\n"))
	}
	return "", piece
}
