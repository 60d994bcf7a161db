package models

const (
	// ArticleMarker delimits the start of each article in extracted text.
	// Some documents use the title-cased variant instead.
	ArticleMarker          = "ARTICOLO "
	ArticleMarkerTitleCase = "Articolo "

	InlineCaptionRegex = `^\s*\d+\s*[-–—]\s*(.+?)(?:\n|$)`
	BareNumberRegex    = `^\s*\d+\s*$`
	AcademicYearRegex  = `\b\d{2} \d{2}\b`
	RegulationRegex    = `^\s*Regolamento\s+`

	// GenerationFailedAnswer is the only generation-stage failure the user sees.
	GenerationFailedAnswer = "Errore nella generazione della risposta."
	// NoDocumentsAnswer is returned when retrieval finds nothing.
	NoDocumentsAnswer = "No relevant documents found to answer the question."
)

var AnswerPromptTemplate = `Domanda: %s

Contesto: %s

Risposta:`
