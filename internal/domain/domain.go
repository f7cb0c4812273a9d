package domain

const (
	// PageTitleFailure is the sentinel the model pipeline uses when no page
	// title could be obtained.
	PageTitleFailure = "Failure"
	// KeywordsFailure is the sentinel for a failed keyword extraction.
	KeywordsFailure = "Extraction failure"

	HeadingTop    = "HEADING_1"
	HeadingSecond = "HEADING_2"

	BulletPresetDiscCircleSquare = "BULLET_DISC_CIRCLE_SQUARE"

	CodeFontFamily    = "Courier New"
	CodeFontSizePt    = 10.0
	SummaryBulletRune = '・'
)

// ModelResult is the structured record distilled from one raw model response.
// Every field is always populated; failed extraction degrades to sentinels,
// never to missing fields.
type ModelResult struct {
	SummaryLines []string
	CodeBlocks   []string
	PageTitle    string
	Keywords     string
}

// Range is a half-open [Start, End) span of rune offsets inside the target
// document.
type Range struct {
	Start int64
	End   int64
}

type InsertText struct {
	Position int64
	Text     string
}

type UpdateParagraphStyle struct {
	Range Range
	Named string
}

type CreateBullets struct {
	Range  Range
	Preset string
}

type UpdateTextStyle struct {
	Range      Range
	FontFamily string
	FontSizePt float64
	LinkURL    string
}

// Request is one edit operation in a document batch. Exactly one field is
// set. Offsets refer to the document as it exists after all preceding
// insertions in the same batch, so order is significant.
type Request struct {
	InsertText           *InsertText
	UpdateParagraphStyle *UpdateParagraphStyle
	CreateBullets        *CreateBullets
	UpdateTextStyle      *UpdateTextStyle
}
