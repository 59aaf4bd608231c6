package types

// Pure JSON contracts for question content streams. Not DB models.
//
// The ingestion workflow treats streams as opaque ordered block sequences and
// round-trips them through the jsonb columns untouched; these structs document
// the shape the extraction backend emits and are what the admin UI renders.

type QuestionBlock struct {
	Kind      string   `json:"kind"`                 // text|latex|image|table
	ContentMD string   `json:"content_md,omitempty"` // text/latex
	Items     []string `json:"items,omitempty"`      // table rows
	AssetRefs []string `json:"asset_refs,omitempty"`
}

type QuestionOption struct {
	Label  string          `json:"label"` // "A", "B", ...
	Stream []QuestionBlock `json:"stream"`
}
