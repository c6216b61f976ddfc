package jsonschema

import "github.com/reoring/skemagql/internal/importutil"

// Options controls how JSON Schema documents are imported.
type Options struct {
	// Strict turns warnings about ignored keywords into errors.
	Strict bool
}

// Diag carries non-fatal warnings produced during import.
type Diag = importutil.Diag
