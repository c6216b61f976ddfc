package openapi

import "github.com/reoring/skemagql/internal/importutil"

// DefaultRoot is the component schema imported when Options.Root is empty.
const DefaultRoot = "Query"

// Options controls OpenAPI imports.
type Options struct {
	// Root names the component schema whose properties become the fields.
	Root string
	// SkipValidation skips kin-openapi document validation.
	SkipValidation bool
	// Strict turns warnings about ignored constructs into errors.
	Strict bool
}

func (o Options) root() string {
	if o.Root == "" {
		return DefaultRoot
	}
	return o.Root
}

// Diag carries non-fatal warnings produced during import.
type Diag = importutil.Diag
