package filter

import (
	"context"

	"github.com/s0up4200/arrcore/domain"
)

// Filter decides whether a download item is kept.
type Filter interface {
	Evaluate(item domain.DownloadItem) bool
}

// CompiledFilter is a pre-compiled filter ready for evaluation
type CompiledFilter interface {
	Filter

	// Expression returns the original filter expression
	Expression() string
}

// Compiler compiles filter expressions into executable filters
type Compiler interface {
	Compile(expression string) (CompiledFilter, error)
}

// Evaluator applies a filter to a whole collection.
type Evaluator interface {
	Evaluate(ctx context.Context, filter CompiledFilter, items domain.DownloadItems) (domain.DownloadItems, error)
}
