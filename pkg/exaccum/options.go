// Package exaccum extracts fixed-position rows from a source workbook,
// accumulates them into per-session tables, and recomputes quantity-driven
// cells of the source in place.
package exaccum

import (
	"log/slog"

	"github.com/ukaji3/exaccum-go/pkg/exaccum/recompute"
	"github.com/ukaji3/exaccum-go/pkg/exaccum/schema"
)

// Options configures pipeline behavior.
type Options struct {
	// Schema describes the source layout. If nil, schema.Default() is used.
	Schema *schema.Schema
	// Strict makes unparsable factor cells fail a recompute instead of counting as 0.
	Strict bool
	// Logger receives lenient-mode degradations. Nil disables logging.
	Logger *slog.Logger
}

// DefaultOptions returns default pipeline options.
func DefaultOptions() Options {
	return Options{
		Schema: schema.Default(),
	}
}

// SchemaOrDefault returns the configured schema or the built-in one.
func (o Options) SchemaOrDefault() *schema.Schema {
	if o.Schema != nil {
		return o.Schema
	}
	return schema.Default()
}

func (o Options) engine() *recompute.Engine {
	return recompute.New(o.SchemaOrDefault().Recompute, recompute.Options{
		Strict: o.Strict,
		Logger: o.Logger,
	})
}
