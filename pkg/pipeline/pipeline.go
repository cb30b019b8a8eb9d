// Package pipeline implements the raw-to-silver transformation for taxi trip
// tables: an ordered chain of pure stages over an in-memory table.
//
// The stage order is fixed and load-bearing:
//
//  1. NormalizeColumns — canonical column names
//  2. CoerceTypes      — numeric/boolean coercion, failure becomes missing
//  3. FilterRows       — domain validity rules over coerced values
//  4. RecomputeDuration — trip_duration_hr rebuilt from surviving rows
//  5. Deduplicate      — composite-key dedup, first occurrence wins
//
// Filtering must see coerced types, duration recomputation must run on the
// filtered rows, and dedup runs last over the final row set. Each stage
// returns a new table value; none mutates its input.
package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/citystreamlabs/silverpipe/pkg/models"
	"github.com/citystreamlabs/silverpipe/pkg/report"
	"github.com/citystreamlabs/silverpipe/pkg/schema"
)

// Stage represents one table-to-table transformation step. Stages never
// fail on data problems; the error return exists for context cancellation
// and future stages with fallible collaborators.
type Stage func(ctx context.Context, t *models.Table) (*models.Table, error)

// Pipeline runs the fixed raw-to-silver stage chain.
type Pipeline struct {
	registry *schema.Registry
	logger   *zap.Logger
}

// New creates a pipeline bound to a column registry. A nil registry selects
// the default taxi registry; a nil logger selects a no-op logger.
func New(registry *schema.Registry, logger *zap.Logger) *Pipeline {
	if registry == nil {
		registry = schema.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{registry: registry, logger: logger}
}

// Run executes the five stages in order and returns the silver table plus
// the run summary. The summary's OutputPath is left empty for the caller to
// fill once the artifact is written.
func (p *Pipeline) Run(ctx context.Context, raw *models.Table) (*models.Table, *report.Summary, error) {
	summary := &report.Summary{
		InputRows: raw.NumRecords(),
		ColumnsIn: append([]string(nil), raw.Columns...),
	}

	stages := []struct {
		name  string
		apply Stage
	}{
		{"normalize_columns", func(_ context.Context, t *models.Table) (*models.Table, error) {
			return NormalizeColumns(t), nil
		}},
		{"coerce_types", func(_ context.Context, t *models.Table) (*models.Table, error) {
			return CoerceTypes(p.registry, t), nil
		}},
		{"filter_rows", func(_ context.Context, t *models.Table) (*models.Table, error) {
			return FilterRows(p.registry, t), nil
		}},
		{"recompute_duration", func(_ context.Context, t *models.Table) (*models.Table, error) {
			return RecomputeDuration(t), nil
		}},
		{"deduplicate", func(_ context.Context, t *models.Table) (*models.Table, error) {
			out, result := Deduplicate(p.registry, t)
			summary.DuplicatesRemoved = result.Removed
			summary.KeyColumns = result.KeyColumns
			return out, nil
		}},
	}

	table := raw
	for _, stage := range stages {
		select {
		case <-ctx.Done():
			return nil, nil, ctx.Err()
		default:
		}

		before := table.NumRecords()
		next, err := stage.apply(ctx, table)
		if err != nil {
			return nil, nil, err
		}
		table = next

		p.logger.Debug("stage completed",
			zap.String("stage", stage.name),
			zap.Int("rows_in", before),
			zap.Int("rows_out", table.NumRecords()))
	}

	summary.OutputRows = table.NumRecords()
	summary.ColumnsOut = append([]string(nil), table.Columns...)

	p.logger.Info("pipeline completed",
		zap.Int("input_rows", summary.InputRows),
		zap.Int("output_rows", summary.OutputRows),
		zap.Int("duplicates_removed", summary.DuplicatesRemoved),
		zap.Strings("key_columns", summary.KeyColumns))

	return table, summary, nil
}
