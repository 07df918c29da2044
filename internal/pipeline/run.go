package pipeline

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/kingrea/entra-bulk/internal/license"
	"github.com/kingrea/entra-bulk/internal/logging"
	"github.com/kingrea/entra-bulk/internal/naming"
	"github.com/kingrea/entra-bulk/internal/password"
	"github.com/kingrea/entra-bulk/internal/roster"
	"github.com/kingrea/entra-bulk/internal/tui"
)

// DefaultPreviewRows is how many roster rows are echoed before processing.
const DefaultPreviewRows = 5

// Options describes one run.
type Options struct {
	Input  string
	Output string

	Columns roster.InputColumns
	Domain  string

	// Disambiguator answers for names of more than two tokens.
	Disambiguator naming.Disambiguator
	// Passwords defaults to password.New().
	Passwords PasswordGenerator
	// ResolveLicenseNames treats the license column as license names.
	ResolveLicenseNames bool

	Logger *slog.Logger
	// Stdout receives the preview and the confirmation. Nil discards them.
	Stdout      io.Writer
	PreviewRows int
}

// Result summarizes a successful run.
type Result struct {
	Output string
	Rows   int
}

// Run reads the roster, builds every row and writes the bulk-create file.
// Nothing is written unless every row succeeds.
func Run(opts Options) (Result, error) {
	logger := logging.OrDiscard(opts.Logger)
	stdout := opts.Stdout
	if stdout == nil {
		stdout = io.Discard
	}
	cols := opts.Columns
	if cols.DisplayName == "" || cols.License == "" {
		def := roster.DefaultInputColumns()
		if cols.DisplayName == "" {
			cols.DisplayName = def.DisplayName
		}
		if cols.License == "" {
			cols.License = def.License
		}
	}
	passwords := opts.Passwords
	if passwords == nil {
		passwords = password.New()
	}
	previewRows := opts.PreviewRows
	if previewRows == 0 {
		previewRows = DefaultPreviewRows
	}

	// --- 1. Read roster ---
	logger.Info("reading roster", "path", opts.Input)
	table, err := roster.ReadTable(opts.Input)
	if err != nil {
		return Result{}, err
	}
	fmt.Fprint(stdout, tui.RenderPreview(table.Header, table.Records, previewRows))

	rows, err := roster.InputRows(opts.Input, table, cols)
	if err != nil {
		return Result{}, err
	}

	// --- 2. Build rows ---
	builderOpts := []BuilderOption{WithLogger(logger)}
	if opts.ResolveLicenseNames {
		builderOpts = append(builderOpts, WithLicenseResolver(license.NewResolver(logger)))
	}
	builder := NewBuilder(
		naming.NewResolver(opts.Disambiguator, logger),
		naming.NewIdentifier(opts.Domain),
		passwords,
		builderOpts...,
	)
	out, err := builder.Build(rows)
	if err != nil {
		return Result{}, err
	}
	logger.Info("rows built", "count", len(out))

	// --- 3. Write output ---
	if err := roster.WriteOutput(opts.Output, out); err != nil {
		return Result{}, err
	}
	logger.Info("bulk-create file written", "path", opts.Output, "rows", len(out))
	fmt.Fprint(stdout, tui.RenderDone(opts.Output, len(out)))

	return Result{Output: opts.Output, Rows: len(out)}, nil
}
