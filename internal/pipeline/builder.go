// Package pipeline turns roster rows into bulk-create rows and drives a whole
// run from input file to output file.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/kingrea/entra-bulk/internal/license"
	"github.com/kingrea/entra-bulk/internal/logging"
	"github.com/kingrea/entra-bulk/internal/naming"
	"github.com/kingrea/entra-bulk/internal/roster"
)

// PasswordGenerator produces one-time passwords.
type PasswordGenerator interface {
	Generate() string
}

// LicenseResolver maps the roster's license cell to a SKU identifier.
type LicenseResolver interface {
	Resolve(name string) (string, error)
}

// BuilderOption customizes a Builder.
type BuilderOption func(*Builder)

// WithLicenseResolver translates license names instead of copying the cell.
func WithLicenseResolver(r LicenseResolver) BuilderOption {
	return func(b *Builder) { b.licenses = r }
}

// WithLogger sets the builder's logger.
func WithLogger(l *slog.Logger) BuilderOption {
	return func(b *Builder) { b.logger = logging.OrDiscard(l) }
}

// Builder assembles output rows one input row at a time.
type Builder struct {
	names     *naming.Resolver
	ids       naming.Identifier
	passwords PasswordGenerator
	licenses  LicenseResolver
	logger    *slog.Logger
}

// NewBuilder wires the per-row steps together.
func NewBuilder(names *naming.Resolver, ids naming.Identifier, passwords PasswordGenerator, opts ...BuilderOption) *Builder {
	b := &Builder{
		names:     names,
		ids:       ids,
		passwords: passwords,
		logger:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns one output row per input row, in input order. The first row
// that fails aborts the batch and no rows are returned.
func (b *Builder) Build(rows []roster.InputRow) (roster.OutputTable, error) {
	out := make(roster.OutputTable, 0, len(rows))
	for i, row := range rows {
		built, err := b.buildRow(row)
		if err != nil {
			return nil, fmt.Errorf("pipeline: row %d (%q): %w", i+1, row.DisplayName, err)
		}
		out = append(out, built)
	}
	return out, nil
}

func (b *Builder) buildRow(row roster.InputRow) (roster.OutputRow, error) {
	displayName, err := b.names.Resolve(row.DisplayName)
	if err != nil {
		return roster.OutputRow{}, err
	}

	skuID := row.LicenseSkuID
	if b.licenses != nil {
		skuID, err = b.licenses.Resolve(row.LicenseSkuID)
		if err != nil {
			if !errors.Is(err, license.ErrNotFound) {
				return roster.OutputRow{}, err
			}
			skuID = ""
		}
	}

	upn := b.ids.Synthesize(displayName)
	b.logger.Debug("row built", "display_name", displayName, "upn", upn, "license", skuID)
	return roster.OutputRow{
		DisplayName:       displayName,
		UserPrincipalName: upn,
		Password:          b.passwords.Generate(),
		LicenseSkuID:      skuID,
	}, nil
}
