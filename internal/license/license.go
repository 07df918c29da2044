// Package license maps human-readable Microsoft 365 license names to the SKU
// identifiers Entra expects in a bulk-create file.
package license

import (
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/kingrea/entra-bulk/internal/logging"
)

// ErrNotFound is returned for names outside the known SKU table.
var ErrNotFound = errors.New("license: not found")

// SKU enumerates the licenses this tool knows how to assign.
type SKU int

const (
	SKUUnknown SKU = iota
	SKUStudentUseBenefitA3
	SKUFacultyA1
)

type skuInfo struct {
	name string
	id   uuid.UUID
}

var skus = map[SKU]skuInfo{
	SKUStudentUseBenefitA3: {
		name: "Microsoft 365 A3 for students use benefit",
		id:   uuid.MustParse("18250162-5d87-4436-a834-d795c15c80f3"),
	},
	SKUFacultyA1: {
		name: "Office 365 A1 for faculty",
		id:   uuid.MustParse("94763226-9b3c-4e75-a931-5c89701abe66"),
	},
}

// Name returns the display name of the SKU, or "" for SKUUnknown.
func (s SKU) Name() string {
	return skus[s].name
}

// ID returns the SKU identifier, or the nil UUID for SKUUnknown.
func (s SKU) ID() uuid.UUID {
	return skus[s].id
}

func (s SKU) String() string {
	if s == SKUUnknown {
		return "unknown"
	}
	return s.Name()
}

// Lookup matches name exactly (case-sensitive) against the known SKUs.
func Lookup(name string) (SKU, bool) {
	for sku, info := range skus {
		if info.name == name {
			return sku, true
		}
	}
	return SKUUnknown, false
}

// Resolver turns license names into identifier strings, reporting misses
// through its logger instead of aborting the caller.
type Resolver struct {
	logger *slog.Logger
}

// NewResolver returns a resolver that logs misses to logger.
func NewResolver(logger *slog.Logger) *Resolver {
	return &Resolver{logger: logging.OrDiscard(logger)}
}

// Resolve returns the SKU identifier for name. Unknown names produce one
// warning, an empty string and ErrNotFound.
func (r *Resolver) Resolve(name string) (string, error) {
	sku, ok := Lookup(name)
	if !ok {
		r.logger.Warn("License not found", "license", name)
		return "", ErrNotFound
	}
	return sku.ID().String(), nil
}
