// Package naming turns roster display names into the names and user principal
// names written to the bulk-create file.
package naming

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kingrea/entra-bulk/internal/logging"
)

// DefaultDomain is appended to every synthesized principal name.
const DefaultDomain = "penguincoding.org"

// maxPlainTokens is the largest token count accepted without asking an operator.
const maxPlainTokens = 2

// Disambiguator supplies a replacement for a display name that needs a human
// decision. Implementations block until they have an answer.
type Disambiguator interface {
	Disambiguate(rawName string) (string, error)
}

// DisambiguatorFunc adapts a function to Disambiguator.
type DisambiguatorFunc func(rawName string) (string, error)

func (f DisambiguatorFunc) Disambiguate(rawName string) (string, error) {
	return f(rawName)
}

// Resolver decides the display name for each roster row.
type Resolver struct {
	disambiguator Disambiguator
	logger        *slog.Logger
}

// NewResolver returns a resolver that consults d for names of more than two tokens.
func NewResolver(d Disambiguator, logger *slog.Logger) *Resolver {
	return &Resolver{disambiguator: d, logger: logging.OrDiscard(logger)}
}

// NeedsDisambiguation reports whether name has more than two whitespace-separated tokens.
func NeedsDisambiguation(name string) bool {
	return len(strings.Fields(name)) > maxPlainTokens
}

// Resolve returns name unchanged when it has at most two tokens. Otherwise it
// asks the disambiguator exactly once and returns its answer verbatim.
func (r *Resolver) Resolve(name string) (string, error) {
	if !NeedsDisambiguation(name) {
		return name, nil
	}
	if r.disambiguator == nil {
		return "", fmt.Errorf("naming: %q needs a manual display name but no disambiguator is configured", name)
	}
	resolved, err := r.disambiguator.Disambiguate(name)
	if err != nil {
		return "", fmt.Errorf("naming: disambiguate %q: %w", name, err)
	}
	r.logger.Debug("display name replaced", "original", name, "resolved", resolved)
	return resolved, nil
}

// Identifier synthesizes user principal names under a fixed domain.
type Identifier struct {
	Domain string
}

// NewIdentifier returns an Identifier for domain, or DefaultDomain when empty.
func NewIdentifier(domain string) Identifier {
	domain = strings.TrimPrefix(strings.TrimSpace(domain), "@")
	if domain == "" {
		domain = DefaultDomain
	}
	return Identifier{Domain: domain}
}

// Synthesize lower-cases name, drops ", " (so "Doe, Jane" reads as "doejane"),
// strips all remaining whitespace and appends the domain. Distinct rows can
// produce the same result; no uniqueness is enforced here.
func (i Identifier) Synthesize(name string) string {
	local := cases.Lower(language.Und).String(name)
	local = strings.ReplaceAll(local, ", ", "")
	local = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, local)
	return local + "@" + i.Domain
}
