// Package dialect abstracts per-dialect SQL syntax differences behind a
// small handler interface. Concrete dialects register themselves in the
// package registry and are looked up by compilation targets.
package dialect

import "strings"

// SupportLevel reports how well a dialect target is supported by the
// compiler.
type SupportLevel int

const (
	// Supported dialects are fully maintained and tested.
	Supported SupportLevel = iota
	// Nightly dialects work but their output may change between releases.
	Nightly
	// Unsupported dialects are recognized but produce no guarantees.
	Unsupported
)

// String returns the human-readable support level.
func (l SupportLevel) String() string {
	switch l {
	case Supported:
		return "supported"
	case Nightly:
		return "nightly"
	case Unsupported:
		return "unsupported"
	default:
		return "unknown"
	}
}

// Handler renders dialect-specific syntax during SQL generation.
type Handler interface {
	// Name is the dialect identity as used in compilation targets.
	Name() string

	// QuoteIdent renders an identifier, quoting it only when required.
	QuoteIdent(ident string) string

	// SupportLevel reports how supported this dialect is.
	SupportLevel() SupportLevel

	// SupportsCTEs reports whether WITH clauses may be emitted.
	SupportsCTEs() bool
}

// reservedWords are identifiers that always need quoting, in any dialect.
var reservedWords = map[string]struct{}{
	"select": {}, "from": {}, "where": {}, "group": {}, "order": {},
	"by": {}, "join": {}, "on": {}, "as": {}, "with": {}, "union": {},
	"having": {}, "limit": {}, "offset": {}, "table": {}, "user": {},
	"and": {}, "or": {}, "not": {}, "case": {}, "when": {}, "then": {},
	"else": {}, "end": {}, "distinct": {}, "all": {},
}

// needsQuoting reports whether ident cannot be emitted bare.
func needsQuoting(ident string) bool {
	if ident == "" {
		return true
	}
	if _, reserved := reservedWords[strings.ToLower(ident)]; reserved {
		return true
	}
	for i, r := range ident {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r == '_':
		case r >= '0' && r <= '9':
			if i == 0 {
				return true
			}
		default:
			return true
		}
	}
	return false
}

// quoteWith quotes ident with the given quote character, doubling embedded
// quotes, but leaves plain identifiers bare.
func quoteWith(ident, quote string) string {
	if !needsQuoting(ident) {
		return ident
	}
	return quote + strings.ReplaceAll(ident, quote, quote+quote) + quote
}

// standard is ANSI behavior: double-quoted identifiers, CTEs allowed.
// Concrete dialects embed it and override what differs.
type standard struct {
	name  string
	level SupportLevel
}

func (d standard) Name() string { return d.name }

func (d standard) QuoteIdent(ident string) string { return quoteWith(ident, `"`) }

func (d standard) SupportLevel() SupportLevel { return d.level }

func (d standard) SupportsCTEs() bool { return true }

// backtickDialect quotes identifiers with backticks (MySQL, BigQuery).
type backtickDialect struct {
	standard
}

func (d backtickDialect) QuoteIdent(ident string) string { return quoteWith(ident, "`") }

// bracketDialect quotes identifiers with square brackets (MSSQL).
type bracketDialect struct {
	standard
}

func (d bracketDialect) QuoteIdent(ident string) string {
	if !needsQuoting(ident) {
		return ident
	}
	return "[" + strings.ReplaceAll(ident, "]", "]]") + "]"
}
