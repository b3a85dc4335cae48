// Package format renders the SQL output AST to text, either in a compact
// single-line form or in an indented multi-line form.
package format

import (
	"bytes"
	"strings"

	"github.com/leapstack-labs/prql/pkg/dialect"
)

const indentSize = 2

// printer handles SQL rendering with proper indentation and style.
type printer struct {
	dialect dialect.Handler
	output  bytes.Buffer
	depth   int

	// compact collapses every line break to a single space.
	compact bool

	// pendingBreak defers the break so trailing breaks never print.
	pendingBreak bool
}

func newPrinter(d dialect.Handler, compact bool) *printer {
	return &printer{dialect: d, compact: compact}
}

// String returns the rendered output without trailing whitespace.
func (p *printer) String() string {
	return strings.TrimRight(p.output.String(), " \n")
}

func (p *printer) write(s string) {
	if p.pendingBreak {
		p.pendingBreak = false
		if p.compact {
			p.output.WriteByte(' ')
		} else {
			p.output.WriteByte('\n')
			for i := 0; i < p.depth*indentSize; i++ {
				p.output.WriteByte(' ')
			}
		}
	}
	p.output.WriteString(s)
}

func (p *printer) keyword(s string) {
	p.write(strings.ToUpper(s))
}

func (p *printer) newline() {
	p.pendingBreak = true
}

func (p *printer) space() {
	if !p.pendingBreak {
		p.output.WriteByte(' ')
	}
}

func (p *printer) indent() {
	p.depth++
}

func (p *printer) dedent() {
	if p.depth > 0 {
		p.depth--
	}
}

// parens renders body inside parentheses: inline when compact, as an
// indented block otherwise.
func (p *printer) parens(body func()) {
	if p.compact {
		p.write("(")
		body()
		p.write(")")
		return
	}
	p.write("(")
	p.newline()
	p.indent()
	body()
	p.dedent()
	p.newline()
	p.write(")")
}

// ident writes an identifier quoted per the dialect.
func (p *printer) ident(name string) {
	p.write(p.dialect.QuoteIdent(name))
}
