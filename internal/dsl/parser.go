// Package dsl parses the line-oriented item list format used by .pack files:
//
//	# kitchen cabinet
//	project "Cabinet"
//	container 2440x1220
//	sort area
//	item "Side" 600x400 qty 2
//	item "Top" 500x300
//	item "Shelf" 400x300 x3
package dsl

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var (
	packLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `[ \t\r]+`},
		{Name: "Newline", Pattern: `\n+`},
		{Name: "Comment", Pattern: `(?:#|//)[^\n]*`},
		{Name: "Dimensions", Pattern: `\d+(?:\.\d+)?[xX]\d+(?:\.\d+)?`},
		{Name: "Number", Pattern: `-?\d+(?:\.\d+)?`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Count", Pattern: `[xX]\d+\b`},
		{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_-]*`},
	})

	fileParser = participle.MustBuild[File](
		participle.Lexer(packLexer),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(2),
	)
)

// File is the root AST node of a .pack file.
type File struct {
	Statements []*Statement `parser:"Newline* ( @@ Newline* )*"`
}

// Statement is one declaration line.
type Statement struct {
	Pos       lexer.Position
	Project   *StringLiteral `parser:"  'project' @String"`
	Container *Dimensions    `parser:"| 'container' @Dimensions"`
	Sort      *string        `parser:"| 'sort' @Ident"`
	Algorithm *string        `parser:"| 'algorithm' @Ident"`
	Seed      *int64         `parser:"| 'seed' @Number"`
	Item      *ItemDecl      `parser:"| @@"`
}

// ItemDecl declares one item with an optional quantity.
type ItemDecl struct {
	Label    StringLiteral `parser:"'item' @String"`
	Size     Dimensions    `parser:"@Dimensions"`
	Quantity *Count        `parser:"( ('qty' | 'x') @Number | @Count )?"`
}

// Count is an item quantity, written "qty 3", "x 3" or "x3".
type Count int

// Capture implements participle.Capture.
func (c *Count) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("count capture requires value")
	}
	n, err := strconv.Atoi(strings.TrimLeft(values[0], "xX"))
	if err != nil {
		return fmt.Errorf("invalid quantity %q", values[0])
	}
	*c = Count(n)
	return nil
}

// StringLiteral unquotes Go-style strings on capture.
type StringLiteral string

// Capture implements participle.Capture.
func (s *StringLiteral) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("string literal capture requires value")
	}
	val, err := strconv.Unquote(values[0])
	if err != nil {
		return err
	}
	*s = StringLiteral(val)
	return nil
}

// Dimensions is a WIDTHxHEIGHT token.
type Dimensions struct {
	Width  float64
	Height float64
}

// Capture implements participle.Capture.
func (d *Dimensions) Capture(values []string) error {
	if len(values) == 0 {
		return fmt.Errorf("dimensions capture requires value")
	}
	w, h, err := ParseDimensions(values[0])
	if err != nil {
		return err
	}
	d.Width, d.Height = w, h
	return nil
}

// ParseDimensions splits "WxH" into its two numbers. Used by the CLI flags too.
func ParseDimensions(s string) (float64, float64, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid dimensions %q (want WIDTHxHEIGHT)", s)
	}
	w, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	return w, h, nil
}

// Parse parses .pack content from an io.Reader.
func Parse(r io.Reader) (*File, error) {
	return fileParser.Parse("", r)
}

// ParseString parses .pack content from a string.
func ParseString(input string) (*File, error) {
	return fileParser.ParseString("", input)
}
