// Package lint reports markdown constructs that the APA converter renders
// literally, flattens, or drops. Findings are advisory: conversion output
// never depends on them.
package lint

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Rule names.
const (
	RuleTable         = "table"
	RuleLink          = "link"
	RuleImage         = "image"
	RuleBlockquote    = "blockquote"
	RuleNestedList    = "nested-list"
	RuleListMarker    = "list-marker"
	RuleFootnote      = "footnote"
	RuleHeadingDepth  = "heading-depth"
	RuleSetextHeading = "setext-heading"
	RuleExtraTitle    = "extra-title"
	RuleStrikethrough = "strikethrough"
	RuleHTML          = "html"
	RuleIndentedCode  = "indented-code"
	RuleFenceStyle    = "fence-style"
	RuleUnderscore    = "underscore-emphasis"
)

// Finding is one diagnostic at a 1-based source line.
type Finding struct {
	Line    int
	Rule    string
	Message string
}

func (f Finding) String() string {
	return fmt.Sprintf("%d: %s [%s]", f.Line, f.Message, f.Rule)
}

// Linter parses markdown with CommonMark and GFM extensions and compares
// the result against the supported dialect. A Linter is safe for concurrent use.
type Linter struct {
	md goldmark.Markdown
}

// New creates a Linter.
func New() *Linter {
	return &Linter{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				extension.Strikethrough,
				extension.Footnote,
			),
		),
	}
}

// Check returns the findings for src ordered by line.
func (l *Linter) Check(src []byte) []Finding {
	root := l.md.Parser().Parse(text.NewReader(src))
	c := &checker{src: src, lines: lineStarts(src)}

	// Walk never fails: the walker returns no errors.
	_ = ast.Walk(root, c.visit)

	slices.SortStableFunc(c.findings, func(a, b Finding) int {
		return cmp.Compare(a.Line, b.Line)
	})
	return c.findings
}

type checker struct {
	src      []byte
	lines    []int // byte offset of each line start
	titles   int
	findings []Finding
}

func (c *checker) report(n ast.Node, rule, msg string) {
	c.reportAt(c.line(n), rule, msg)
}

func (c *checker) reportAt(line int, rule, msg string) {
	c.findings = append(c.findings, Finding{Line: line, Rule: rule, Message: msg})
}

func (c *checker) visit(n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}

	switch n := n.(type) {
	case *ast.Heading:
		c.heading(n)

	case *ast.Blockquote:
		c.report(n, RuleBlockquote, "blockquote marker renders as text")

	case *ast.List:
		c.list(n)

	case *ast.CodeBlock:
		c.report(n, RuleIndentedCode, "indented code renders as paragraphs; use ``` fences")
		return ast.WalkSkipChildren, nil

	case *ast.FencedCodeBlock:
		c.fence(n)
		return ast.WalkSkipChildren, nil

	case *ast.HTMLBlock, *ast.RawHTML:
		c.report(n, RuleHTML, "raw HTML renders as text")

	case *ast.Link, *ast.AutoLink:
		c.report(n, RuleLink, "link syntax renders as text")

	case *ast.Image:
		c.report(n, RuleImage, "images are not embedded; the syntax renders as text")
		return ast.WalkSkipChildren, nil

	case *ast.Emphasis:
		if off, ok := offset(n); ok && off > 0 && c.src[off-1] == '_' {
			c.report(n, RuleUnderscore, "underscore emphasis renders as text; use * or **")
		}

	case *east.Table:
		c.report(n, RuleTable, "tables render as plain paragraphs")
		return ast.WalkSkipChildren, nil

	case *east.Strikethrough:
		c.report(n, RuleStrikethrough, "strikethrough renders as text")

	case *east.FootnoteLink:
		c.report(n, RuleFootnote, "footnote references render as text")

	case *east.Footnote:
		c.report(n, RuleFootnote, "footnote definitions render as paragraphs")
	}

	return ast.WalkContinue, nil
}

func (c *checker) heading(h *ast.Heading) {
	if h.Lines().Len() == 0 {
		return
	}
	line := bytes.TrimLeft(c.lineText(c.line(h)), " ")
	if !bytes.HasPrefix(line, []byte("#")) {
		c.report(h, RuleSetextHeading, "underlined heading renders as a paragraph; use ## markers")
		return
	}

	switch {
	case h.Level == 1:
		c.titles++
		if c.titles > 1 {
			c.report(h, RuleExtraTitle, "every # line is dropped from the body; only the first sets the title")
		}
	case h.Level > 4:
		c.report(h, RuleHeadingDepth, fmt.Sprintf("level %d heading renders as a paragraph; the deepest level is 4", h.Level))
	}
}

func (c *checker) list(l *ast.List) {
	for p := l.Parent(); p != nil; p = p.Parent() {
		if _, ok := p.(*ast.ListItem); ok {
			c.report(l, RuleNestedList, "nested lists are flattened")
			break
		}
	}

	switch {
	case l.IsOrdered() && l.Marker != '.':
		c.report(l, RuleListMarker, fmt.Sprintf("numbered items need a %q marker, not %q", '.', l.Marker))
	case !l.IsOrdered() && l.Marker == '+':
		c.report(l, RuleListMarker, "+ bullets render as text; use - or *")
	}
}

func (c *checker) fence(f *ast.FencedCodeBlock) {
	var fenceLine int
	switch {
	case f.Info != nil:
		fenceLine = c.lineAt(f.Info.Segment.Start)
	case f.Lines().Len() > 0:
		fenceLine = c.lineAt(f.Lines().At(0).Start) - 1
	default:
		return
	}
	if !bytes.HasPrefix(c.lineText(fenceLine), []byte("```")) {
		c.reportAt(fenceLine, RuleFenceStyle, "only ``` fences at the start of a line open code blocks")
	}
}

// line returns the 1-based source line where n starts. Nodes without a
// source position take the position of their nearest positioned ancestor.
func (c *checker) line(n ast.Node) int {
	for p := n; p != nil; p = p.Parent() {
		if off, ok := offset(p); ok {
			return c.lineAt(off)
		}
	}
	return 1
}

func (c *checker) lineAt(off int) int {
	return sort.Search(len(c.lines), func(i int) bool { return c.lines[i] > off })
}

// lineText returns the text of a 1-based line without its newline.
func (c *checker) lineText(line int) []byte {
	if line < 1 || line > len(c.lines) {
		return nil
	}
	start := c.lines[line-1]
	end := len(c.src)
	if line < len(c.lines) {
		end = c.lines[line] - 1
	}
	return bytes.TrimRight(c.src[start:end], "\r\n")
}

// offset finds the first source byte of n or its descendants.
func offset(n ast.Node) (int, bool) {
	if t, ok := n.(*ast.Text); ok {
		return t.Segment.Start, true
	}
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		return n.Lines().At(0).Start, true
	}
	for ch := n.FirstChild(); ch != nil; ch = ch.NextSibling() {
		if off, ok := offset(ch); ok {
			return off, true
		}
	}
	return 0, false
}

func lineStarts(src []byte) []int {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' && i+1 < len(src) {
			starts = append(starts, i+1)
		}
	}
	return starts
}
