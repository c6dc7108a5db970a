package parse

import (
	"strings"

	"github.com/JohannesKaufmann/dom"
	"github.com/PuerkitoBio/goquery"
	"github.com/gaurav-prasanna/legispipe/core/text"
	"golang.org/x/net/html"
)

// TokenKind tags a flattened token as a label or a value.
type TokenKind int

const (
	ValueToken TokenKind = iota
	LabelToken
)

// Token is one entry of a flattened cell: element children become labels
// (their text), text nodes become values.
type Token struct {
	Kind TokenKind
	Text string
}

// Flatten turns the direct children of each node in s into a token stream
// in document order. Empty elements such as <br> produce no token, so they
// only separate the values around them.
func Flatten(s *goquery.Selection) []Token {
	var tokens []Token
	for _, node := range s.Nodes {
		for _, child := range dom.AllChildNodes(node) {
			switch child.Type {
			case html.TextNode:
				if v := clean(child.Data); v != "" {
					tokens = append(tokens, Token{Kind: ValueToken, Text: v})
				}
			case html.ElementNode:
				if l := clean(dom.CollectText(child)); l != "" {
					tokens = append(tokens, Token{Kind: LabelToken, Text: l})
				}
			}
		}
	}
	return tokens
}

// Fragments returns the non-blank text nodes under s in document order,
// each cleaned. This is how a table cell is split into discrete fields.
func Fragments(s *goquery.Selection) []string {
	var out []string
	for _, node := range s.Nodes {
		for _, n := range dom.FindAllNodes(node, func(n *html.Node) bool { return n.Type == html.TextNode }) {
			if v := clean(n.Data); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func clean(s string) string {
	return strings.TrimSpace(text.CollapseSpace(text.StripNBSP(s)))
}
