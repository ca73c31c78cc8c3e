package processor

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/FaizanAhmed099/tarjama"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// DefaultAttributes lists the attributes whose values are shown to readers.
var DefaultAttributes = []string{"alt", "title", "placeholder", "aria-label"}

// HTMLProcessor extracts and applies translations to HTML content. Both full
// documents and fragments are accepted; fragments come back as fragments.
type HTMLProcessor struct {
	ignoredTags map[string]bool
	attributes  map[string]bool
}

// HTMLOption configures an HTMLProcessor.
type HTMLOption func(*HTMLProcessor)

// WithIgnoredTags replaces the set of tags whose content is left alone.
func WithIgnoredTags(tags ...string) HTMLOption {
	return func(p *HTMLProcessor) {
		p.ignoredTags = lowerSet(tags)
	}
}

// WithAttributes replaces the set of translated attributes. Pass none to
// translate text nodes only.
func WithAttributes(attrs ...string) HTMLOption {
	return func(p *HTMLProcessor) {
		p.attributes = lowerSet(attrs)
	}
}

// NewHTMLProcessor creates a new HTML processor.
func NewHTMLProcessor(opts ...HTMLOption) *HTMLProcessor {
	p := &HTMLProcessor{
		ignoredTags: tarjama.IgnoredTags,
		attributes:  lowerSet(DefaultAttributes),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// parsedHTML holds the parsed document.
type parsedHTML struct {
	doc      *goquery.Document
	fragment bool
}

// Extract parses HTML and returns one node per distinct translatable text.
func (p *HTMLProcessor) Extract(content string) (interface{}, []TextNode, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, nil, &tarjama.ProcessorError{
			Message:     "failed to parse HTML",
			Cause:       err,
			ContentType: "html",
		}
	}

	var nodes []TextNode
	seen := make(map[string]bool)

	add := func(text, nodeType string, n *html.Node, meta map[string]string) {
		hash := tarjama.HashText(text)
		if seen[hash] {
			return
		}
		seen[hash] = true
		nodes = append(nodes, TextNode{
			ID:       fmt.Sprintf("node-%d", len(nodes)),
			Text:     text,
			Hash:     hash,
			NodeType: nodeType,
			Context:  buildContext(n),
			Metadata: meta,
		})
	}

	p.walk(doc, func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if text := strings.TrimSpace(n.Data); translatable(text) {
				meta := map[string]string{}
				if n.Parent != nil {
					meta["parent_tag"] = n.Parent.Data
				}
				add(text, NodeTypeText, n, meta)
			}
		case html.ElementNode:
			for _, attr := range n.Attr {
				if !p.attributes[attr.Key] {
					continue
				}
				if text := strings.TrimSpace(attr.Val); translatable(text) {
					add(text, NodeTypeAttribute, n, map[string]string{
						"parent_tag": n.Data,
						"attr":       attr.Key,
					})
				}
			}
		}
	})

	return &parsedHTML{doc: doc, fragment: !isDocument(content)}, nodes, nil
}

// Apply writes translations, keyed by node hash, back into the document.
// Every occurrence of a text is replaced, not only the first.
func (p *HTMLProcessor) Apply(parsed interface{}, nodes []TextNode, translations map[string]string) (string, error) {
	ph, ok := parsed.(*parsedHTML)
	if !ok {
		return "", &tarjama.ProcessorError{
			Message:     "invalid parsed content type",
			ContentType: "html",
		}
	}

	lookup := func(text string) (string, bool) {
		text = strings.TrimSpace(text)
		if text == "" {
			return "", false
		}
		v, ok := translations[tarjama.HashText(text)]
		return v, ok
	}

	p.walk(ph.doc, func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			if v, ok := lookup(n.Data); ok {
				n.Data = preserveWhitespace(n.Data, v)
			}
		case html.ElementNode:
			for i, attr := range n.Attr {
				if !p.attributes[attr.Key] {
					continue
				}
				if v, ok := lookup(attr.Val); ok {
					n.Attr[i].Val = v
				}
			}
		}
	})

	var (
		out string
		err error
	)
	if ph.fragment {
		out, err = ph.doc.Find("body").Html()
	} else {
		out, err = ph.doc.Html()
	}
	if err != nil {
		return "", &tarjama.ProcessorError{
			Message:     "failed to serialize HTML",
			Cause:       err,
			ContentType: "html",
		}
	}
	return out, nil
}

// ContentType returns "html".
func (p *HTMLProcessor) ContentType() string {
	return "html"
}

// walk visits every node outside ignored and data-no-translate subtrees.
func (p *HTMLProcessor) walk(doc *goquery.Document, visit func(*html.Node)) {
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if p.ignoredTags[strings.ToLower(n.Data)] {
				return
			}
			for _, attr := range n.Attr {
				if attr.Key == "data-no-translate" {
					return
				}
			}
		}
		visit(n)
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	for _, n := range doc.Nodes {
		rec(n)
	}
}

// buildContext describes where a node sits, e.g. `in <button class="primary"> | inside: nav`.
func buildContext(n *html.Node) string {
	el := n
	if n.Type == html.TextNode {
		el = n.Parent
	}
	if el == nil || el.Type != html.ElementNode {
		return ""
	}

	var parts []string
	switch {
	case attrValue(el, "class") != "":
		parts = append(parts, fmt.Sprintf("in <%s class=%q>", el.Data, attrValue(el, "class")))
	case attrValue(el, "id") != "":
		parts = append(parts, fmt.Sprintf("in <%s id=%q>", el.Data, attrValue(el, "id")))
	default:
		parts = append(parts, fmt.Sprintf("in <%s>", el.Data))
	}

	// Up to three ancestors, outermost first
	var ancestors []string
	for a := el.Parent; a != nil && len(ancestors) < 3; a = a.Parent {
		if a.Type == html.ElementNode && a.Data != "html" && a.Data != "body" {
			ancestors = append([]string{a.Data}, ancestors...)
		}
	}
	if len(ancestors) > 0 {
		parts = append(parts, "inside: "+strings.Join(ancestors, " > "))
	}

	return strings.Join(parts, " | ")
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// translatable reports whether text holds at least one Latin letter.
// Numbers, symbols and text already in Arabic are left alone.
func translatable(text string) bool {
	for _, r := range text {
		if r < unicode.MaxASCII && unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func isDocument(content string) bool {
	lower := strings.ToLower(content)
	return strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype")
}

// preserveWhitespace keeps the original leading and trailing whitespace.
func preserveWhitespace(original, translated string) string {
	trimmedLeft := strings.TrimLeft(original, " \t\n\r")
	leading := original[:len(original)-len(trimmedLeft)]
	trailing := trimmedLeft[len(strings.TrimRight(trimmedLeft, " \t\n\r")):]
	return leading + translated + trailing
}

func lowerSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, item := range items {
		set[strings.ToLower(item)] = true
	}
	return set
}

// Verify HTMLProcessor implements ContentProcessor
var _ ContentProcessor = (*HTMLProcessor)(nil)
