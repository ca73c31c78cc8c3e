package processor

import (
	"errors"
	"strings"
	"testing"

	"github.com/FaizanAhmed099/tarjama"
)

func TestHTMLProcessor_Extract_Basic(t *testing.T) {
	p := NewHTMLProcessor()

	html := `<div><h1>Our Projects</h1><p>Building the future.</p></div>`
	parsed, nodes, err := p.Extract(html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if parsed == nil {
		t.Fatal("parsed should not be nil")
	}

	if len(nodes) != 2 {
		t.Fatalf("Expected 2 nodes, got %d", len(nodes))
	}

	if nodes[0].Text != "Our Projects" {
		t.Errorf("Expected 'Our Projects', got %q", nodes[0].Text)
	}
	if nodes[0].Hash != tarjama.HashText("Our Projects") {
		t.Error("Hash should be the hash of the trimmed text")
	}
	if nodes[0].NodeType != NodeTypeText {
		t.Errorf("Expected node type %q, got %q", NodeTypeText, nodes[0].NodeType)
	}
	if nodes[0].Metadata["parent_tag"] != "h1" {
		t.Errorf("Expected parent_tag h1, got %q", nodes[0].Metadata["parent_tag"])
	}

	if nodes[1].Text != "Building the future." {
		t.Errorf("Expected 'Building the future.', got %q", nodes[1].Text)
	}
}

func TestHTMLProcessor_Extract_IgnoredTags(t *testing.T) {
	p := NewHTMLProcessor()

	html := `<div>
		<p>Translate me</p>
		<script>doNotTranslate();</script>
		<style>.class { color: red; }</style>
		<code>const x = 1;</code>
		<pre>preformatted</pre>
		<textarea>form input</textarea>
	</div>`

	_, nodes, err := p.Extract(html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(nodes) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(nodes))
	}
	if nodes[0].Text != "Translate me" {
		t.Errorf("Expected 'Translate me', got %q", nodes[0].Text)
	}
}

func TestHTMLProcessor_Extract_CustomIgnoredTags(t *testing.T) {
	p := NewHTMLProcessor(WithIgnoredTags("FOOTER"))

	_, nodes, err := p.Extract(`<main>Visible</main><footer>Hidden</footer>`)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(nodes) != 1 || nodes[0].Text != "Visible" {
		t.Errorf("Expected only 'Visible', got %+v", nodes)
	}
}

func TestHTMLProcessor_Extract_DataNoTranslate(t *testing.T) {
	p := NewHTMLProcessor()

	html := `<div>
		<p data-no-translate>Keep this</p>
		<p>Translate this</p>
	</div>`

	_, nodes, err := p.Extract(html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(nodes) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(nodes))
	}
	if nodes[0].Text != "Translate this" {
		t.Errorf("Expected 'Translate this', got %q", nodes[0].Text)
	}
}

func TestHTMLProcessor_Extract_SkipsNonLatin(t *testing.T) {
	p := NewHTMLProcessor()

	_, nodes, err := p.Extract(`<ul><li>2024</li><li>مرحبا</li><li>© 10%</li><li>Contact Us</li></ul>`)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(nodes) != 1 || nodes[0].Text != "Contact Us" {
		t.Errorf("Expected only 'Contact Us', got %+v", nodes)
	}
}

func TestHTMLProcessor_Extract_Deduplication(t *testing.T) {
	p := NewHTMLProcessor()

	html := `<div>
		<p>Hello</p>
		<p>Hello</p>
		<p>Hello</p>
	</div>`

	_, nodes, err := p.Extract(html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(nodes) != 1 {
		t.Fatalf("Expected 1 unique node, got %d", len(nodes))
	}
}

func TestHTMLProcessor_Extract_Attributes(t *testing.T) {
	p := NewHTMLProcessor()

	html := `<form><input placeholder="Your name" name="full_name"><img alt="Company logo" src="logo.png"></form>`
	_, nodes, err := p.Extract(html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(nodes) != 2 {
		t.Fatalf("Expected 2 attribute nodes, got %d", len(nodes))
	}
	if nodes[0].Text != "Your name" || nodes[0].Metadata["attr"] != "placeholder" {
		t.Errorf("Unexpected first node: %+v", nodes[0])
	}
	if nodes[1].NodeType != NodeTypeAttribute {
		t.Errorf("Expected attribute node type, got %q", nodes[1].NodeType)
	}

	p = NewHTMLProcessor(WithAttributes())
	_, nodes, err = p.Extract(html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(nodes) != 0 {
		t.Errorf("Expected no nodes with attributes disabled, got %d", len(nodes))
	}
}

func TestHTMLProcessor_Extract_Context(t *testing.T) {
	p := NewHTMLProcessor()

	html := `<nav><button class="primary">Run</button></nav>`
	_, nodes, err := p.Extract(html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(nodes) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(nodes))
	}

	ctx := nodes[0].Context
	if !strings.Contains(ctx, "button") {
		t.Errorf("Context should mention button tag, got: %s", ctx)
	}
	if !strings.Contains(ctx, "primary") {
		t.Errorf("Context should mention class, got: %s", ctx)
	}
	if !strings.Contains(ctx, "inside: nav") {
		t.Errorf("Context should mention the ancestor, got: %s", ctx)
	}
}

func TestHTMLProcessor_Apply_Fragment(t *testing.T) {
	p := NewHTMLProcessor()

	html := `<div><p>Hello</p><p>Contact Us</p></div>`
	parsed, nodes, err := p.Extract(html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	translations := map[string]string{
		tarjama.HashText("Hello"):      "مرحبا",
		tarjama.HashText("Contact Us"): "اتصل بنا",
	}

	result, err := p.Apply(parsed, nodes, translations)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	want := `<div><p>مرحبا</p><p>اتصل بنا</p></div>`
	if result != want {
		t.Errorf("Apply() = %q, want %q", result, want)
	}
}

func TestHTMLProcessor_Apply_Document(t *testing.T) {
	p := NewHTMLProcessor()

	html := `<!DOCTYPE html><html><head><title>Home</title></head><body><p>Hello</p></body></html>`
	parsed, nodes, err := p.Extract(html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	result, err := p.Apply(parsed, nodes, map[string]string{
		tarjama.HashText("Home"):  "الرئيسية",
		tarjama.HashText("Hello"): "مرحبا",
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if !strings.Contains(result, "<title>الرئيسية</title>") {
		t.Errorf("Expected translated title, got: %s", result)
	}
	if !strings.Contains(result, "<html>") || !strings.Contains(result, "<p>مرحبا</p>") {
		t.Errorf("Expected a full document, got: %s", result)
	}
}

func TestHTMLProcessor_Apply_Attributes(t *testing.T) {
	p := NewHTMLProcessor()

	html := `<img alt="Company logo" src="logo.png"/>`
	parsed, nodes, err := p.Extract(html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	result, err := p.Apply(parsed, nodes, map[string]string{
		tarjama.HashText("Company logo"): "شعار الشركة",
	})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if !strings.Contains(result, `alt="شعار الشركة"`) {
		t.Errorf("Expected translated alt attribute, got: %s", result)
	}
	if !strings.Contains(result, `src="logo.png"`) {
		t.Errorf("Expected src untouched, got: %s", result)
	}
}

func TestHTMLProcessor_Apply_PreservesWhitespace(t *testing.T) {
	p := NewHTMLProcessor()

	parsed, nodes, err := p.Extract(`<p>  Hello  </p>`)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	result, err := p.Apply(parsed, nodes, map[string]string{nodes[0].Hash: "مرحبا"})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if !strings.Contains(result, "  مرحبا  ") {
		t.Errorf("Result should preserve whitespace, got: %s", result)
	}
}

func TestHTMLProcessor_Apply_DuplicateTexts(t *testing.T) {
	p := NewHTMLProcessor()

	parsed, nodes, err := p.Extract(`<div><p>Hello</p><p>Hello</p></div>`)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(nodes) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(nodes))
	}

	result, err := p.Apply(parsed, nodes, map[string]string{nodes[0].Hash: "مرحبا"})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if count := strings.Count(result, "مرحبا"); count != 2 {
		t.Errorf("Expected 2 instances of 'مرحبا', got %d in: %s", count, result)
	}
}

func TestHTMLProcessor_Apply_MissingTranslationKeepsText(t *testing.T) {
	p := NewHTMLProcessor()

	parsed, nodes, err := p.Extract(`<p>Hello</p><p>Goodbye</p>`)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	result, err := p.Apply(parsed, nodes, map[string]string{tarjama.HashText("Hello"): "مرحبا"})
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	if result != "<p>مرحبا</p><p>Goodbye</p>" {
		t.Errorf("Unexpected result: %q", result)
	}
}

func TestHTMLProcessor_Apply_InvalidParsed(t *testing.T) {
	p := NewHTMLProcessor()

	_, err := p.Apply("not parsed html", nil, nil)

	var procErr *tarjama.ProcessorError
	if !errors.As(err, &procErr) {
		t.Fatalf("Expected ProcessorError, got %v", err)
	}
	if procErr.ContentType != "html" {
		t.Errorf("Expected content type 'html', got %q", procErr.ContentType)
	}
}

func TestHTMLProcessor_ContentType(t *testing.T) {
	p := NewHTMLProcessor()
	if p.ContentType() != "html" {
		t.Errorf("Expected 'html', got %q", p.ContentType())
	}
}

func TestPreserveWhitespace(t *testing.T) {
	tests := []struct {
		original   string
		translated string
		expected   string
	}{
		{"Hello", "مرحبا", "مرحبا"},
		{"  Hello", "مرحبا", "  مرحبا"},
		{"Hello  ", "مرحبا", "مرحبا  "},
		{"  Hello  ", "مرحبا", "  مرحبا  "},
		{"\n\tHello\n", "مرحبا", "\n\tمرحبا\n"},
	}

	for _, tt := range tests {
		result := preserveWhitespace(tt.original, tt.translated)
		if result != tt.expected {
			t.Errorf("preserveWhitespace(%q, %q) = %q, want %q",
				tt.original, tt.translated, result, tt.expected)
		}
	}
}

func TestHTMLProcessor_EmptyContent(t *testing.T) {
	p := NewHTMLProcessor()

	for _, html := range []string{`<div></div>`, `<div>   </div>`} {
		_, nodes, err := p.Extract(html)
		if err != nil {
			t.Fatalf("Extract failed: %v", err)
		}
		if len(nodes) != 0 {
			t.Errorf("Expected 0 nodes for %q, got %d", html, len(nodes))
		}
	}
}
