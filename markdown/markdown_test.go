package markdown

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatInlineBold(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"**bold**", "<strong>bold</strong>"},
		{"__bold__", "<strong>bold</strong>"},
		{"text **bold** more", "text <strong>bold</strong> more"},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input)
		if got != tt.expected {
			t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineItalic(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"*italic*", "<em>italic</em>"},
		{"_italic_", "<em>italic</em>"},
		{"text *italic* more", "text <em>italic</em> more"},
	}
	for _, tt := range tests {
		got := FormatInline(tt.input)
		if got != tt.expected {
			t.Errorf("FormatInline(%q) = %q, want %q", tt.input, got, tt.expected)
		}
	}
}

func TestFormatInlineCode(t *testing.T) {
	got := FormatInline("use `go test` here")
	want := "use <code>go test</code> here"
	if got != want {
		t.Errorf("FormatInline = %q, want %q", got, want)
	}
	// Emphasis markers inside backticks stay literal.
	got = FormatInline("`a_b_c`")
	if got != "<code>a_b_c</code>" {
		t.Errorf("FormatInline = %q", got)
	}
}

func TestFormatInlineLink(t *testing.T) {
	got := FormatInline("[site](https://example.com/a_b_c)")
	want := `<a href="https://example.com/a_b_c">site</a>`
	if got != want {
		t.Errorf("FormatInline = %q, want %q", got, want)
	}
	// Unsafe schemes drop the link but keep the label.
	got = FormatInline("[bad](javascript:evil)")
	if got != "bad" {
		t.Errorf("FormatInline = %q, want label only", got)
	}
}

func TestFormatInlineImage(t *testing.T) {
	got := FormatInline("![alt text](/img/pic.png)")
	want := `<img alt="alt text" src="/img/pic.png" loading="lazy" decoding="async"/>`
	if got != want {
		t.Errorf("FormatInline = %q, want %q", got, want)
	}
}

func TestRenderMarkdownBlocks(t *testing.T) {
	md := "# Title\n\nA paragraph.\n\n- one\n- two\n\n> quoted\n\n```go\ncode()\n```"
	var buf bytes.Buffer
	RenderMarkdown(&buf, md)
	out := buf.String()

	for _, want := range []string{
		"<h1>Title</h1>",
		"<p>A paragraph.\n</p>",
		"<ul><li>one</li><li>two</li></ul>",
		"<blockquote>quoted</blockquote>",
		`<pre class="code-block"><code class="language-go">code()` + "\n</code></pre>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderMarkdownOrderedList(t *testing.T) {
	var buf bytes.Buffer
	RenderMarkdown(&buf, "1. first\n2. second")
	out := buf.String()
	if !strings.Contains(out, "<ol><li>first</li><li>second</li></ol>") {
		t.Errorf("output = %q", out)
	}
}

func TestSafeURL(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://example.com", "https://example.com"},
		{"/relative/path", "/relative/path"},
		{"#anchor", "#anchor"},
		{"mailto:a@example.com", "mailto:a@example.com"},
		{"javascript:alert(1)", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := SafeURL(tt.input); got != tt.want {
			t.Errorf("SafeURL(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestPlainText(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			"headings stripped",
			"# Title\n\nBody text.",
			"Title Body text.",
		},
		{
			"emphasis stripped",
			"Some **bold** and *italic* and `code`.",
			"Some bold and italic and code.",
		},
		{
			"links keep label",
			"See [the docs](https://example.com) for more.",
			"See the docs for more.",
		},
		{
			"images dropped",
			"Before ![alt](/img.png) after.",
			"Before  after.",
		},
		{
			"code fences skipped",
			"Intro.\n\n```go\nfunc main() {}\n```\n\nOutro.",
			"Intro. Outro.",
		},
		{
			"list and quote markers stripped",
			"- one\n- two\n\n> quoted",
			"one two quoted",
		},
		{
			"ordered list markers stripped",
			"1. first\n2. second",
			"first second",
		},
		{
			"rules dropped",
			"Above.\n\n---\n\nBelow.",
			"Above. Below.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PlainText(tt.input); got != tt.want {
				t.Errorf("PlainText(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
