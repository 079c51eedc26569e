package metaengine

import (
	"encoding/json"
	"testing"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Spaces  Around  ", "spaces-around"},
		{"Already-slugged", "already-slugged"},
		{"Symbols & Stuff!", "symbols-stuff"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base     string
		segments []string
		want     string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"blog", "hello"}, "https://example.com/blog/hello/"},
		{"https://example.com/sub", []string{"blog"}, "https://example.com/sub/blog/"},
	}
	for _, tt := range tests {
		if got := BuildURL(tt.base, tt.segments...); got != tt.want {
			t.Errorf("BuildURL(%q, %v) = %q, want %q", tt.base, tt.segments, got, tt.want)
		}
	}
}

func TestWebsiteJsonLD(t *testing.T) {
	cfg := testConfig()
	cfg.Author = "Jo Writer"

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(WebsiteJsonLD(cfg)), &data); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if data["@type"] != "WebSite" {
		t.Errorf("@type = %v", data["@type"])
	}
	if data["name"] != "Acme Blog" {
		t.Errorf("name = %v", data["name"])
	}
	author, ok := data["author"].(map[string]interface{})
	if !ok || author["name"] != "Jo Writer" {
		t.Errorf("author = %v", data["author"])
	}
}

func TestArticleJsonLD(t *testing.T) {
	cfg := testConfig()
	item := testItem()
	meta := NewResolver(cfg).Resolve(item, Overrides{})

	var data map[string]interface{}
	if err := json.Unmarshal([]byte(ArticleJsonLD(item, meta, cfg)), &data); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if data["headline"] != meta.Title {
		t.Errorf("headline = %v, want %q", data["headline"], meta.Title)
	}
	// Description and image come from the resolved tags, never recomputed.
	if data["description"] != "A short body about widgets." {
		t.Errorf("description = %v", data["description"])
	}
	if data["image"] != "https://example.com/favicon.svg" {
		t.Errorf("image = %v", data["image"])
	}
	if data["dateModified"] != "2024-03-01" {
		t.Errorf("dateModified = %v", data["dateModified"])
	}
}

func TestAbsoluteURL(t *testing.T) {
	tests := []struct {
		base string
		ref  string
		want string
	}{
		{"https://example.com", "/img/a.jpg", "https://example.com/img/a.jpg"},
		{"https://example.com", "https://cdn.example.com/a.jpg", "https://cdn.example.com/a.jpg"},
		{"https://example.com", "", ""},
		{"https://example.com/sub", "/favicon.svg", "https://example.com/sub/favicon.svg"},
	}
	for _, tt := range tests {
		if got := AbsoluteURL(tt.base, tt.ref); got != tt.want {
			t.Errorf("AbsoluteURL(%q, %q) = %q, want %q", tt.base, tt.ref, got, tt.want)
		}
	}
}
