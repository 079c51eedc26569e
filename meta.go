package metaengine

import (
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/eringen/metaengine/markdown"
)

// DefaultType is the content type items belong to unless set otherwise.
const DefaultType = "post"

// maxDescriptionLen bounds derived descriptions. Stored overrides are never truncated.
const maxDescriptionLen = 160

// Resolver computes fallback-chain metadata for item and collection pages.
// Stored override fields win over values derived from the item; derived
// values win over site-global defaults. Resolution never fails: every absent
// input degrades to the next tier of its chain.
type Resolver struct {
	cfg   SiteConfig
	names map[string]func(SiteConfig) string

	mu      sync.RWMutex
	logoURL string
}

// NewResolver creates a Resolver bound to the given site config.
func NewResolver(cfg SiteConfig) *Resolver {
	return &Resolver{
		cfg:     cfg,
		names:   make(map[string]func(SiteConfig) string),
		logoURL: cfg.LogoURL,
	}
}

// SetCollectionName registers a naming hook for a content type's collection title.
func (r *Resolver) SetCollectionName(contentType string, fn func(SiteConfig) string) {
	r.names[contentType] = fn
}

// SetLogoURL updates the configured-logo tier of the social-image chain.
// Called when the admin uploads or replaces the site logo; safe to call while
// other goroutines resolve.
func (r *Resolver) SetLogoURL(u string) {
	r.mu.Lock()
	r.logoURL = u
	r.mu.Unlock()
}

// Title resolves the document title for an item: stored override, the site
// title for the designated front item, else "{item title} - {site title}".
func (r *Resolver) Title(item ContentItem, ov Overrides) string {
	if t := strings.TrimSpace(ov.Title); t != "" {
		return t
	}
	if r.cfg.FrontSlug != "" && item.Slug == r.cfg.FrontSlug {
		return r.cfg.Name
	}
	return item.Title + " - " + r.cfg.Name
}

// Description resolves the description for an item: stored override, else an
// excerpt of the body plain text cut at a word boundary.
func (r *Resolver) Description(item ContentItem, ov Overrides) string {
	if d := strings.TrimSpace(ov.Description); d != "" {
		return d
	}
	return Excerpt(markdown.PlainText(item.Body), maxDescriptionLen)
}

// Resolve computes the metadata for a single item page.
func (r *Resolver) Resolve(item ContentItem, ov Overrides) ResolvedMeta {
	title := r.Title(item, ov)
	desc := r.Description(item, ov)
	pageURL := BuildURL(r.cfg.URL, "blog", item.Slug)
	if r.cfg.FrontSlug != "" && item.Slug == r.cfg.FrontSlug {
		pageURL = BuildURL(r.cfg.URL)
	}

	tags := []Tag{
		{AttrName, "description", desc},
		{AttrProperty, "og:locale", r.cfg.Locale},
		{AttrProperty, "og:type", "article"},
		{AttrProperty, "og:title", coalesce(ov.OGTitle, title)},
		{AttrProperty, "og:description", coalesce(ov.OGDescription, desc)},
		{AttrProperty, "og:url", pageURL},
		{AttrProperty, "og:site_name", r.cfg.Name},
	}
	if !item.Updated.IsZero() {
		tags = append(tags, Tag{AttrProperty, "og:updated_time", item.Updated.UTC().Format(time.RFC3339)})
	}
	tags = append(tags,
		Tag{AttrProperty, "og:image", r.socialImage(ov.OGImage, item)},
		Tag{AttrName, "twitter:card", "summary_large_image"},
		Tag{AttrName, "twitter:title", coalesce(ov.TwitterTitle, title)},
		Tag{AttrName, "twitter:description", coalesce(ov.TwitterDescription, desc)},
		Tag{AttrName, "twitter:image", r.socialImage(ov.TwitterImage, item)},
	)
	return ResolvedMeta{Title: title, Tags: tags}
}

// ResolveCollection computes the metadata for a collection (archive) page.
// The update-time and image tags are omitted and og:type is "summary",
// matching the tag stream existing consumers expect.
func (r *Resolver) ResolveCollection(contentType string) ResolvedMeta {
	if contentType == "" {
		contentType = DefaultType
	}
	return r.listingMeta(contentType, BuildURL(r.cfg.URL, "archive", contentType))
}

// ResolveFrontListing computes the metadata for the default listing served at
// the site root. Same tags as its archive page, but the canonical URL is the
// base URL.
func (r *Resolver) ResolveFrontListing() ResolvedMeta {
	return r.listingMeta(DefaultType, BuildURL(r.cfg.URL))
}

func (r *Resolver) listingMeta(contentType, pageURL string) ResolvedMeta {
	title := r.CollectionLabel(contentType) + " - " + r.cfg.Name
	desc := r.cfg.Description

	tags := []Tag{
		{AttrName, "description", desc},
		{AttrProperty, "og:locale", r.cfg.Locale},
		{AttrProperty, "og:type", "summary"},
		{AttrProperty, "og:title", title},
		{AttrProperty, "og:description", desc},
		{AttrProperty, "og:url", pageURL},
		{AttrProperty, "og:site_name", r.cfg.Name},
		{AttrName, "twitter:card", "summary"},
		{AttrName, "twitter:title", title},
		{AttrName, "twitter:description", desc},
	}
	return ResolvedMeta{Title: title, Tags: tags}
}

// CollectionLabel resolves the display name for a content type: registered
// hook first, "Blog" for the default type, else a title-cased form of the id.
// Ids that clean down to nothing degrade to the generic label.
func (r *Resolver) CollectionLabel(contentType string) string {
	if fn, ok := r.names[contentType]; ok && fn != nil {
		if name := strings.TrimSpace(fn(r.cfg)); name != "" {
			return name
		}
	}
	if contentType == "" || contentType == DefaultType {
		return "Blog"
	}
	if name := titleCaseID(contentType); name != "" {
		return name
	}
	return "Blog"
}

// socialImage walks the image chain: per-surface override, item thumbnail,
// configured logo, generic site icon. The winner is absolutized against the
// site base URL.
func (r *Resolver) socialImage(override string, item ContentItem) string {
	r.mu.RLock()
	logo := r.logoURL
	r.mu.RUnlock()
	return AbsoluteURL(r.cfg.URL, coalesce(override, item.Thumbnail, logo, r.cfg.IconURL))
}

// coalesce returns the first value that is non-blank after trimming.
func coalesce(vals ...string) string {
	for _, v := range vals {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}

// titleCaseID turns a content type id like "case-study" into "Case Study".
func titleCaseID(id string) string {
	words := strings.FieldsFunc(strings.ToLower(id), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for i, w := range words {
		rs := []rune(w)
		rs[0] = unicode.ToUpper(rs[0])
		words[i] = string(rs)
	}
	return strings.Join(words, " ")
}
