package metaengine

import "time"

// ContentItem is the core content type stored in SQLite and rendered by templates.
type ContentItem struct {
	Slug      string
	Type      string // content type id, e.g. "post"
	Title     string
	Date      string // publish date, YYYY-MM-DD
	Body      string // markdown source
	Thumbnail string // preview image path, optional
	Updated   time.Time
	Published bool
}

// Overrides holds the stored per-item metadata fields authored in the admin.
// A non-blank field wins over the value computed from the item; blank fields
// fall through the resolver's fallback chain.
type Overrides struct {
	Title              string
	Description        string
	OGTitle            string
	OGDescription      string
	OGImage            string
	TwitterTitle       string
	TwitterDescription string
	TwitterImage       string
}

// Meta tag attribute names. Open Graph tags use "property", everything else "name".
const (
	AttrName     = "name"
	AttrProperty = "property"
)

// Tag is a single meta tag descriptor destined for the document head.
type Tag struct {
	Attr  string `json:"attr"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

// ResolvedMeta is the output of metadata resolution: the document title plus
// the ordered tag list. Tag order is fixed per page kind and reproduced
// exactly so downstream consumers can rely on it.
type ResolvedMeta struct {
	Title string `json:"title"`
	Tags  []Tag  `json:"tags"`
}

// Image holds metadata for an uploaded image.
type Image struct {
	Filename     string
	OriginalName string
	Width        int
	Height       int
	Size         int
	UploadedAt   string
}
