package metaengine

import (
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// HeadTags returns a templ.Component that renders the resolved <title> and
// meta tags for a document head. Tags with empty values are not emitted;
// relative order of the emitted tags is preserved.
func HeadTags(meta ResolvedMeta) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString("<title>")
		b.WriteString(html.EscapeString(meta.Title))
		b.WriteString("</title>\n")
		for _, t := range meta.Tags {
			if t.Value == "" {
				continue
			}
			b.WriteString(`<meta `)
			b.WriteString(t.Attr)
			b.WriteString(`="`)
			b.WriteString(html.EscapeString(t.Key))
			b.WriteString(`" content="`)
			b.WriteString(html.EscapeString(t.Value))
			b.WriteString("\"/>\n")
		}
		_, err := io.WriteString(w, b.String())
		return err
	})
}
