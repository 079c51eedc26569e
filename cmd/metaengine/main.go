// metaengine demo server. All site branding comes from environment variables;
// the views are deliberately minimal HTML shells around the framework's
// HeadTags and Markdown components.
package main

import (
	"context"
	"html"
	"io"
	"log"
	"os"
	"strings"

	"github.com/a-h/templ"
	_ "modernc.org/sqlite"

	"github.com/eringen/metaengine"
	"github.com/eringen/metaengine/markdown"
)

func main() {
	cfg := metaengine.SiteConfig{
		Name:          metaengine.EnvOr("SITE_NAME", "Blog"),
		URL:           metaengine.EnvOr("SITE_URL", "http://localhost:3000"),
		Description:   metaengine.EnvOr("SITE_DESCRIPTION", ""),
		Author:        metaengine.EnvOr("SITE_AUTHOR", ""),
		Locale:        metaengine.EnvOr("SITE_LOCALE", "en_US"),
		FrontSlug:     metaengine.EnvOr("FRONT_SLUG", ""),
		Addr:          metaengine.EnvOr("ADDR", ":3000"),
		DatabasePath:  metaengine.EnvOr("DATABASE_PATH", "data/content.db"),
		AdminPassword: metaengine.MustEnv("ADMIN_PASSWORD"),
		SessionSecret: metaengine.MustEnv("ADMIN_SESSION_SECRET"),
		CookieSecure:  strings.EqualFold(os.Getenv("COOKIE_SECURE"), "true"),
	}

	app := metaengine.New(cfg, views())

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}

// page wraps a body component in a minimal HTML document whose head carries
// the resolved metadata.
func page(meta metaengine.ResolvedMeta, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!doctype html>\n<html><head>\n<meta charset=\"utf-8\"/>\n"); err != nil {
			return err
		}
		if err := metaengine.HeadTags(meta).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "</head><body>\n"); err != nil {
			return err
		}
		if err := body.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, "\n</body></html>")
		return err
	})
}

func raw(s string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, s)
		return err
	})
}

func itemList(items []metaengine.ContentItem) string {
	var b []byte
	b = append(b, "<ul>"...)
	for _, item := range items {
		b = append(b, `<li><a href="/blog/`+html.EscapeString(item.Slug)+`/">`+html.EscapeString(item.Title)+`</a></li>`...)
	}
	b = append(b, "</ul>"...)
	return string(b)
}

func views() metaengine.ViewFuncs {
	return metaengine.ViewFuncs{
		Home: func(items []metaengine.ContentItem, meta metaengine.ResolvedMeta, siteURL string) templ.Component {
			return page(meta, raw("<h1>"+html.EscapeString(meta.Title)+"</h1>"+itemList(items)))
		},
		Item: func(item metaengine.ContentItem, meta metaengine.ResolvedMeta, siteURL string) templ.Component {
			body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
				if _, err := io.WriteString(w, "<article><h1>"+html.EscapeString(item.Title)+"</h1>"); err != nil {
					return err
				}
				if err := markdown.Markdown(item.Body).Render(ctx, w); err != nil {
					return err
				}
				_, err := io.WriteString(w, "</article>")
				return err
			})
			return page(meta, body)
		},
		Collection: func(items []metaengine.ContentItem, label string, meta metaengine.ResolvedMeta) templ.Component {
			return page(meta, raw("<h1>"+html.EscapeString(label)+"</h1>"+itemList(items)))
		},
		AdminLogin: func(showError bool, csrfToken string) templ.Component {
			msg := ""
			if showError {
				msg = "<p>Wrong password.</p>"
			}
			return raw(`<form method="post" action="/admin/login/">` + msg +
				`<input type="hidden" name="_csrf" value="` + html.EscapeString(csrfToken) + `"/>` +
				`<input type="password" name="password"/><button>Log in</button></form>`)
		},
		AdminDashboard: func(items []metaengine.ContentItem, message string, csrfToken string) templ.Component {
			return raw("<h1>Admin</h1><p>" + html.EscapeString(message) + "</p>" + itemList(items))
		},
		AdminItemForm: func(item metaengine.ContentItem, csrfToken string) templ.Component {
			return raw("<h1>Edit " + html.EscapeString(item.Slug) + "</h1>")
		},
		AdminMetaForm: func(item metaengine.ContentItem, ov metaengine.Overrides, csrfToken string) templ.Component {
			return raw("<h1>Metadata for " + html.EscapeString(item.Slug) + "</h1>")
		},
		AdminImages: func(images []metaengine.Image, csrfToken string) templ.Component {
			return raw("<h1>Images</h1>")
		},
		NotFound: func() templ.Component {
			return raw("<h1>Not found</h1>")
		},
		ServerError: func() templ.Component {
			return raw("<h1>Something went wrong</h1>")
		},
	}
}
