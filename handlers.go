package metaengine

import (
	"fmt"
	"net/http"
	"os"

	"github.com/labstack/echo/v4"
)

// handleHome serves the front page: the designated front item when one is
// configured and published, else the default collection listing.
func (a *App) handleHome(c echo.Context) error {
	if a.Config.FrontSlug != "" {
		item, err := a.Cache.GetItem(a.Config.FrontSlug)
		if err == nil {
			ov, err := a.Cache.GetOverrides(item.Slug)
			if err != nil {
				return err
			}
			return Render(c, a.Views.Item(item, a.Resolver.Resolve(item, ov), a.Config.URL))
		}
		if err != ErrNotFound {
			return err
		}
	}
	items, err := a.Cache.ListItems(DefaultType)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Home(items, a.Resolver.ResolveFrontListing(), a.Config.URL))
}

func (a *App) handleItem(c echo.Context) error {
	slug := c.Param("slug")
	item, err := a.Cache.GetItem(slug)
	if err != nil {
		if err == ErrNotFound {
			return RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		}
		return err
	}
	ov, err := a.Cache.GetOverrides(slug)
	if err != nil {
		return err
	}
	return Render(c, a.Views.Item(item, a.Resolver.Resolve(item, ov), a.Config.URL))
}

// handleCollection serves an archive page for one content type. Unknown type
// ids still render: the label degrades and the listing is simply empty.
func (a *App) handleCollection(c echo.Context) error {
	contentType := c.Param("type")
	items, err := a.Cache.ListItems(contentType)
	if err != nil {
		return err
	}
	meta := a.Resolver.ResolveCollection(contentType)
	return Render(c, a.Views.Collection(items, a.Resolver.CollectionLabel(contentType), meta))
}

// handleMetaJSON exposes resolved metadata for a single item as JSON.
func (a *App) handleMetaJSON(c echo.Context) error {
	slug := c.Param("slug")
	item, err := a.Cache.GetItem(slug)
	if err != nil {
		if err == ErrNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "item not found")
		}
		return err
	}
	ov, err := a.Cache.GetOverrides(slug)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, a.Resolver.Resolve(item, ov))
}

func (a *App) handleSitemap(c echo.Context) error {
	items, err := a.Cache.ListItems("")
	if err != nil {
		return err
	}
	return a.renderSitemap(c, items)
}

func (a *App) handleFeed(c echo.Context) error {
	items, err := a.Cache.ListItems("")
	if err != nil {
		return err
	}
	return a.renderRSS(c, items)
}

// handleFavicon serves the generic site icon, preferring a user-supplied one
// in the static dir over the embedded default.
func (a *App) handleFavicon(c echo.Context) error {
	if _, err := os.Stat(a.staticDir + "/favicon.svg"); err == nil {
		return c.File(a.staticDir + "/favicon.svg")
	}
	data, err := EmbeddedAssets.ReadFile("embedded/favicon.svg")
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound)
	}
	return c.Blob(http.StatusOK, "image/svg+xml", data)
}

// handleRobots generates robots.txt dynamically from the site base URL.
func (a *App) handleRobots(c echo.Context) error {
	body := fmt.Sprintf("User-agent: *\nAllow: /\nDisallow: /admin/\n\nSitemap: %s/sitemap.xml\n", a.Config.URL)
	return c.String(http.StatusOK, body)
}

func (a *App) httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if ok && he.Code == http.StatusNotFound {
		_ = RenderStatus(c, http.StatusNotFound, a.Views.NotFound())
		return
	}
	code := http.StatusInternalServerError
	if ok {
		code = he.Code
	}
	if code >= 500 {
		c.Logger().Errorf("server error: %v", err)
		_ = RenderStatus(c, code, a.Views.ServerError())
		return
	}
	a.Echo.DefaultHTTPErrorHandler(err, c)
}
