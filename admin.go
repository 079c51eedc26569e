package metaengine

import (
	"crypto/subtle"
	"database/sql"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

func (a *App) handleAdmin(c echo.Context) error {
	if !IsAdmin(c) {
		return Render(c, a.Views.AdminLogin(false, CsrfToken(c)))
	}
	return a.renderAdminDashboard(c, c.QueryParam("msg"))
}

func (a *App) handleAdminItem(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	item, err := a.Store.GetItemAny(slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	return Render(c, a.Views.AdminItemForm(item, CsrfToken(c)))
}

func (a *App) handleAdminLogin(c echo.Context) error {
	ip := c.RealIP()
	if !a.loginLimiter.Check(ip) {
		return c.String(http.StatusTooManyRequests, "Too many login attempts. Try again later.")
	}
	pass := c.FormValue("password")
	if subtle.ConstantTimeCompare([]byte(pass), []byte(a.Config.AdminPassword)) == 1 {
		if err := setAdminSession(c); err != nil {
			return err
		}
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	a.loginLimiter.Record(ip)
	return Render(c, a.Views.AdminLogin(true, CsrfToken(c)))
}

func handleAdminLogout(c echo.Context) error {
	if err := clearAdminSession(c); err != nil {
		return err
	}
	return c.Redirect(http.StatusSeeOther, "/admin/")
}

func (a *App) handleAdminSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	title := strings.TrimSpace(c.FormValue("title"))
	slug := strings.TrimSpace(c.FormValue("slug"))
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Slug+is+required.+Add+a+title+or+slug.")
	}
	date := strings.TrimSpace(c.FormValue("date"))
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return c.Redirect(http.StatusSeeOther, "/admin/?msg=Invalid+date+format.+Use+YYYY-MM-DD.")
	}
	contentType := strings.TrimSpace(c.FormValue("type"))
	if contentType == "" {
		contentType = DefaultType
	}
	if err := a.Store.SaveItem(ContentItem{
		Slug:      slug,
		Type:      contentType,
		Title:     title,
		Date:      date,
		Body:      c.FormValue("body"),
		Thumbnail: strings.TrimSpace(c.FormValue("thumbnail")),
		Updated:   time.Now().UTC(),
		Published: c.FormValue("published") != "",
	}); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "saved")
}

func (a *App) handleAdminDelete(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	if err := a.Store.DeleteItem(slug); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "deleted")
}

// handleAdminMeta serves the per-item metadata override editor.
func (a *App) handleAdminMeta(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	item, err := a.Store.GetItemAny(slug)
	if err != nil {
		if err == sql.ErrNoRows {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	ov, err := a.Store.GetOverrides(slug)
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminMetaForm(item, ov, CsrfToken(c)))
}

// handleAdminMetaSave stores the override fields for an item. Blank fields
// are dropped so the resolver falls through to derived values.
func (a *App) handleAdminMetaSave(c echo.Context) error {
	if !IsAdmin(c) {
		return c.Redirect(http.StatusSeeOther, "/admin/")
	}
	slug := c.Param("slug")
	if _, err := a.Store.GetItemAny(slug); err != nil {
		if err == sql.ErrNoRows {
			return c.NoContent(http.StatusNotFound)
		}
		return err
	}
	if err := c.Request().ParseForm(); err != nil {
		return err
	}
	ov := Overrides{
		Title:              strings.TrimSpace(c.FormValue("meta_title")),
		Description:        strings.TrimSpace(c.FormValue("meta_description")),
		OGTitle:            strings.TrimSpace(c.FormValue("og_title")),
		OGDescription:      strings.TrimSpace(c.FormValue("og_description")),
		OGImage:            strings.TrimSpace(c.FormValue("og_image")),
		TwitterTitle:       strings.TrimSpace(c.FormValue("twitter_title")),
		TwitterDescription: strings.TrimSpace(c.FormValue("twitter_description")),
		TwitterImage:       strings.TrimSpace(c.FormValue("twitter_image")),
	}
	if err := a.Store.SaveOverrides(slug, ov); err != nil {
		return err
	}
	a.Cache.Invalidate()
	return a.renderAdminDashboard(c, "meta saved")
}

func (a *App) renderAdminDashboard(c echo.Context, msg string) error {
	items, err := a.Store.ListAllItems()
	if err != nil {
		return err
	}
	return Render(c, a.Views.AdminDashboard(items, msg, CsrfToken(c)))
}
