package metaengine

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	PubDate     string `xml:"pubDate"`
	GUID        string `xml:"guid"`
}

// renderRSS writes the feed using resolved metadata, so stored overrides show
// up in feed readers the same way they do in link previews.
func (a *App) renderRSS(c echo.Context, items []ContentItem) error {
	base := a.Config.URL
	feedItems := make([]rssItem, 0, len(items))
	for _, item := range items {
		ov, err := a.Cache.GetOverrides(item.Slug)
		if err != nil {
			return err
		}
		pubDate := ""
		if t, err := time.Parse("2006-01-02", item.Date); err == nil {
			pubDate = t.Format(time.RFC1123Z)
		}
		itemURL := BuildURL(base, "blog", item.Slug)
		feedItems = append(feedItems, rssItem{
			Title:       a.Resolver.Title(item, ov),
			Link:        itemURL,
			Description: a.Resolver.Description(item, ov),
			PubDate:     pubDate,
			GUID:        itemURL,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        base,
			Description: a.Config.Description,
			Items:       feedItems,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}
