package metaengine

import "time"

// SiteConfig holds all configuration for a metaengine site.
type SiteConfig struct {
	Name        string // Site title (default "Blog")
	URL         string // Canonical base URL (default "http://localhost:3000")
	Description string // Site description, fallback for collection pages and RSS
	Author      string // Author name for JSON-LD
	Locale      string // og:locale value (default "en_US")

	FrontSlug string // Slug of the item designated as the front page, optional
	LogoURL   string // Configured site logo, a social-image fallback tier
	IconURL   string // Generic site icon, the last social-image tier (default "/favicon.svg")

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/content.db")

	AdminPassword string // Required: admin login password
	SessionSecret string // Required: session encryption secret
	CookieSecure  bool   // Set true for HTTPS

	ItemCacheTTL time.Duration // Item cache TTL (default 5min)
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Locale == "" {
		c.Locale = "en_US"
	}
	if c.IconURL == "" {
		c.IconURL = "/favicon.svg"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/content.db"
	}
	if c.ItemCacheTTL == 0 {
		c.ItemCacheTTL = 5 * time.Minute
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithCollectionName registers a naming hook for a content type's collection
// title. The hook receives the site config and returns the display name used
// in "{name} - {site title}".
func WithCollectionName(contentType string, fn func(SiteConfig) string) Option {
	return func(a *App) {
		a.collectionNames[contentType] = fn
	}
}
