// Package metaengine is a publishing engine built with Go, Echo, and templ
// whose centerpiece is fallback-chain page metadata: per-item override fields
// authored in the admin take precedence over values derived from the content
// itself, and every page gets an ordered, reproducible set of preview tags.
//
// Users provide their own templ components via the ViewFuncs struct, and
// metaengine handles the handler logic, metadata resolution, middleware, and
// database operations.
package metaengine

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// logoSettingKey is the settings-table key holding the uploaded site logo path.
const logoSettingKey = "logo_path"

// ViewFuncs holds user-provided templ components that the framework calls
// when rendering pages. This is the inversion-of-control mechanism that
// lets users own and customize all templates. Every page component receives
// the resolved metadata so its <head> can render HeadTags(meta).
type ViewFuncs struct {
	Home           func(items []ContentItem, meta ResolvedMeta, siteURL string) templ.Component
	Item           func(item ContentItem, meta ResolvedMeta, siteURL string) templ.Component
	Collection     func(items []ContentItem, label string, meta ResolvedMeta) templ.Component
	AdminLogin     func(showError bool, csrfToken string) templ.Component
	AdminDashboard func(items []ContentItem, message string, csrfToken string) templ.Component
	AdminItemForm  func(item ContentItem, csrfToken string) templ.Component
	AdminMetaForm  func(item ContentItem, ov Overrides, csrfToken string) templ.Component
	AdminImages    func(images []Image, csrfToken string) templ.Component
	NotFound       func() templ.Component
	ServerError    func() templ.Component
}

// App is the central metaengine application. It wires together the store,
// cache, resolver, handlers, middleware, and user-provided templates.
type App struct {
	Config   SiteConfig
	Echo     *echo.Echo
	Store    *Store
	Cache    *ItemCache
	Resolver *Resolver
	Views    ViewFuncs

	loginLimiter    *LoginLimiter
	customRoutes    []func(*App)
	collectionNames map[string]func(SiteConfig) string
	staticDir       string
}

// New creates a new metaengine App with the given configuration and view functions.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:          cfg,
		Echo:            echo.New(),
		Views:           views,
		collectionNames: make(map[string]func(SiteConfig) string),
		staticDir:       "public",
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the database, cache, resolver, middleware, routes, and
// starts the server.
func (a *App) Start() error {
	// Validate required config
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("metaengine: AdminPassword is required")
	}
	if a.Config.SessionSecret == "" {
		return fmt.Errorf("metaengine: SessionSecret is required")
	}

	// Initialize store
	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("metaengine: init store: %w", err)
	}
	a.Store = store

	// A previously uploaded logo wins over the configured one.
	logo, err := store.GetSetting(logoSettingKey)
	if err != nil {
		return fmt.Errorf("metaengine: read logo setting: %w", err)
	}
	if logo != "" {
		a.Config.LogoURL = logo
	}

	// Initialize resolver with registered collection naming hooks
	a.Resolver = NewResolver(a.Config)
	for contentType, fn := range a.collectionNames {
		a.Resolver.SetCollectionName(contentType, fn)
	}

	// Initialize cache
	a.Cache = NewItemCache(a.Store, a.Config.ItemCacheTTL)

	// Initialize login limiter
	a.loginLimiter = NewLoginLimiter(5, time.Minute)

	// Setup middleware
	a.setupMiddleware()

	// Setup routes
	a.setupRoutes()

	// Apply custom routes
	for _, fn := range a.customRoutes {
		fn(a)
	}

	// Start server
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	// User's static assets
	e.Static("/public", a.staticDir)
	e.GET("/favicon.svg", a.handleFavicon)
	e.GET("/robots.txt", a.handleRobots)

	// Public routes
	e.GET("/sitemap.xml", a.handleSitemap)
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/", a.handleHome)
	e.GET("/blog/:slug/", a.handleItem)
	e.GET("/archive/:type/", a.handleCollection)
	e.GET("/api/meta/:slug", a.handleMetaJSON)

	// Admin routes
	e.GET("/admin/", a.handleAdmin)
	e.POST("/admin/login/", a.handleAdminLogin)
	e.POST("/admin/logout/", handleAdminLogout)
	e.GET("/admin/item/:slug/", a.handleAdminItem)
	e.POST("/admin/save/", a.handleAdminSave)
	e.DELETE("/admin/item/:slug/", a.handleAdminDelete)
	e.GET("/admin/meta/:slug/", a.handleAdminMeta)
	e.POST("/admin/meta/:slug/", a.handleAdminMetaSave)
	e.GET("/admin/images/", a.handleImageList)
	e.POST("/admin/images/upload/", a.handleImageUpload)
	e.DELETE("/admin/images/:filename/", a.handleImageDelete)
	e.POST("/admin/logo/", a.handleLogoUpload)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
// This is a convenience function for use in main.go files.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// MustEnv returns the value of the environment variable key, or fatally exits if empty.
func MustEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalf("metaengine: required environment variable %s is not set", key)
	}
	return v
}
