package metaengine

import "embed"

// EmbeddedAssets contains static assets shipped with the framework:
// the default site icon that serves as the last social-image fallback tier.
//
//go:embed embedded/*
var EmbeddedAssets embed.FS
