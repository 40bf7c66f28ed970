// Package thumbnail renders 1280×720 video thumbnails from a [Config].
//
// # Overview
//
// Rendering is a pure function of the configuration. The same Config always
// yields the same pixels, and no state survives between calls:
//
//	cfg := thumbnail.Config{
//	    Headline: "This changes everything",
//	    Subtext:  "Watch now",
//	    Badge:    "New",
//	    Emojis:   []string{"🔥"},
//	    Scheme:   thumbnail.SchemeAt(0),
//	    Layout:   thumbnail.LayoutCenteredImpact,
//	}
//	img := thumbnail.Render(cfg)
//
// # Pipeline
//
// Every render composites the same ordered passes, each drawing over the
// previous ones:
//
//  1. Two-stop background gradient, top-left to bottom-right
//  2. Fourteen soft accent blobs derived from the headline length
//  3. The layout's extra shape (diagonal band or top shade), if any
//  4. Bottom vignette
//  5. Headline: shadow, outline stroke and fill per line
//  6. Subtext pill
//  7. Badge pill in the layout's corner
//  8. Emojis
//  9. Thin border frame
//
// Passes 6–8 are skipped when their field is empty.
//
// # Layouts
//
// Everything that differs between layouts lives in one table, reachable
// through [PlacementFor]. The renderer and [Plan] never branch on a layout
// name.
//
// # Auto-fit
//
// Headlines are word-wrapped to the layout's maximum width and shrunk in
// steps until they fit the line budget; see [Fit] and [DefaultFit].
//
// # Concurrency
//
// A [Renderer] may be shared between goroutines. Font faces carry glyph
// caches, so each call builds its own from the shared parsed fonts.
package thumbnail

// Canvas size in pixels. Other sizes are not supported.
const (
	Width  = 1280
	Height = 720
)
