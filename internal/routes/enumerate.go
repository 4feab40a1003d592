package routes

import (
	"sort"
	"strings"

	"github.com/devinschumacher/devinschumacher.com/internal/content"
)

// Route patterns pre-rendered by the static build.
const (
	PatternEntry      = "/:slug"
	PatternBlog       = "/blog/:slug"
	PatternBest       = "/best/:slug"
	PatternComparison = "/comparison/:slug"
	PatternCategory   = "/category/:category"
	PatternProduct    = "/products/:slug"
	PatternVideo      = "/videos/:slug"
)

// Route is one pre-renderable page: a pattern, its parameter values, the
// concrete public path, and the content file id backing it (empty for
// listing pages such as categories).
type Route struct {
	Pattern string
	Params  map[string]string
	Path    string
	FileID  string
}

// Diagnostic records a content item the enumerator had to skip.
type Diagnostic struct {
	Path   string
	FileID string
	Reason string
}

// Enumerate produces the full set of routes to pre-render for a snapshot and
// legacy table. The result is deterministic: sorted by path, free of
// duplicates (first emitter wins, later ones become diagnostics).
func Enumerate(snap *content.Snapshot, mappings *Mappings) ([]Route, []Diagnostic) {
	var diags []Diagnostic
	seen := map[string]string{}
	routes := []Route{}

	emit := func(route Route) {
		if prior, dup := seen[route.Path]; dup {
			diags = append(diags, Diagnostic{
				Path:   route.Path,
				FileID: route.FileID,
				Reason: "duplicate path, already emitted for " + prior,
			})
			return
		}
		seen[route.Path] = route.FileID
		routes = append(routes, route)
	}

	// Legacy table first: these paths are explicit and always win.
	for _, publicPath := range mappings.Paths() {
		fileID, _ := mappings.Lookup(publicPath)
		route, ok := classifyMappedPath(publicPath, fileID)
		if !ok {
			diags = append(diags, Diagnostic{
				Path:   publicPath,
				FileID: fileID,
				Reason: "mapped path does not match a known route pattern",
			})
			continue
		}
		emit(route)
	}

	// Posts. A front matter slug takes over top-level routing for the post;
	// the default /blog/ page is not emitted for it.
	if snap != nil {
		for _, post := range snap.Posts {
			if post.CustomSlug != "" {
				if strings.Contains(post.CustomSlug, "/") {
					diags = append(diags, Diagnostic{
						Path:   NormalizePath(post.CustomSlug),
						FileID: post.FileSlug,
						Reason: "nested custom slug excluded from single-segment routes",
					})
					continue
				}
				emit(Route{
					Pattern: PatternEntry,
					Params:  map[string]string{"slug": post.CustomSlug},
					Path:    NormalizePath(post.CustomSlug),
					FileID:  post.FileSlug,
				})
				continue
			}
			if strings.Contains(post.FileSlug, "/") {
				// Nested posts are reachable only through the legacy table.
				continue
			}
			emit(Route{
				Pattern: PatternBlog,
				Params:  map[string]string{"slug": post.FileSlug},
				Path:    NormalizePath("blog/" + post.FileSlug),
				FileID:  post.FileSlug,
			})
		}

		for _, category := range snap.Categories() {
			segment, err := content.NormalizeSlug(category)
			if err != nil || segment == "" {
				diags = append(diags, Diagnostic{
					Path:   category,
					Reason: "category does not normalize to a slug",
				})
				continue
			}
			emit(Route{
				Pattern: PatternCategory,
				Params:  map[string]string{"category": segment},
				Path:    NormalizePath("category/" + segment),
			})
		}

		for _, product := range snap.Products {
			emit(Route{
				Pattern: PatternProduct,
				Params:  map[string]string{"slug": product.FileSlug},
				Path:    NormalizePath("products/" + product.FileSlug),
				FileID:  product.FileSlug,
			})
		}

		for _, video := range snap.Videos {
			emit(Route{
				Pattern: PatternVideo,
				Params:  map[string]string{"slug": video.FileSlug},
				Path:    NormalizePath("videos/" + video.FileSlug),
				FileID:  video.FileSlug,
			})
		}
	}

	sort.Slice(routes, func(i, j int) bool {
		return routes[i].Path < routes[j].Path
	})
	return routes, diags
}

// FilterByPattern returns the routes matching one pattern, preserving order.
func FilterByPattern(all []Route, pattern string) []Route {
	out := []Route{}
	for _, route := range all {
		if route.Pattern == pattern {
			out = append(out, route)
		}
	}
	return out
}

func classifyMappedPath(publicPath, fileID string) (Route, bool) {
	segments := strings.Split(strings.Trim(publicPath, "/"), "/")
	switch {
	case len(segments) == 1:
		return Route{
			Pattern: PatternEntry,
			Params:  map[string]string{"slug": segments[0]},
			Path:    publicPath,
			FileID:  fileID,
		}, true
	case len(segments) == 2 && segments[0] == "best":
		return Route{
			Pattern: PatternBest,
			Params:  map[string]string{"slug": segments[1]},
			Path:    publicPath,
			FileID:  fileID,
		}, true
	case len(segments) == 2 && segments[0] == "comparison":
		return Route{
			Pattern: PatternComparison,
			Params:  map[string]string{"slug": segments[1]},
			Path:    publicPath,
			FileID:  fileID,
		}, true
	case len(segments) == 2 && segments[0] == "blog":
		return Route{
			Pattern: PatternBlog,
			Params:  map[string]string{"slug": segments[1]},
			Path:    publicPath,
			FileID:  fileID,
		}, true
	case len(segments) == 2 && segments[0] == "category":
		return Route{
			Pattern: PatternCategory,
			Params:  map[string]string{"category": segments[1]},
			Path:    publicPath,
			FileID:  fileID,
		}, true
	}
	return Route{}, false
}
