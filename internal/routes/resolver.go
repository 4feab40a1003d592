package routes

import (
	"strings"

	"github.com/devinschumacher/devinschumacher.com/internal/content"
)

// Route prefixes recognized by the file-path strategy. Order matters only for
// documentation; each path carries at most one of them.
var knownPrefixes = []string{"/blog/", "/best/", "/comparison/", "/category/"}

// Strategy resolves a public path to a content file id against a snapshot.
// Implementations must be pure: same snapshot and path, same answer.
type Strategy interface {
	Name() string
	Resolve(publicPath string, snap *content.Snapshot) (string, bool)
}

// Resolver tries a fixed, ordered list of strategies and returns the first
// hit. The default order is legacy table, front matter slug, file path.
type Resolver struct {
	strategies []Strategy
}

// NewResolver builds the default resolver over the given legacy table.
func NewResolver(mappings *Mappings) *Resolver {
	return &Resolver{
		strategies: []Strategy{
			ByLegacyMapping{Mappings: mappings},
			ByFrontMatterSlug{},
			ByFilePath{},
		},
	}
}

// Resolve maps a public path to a content file id, or "" when no strategy
// matches.
func (r *Resolver) Resolve(publicPath string, snap *content.Snapshot) string {
	normalized := NormalizePath(publicPath)
	if normalized == "" {
		return ""
	}
	for _, strategy := range r.strategies {
		if fileID, ok := strategy.Resolve(normalized, snap); ok {
			return fileID
		}
	}
	return ""
}

// ResolvedBy reports which strategy answered for a path. Used by build
// diagnostics and tests.
func (r *Resolver) ResolvedBy(publicPath string, snap *content.Snapshot) (string, string) {
	normalized := NormalizePath(publicPath)
	if normalized == "" {
		return "", ""
	}
	for _, strategy := range r.strategies {
		if fileID, ok := strategy.Resolve(normalized, snap); ok {
			return fileID, strategy.Name()
		}
	}
	return "", ""
}

// ByLegacyMapping answers from the static legacy-URL table.
type ByLegacyMapping struct {
	Mappings *Mappings
}

func (ByLegacyMapping) Name() string { return "legacy-mapping" }

func (s ByLegacyMapping) Resolve(publicPath string, _ *content.Snapshot) (string, bool) {
	return s.Mappings.Lookup(publicPath)
}

// ByFrontMatterSlug matches the remainder of the path against post custom
// slugs.
type ByFrontMatterSlug struct{}

func (ByFrontMatterSlug) Name() string { return "front-matter-slug" }

func (ByFrontMatterSlug) Resolve(publicPath string, snap *content.Snapshot) (string, bool) {
	if snap == nil {
		return "", false
	}
	remainder := stripKnownPrefix(publicPath)
	if remainder == "" {
		return "", false
	}
	if post, ok := snap.PostByCustomSlug(remainder); ok {
		return post.FileSlug, true
	}
	return "", false
}

// ByFilePath treats the remainder of the path as a file-derived slug.
type ByFilePath struct{}

func (ByFilePath) Name() string { return "file-path" }

func (ByFilePath) Resolve(publicPath string, snap *content.Snapshot) (string, bool) {
	if snap == nil {
		return "", false
	}
	remainder := stripKnownPrefix(publicPath)
	if remainder == "" {
		return "", false
	}
	if post, ok := snap.PostByFileSlug(remainder); ok {
		// A post with a custom slug is canonical at that slug only; its
		// file path stays resolvable for legacy mappings pointing at it.
		return post.FileSlug, true
	}
	return "", false
}

// stripKnownPrefix removes one known route prefix and the surrounding
// slashes: "/best/crm/" -> "crm", "/serp/" -> "serp".
func stripKnownPrefix(publicPath string) string {
	for _, prefix := range knownPrefixes {
		if strings.HasPrefix(publicPath, prefix) {
			return strings.Trim(strings.TrimPrefix(publicPath, prefix), "/")
		}
	}
	return strings.Trim(publicPath, "/")
}
