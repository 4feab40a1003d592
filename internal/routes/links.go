package routes

import (
	"fmt"
	"strings"

	urlkit "github.com/goliatone/go-urlkit"

	"github.com/devinschumacher/devinschumacher.com/internal/content"
)

// PublicGroup names the urlkit group carrying the public site routes.
const PublicGroup = "public"

// Route names registered in the public urlkit group.
const (
	routeEntry      = "entry"
	routeBlog       = "blog"
	routeBest       = "best"
	routeComparison = "comparison"
	routeCategory   = "category"
	routeProduct    = "product"
	routeVideo      = "video"
)

// DefaultRouteConfig returns the urlkit route groups for the public site.
func DefaultRouteConfig(baseURL string) *urlkit.Config {
	return &urlkit.Config{
		Groups: []urlkit.GroupConfig{
			{
				Name:    PublicGroup,
				BaseURL: strings.TrimRight(baseURL, "/"),
				Paths: map[string]string{
					routeEntry:      "/:slug",
					routeBlog:       "/blog/:slug",
					routeBest:       "/best/:slug",
					routeComparison: "/comparison/:slug",
					routeCategory:   "/category/:category",
					routeProduct:    "/products/:slug",
					routeVideo:      "/videos/:slug",
				},
			},
		},
	}
}

// LinkBuilder produces absolute canonical URLs for content items using a
// urlkit route manager.
type LinkBuilder struct {
	manager *urlkit.RouteManager
	group   string
}

// NewLinkBuilder wraps a route manager. Group defaults to "public".
func NewLinkBuilder(manager *urlkit.RouteManager, group string) *LinkBuilder {
	if strings.TrimSpace(group) == "" {
		group = PublicGroup
	}
	return &LinkBuilder{manager: manager, group: group}
}

// PostURL returns the canonical URL for a post. A front matter slug wins over
// the file-derived path.
func (b *LinkBuilder) PostURL(post content.Post) (string, error) {
	if post.CustomSlug != "" {
		return b.build(routeEntry, map[string]any{"slug": post.CustomSlug})
	}
	return b.build(routeBlog, map[string]any{"slug": post.FileSlug})
}

// ProductURL returns the canonical URL for a product page.
func (b *LinkBuilder) ProductURL(product content.Product) (string, error) {
	return b.build(routeProduct, map[string]any{"slug": product.FileSlug})
}

// VideoURL returns the canonical URL for a video page.
func (b *LinkBuilder) VideoURL(video content.Video) (string, error) {
	return b.build(routeVideo, map[string]any{"slug": video.FileSlug})
}

// CategoryURL returns the canonical URL for a category listing.
func (b *LinkBuilder) CategoryURL(category string) (string, error) {
	segment, err := content.NormalizeSlug(category)
	if err != nil {
		return "", fmt.Errorf("routes: category %q: %w", category, err)
	}
	return b.build(routeCategory, map[string]any{"category": segment})
}

func (b *LinkBuilder) build(route string, params map[string]any) (string, error) {
	group, err := lookupGroup(b.manager, b.group)
	if err != nil {
		return "", err
	}
	builder, err := safeBuilder(group, route)
	if err != nil {
		return "", err
	}
	for key, value := range params {
		builder.WithParam(key, value)
	}
	url, err := builder.Build()
	if err != nil {
		return "", fmt.Errorf("routes: build %s link: %w", route, err)
	}
	return url, nil
}

// urlkit panics on unknown groups and routes; convert those into errors.

func lookupGroup(manager *urlkit.RouteManager, name string) (group *urlkit.Group, err error) {
	if manager == nil {
		return nil, fmt.Errorf("routes: route manager not configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("routes: route group %q not found", name)
		}
	}()
	group = manager.Group(name)
	return group, err
}

func safeBuilder(group *urlkit.Group, route string) (builder *urlkit.Builder, err error) {
	if group == nil {
		return nil, fmt.Errorf("routes: route group is nil")
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("routes: urlkit builder panic: %v", rec)
		}
	}()
	builder = group.Builder(route)
	return builder, err
}
