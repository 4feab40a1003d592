package routes

import (
	"strings"
	"testing"
	"time"

	"github.com/devinschumacher/devinschumacher.com/internal/content"
)

func testSnapshot() *content.Snapshot {
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	return &content.Snapshot{
		Posts: []content.Post{
			{FileSlug: "plain-post", Title: "Plain", Date: date, Category: "Guides"},
			{FileSlug: "renamed-post", CustomSlug: "shiny-name", Title: "Renamed", Date: date, Category: "Guides"},
			{FileSlug: "guides/nested-post", Title: "Nested", Date: date, Category: "Guides"},
		},
		Products: []content.Product{
			{FileSlug: "downloader", Title: "Downloader"},
		},
		Videos: []content.Video{
			{FileSlug: "intro", Title: "Intro"},
		},
	}
}

func pathSet(routes []Route) map[string]Route {
	out := make(map[string]Route, len(routes))
	for _, route := range routes {
		out[route.Path] = route
	}
	return out
}

func TestEnumerateCustomSlugExclusive(t *testing.T) {
	routes, _ := Enumerate(testSnapshot(), NewMappings(nil))
	byPath := pathSet(routes)

	entry, ok := byPath["/shiny-name/"]
	if !ok {
		t.Fatalf("expected entry route for custom slug, have %v", byPath)
	}
	if entry.Pattern != PatternEntry || entry.FileID != "renamed-post" {
		t.Fatalf("unexpected entry route: %#v", entry)
	}
	// The custom slug replaces the default blog path entirely.
	if _, ok := byPath["/blog/renamed-post/"]; ok {
		t.Fatalf("custom-slugged post must not keep its /blog/ path")
	}
	if _, ok := byPath["/blog/plain-post/"]; !ok {
		t.Fatalf("expected blog route for plain post")
	}
}

func TestEnumerateNestedPostsNeedLegacyTable(t *testing.T) {
	routes, _ := Enumerate(testSnapshot(), NewMappings(nil))
	for _, route := range routes {
		if strings.Contains(route.Path, "nested-post") {
			t.Fatalf("nested post should not be enumerated without a mapping: %#v", route)
		}
	}

	mapped := NewMappings(map[string]string{
		"/best/legacy-nested/": "guides/nested-post",
	})
	routes, _ = Enumerate(testSnapshot(), mapped)
	byPath := pathSet(routes)
	best, ok := byPath["/best/legacy-nested/"]
	if !ok {
		t.Fatalf("expected mapped best route")
	}
	if best.Pattern != PatternBest || best.FileID != "guides/nested-post" {
		t.Fatalf("unexpected mapped route: %#v", best)
	}
}

func TestEnumerateDuplicateFirstWins(t *testing.T) {
	mapped := NewMappings(map[string]string{
		"/shiny-name/": "some/other-file",
	})
	routes, diags := Enumerate(testSnapshot(), mapped)
	byPath := pathSet(routes)

	route := byPath["/shiny-name/"]
	if route.FileID != "some/other-file" {
		t.Fatalf("legacy table should win the path, got %#v", route)
	}

	var found bool
	for _, diag := range diags {
		if diag.Path == "/shiny-name/" && diag.FileID == "renamed-post" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected duplicate diagnostic for custom slug, got %#v", diags)
	}
}

func TestEnumerateCategoriesProductsVideos(t *testing.T) {
	routes, _ := Enumerate(testSnapshot(), NewMappings(nil))
	byPath := pathSet(routes)

	category, ok := byPath["/category/guides/"]
	if !ok {
		t.Fatalf("expected category route")
	}
	if category.Pattern != PatternCategory || category.Params["category"] != "guides" {
		t.Fatalf("unexpected category route: %#v", category)
	}
	if _, ok := byPath["/products/downloader/"]; !ok {
		t.Fatalf("expected product route")
	}
	if _, ok := byPath["/videos/intro/"]; !ok {
		t.Fatalf("expected video route")
	}
}

func TestEnumerateSortedAndDeduplicated(t *testing.T) {
	routes, _ := Enumerate(testSnapshot(), NewMappings(nil))

	seen := map[string]bool{}
	for i, route := range routes {
		if i > 0 && routes[i-1].Path >= route.Path {
			t.Fatalf("routes not sorted: %s before %s", routes[i-1].Path, route.Path)
		}
		if seen[route.Path] {
			t.Fatalf("duplicate path %s", route.Path)
		}
		seen[route.Path] = true
	}
}

func TestEnumerateUnclassifiableMapping(t *testing.T) {
	mapped := NewMappings(map[string]string{
		"/one/two/three/": "blog/deep",
	})
	routes, diags := Enumerate(testSnapshot(), mapped)
	for _, route := range routes {
		if route.Path == "/one/two/three/" {
			t.Fatalf("unclassifiable mapping must not produce a route")
		}
	}
	var found bool
	for _, diag := range diags {
		if diag.Path == "/one/two/three/" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected diagnostic for unclassifiable mapping, got %#v", diags)
	}
}

func TestFilterByPattern(t *testing.T) {
	routes, _ := Enumerate(testSnapshot(), NewMappings(nil))
	blogs := FilterByPattern(routes, PatternBlog)
	if len(blogs) != 1 || blogs[0].FileID != "plain-post" {
		t.Fatalf("unexpected blog filter result: %#v", blogs)
	}
}
