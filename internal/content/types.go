package content

import (
	"time"
)

// Kind identifies a content collection.
type Kind string

const (
	KindPost    Kind = "post"
	KindProduct Kind = "product"
	KindVideo   Kind = "video"
	KindBrand   Kind = "brand"
)

// Post is a blog article parsed from content/blog. FileSlug is derived from
// the file location (including one subdirectory level, e.g. "seo/anchor-text")
// and is unique within the kind. CustomSlug, when present, comes from the
// front matter `slug` key and takes over top-level routing for the post.
type Post struct {
	FileSlug    string
	CustomSlug  string
	Title       string
	Description string
	Date        time.Time
	Author      string
	Tags        []string
	Category    string
	Image       string
	ReadingTime string
	Body        []byte
}

// Slug returns the canonical slug for link generation: the front matter
// override when present, the file-derived slug otherwise.
func (p Post) Slug() string {
	if p.CustomSlug != "" {
		return p.CustomSlug
	}
	return p.FileSlug
}

// Product is a catalog entry parsed from content/products.
type Product struct {
	FileSlug      string
	Title         string
	Description   string
	Category      string
	Price         string
	OriginalPrice string
	Currency      string
	Image         string
	URL           string
	CTA           string
	Tags          []string
	Featured      bool
	Badge         string
	Highlights    []string
	Body          []byte
}

// Video is a gallery entry parsed from content/videos.
type Video struct {
	FileSlug    string
	Title       string
	Description string
	Date        time.Time
	Platform    string
	VideoID     string
	URL         string
	Thumbnail   string
	Duration    string
	Views       string
	Tags        []string
	Featured    bool
	Body        []byte
}

// Brand is a portfolio entry parsed from content/brands.
type Brand struct {
	FileSlug    string
	Name        string
	Description string
	Logo        string
	URL         string
	Category    string
	Featured    bool
	Order       int
	Body        []byte
}

// Snapshot is an immutable view of the whole content tree, read once per
// build or request and passed explicitly into resolution functions. Collections
// are pre-sorted: posts and videos by date descending, products featured-first,
// brands by (order, name).
type Snapshot struct {
	Posts    []Post
	Products []Product
	Videos   []Video
	Brands   []Brand

	LoadedAt time.Time
}

// PostByFileSlug returns the post whose file-derived slug matches.
func (s *Snapshot) PostByFileSlug(slug string) (Post, bool) {
	for _, post := range s.Posts {
		if post.FileSlug == slug {
			return post, true
		}
	}
	return Post{}, false
}

// PostByCustomSlug returns the post whose front matter slug matches.
func (s *Snapshot) PostByCustomSlug(slug string) (Post, bool) {
	for _, post := range s.Posts {
		if post.CustomSlug != "" && post.CustomSlug == slug {
			return post, true
		}
	}
	return Post{}, false
}

// ProductBySlug returns the product with the given file slug.
func (s *Snapshot) ProductBySlug(slug string) (Product, bool) {
	for _, product := range s.Products {
		if product.FileSlug == slug {
			return product, true
		}
	}
	return Product{}, false
}

// VideoBySlug returns the video with the given file slug.
func (s *Snapshot) VideoBySlug(slug string) (Video, bool) {
	for _, video := range s.Videos {
		if video.FileSlug == slug {
			return video, true
		}
	}
	return Video{}, false
}

// BrandBySlug returns the brand with the given file slug.
func (s *Snapshot) BrandBySlug(slug string) (Brand, bool) {
	for _, brand := range s.Brands {
		if brand.FileSlug == slug {
			return brand, true
		}
	}
	return Brand{}, false
}

// FeaturedProducts returns up to limit featured products in snapshot order.
// A non-positive limit returns all of them.
func (s *Snapshot) FeaturedProducts(limit int) []Product {
	return filterLimit(s.Products, limit, func(p Product) bool { return p.Featured })
}

// FeaturedVideos returns up to limit featured videos in snapshot order.
func (s *Snapshot) FeaturedVideos(limit int) []Video {
	return filterLimit(s.Videos, limit, func(v Video) bool { return v.Featured })
}

// FeaturedBrands returns up to limit featured brands in snapshot order.
func (s *Snapshot) FeaturedBrands(limit int) []Brand {
	return filterLimit(s.Brands, limit, func(b Brand) bool { return b.Featured })
}

// BrandsByCategory filters brands by exact category value.
func (s *Snapshot) BrandsByCategory(category string) []Brand {
	return filterLimit(s.Brands, 0, func(b Brand) bool { return b.Category == category })
}

// Categories returns the distinct post categories in first-seen order.
func (s *Snapshot) Categories() []string {
	seen := map[string]struct{}{}
	out := []string{}
	for _, post := range s.Posts {
		if post.Category == "" {
			continue
		}
		if _, ok := seen[post.Category]; ok {
			continue
		}
		seen[post.Category] = struct{}{}
		out = append(out, post.Category)
	}
	return out
}

func filterLimit[T any](items []T, limit int, keep func(T) bool) []T {
	out := []T{}
	for _, item := range items {
		if !keep(item) {
			continue
		}
		out = append(out, item)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out
}
