package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

// Directory names, relative to the content root, for each collection.
const (
	postsDir    = "blog"
	productsDir = "products"
	videosDir   = "videos"
	brandsDir   = "brands"
)

const defaultBrandOrder = 999

// Defaults fill front matter gaps during loading.
type Defaults struct {
	// Author backfills posts that omit an author.
	Author string
}

// Loader reads the markdown content tree into an immutable Snapshot.
type Loader struct {
	fs       fs.FS
	defaults Defaults
	now      func() time.Time
}

// NewLoader constructs a Loader over the supplied filesystem, rooted at the
// content directory.
func NewLoader(filesystem fs.FS, defaults Defaults) *Loader {
	if strings.TrimSpace(defaults.Author) == "" {
		defaults.Author = "Admin"
	}
	return &Loader{
		fs:       filesystem,
		defaults: defaults,
		now:      time.Now,
	}
}

// LoadSnapshot reads every collection fresh from disk. A missing collection
// directory yields an empty collection rather than failing the build.
func (l *Loader) LoadSnapshot(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	posts, err := l.loadPosts(ctx)
	if err != nil {
		return nil, err
	}
	products, err := l.loadProducts(ctx)
	if err != nil {
		return nil, err
	}
	videos, err := l.loadVideos(ctx)
	if err != nil {
		return nil, err
	}
	brands, err := l.loadBrands(ctx)
	if err != nil {
		return nil, err
	}

	return &Snapshot{
		Posts:    posts,
		Products: products,
		Videos:   videos,
		Brands:   brands,
		LoadedAt: l.now(),
	}, nil
}

func (l *Loader) loadPosts(ctx context.Context) ([]Post, error) {
	files, err := l.discover(ctx, postsDir, true)
	if err != nil {
		return nil, err
	}

	posts := make([]Post, 0, len(files))
	for _, file := range files {
		data, err := fs.ReadFile(l.fs, file.path)
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", file.path, err)
		}

		var env postEnvelope
		body, err := parseFrontMatter(data, &env)
		if err != nil {
			return nil, fmt.Errorf("content: %s: %w", file.path, err)
		}

		title := env.Title
		if title == "" {
			title = file.slug
		}
		category := env.Category
		if category == "" {
			category = deriveCategory(file.subdir)
		}
		author := env.Author
		if author == "" {
			author = l.defaults.Author
		}

		posts = append(posts, Post{
			FileSlug:    file.slug,
			CustomSlug:  strings.TrimSpace(env.Slug),
			Title:       title,
			Description: env.Description,
			Date:        parseDate(env.Date, l.now()),
			Author:      author,
			Tags:        normalizeTags(env.Tags),
			Category:    category,
			Image:       env.Image,
			ReadingTime: readingTime(body),
			Body:        body,
		})
	}

	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].Date.Equal(posts[j].Date) {
			return posts[i].Date.After(posts[j].Date)
		}
		return posts[i].FileSlug < posts[j].FileSlug
	})
	return posts, nil
}

func (l *Loader) loadProducts(ctx context.Context) ([]Product, error) {
	files, err := l.discover(ctx, productsDir, false)
	if err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(files))
	for _, file := range files {
		data, err := fs.ReadFile(l.fs, file.path)
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", file.path, err)
		}

		var env productEnvelope
		body, err := parseFrontMatter(data, &env)
		if err != nil {
			return nil, fmt.Errorf("content: %s: %w", file.path, err)
		}

		title := env.Title
		if title == "" {
			title = file.slug
		}
		category := env.Category
		if category == "" {
			category = "other"
		}
		currency := env.Currency
		if currency == "" {
			currency = "USD"
		}
		cta := env.CTA
		if cta == "" {
			cta = "Learn More"
		}

		products = append(products, Product{
			FileSlug:      file.slug,
			Title:         title,
			Description:   env.Description,
			Category:      category,
			Price:         env.Price,
			OriginalPrice: env.OriginalPrice,
			Currency:      currency,
			Image:         env.Image,
			URL:           env.URL,
			CTA:           cta,
			Tags:          normalizeTags(env.Tags),
			Featured:      env.Featured,
			Badge:         env.Badge,
			Highlights:    env.Highlights,
			Body:          body,
		})
	}

	// Featured products surface first; file order is preserved otherwise.
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Featured && !products[j].Featured
	})
	return products, nil
}

func (l *Loader) loadVideos(ctx context.Context) ([]Video, error) {
	files, err := l.discover(ctx, videosDir, false)
	if err != nil {
		return nil, err
	}

	videos := make([]Video, 0, len(files))
	for _, file := range files {
		data, err := fs.ReadFile(l.fs, file.path)
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", file.path, err)
		}

		var env videoEnvelope
		body, err := parseFrontMatter(data, &env)
		if err != nil {
			return nil, fmt.Errorf("content: %s: %w", file.path, err)
		}

		title := env.Title
		if title == "" {
			title = file.slug
		}
		platform := env.Platform
		if platform == "" {
			platform = "youtube"
		}

		videos = append(videos, Video{
			FileSlug:    file.slug,
			Title:       title,
			Description: env.Description,
			Date:        parseDate(env.Date, l.now()),
			Platform:    platform,
			VideoID:     env.VideoID,
			URL:         env.URL,
			Thumbnail:   env.Thumbnail,
			Duration:    env.Duration,
			Views:       env.Views,
			Tags:        normalizeTags(env.Tags),
			Featured:    env.Featured,
			Body:        body,
		})
	}

	sort.SliceStable(videos, func(i, j int) bool {
		if !videos[i].Date.Equal(videos[j].Date) {
			return videos[i].Date.After(videos[j].Date)
		}
		return videos[i].FileSlug < videos[j].FileSlug
	})
	return videos, nil
}

func (l *Loader) loadBrands(ctx context.Context) ([]Brand, error) {
	files, err := l.discover(ctx, brandsDir, false)
	if err != nil {
		return nil, err
	}

	brands := make([]Brand, 0, len(files))
	for _, file := range files {
		data, err := fs.ReadFile(l.fs, file.path)
		if err != nil {
			return nil, fmt.Errorf("content: read %s: %w", file.path, err)
		}

		var env brandEnvelope
		body, err := parseFrontMatter(data, &env)
		if err != nil {
			return nil, fmt.Errorf("content: %s: %w", file.path, err)
		}

		name := env.Name
		if name == "" {
			name = file.slug
		}
		order := env.Order
		if order == 0 {
			order = defaultBrandOrder
		}

		brands = append(brands, Brand{
			FileSlug:    file.slug,
			Name:        name,
			Description: env.Description,
			Logo:        env.Logo,
			URL:         env.URL,
			Category:    env.Category,
			Featured:    env.Featured,
			Order:       order,
			Body:        body,
		})
	}

	sort.SliceStable(brands, func(i, j int) bool {
		if brands[i].Order != brands[j].Order {
			return brands[i].Order < brands[j].Order
		}
		return brands[i].Name < brands[j].Name
	})
	return brands, nil
}

type discoveredFile struct {
	path   string
	slug   string
	subdir string
}

// discover lists markdown files under dir. When recurse is set, one level of
// subdirectories is included and the directory name becomes the slug prefix
// and implicit category.
func (l *Loader) discover(ctx context.Context, dir string, recurse bool) ([]discoveredFile, error) {
	if _, err := fs.Stat(l.fs, dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("content: stat %s: %w", dir, err)
	}

	var files []discoveredFile

	walkErr := fs.WalkDir(l.fs, dir, func(entryPath string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel := strings.TrimPrefix(entryPath, dir+"/")
		if d.IsDir() {
			if entryPath == dir {
				return nil
			}
			if !recurse || strings.Contains(rel, "/") {
				return fs.SkipDir
			}
			return nil
		}

		if !isMarkdown(entryPath) {
			return nil
		}

		slug := trimMarkdownExt(rel)
		subdir := ""
		if idx := strings.Index(rel, "/"); idx >= 0 {
			subdir = rel[:idx]
		}

		files = append(files, discoveredFile{
			path:   entryPath,
			slug:   slug,
			subdir: subdir,
		})
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].path < files[j].path
	})
	return files, nil
}

func isMarkdown(name string) bool {
	switch path.Ext(name) {
	case ".md", ".mdx":
		return true
	}
	return false
}

func trimMarkdownExt(name string) string {
	name = strings.TrimSuffix(name, ".mdx")
	return strings.TrimSuffix(name, ".md")
}
