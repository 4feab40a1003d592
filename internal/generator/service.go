package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/devinschumacher/devinschumacher.com/internal/content"
	"github.com/devinschumacher/devinschumacher.com/internal/logging"
	"github.com/devinschumacher/devinschumacher.com/internal/routes"
)

// ErrDisabled marks build requests on a site with static export turned off.
var ErrDisabled = errors.New("generator: static export disabled")

// SnapshotLoader produces the content snapshot a build exports.
type SnapshotLoader interface {
	LoadSnapshot(ctx context.Context) (*content.Snapshot, error)
}

// Config controls the static export.
type Config struct {
	OutputDir  string
	CleanBuild bool
}

// Dependencies wires the export service.
type Dependencies struct {
	Snapshots SnapshotLoader
	Mappings  *routes.Mappings
	Storage   Storage
	Logger    logging.Logger
}

// BuildOptions tune a single build.
type BuildOptions struct {
	// DryRun enumerates and renders without writing artifacts.
	DryRun bool
}

// BuildResult summarizes one export.
type BuildResult struct {
	BuildID     string
	PagesBuilt  int
	Routes      []routes.Route
	Diagnostics []routes.Diagnostic
	Duration    time.Duration
	DryRun      bool
}

// Service renders the full route set of a snapshot into static documents.
type Service struct {
	config   Config
	deps     Dependencies
	renderer *Renderer
	now      func() time.Time
}

// NewService validates dependencies and returns an export service.
func NewService(config Config, deps Dependencies) (*Service, error) {
	if deps.Snapshots == nil {
		return nil, fmt.Errorf("generator: snapshot loader is required")
	}
	if deps.Storage == nil {
		if config.OutputDir == "" {
			return nil, fmt.Errorf("generator: output dir or storage is required")
		}
		deps.Storage = NewDirStorage(config.OutputDir)
	}
	if deps.Mappings == nil {
		deps.Mappings = routes.NewMappings(nil)
	}
	if deps.Logger == nil {
		deps.Logger = logging.NoOp()
	}
	return &Service{
		config:   config,
		deps:     deps,
		renderer: NewRenderer(),
		now:      time.Now,
	}, nil
}

// Build exports every enumerable route plus the build manifest.
func (s *Service) Build(ctx context.Context, opts BuildOptions) (*BuildResult, error) {
	start := s.now()
	buildID := uuid.NewString()

	snap, err := s.deps.Snapshots.LoadSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("generator: load snapshot: %w", err)
	}

	if s.config.CleanBuild && !opts.DryRun {
		if err := s.deps.Storage.Clean(); err != nil {
			return nil, err
		}
	}

	routeSet, diagnostics := routes.Enumerate(snap, s.deps.Mappings)
	for _, diag := range diagnostics {
		s.deps.Logger.Warn("skipping route",
			"path", diag.Path,
			"file_id", diag.FileID,
			"reason", diag.Reason,
		)
	}

	manifest := newBuildManifest(buildID, start.UTC())
	built := 0
	for _, route := range routeSet {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page, err := s.renderRoute(snap, route)
		if err != nil {
			return nil, err
		}

		target := outputPath(route.Path)
		if !opts.DryRun {
			if err := s.deps.Storage.WriteFile(target, page); err != nil {
				return nil, err
			}
		}
		manifest.record(route.Path, route.Pattern, target, page)
		built++
	}

	if !opts.DryRun {
		encoded, err := manifest.encode()
		if err != nil {
			return nil, err
		}
		if err := s.deps.Storage.WriteFile(manifestFileName, encoded); err != nil {
			return nil, err
		}
	}

	result := &BuildResult{
		BuildID:     buildID,
		PagesBuilt:  built,
		Routes:      routeSet,
		Diagnostics: diagnostics,
		Duration:    s.now().Sub(start),
		DryRun:      opts.DryRun,
	}
	s.deps.Logger.Info("static build complete",
		"build_id", result.BuildID,
		"pages", result.PagesBuilt,
		"diagnostics", len(result.Diagnostics),
		"dry_run", result.DryRun,
		"duration", result.Duration.String(),
	)
	return result, nil
}

// Clean removes all previously exported artifacts.
func (s *Service) Clean(_ context.Context) error {
	return s.deps.Storage.Clean()
}

func (s *Service) renderRoute(snap *content.Snapshot, route routes.Route) ([]byte, error) {
	switch route.Pattern {
	case routes.PatternEntry, routes.PatternBlog, routes.PatternBest, routes.PatternComparison:
		post, ok := postByFileID(snap, route.FileID)
		if !ok {
			return nil, fmt.Errorf("generator: route %s: %w", route.Path,
				content.NewNotFoundError(content.KindPost, route.FileID))
		}
		return s.renderer.RenderPage(post.Title, post.Body)

	case routes.PatternProduct:
		product, ok := snap.ProductBySlug(route.Params["slug"])
		if !ok {
			return nil, fmt.Errorf("generator: route %s: %w", route.Path,
				content.NewNotFoundError(content.KindProduct, route.Params["slug"]))
		}
		return s.renderer.RenderPage(product.Title, product.Body)

	case routes.PatternVideo:
		video, ok := snap.VideoBySlug(route.Params["slug"])
		if !ok {
			return nil, fmt.Errorf("generator: route %s: %w", route.Path,
				content.NewNotFoundError(content.KindVideo, route.Params["slug"]))
		}
		return s.renderer.RenderPage(video.Title, video.Body)

	case routes.PatternCategory:
		return s.renderCategory(snap, route), nil

	default:
		return nil, fmt.Errorf("generator: route %s: unsupported pattern %q", route.Path, route.Pattern)
	}
}

func (s *Service) renderCategory(snap *content.Snapshot, route routes.Route) []byte {
	slug := route.Params["category"]
	var items []ListingItem
	title := slug
	for _, post := range snap.Posts {
		segment, err := content.NormalizeSlug(post.Category)
		if err != nil || segment != slug {
			continue
		}
		title = post.Category
		items = append(items, ListingItem{
			Title: post.Title,
			Href:  "/" + postPathSegment(post) + "/",
		})
	}
	return s.renderer.RenderListing(title, items)
}

// postByFileID resolves a post for an exported route. Entry routes carry the
// custom slug as FileID's public face, so fall back to the custom index.
func postByFileID(snap *content.Snapshot, fileID string) (content.Post, bool) {
	if post, ok := snap.PostByFileSlug(fileID); ok {
		return post, true
	}
	return snap.PostByCustomSlug(fileID)
}

func postPathSegment(post content.Post) string {
	if post.CustomSlug != "" {
		return post.CustomSlug
	}
	return "blog/" + post.FileSlug
}
