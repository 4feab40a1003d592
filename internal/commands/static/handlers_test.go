package staticcmd

import (
	"context"
	"errors"
	"testing"

	"github.com/devinschumacher/devinschumacher.com/internal/content"
	"github.com/devinschumacher/devinschumacher.com/internal/generator"
)

type fixedSnapshots struct{}

func (fixedSnapshots) LoadSnapshot(context.Context) (*content.Snapshot, error) {
	return &content.Snapshot{
		Posts: []content.Post{
			{FileSlug: "hello", Title: "Hello", Category: "Notes", Body: []byte("Hi.")},
		},
	}, nil
}

func newBuildService(t *testing.T) (*generator.Service, *generator.MemoryStorage) {
	t.Helper()
	storage := generator.NewMemoryStorage()
	service, err := generator.NewService(generator.Config{OutputDir: "dist"}, generator.Dependencies{
		Snapshots: fixedSnapshots{},
		Storage:   storage,
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return service, storage
}

func TestBuildSiteHandler(t *testing.T) {
	service, storage := newBuildService(t)

	var envelope ResultEnvelope
	handler := NewBuildSiteHandler(service, nil, FeatureGates{})
	err := handler.Execute(context.Background(), BuildSiteCommand{
		ResultCallback: func(e ResultEnvelope) { envelope = e },
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if envelope.Result == nil || envelope.Result.PagesBuilt == 0 {
		t.Fatalf("unexpected envelope: %#v", envelope)
	}
	if _, ok := storage.File("blog/hello/index.html"); !ok {
		t.Fatalf("expected exported page, have %v", storage.Paths())
	}
}

func TestBuildSiteHandlerGateOff(t *testing.T) {
	service, _ := newBuildService(t)

	handler := NewBuildSiteHandler(service, nil, FeatureGates{
		GeneratorEnabled: func() bool { return false },
	})
	err := handler.Execute(context.Background(), BuildSiteCommand{})
	if !errors.Is(err, generator.ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestCleanSiteHandler(t *testing.T) {
	service, storage := newBuildService(t)

	build := NewBuildSiteHandler(service, nil, FeatureGates{})
	if err := build.Execute(context.Background(), BuildSiteCommand{}); err != nil {
		t.Fatalf("build: %v", err)
	}
	if len(storage.Paths()) == 0 {
		t.Fatalf("expected artifacts before clean")
	}

	clean := NewCleanSiteHandler(service, nil, FeatureGates{})
	if err := clean.Execute(context.Background(), CleanSiteCommand{}); err != nil {
		t.Fatalf("clean: %v", err)
	}
	if paths := storage.Paths(); len(paths) != 0 {
		t.Fatalf("clean left artifacts: %v", paths)
	}
}

func TestNilServiceIsDisabled(t *testing.T) {
	handler := NewBuildSiteHandler(nil, nil, FeatureGates{})
	err := handler.Execute(context.Background(), BuildSiteCommand{})
	if !errors.Is(err, generator.ErrDisabled) {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}
