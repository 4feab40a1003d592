package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	site "github.com/devinschumacher/devinschumacher.com"
	staticcmd "github.com/devinschumacher/devinschumacher.com/internal/commands/static"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("static: %v", err)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("static", flag.ExitOnError)
	contentDir := fs.String("content-dir", "content", "Path to the markdown content root")
	outputDir := fs.String("out", "dist", "Directory receiving the exported site")
	mappingsFile := fs.String("mappings", "", "Legacy URL mappings file, relative to the content root")
	cleanBuild := fs.Bool("clean", false, "Remove previous artifacts before building")
	cleanOnly := fs.Bool("clean-only", false, "Remove artifacts and exit without building")
	dryRun := fs.Bool("dry-run", false, "Enumerate and render without writing files")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := site.ConfigFromEnv()
	cfg.Content.Dir = *contentDir
	if *mappingsFile != "" {
		cfg.Content.MappingsFile = *mappingsFile
	}
	cfg.Generator.Enabled = true
	cfg.Generator.OutputDir = *outputDir
	cfg.Generator.CleanBuild = *cleanBuild

	ctx := context.Background()
	module, err := site.New(ctx, cfg, site.Options{})
	if err != nil {
		return fmt.Errorf("build module: %w", err)
	}
	defer module.Close()

	gates := staticcmd.FeatureGates{GeneratorEnabled: func() bool { return true }}

	if *cleanOnly {
		handler := staticcmd.NewCleanSiteHandler(module.Generator(), module.Logger(), gates)
		if err := handler.Execute(ctx, staticcmd.CleanSiteCommand{}); err != nil {
			return fmt.Errorf("execute clean command: %w", err)
		}
		fmt.Fprintln(os.Stdout, "static artifacts removed")
		return nil
	}

	handler := staticcmd.NewBuildSiteHandler(module.Generator(), module.Logger(), gates)
	cmd := staticcmd.BuildSiteCommand{
		DryRun: *dryRun,
		ResultCallback: func(envelope staticcmd.ResultEnvelope) {
			if envelope.Result == nil {
				return
			}
			fmt.Fprintf(os.Stdout, "built %d pages in %s (%d diagnostics)\n",
				envelope.Result.PagesBuilt,
				envelope.Result.Duration,
				len(envelope.Result.Diagnostics),
			)
			for _, diag := range envelope.Result.Diagnostics {
				fmt.Fprintf(os.Stdout, "  skipped %s (%s): %s\n", diag.Path, diag.FileID, diag.Reason)
			}
		},
	}
	if err := handler.Execute(ctx, cmd); err != nil {
		return fmt.Errorf("execute build command: %w", err)
	}
	return nil
}
