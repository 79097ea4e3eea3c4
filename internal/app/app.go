// Package app wires configuration, storage and the family service into the
// operations the familytree command exposes.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"familytree/internal/command"
	"familytree/internal/config"
	"familytree/internal/handler"
	"familytree/internal/hub"
	"familytree/internal/loader"
	"familytree/internal/repository/sqlite"
	"familytree/internal/service"
	"familytree/internal/watcher"
)

const shutdownTimeout = 10 * time.Second

// NewService seeds a family from cfg and wraps it in a service
func NewService(cfg *config.Config) (*service.FamilyService, error) {
	family, err := loader.Seed(cfg.Seed)
	if err != nil {
		return nil, fmt.Errorf("load seed: %w", err)
	}
	svc := service.NewFamilyService(family)
	svc.SetVerbose(cfg.Log.Verbose)
	return svc, nil
}

// Run executes the command file at inputPath against a fresh family and
// writes one output line per command to out. The input "-" reads in.
func Run(ctx context.Context, cfg *config.Config, inputPath string, in io.Reader, out io.Writer) error {
	svc, err := NewService(cfg)
	if err != nil {
		return err
	}

	r := in
	if inputPath == "-" && in == nil {
		return errors.New("no input reader for -")
	}
	if inputPath != "-" {
		f, err := os.Open(inputPath)
		if err != nil {
			return fmt.Errorf("open input: %w", err)
		}
		defer f.Close()
		r = f
	}

	stats, err := svc.RunBatch(ctx, r, out)
	if err != nil {
		return err
	}
	if cfg.Log.Verbose {
		log.Printf("Processed %s: %d commands, %d failed", inputPath, stats.Commands, stats.Failed)
	}

	return writeSnapshot(ctx, cfg, svc)
}

// Query resolves one relationship and prints it the way a
// GET_RELATIONSHIP command line would
func Query(ctx context.Context, cfg *config.Config, name, relationship string, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	svc, err := NewService(cfg)
	if err != nil {
		return err
	}

	line := fmt.Sprintf("%s %s %s", command.TypeGetRelationship, name, relationship)
	output, _ := svc.Execute(line)
	_, err = fmt.Fprintln(out, output)
	return err
}

// Export writes the seeded family in format. yaml and json go to outPath or
// out when outPath is empty; sqlite requires outPath.
func Export(ctx context.Context, cfg *config.Config, format, outPath string, out io.Writer) error {
	svc, err := NewService(cfg)
	if err != nil {
		return err
	}

	if strings.EqualFold(format, "sqlite") {
		if outPath == "" {
			return errors.New("sqlite export requires --out")
		}
		return snapshotTo(ctx, svc, outPath)
	}

	w := out
	if outPath != "" {
		f, err := os.Create(outPath)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	return svc.Export(ctx, format, w)
}

// Serve runs the HTTP API until ctx is cancelled. When the seed is a file it
// is watched and the family reloaded on change.
func Serve(ctx context.Context, cfg *config.Config) error {
	svc, err := NewService(cfg)
	if err != nil {
		return err
	}

	events := hub.New()
	svc.SetNotifier(events)

	h := handler.NewFamilyHandler(svc)
	mux := h.Routes()
	mux.Handle("GET /api/events", events)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler.Chain(mux, handler.Recover, handler.RequestID, handler.Logger),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		events.Run(gctx)
		return nil
	})

	g.Go(func() error {
		log.Printf("Server listening on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if cfg.Seed != "" {
		w := watcher.New(func(string) {
			family, err := loader.Seed(cfg.Seed)
			if err != nil {
				log.Printf("Failed to reload seed: %v", err)
				return
			}
			svc.Replace(family)
			log.Printf("Reloaded seed %s (%d members)", cfg.Seed, family.Len())
		}, cfg.Seed).WithDebounce(cfg.Watch.Debounce.Duration())

		g.Go(func() error {
			if err := w.Watch(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if err := writeSnapshot(context.Background(), cfg, svc); err != nil {
		return err
	}
	log.Println("Server stopped")
	return nil
}

// Watch runs inputPath once, then again each time it or the seed file changes
func Watch(ctx context.Context, cfg *config.Config, inputPath string, out io.Writer) error {
	rerun := func(string) {
		if _, err := fmt.Fprintf(out, "# %s\n", time.Now().Format(time.RFC3339)); err != nil {
			log.Printf("Failed to write output: %v", err)
			return
		}
		if err := Run(ctx, cfg, inputPath, nil, out); err != nil {
			log.Printf("Run failed: %v", err)
		}
	}
	rerun(inputPath)

	paths := []string{inputPath}
	if cfg.Seed != "" {
		paths = append(paths, cfg.Seed)
	}
	err := watcher.New(rerun, paths...).WithDebounce(cfg.Watch.Debounce.Duration()).Watch(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// InitConfig writes the default config to path, or to the default user
// location when path is empty. An existing file is kept unless force is set.
func InitConfig(path string, force bool, out io.Writer) error {
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config %s already exists, use --force to overwrite", path)
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "Wrote %s\n", path)
	return err
}

// writeSnapshot stores the family when a snapshot path is configured
func writeSnapshot(ctx context.Context, cfg *config.Config, svc *service.FamilyService) error {
	if cfg.Snapshot.Path == "" {
		return nil
	}
	return snapshotTo(ctx, svc, cfg.Snapshot.Path)
}

func snapshotTo(ctx context.Context, svc *service.FamilyService, path string) error {
	repo, err := sqlite.New(path)
	if err != nil {
		return err
	}
	defer repo.Close()

	if err := svc.Snapshot(ctx, repo); err != nil {
		return err
	}
	log.Printf("Snapshot written to %s", path)
	return nil
}
