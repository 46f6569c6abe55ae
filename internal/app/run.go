package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vk/ganttgen/internal/ctxlog"
	"github.com/vk/ganttgen/internal/fsutil"
	"github.com/vk/ganttgen/internal/gan"
	"github.com/vk/ganttgen/internal/model"
	"github.com/vk/ganttgen/internal/scheduler"
)

const projectFileExt = ".gantt.hcl"

// Run executes the main application logic based on the provided configuration.
func (a *App) Run(ctx context.Context, cfg *Config) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if cfg.CheckPath != "" {
		return a.check(ctx, cfg.CheckPath)
	}

	files, err := fsutil.Discover(cfg.Inputs, projectFileExt)
	if err != nil {
		return fmt.Errorf("failed to discover project files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("no %s files found under the given paths", projectFileExt)
	}
	a.logger.Debug("Project files discovered.", "count", len(files))

	jobs := make(chan string)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for i := 0; i < cfg.WorkerCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for input := range jobs {
				if err := a.convert(ctx, input, outputPath(cfg, files, input)); err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = err
					}
					mu.Unlock()
					a.logger.Error("Conversion failed.", "input", input, "error", err)
				}
			}
		}()
	}

	for _, input := range files {
		jobs <- input
	}
	close(jobs)
	wg.Wait()

	a.logger.Debug("App.Run method finished.")
	return firstErr
}

// check validates an existing .gan file without producing any output.
func (a *App) check(ctx context.Context, path string) error {
	logger := ctxlog.FromContext(ctx)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	p, err := gan.Decode(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	logger.Info("Project file is valid.",
		"path", path,
		"name", p.Name,
		"tasks", len(p.Tasks),
		"resources", len(p.Resources),
	)
	return nil
}

// convert loads one project file, schedules it, and writes the .gan output.
// The output is written to a temp file in the destination directory and
// renamed into place so a failed run never leaves a truncated file behind.
func (a *App) convert(ctx context.Context, input, output string) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Converting project file.", "input", input, "output", output)

	p, err := a.loader.Load(ctx, input, model.NewIdentity())
	if err != nil {
		return err
	}

	result, err := scheduler.Schedule(ctx, p)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	if err := writeAtomic(output, func(f *os.File) error {
		return gan.Encode(f, p)
	}); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	logger.Info("Project converted.",
		"input", input,
		"output", output,
		"tasks", len(p.Tasks),
		"warnings", len(result.Warnings),
	)
	return nil
}

func writeAtomic(path string, write func(*os.File) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// outputPath resolves where the converted form of input should be written.
// With no -o flag the .gan file lands next to its source. A -o value naming
// a directory collects all outputs there; with a single input it may name
// the output file directly.
func outputPath(cfg *Config, files []string, input string) string {
	base := ganName(filepath.Base(input))
	if cfg.Output == "" {
		return filepath.Join(filepath.Dir(input), base)
	}
	if info, err := os.Stat(cfg.Output); err == nil && info.IsDir() {
		return filepath.Join(cfg.Output, base)
	}
	if len(files) == 1 {
		return cfg.Output
	}
	return filepath.Join(cfg.Output, base)
}

func ganName(base string) string {
	if strings.HasSuffix(base, projectFileExt) {
		return strings.TrimSuffix(base, projectFileExt) + ".gan"
	}
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".gan"
}
