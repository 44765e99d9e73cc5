package convert

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/maruel/natural"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/danielegts/enex2notion/archive"
	"github.com/danielegts/enex2notion/enex"
	"github.com/danielegts/enex2notion/notion"
	"github.com/danielegts/enex2notion/state"
)

// Run drives the conversion: it collects ENEX inputs from the source path
// (single file, directory tree or zip bundle), converts every note to a
// block forest and dumps each forest as JSON into the destination directory.
func Run(ctx context.Context, cmd *cli.Command) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("convert")

	src := cmd.Args().Get(0)
	if len(src) == 0 {
		return errors.New("no input source has been specified")
	}
	if src, err = filepath.Abs(src); err != nil {
		return err
	}

	dst := cmd.Args().Get(1)
	if len(dst) == 0 {
		if dst, err = os.Getwd(); err != nil {
			return fmt.Errorf("unable to get working directory: %w", err)
		}
	}
	if dst, err = filepath.Abs(dst); err != nil {
		return err
	}
	if cmd.Args().Len() > 2 {
		log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}

	env.OutputDir = dst
	env.DryRun = cmd.Bool("dry-run")

	links, err := prepareLinkResolver(ctx, env, log)
	if err != nil {
		return err
	}

	log.Info("Processing starting", zap.String("source", src), zap.String("destination", dst))
	defer func(start time.Time) {
		log.Info("Processing completed", zap.Duration("elapsed", time.Since(start)))
	}(time.Now())

	return process(ctx, src, dst, links, log)
}

// prepareLinkResolver wires the internal-link rewriting collaborators from
// configuration. Without a links dictionary internal links pass through
// unchanged.
func prepareLinkResolver(ctx context.Context, env *state.LocalEnv, log *zap.Logger) (*LinkResolver, error) {
	if env.Cfg.Notion.LinksDictPath == "" {
		return nil, nil
	}
	titles, err := LoadLinksDict(env.Cfg.Notion.LinksDictPath)
	if err != nil {
		return nil, err
	}

	var searcher notion.Searcher
	if token := string(env.Cfg.Notion.APIToken); token != "" {
		searcher = notion.NewSearchClient(token, env.Cfg.Notion.APIVersion)
	} else {
		log.Warn("No API token configured, internal note links will keep their original values")
	}
	return NewLinkResolver(ctx, titles, searcher, log), nil
}

// process determines the input type and fans out accordingly.
func process(ctx context.Context, src, dst string, links *LinkResolver, log *zap.Logger) error {
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found (%s): %w", src, err)
	}

	if fi.Mode().IsDir() {
		return processDir(ctx, src, dst, links, log)
	}
	if !fi.Mode().IsRegular() {
		return fmt.Errorf("unexpected path mode for (%s)", src)
	}

	switch {
	case strings.EqualFold(filepath.Ext(src), ".zip"):
		return processArchive(ctx, src, dst, links, log)
	case strings.EqualFold(filepath.Ext(src), ".enex"):
		f, err := os.Open(src)
		if err != nil {
			return err
		}
		defer f.Close()
		return processExport(ctx, f, filepath.Base(src), dst, links, log)
	}
	return fmt.Errorf("input was not recognized as ENEX export or archive (%s)", src)
}

// processDir walks the directory tree collecting exports and archives,
// processing them in natural name order.
func processDir(ctx context.Context, dir, dst string, links *LinkResolver, log *zap.Logger) error {
	var inputs []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			log.Warn("Skipping path", zap.String("path", path), zap.Error(err))
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if ext := filepath.Ext(path); strings.EqualFold(ext, ".enex") || strings.EqualFold(ext, ".zip") {
			inputs = append(inputs, path)
		}
		return nil
	})
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		log.Debug("Nothing to process", zap.String("dir", dir))
		return nil
	}
	sort.Sort(natural.StringSlice(inputs))

	var errs error
	for _, path := range inputs {
		if err := ctx.Err(); err != nil {
			return multierr.Append(errs, err)
		}
		if err := process(ctx, path, dst, links, log); err != nil {
			log.Error("Unable to process file", zap.String("file", path), zap.Error(err))
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

// processArchive walks .enex entries of a zip bundle.
func processArchive(ctx context.Context, path, dst string, links *LinkResolver, log *zap.Logger) error {
	count := 0
	err := archive.Walk(path, ".enex", func(arc string, f *zip.File) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		count++

		r, err := f.Open()
		if err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(err))
			return nil
		}
		defer r.Close()

		if err := processExport(ctx, r, f.FileHeader.Name, dst, links, log); err != nil {
			log.Error("Unable to process file in archive",
				zap.String("archive", arc), zap.String("file", f.FileHeader.Name), zap.Error(err))
		}
		return nil
	})
	if err == nil && count == 0 {
		log.Debug("Nothing to process", zap.String("archive", path))
	}
	return err
}

// processExport parses one ENEX export and converts its notes, a bounded
// worker per note. One failed note never aborts the batch, failures are
// aggregated and reported together.
func processExport(ctx context.Context, r io.Reader, src, dst string, links *LinkResolver, log *zap.Logger) error {
	env := state.EnvFromContext(ctx)

	log.Info("Conversion starting", zap.String("from", src))
	start := time.Now()

	notes, err := enex.Parse(r, log)
	if err != nil {
		return fmt.Errorf("unable to parse ENEX source (%s): %w", src, err)
	}

	workers := env.Cfg.Conversion.Workers
	if workers < 1 {
		workers = 1
	}

	var (
		mu   sync.Mutex
		errs error
		wg   sync.WaitGroup
	)
	queue := make(chan *enex.Note)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for note := range queue {
				if err := convertNote(ctx, note, src, dst, links, log); err != nil {
					log.Error("Unable to convert note", zap.String("title", note.Title), zap.Error(err))
					mu.Lock()
					errs = multierr.Append(errs, err)
					mu.Unlock()
				}
			}
		}()
	}

	for _, note := range notes {
		if ctx.Err() != nil {
			break
		}
		queue <- note
	}
	close(queue)
	wg.Wait()

	log.Info("Conversion completed", zap.Duration("elapsed", time.Since(start)), zap.Int("notes", len(notes)))
	return multierr.Append(errs, ctx.Err())
}

// convertNote converts a single note and writes its forest dump.
func convertNote(ctx context.Context, note *enex.Note, src, dst string, links *LinkResolver, log *zap.Logger) (rerr error) {
	env := state.EnvFromContext(ctx)

	defer func() {
		// conversion must survive a single malformed note even when a bug
		// slips through, multiple notes are usually processed in one go
		if r := recover(); r != nil {
			log.Error("Conversion ended with panic",
				zap.Any("panic", r), zap.String("title", note.Title), zap.ByteString("stack", debug.Stack()))
			rerr = fmt.Errorf("conversion panic: %v", r)
		}
	}()

	opts := Options{
		AddMeta:      env.Cfg.Conversion.AddMeta,
		RasterizeSVG: env.Cfg.Conversion.Images.RasterizeSVG,
		MaxRasterDim: env.Cfg.Conversion.Images.MaxRasterDim,
	}

	forest := ParseNote(note, links, opts, log)
	if forest == nil {
		return fmt.Errorf("unable to convert note (%s)", note.Title)
	}

	outputName := buildOutputPath(note, src, dst, env)
	if env.DryRun {
		log.Info("Dry run, skipping write", zap.String("to", outputName), zap.Int("blocks", len(forest)))
		return nil
	}

	data, err := json.MarshalIndent(forest, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to serialize note (%s): %w", note.Title, err)
	}
	if err := os.MkdirAll(filepath.Dir(outputName), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(outputName, data, 0644); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}

	if env.Rpt != nil {
		env.Rpt.Store(filepath.Base(outputName), outputName)
	}

	log.Debug("Note converted", zap.String("title", note.Title), zap.String("to", outputName))
	return nil
}
