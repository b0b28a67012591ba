package extract

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/refmatrix/core"
	"github.com/katalvlaran/refmatrix/normalize"
)

// Discover walks root recursively and returns the spreadsheet files to
// extract, sorted by path. Temporary files ("~$" prefix) and hidden files
// ("." prefix) are skipped by name convention.
func Discover(root string, opts ...Option) ([]string, error) {
	o := gatherOptions(opts...)

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.HasPrefix(name, "~$") || strings.HasPrefix(name, ".") {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(name))
		for _, want := range o.extensions {
			if ext == strings.ToLower(want) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	return files, nil
}

// Dir extracts references from every spreadsheet under root and returns
// one core.Document per file, sorted by id.
//
// Extraction is an embarrassingly parallel map: files are processed
// concurrently (bounded by GOMAXPROCS) and each result lands in a
// positional slot, so aggregation is deterministic regardless of
// completion order. A file that fails to parse is logged through logger
// and contributes zero references; only an empty input set is terminal
// (ErrNoInputFiles).
func Dir(ctx context.Context, root string, logger *log.Logger, opts ...Option) ([]core.Document, error) {
	files, err := Discover(root, opts...)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoInputFiles
	}
	if logger == nil {
		logger = log.Default()
	}
	logger.Info("discovered spreadsheet files", "root", root, "count", len(files))

	docs := make([]core.Document, len(files))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			docs[i] = extractOne(root, path, logger, opts...)
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, err
	}

	// Deterministic aggregation: never rely on discovery order downstream.
	sort.Slice(docs, func(a, b int) bool { return docs[a].ID < docs[b].ID })

	return docs, nil
}

// extractOne builds the Document record for a single file. Read failures
// are isolated: the document is still emitted, with zero references.
func extractOne(root, path string, logger *log.Logger, opts ...Option) core.Document {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	dir := filepath.Dir(rel)

	filename := filepath.Base(path)
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))

	var refs []string
	grid, err := ReadGrid(path)
	if err != nil {
		logger.Warn("failed to read spreadsheet, treating as zero references",
			"file", rel, "err", err)
	} else {
		refs = Extract(grid, opts...)
	}
	logger.Debug("extracted references", "file", rel, "count", len(refs))

	return core.Document{
		ID:                  stem,
		Filename:            filename,
		RelativePath:        rel,
		Directory:           dir,
		NormalizedName:      normalize.Normalize(stem),
		ExtractedLinksCount: len(refs),
		ExtractedLinks:      refs,
	}
}
