// Package ioemit writes generated artifacts to the file system. Files are
// written concurrently; a file whose content did not change is left
// untouched.
package ioemit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/owlgen/pkg/gogen"
	"golang.org/x/sync/errgroup"
)

// Stats counts the outcome of an emission.
type Stats struct {
	// Written is the number of created or replaced files.
	Written int
	// Unchanged is the number of files that already had the content.
	Unchanged int
}

// Option configures Write.
type Option func(*emitter)

// OptJobs sets the number of concurrent writers.
func OptJobs(n int) Option {
	return func(e *emitter) {
		if n > 0 {
			e.jobs = n
		}
	}
}

// OptProgress shows a progress bar on the terminal.
func OptProgress(b bool) Option {
	return func(e *emitter) {
		e.progress = b
	}
}

type emitter struct {
	jobs     int
	progress bool
}

// Write stores files under dir. Paths of files are relative to dir and
// must stay inside it.
func Write(ctx context.Context, dir string, files []gogen.File, opts ...Option) (Stats, error) {
	e := emitter{jobs: 1}
	for _, opt := range opts {
		opt(&e)
	}

	var res Stats
	for _, f := range files {
		if !filepath.IsLocal(f.Path) {
			return res, PathError(f.Path)
		}
	}

	var bar *pb.ProgressBar
	if e.progress {
		bar = pb.Full.Start(len(files))
		bar.Set("prefix", "Writing files: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	var written, unchanged atomic.Int64
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(e.jobs)
	for _, f := range files {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			path := filepath.Join(dir, f.Path)
			changed, err := writeFile(path, f.Content)
			if err != nil {
				return err
			}
			if changed {
				written.Add(1)
			} else {
				unchanged.Add(1)
			}
			if bar != nil {
				bar.Increment()
			}
			return nil
		})
	}
	err := g.Wait()
	res.Written = int(written.Load())
	res.Unchanged = int(unchanged.Load())
	if err != nil {
		return res, err
	}

	slog.Info("Artifacts written",
		"dir", dir,
		"written", humanize.Comma(int64(res.Written)),
		"unchanged", humanize.Comma(int64(res.Unchanged)),
	)
	return res, nil
}

// writeFile replaces path with content through a temporary file in the
// same directory. It returns false if the file already had the content.
func writeFile(path string, content []byte) (bool, error) {
	old, err := os.ReadFile(path)
	if err == nil && bytes.Equal(old, content) {
		return false, nil
	}
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return false, WriteFileError(path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return false, CreateDirError(dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".owlgen-*")
	if err != nil {
		return false, WriteFileError(path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return false, WriteFileError(path, err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return false, WriteFileError(path, err)
	}
	if err := tmp.Close(); err != nil {
		return false, WriteFileError(path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return false, WriteFileError(path, err)
	}
	return true, nil
}
