// Package usage sums file sizes under a directory, one total per top-level
// entry, like du -s.
package usage

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"log/slog"

	"bytesize/internal/config"
	"bytesize/pkg/bytesize"
)

// Entry is the aggregated size of one top-level entry under the scanned root.
type Entry struct {
	Name  string
	Size  bytesize.ByteSize
	Files int
}

// Report is the result of a single Scan.
type Report struct {
	Root string
	// Entries holds entries of at least the configured minimum size, largest
	// first. Total and Files still count the entries that were filtered out.
	Entries []Entry
	Total   bytesize.ByteSize
	Files   int
	// Hidden counts entries dropped by the minimum size.
	Hidden int
	// Unreadable counts paths skipped because they could not be read.
	Unreadable int
	// Saturated is set when a sum exceeded the largest ByteSize.
	Saturated bool
}

// Scanner walks directory trees.
type Scanner struct {
	cfg    config.UsageConfig
	logger *slog.Logger
}

// NewScanner creates a scanner with the given thresholds.
func NewScanner(cfg config.UsageConfig, logger *slog.Logger) *Scanner {
	return &Scanner{cfg: cfg, logger: logger.With("component", "usage")}
}

// Scan walks root and sums the sizes of regular files. Symlinks are skipped
// unless FollowSymlinks is set, in which case symlinked files count with
// their target's size; symlinked directories are never descended. Unreadable
// subdirectories are logged and skipped. Scan stops with ctx.Err() once ctx is
// done.
func (s *Scanner) Scan(ctx context.Context, root string) (*Report, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	report := &Report{Root: root}
	if !info.IsDir() {
		if info.Mode().IsRegular() {
			size := bytesize.ByteSize(info.Size())
			report.Entries = []Entry{{Name: filepath.Base(root), Size: size, Files: 1}}
			report.Total = size
			report.Files = 1
		}
		return report, nil
	}

	entries := make(map[string]*Entry)
	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == root {
				return err
			}
			s.logger.Warn("skip unreadable path", slog.String("path", path), slog.Any("error", err))
			report.Unreadable++
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if path == root {
			return nil
		}
		top := topLevel(root, path)
		entry, ok := entries[top]
		if !ok {
			entry = &Entry{Name: top}
			entries[top] = entry
		}
		if d.IsDir() {
			return nil
		}

		size, counted, err := s.fileSize(path, d)
		if err != nil {
			s.logger.Warn("skip unreadable file", slog.String("path", path), slog.Any("error", err))
			report.Unreadable++
			return nil
		}
		if !counted {
			return nil
		}
		var fits bool
		if entry.Size, fits = entry.Size.AddChecked(size); !fits {
			report.Saturated = true
		}
		entry.Files++
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("scan %s: %w", root, walkErr)
	}

	for _, entry := range entries {
		var fits bool
		if report.Total, fits = report.Total.AddChecked(entry.Size); !fits {
			report.Saturated = true
		}
		report.Files += entry.Files
		if entry.Size < s.cfg.MinSize {
			report.Hidden++
			continue
		}
		report.Entries = append(report.Entries, *entry)
	}
	slices.SortFunc(report.Entries, func(a, b Entry) int {
		if c := cmp.Compare(b.Size, a.Size); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	s.logger.Debug("scan finished",
		slog.String("root", root),
		slog.Int("files", report.Files),
		slog.String("total", report.Total.String()),
		slog.Uint64("raw_total", report.Total.Uint64()))
	return report, nil
}

// fileSize reports the size of a non-directory entry and whether it counts
// toward the totals.
func (s *Scanner) fileSize(path string, d fs.DirEntry) (bytesize.ByteSize, bool, error) {
	if d.Type()&fs.ModeSymlink != 0 {
		if !s.cfg.FollowSymlinks {
			return 0, false, nil
		}
		target, err := os.Stat(path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// Dangling link.
				return 0, false, nil
			}
			return 0, false, err
		}
		if !target.Mode().IsRegular() {
			return 0, false, nil
		}
		return bytesize.ByteSize(target.Size()), true, nil
	}
	if !d.Type().IsRegular() {
		return 0, false, nil
	}
	info, err := d.Info()
	if err != nil {
		return 0, false, err
	}
	return bytesize.ByteSize(info.Size()), true, nil
}

func topLevel(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	first, _, _ := strings.Cut(filepath.ToSlash(rel), "/")
	return first
}
