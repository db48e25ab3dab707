package discovery

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"jsplit/internal/logger"
)

// Scanner finds JUnit report files in report directories
type Scanner struct {
	prefix    string
	ext       string
	recursive bool
	skipDirs  map[string]bool
	log       logger.Logger
}

// NewScanner creates a new Scanner. Reports are files named <prefix>*<ext>;
// the extension is compared case-insensitively.
func NewScanner(prefix, ext string, recursive bool, skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{
		prefix:    prefix,
		ext:       ext,
		recursive: recursive,
		skipDirs:  skipMap,
		log:       logger.Nop(),
	}
}

// SetLogger sets the logger used for unreadable directories
func (s *Scanner) SetLogger(l logger.Logger) {
	s.log = l
}

// IsReport reports whether a file name follows the report naming convention
func (s *Scanner) IsReport(name string) bool {
	return strings.HasPrefix(name, s.prefix) && strings.EqualFold(filepath.Ext(name), s.ext)
}

// Scan lists report files under the given roots. Duplicate roots are
// scanned once. A root that cannot be read is logged and skipped; Scan
// only fails when none of the roots could be read. A root that is a file
// is taken as a report as-is.
func (s *Scanner) Scan(ctx context.Context, roots ...string) ([]string, error) {
	seen := make(map[string]bool)
	found := make(map[string]bool)
	var failed []string

	for _, root := range roots {
		root = filepath.Clean(root)
		if seen[root] {
			continue
		}
		seen[root] = true

		files, err := s.scanRoot(root)
		if err != nil {
			s.log.Warn(ctx, "can't list files in directory", logger.String("path", root), logger.Error(err))
			failed = append(failed, root)
			continue
		}
		for _, f := range files {
			found[f] = true
		}
	}

	if len(seen) > 0 && len(failed) == len(seen) {
		return nil, fmt.Errorf("no readable report directory: %s", strings.Join(failed, ", "))
	}

	reports := make([]string, 0, len(found))
	for f := range found {
		reports = append(reports, f)
	}
	sort.Strings(reports)
	return reports, nil
}

func (s *Scanner) scanRoot(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("report path does not exist: %s", root)
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	if !s.recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, fmt.Errorf("read dir %s: %w", root, err)
		}
		var reports []string
		for _, e := range entries {
			if !e.IsDir() && s.IsReport(e.Name()) {
				reports = append(reports, filepath.Join(root, e.Name()))
			}
		}
		return reports, nil
	}

	var reports []string
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path == root {
				return nil
			}
			name := d.Name()
			// Skip hidden directories
			if strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		if s.IsReport(d.Name()) {
			reports = append(reports, path)
		}
		return nil
	})

	return reports, err
}
