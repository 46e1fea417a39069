// Package loader reads parsed file records from disk and filters them
// against ignore globs.
package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/ngaudit/pkg/core"
	"gopkg.in/yaml.v3"
)

// recordExtensions are the file extensions recognized as record documents
// when walking a directory.
var recordExtensions = map[string]bool{
	".json": true,
	".yaml": true,
	".yml":  true,
}

// projectFiles are JSON and YAML files found in Angular workspaces that are
// never record documents.
var projectFiles = map[string]bool{
	"ngaudit.yaml":      true,
	"ngaudit.yml":       true,
	"package.json":      true,
	"package-lock.json": true,
	"angular.json":      true,
	"pnpm-lock.yaml":    true,
	".eslintrc.json":    true,
}

// Options configures Load.
type Options struct {
	// Ignore drops records whose path matches. Nil keeps every record.
	Ignore *IgnoreMatcher
	Logger *slog.Logger
}

// Result holds the records read by Load.
type Result struct {
	Records  []core.FileRecord
	Warnings []core.Warning
	// Ignored counts records dropped by ignore globs.
	Ignored int
}

// recordDocument is the object form of a record document.
type recordDocument struct {
	Records []core.FileRecord `yaml:"records"`
}

// Load reads record documents from the given files or directories.
// A document that cannot be decoded becomes a parse warning; a path that
// does not exist is an error.
func Load(paths []string, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	files, err := collectFiles(paths, opts.Ignore)
	if err != nil {
		return nil, err
	}

	result := &Result{}
	for _, file := range files {
		data, err := os.ReadFile(file) //nolint:gosec // paths come from the caller
		if err != nil {
			result.Warnings = append(result.Warnings, core.ParseWarning(core.NormalizePath(file), "cannot read record document: %v", err))
			continue
		}

		records, err := ParseRecords(data)
		if err != nil {
			logger.Warn("skipping record document", "file", file, "error", err)
			result.Warnings = append(result.Warnings, core.ParseWarning(core.NormalizePath(file), "%v", err))
			continue
		}

		for _, rec := range records {
			if rec.Path == "" {
				result.Warnings = append(result.Warnings, core.ParseWarning(core.NormalizePath(file), "record for class %q has no path", rec.ClassName))
				continue
			}
			if opts.Ignore.Match(rec.Path) {
				logger.Debug("ignoring record", "path", rec.Path)
				result.Ignored++
				continue
			}
			result.Records = append(result.Records, rec)
		}
		logger.Debug("loaded record document", "file", file, "records", len(records))
	}

	return result, nil
}

// ParseRecords decodes a JSON or YAML record document. The document is either
// a list of records or an object with a "records" list. Unknown fields are
// rejected.
func ParseRecords(data []byte) ([]core.FileRecord, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, &ParseError{Message: fmt.Sprintf("invalid document: %v", err)}
	}
	if len(root.Content) == 0 {
		return nil, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	switch root.Content[0].Kind {
	case yaml.SequenceNode:
		var records []core.FileRecord
		if err := dec.Decode(&records); err != nil && !errors.Is(err, io.EOF) {
			return nil, &ParseError{Message: fmt.Sprintf("failed to decode records: %v", err)}
		}
		return records, nil
	case yaml.MappingNode:
		var doc recordDocument
		if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
			return nil, &ParseError{Message: fmt.Sprintf("failed to decode records: %v", err)}
		}
		return doc.Records, nil
	default:
		return nil, &ParseError{Message: "document must be a list of records or an object with a records list"}
	}
}

func collectFiles(paths []string, ignore *IgnoreMatcher) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("record input: %w", err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path == p {
				return nil
			}
			rel, err := filepath.Rel(p, path)
			if err != nil {
				return err
			}
			rel = core.NormalizePath(rel)
			if d.IsDir() {
				if SkipDir(d.Name()) || ignore.Match(rel+"/") {
					return fs.SkipDir
				}
				return nil
			}
			if IsRecordDocument(path) && !ignore.Match(rel) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", p, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

// SkipDir reports whether a directory walk should skip a directory with
// this name: node_modules and hidden directories.
func SkipDir(name string) bool {
	return name == "node_modules" || (len(name) > 1 && name[0] == '.')
}

// IsRecordDocument reports whether path has a record document extension and
// is not a well-known workspace file such as package.json or tsconfig.json.
func IsRecordDocument(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	if projectFiles[base] || strings.HasPrefix(base, "tsconfig") {
		return false
	}
	return recordExtensions[filepath.Ext(base)]
}

// ParseError represents a record document decoding error.
type ParseError struct {
	File    string
	Message string
}

func (e *ParseError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s: %s", e.File, e.Message)
	}
	return e.Message
}
