package config

import (
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// MaxIncludeDepth bounds nested @include chains.
const MaxIncludeDepth = 8

const includeKey = "@include"

// FileSystem reads profile files.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
}

// OSFS reads from the operating system.
type OSFS struct{}

// ReadFile reads the entire file at path.
func (OSFS) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Format is a profile file encoding.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
	FormatJSON
)

// String returns the format name.
func (f Format) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatJSON:
		return "json"
	default:
		return "toml"
	}
}

// FormatOf picks the format from a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return 0, errors.Wrapf(ErrUnknownFormat, "%s", path)
}

// ParseError is a syntax error in a profile file.
type ParseError struct {
	Path    string
	Format  Format
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	return "parse error in " + e.Path + " (" + e.Format.String() + "): " + e.Message
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Loader reads raw profile maps.
type Loader struct {
	fs FileSystem
}

// NewLoader returns a loader reading from fsys. A nil fsys reads from disk.
func NewLoader(fsys FileSystem) *Loader {
	if fsys == nil {
		fsys = OSFS{}
	}
	return &Loader{fs: fsys}
}

// Parse decodes data in the given format into a map.
func Parse(source string, format Format, data []byte) (map[string]any, error) {
	var out map[string]any
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &out)
	case FormatJSON:
		err = json.Unmarshal(data, &out)
	default:
		err = toml.Unmarshal(data, &out)
	}
	if err != nil {
		return nil, &ParseError{Path: source, Format: format, Message: err.Error(), Err: err}
	}
	if out == nil {
		out = map[string]any{}
	}
	return normalize(out).(map[string]any), nil
}

// Load reads path and resolves its @include directives. Included files
// are merged first so the including file wins.
func (l *Loader) Load(path string) (map[string]any, error) {
	return l.load(path, MaxIncludeDepth)
}

func (l *Loader) load(path string, depth int) (map[string]any, error) {
	if depth <= 0 {
		return nil, errors.Wrapf(ErrIncludeDepth, "%s", path)
	}
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrNotFound, "%s", path)
		}
		return nil, errors.Wrapf(err, "reading %s", path)
	}
	cfg, err := Parse(path, format, data)
	if err != nil {
		return nil, err
	}

	raw, ok := cfg[includeKey]
	if !ok {
		return cfg, nil
	}
	delete(cfg, includeKey)

	includes, err := includeList(raw)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	base := map[string]any{}
	dir := filepath.Dir(path)
	for _, inc := range includes {
		if !filepath.IsAbs(inc) {
			inc = filepath.Join(dir, inc)
		}
		sub, err := l.load(inc, depth-1)
		if err != nil {
			return nil, errors.Wrapf(err, "loading include %s", inc)
		}
		base = DeepMerge(base, sub)
	}
	return DeepMerge(base, cfg), nil
}

func includeList(v any) ([]string, error) {
	switch v := v.(type) {
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errors.Newf("@include must be a string or list of strings, got %T", item)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, errors.Newf("@include must be a string or list of strings, got %T", v)
}

// DeepMerge merges src into dst. Maps merge recursively; anything else in
// src replaces the value in dst.
func DeepMerge(dst, src map[string]any) map[string]any {
	if dst == nil {
		dst = make(map[string]any, len(src))
	}
	for key, sv := range src {
		sm, srcIsMap := sv.(map[string]any)
		dm, dstIsMap := dst[key].(map[string]any)
		if srcIsMap && dstIsMap {
			dst[key] = DeepMerge(dm, sm)
			continue
		}
		dst[key] = clone(sv)
	}
	return dst
}

func clone(v any) any {
	switch v := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[k] = clone(e)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, e := range v {
			out[i] = clone(e)
		}
		return out
	}
	return v
}

// normalize converts decoder specific shapes, such as YAML's
// map[any]any, into plain JSON-compatible values.
func normalize(v any) any {
	switch v := v.(type) {
	case map[string]any:
		for k, e := range v {
			v[k] = normalize(e)
		}
		return v
	case map[any]any:
		out := make(map[string]any, len(v))
		for k, e := range v {
			out[toString(k)] = normalize(e)
		}
		return out
	case []any:
		for i, e := range v {
			v[i] = normalize(e)
		}
		return v
	}
	return v
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	b, _ := json.Marshal(v)
	return string(b)
}
