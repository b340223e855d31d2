package watcher

import (
	"path"
	"strings"

	"github.com/cockroachdb/errors"
)

// Pattern is a compiled glob over slash-separated relative paths.
//
// Supported syntax:
//   - *, ?, [abc]     match within one path segment
//   - **              matches any number of segments, including none
//   - {sql,json}      alternatives, one level deep
//
// A Pattern compiled from "" matches every path.
type Pattern struct {
	source   string
	variants [][]string
}

// CompilePattern parses a glob.
func CompilePattern(glob string) (*Pattern, error) {
	p := &Pattern{source: glob}
	if glob == "" {
		return p, nil
	}
	for _, alt := range expandBraces(glob) {
		segs := strings.Split(strings.TrimPrefix(alt, "/"), "/")
		for _, seg := range segs {
			if seg == "**" {
				continue
			}
			if _, err := path.Match(seg, ""); err != nil {
				return nil, errors.Wrapf(err, "invalid glob %q", glob)
			}
		}
		p.variants = append(p.variants, segs)
	}
	return p, nil
}

// String returns the source glob.
func (p *Pattern) String() string {
	return p.source
}

// Match reports whether rel, a slash-separated path relative to the watch
// root, matches the pattern.
func (p *Pattern) Match(rel string) bool {
	if p == nil || len(p.variants) == 0 {
		return true
	}
	parts := strings.Split(strings.TrimPrefix(rel, "./"), "/")
	for _, segs := range p.variants {
		if matchSegments(segs, parts) {
			return true
		}
	}
	return false
}

func matchSegments(pattern, parts []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			rest := pattern[1:]
			for i := 0; i <= len(parts); i++ {
				if matchSegments(rest, parts[i:]) {
					return true
				}
			}
			return false
		}
		if len(parts) == 0 {
			return false
		}
		if ok, _ := path.Match(pattern[0], parts[0]); !ok {
			return false
		}
		pattern, parts = pattern[1:], parts[1:]
	}
	return len(parts) == 0
}

func expandBraces(glob string) []string {
	open := strings.IndexByte(glob, '{')
	if open < 0 {
		return []string{glob}
	}
	closing := strings.IndexByte(glob[open:], '}')
	if closing < 0 {
		return []string{glob}
	}
	closing += open
	prefix, suffix := glob[:open], glob[closing+1:]
	var out []string
	for _, alt := range strings.Split(glob[open+1:closing], ",") {
		out = append(out, expandBraces(prefix+alt+suffix)...)
	}
	return out
}
