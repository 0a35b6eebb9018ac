package secrets

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// CompilerConfig is the subset of a TypeScript compiler configuration the
// scan reads. tsconfig files routinely carry comments and trailing commas,
// so parsing strips both before unmarshalling.
type CompilerConfig struct {
	Files   []string `json:"files"`
	Include []string `json:"include"`
	Exclude []string `json:"exclude"`
}

// LoadCompilerConfig reads a tsconfig-style file.
func LoadCompilerConfig(path string) (*CompilerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read compiler config: %w", err)
	}

	var cfg CompilerConfig
	if err := json.Unmarshal(stripJSONC(data), &cfg); err != nil {
		return nil, fmt.Errorf("parse compiler config %s: %w", path, err)
	}
	return &cfg, nil
}

// ResolveSourceFiles expands the files and include entries into the list of
// TypeScript sources to scan, with relative entries anchored at rootDir.
// Declaration files, test files, and anything under node_modules or an
// exclude entry are dropped. When the config lists neither files nor
// includes, every source under rootDir is a candidate. The result is
// absolute, deduplicated, and sorted.
func (c *CompilerConfig) ResolveSourceFiles(rootDir string) ([]string, error) {
	seen := make(map[string]struct{})

	add := func(rel string) {
		if !isScannableSource(rel) || c.excluded(rel) {
			return
		}
		seen[filepath.Join(rootDir, filepath.FromSlash(rel))] = struct{}{}
	}

	for _, rel := range c.Files {
		add(strings.TrimPrefix(filepath.ToSlash(rel), "./"))
	}

	includes := c.Include
	if len(includes) == 0 && len(c.Files) == 0 {
		includes = []string{"**/*"}
	}
	if len(includes) > 0 {
		rels, err := relativeSources(rootDir)
		if err != nil {
			return nil, err
		}
		for _, rel := range rels {
			for _, pattern := range includes {
				if matchInclude(pattern, rel) {
					add(rel)
					break
				}
			}
		}
	}

	files := make([]string, 0, len(seen))
	for f := range seen {
		files = append(files, f)
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, ErrNoSourceFiles
	}
	return files, nil
}

func (c *CompilerConfig) excluded(rel string) bool {
	if rel == "node_modules" || strings.HasPrefix(rel, "node_modules/") {
		return true
	}
	for _, pattern := range c.Exclude {
		if matchInclude(pattern, rel) {
			return true
		}
	}
	return false
}

// relativeSources walks rootDir and returns slash-separated relative paths
// of every regular file outside node_modules.
func relativeSources(rootDir string) ([]string, error) {
	var rels []string
	err := filepath.WalkDir(rootDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == "node_modules" {
				return fs.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(rootDir, p)
		if err != nil {
			return err
		}
		rels = append(rels, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk sources: %w", err)
	}
	return rels, nil
}

// matchInclude matches one include or exclude entry against a relative
// path. Entries without glob metacharacters name a file or a directory
// subtree; globs match per segment, with ** spanning any number of them.
func matchInclude(pattern, rel string) bool {
	pattern = strings.TrimPrefix(filepath.ToSlash(pattern), "./")
	if pattern == "" {
		return true
	}
	if !strings.ContainsAny(pattern, "*?[") {
		return rel == pattern || strings.HasPrefix(rel, pattern+"/")
	}
	return matchSegments(strings.Split(pattern, "/"), strings.Split(rel, "/"))
}

func matchSegments(pattern, name []string) bool {
	for len(pattern) > 0 {
		if pattern[0] == "**" {
			if len(pattern) == 1 {
				return true
			}
			for i := 0; i <= len(name); i++ {
				if matchSegments(pattern[1:], name[i:]) {
					return true
				}
			}
			return false
		}
		if len(name) == 0 {
			return false
		}
		if ok, _ := path.Match(pattern[0], name[0]); !ok {
			return false
		}
		pattern, name = pattern[1:], name[1:]
	}
	return len(name) == 0
}

func isScannableSource(rel string) bool {
	base := path.Base(rel)
	if strings.HasSuffix(base, ".d.ts") || strings.HasSuffix(base, ".d.cts") || strings.HasSuffix(base, ".d.mts") {
		return false
	}
	if ext := path.Ext(base); ext != ".ts" && ext != ".tsx" {
		return false
	}
	if strings.Contains(base, ".test.") || strings.Contains(base, ".spec.") {
		return false
	}
	return true
}

// stripJSONC removes // and /* */ comments outside string literals, then
// trailing commas, yielding strict JSON.
func stripJSONC(src []byte) []byte {
	out := make([]byte, 0, len(src))
	for i := 0; i < len(src); {
		c := src[i]
		switch {
		case c == '"':
			out = append(out, c)
			i++
			for i < len(src) {
				out = append(out, src[i])
				if src[i] == '\\' && i+1 < len(src) {
					out = append(out, src[i+1])
					i += 2
					continue
				}
				if src[i] == '"' {
					i++
					break
				}
				i++
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			for i < len(src) && src[i] != '\n' {
				i++
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			i += 2
			for i+1 < len(src) && !(src[i] == '*' && src[i+1] == '/') {
				i++
			}
			i += 2
			if i > len(src) {
				i = len(src)
			}
		default:
			out = append(out, c)
			i++
		}
	}
	return stripTrailingCommas(out)
}

func stripTrailingCommas(src []byte) []byte {
	out := make([]byte, 0, len(src))
	inString := false
	for i := 0; i < len(src); i++ {
		c := src[i]
		if inString {
			out = append(out, c)
			if c == '\\' && i+1 < len(src) {
				out = append(out, src[i+1])
				i++
				continue
			}
			if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case ',':
			j := i + 1
			for j < len(src) && isJSONSpace(src[j]) {
				j++
			}
			if j < len(src) && (src[j] == '}' || src[j] == ']') {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
