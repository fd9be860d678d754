package site

import (
	"fmt"
	"io/fs"
	"net/http"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// AssetFilter decides which files under the assets directory are served
// and exported. Patterns are doublestar globs matched against the path
// relative to the assets directory, and also against the bare file name.
type AssetFilter struct {
	Include []string
	Exclude []string
}

// Match reports whether rel passes the filter. An empty include list
// includes everything.
func (f AssetFilter) Match(rel string) bool {
	rel = filepath.ToSlash(rel)
	if len(f.Include) > 0 && !matchesAny(rel, f.Include) {
		return false
	}
	return !matchesAny(rel, f.Exclude)
}

// Handler serves the files under dir that pass the filter. Everything else
// is a 404, including directory listings.
func (f AssetFilter) Handler(dir string) http.Handler {
	files := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rel := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if rel == "" || strings.HasSuffix(r.URL.Path, "/") || !f.Match(rel) {
			http.NotFound(w, r)
			return
		}
		files.ServeHTTP(w, r)
	})
}

// Walk returns the slash-separated relative paths of the regular files
// under dir that pass the filter.
func (f AssetFilter) Walk(dir string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if f.Match(rel) {
			out = append(out, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking assets: %w", err)
	}
	return out, nil
}

func matchesAny(rel string, patterns []string) bool {
	base := path.Base(rel)
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}
