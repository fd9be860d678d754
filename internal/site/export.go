package site

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/levelupinstalling/levelup/internal/interaction"
	"github.com/levelupinstalling/levelup/internal/progress"
	"github.com/levelupinstalling/levelup/internal/session"
)

// Exporter writes the site as static files. Pages carry the initial state
// of every component; the menu and accordion fall back to <details> and
// the contact form posts to a mailto: action.
type Exporter struct {
	Site      *Site
	OutputDir string
	Progress  progress.Reporter
}

type exportFile struct {
	rel   string
	write func(dst string) error
}

// Export renders the pages, writes the embedded static files and copies
// the filtered assets. It returns the number of files written.
func (e *Exporter) Export() (int, error) {
	rep := e.Progress
	if rep == nil {
		rep = progress.Nop()
	}

	files, err := e.plan()
	if err != nil {
		return 0, err
	}
	if err := os.MkdirAll(e.OutputDir, 0o755); err != nil {
		return 0, fmt.Errorf("creating output dir: %w", err)
	}

	rep.Start(len(files))
	for i, f := range files {
		dst := filepath.Join(e.OutputDir, filepath.FromSlash(f.rel))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
			return i, fmt.Errorf("creating %s: %w", filepath.Dir(dst), err)
		}
		if err := f.write(dst); err != nil {
			return i, fmt.Errorf("writing %s: %w", f.rel, err)
		}
		rep.Update(i+1, f.rel)
	}
	rep.Finish()

	e.Site.logger.Info("site exported", zap.String("dir", e.OutputDir), zap.Int("files", len(files)))
	return len(files), nil
}

func (e *Exporter) plan() ([]exportFile, error) {
	var files []exportFile

	for _, p := range []struct{ name, rel string }{
		{"index", "index.html"},
		{"contact", "contact/index.html"},
	} {
		data, err := e.Site.renderTo(p.name, e.Site.staticPage(p.name))
		if err != nil {
			return nil, err
		}
		files = append(files, exportFile{rel: p.rel, write: writeBytes(data)})
	}

	static := staticFS()
	err := fs.WalkDir(static, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		files = append(files, exportFile{
			rel:   path.Join("static", p),
			write: func(dst string) error { return copyFS(static, p, dst) },
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing static files: %w", err)
	}

	dir := e.Site.opts.AssetsDir
	if dir == "" {
		return files, nil
	}
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		e.Site.logger.Warn("assets dir missing, skipping", zap.String("dir", dir))
		return files, nil
	}
	assets, err := e.Site.opts.Assets.Walk(dir)
	if err != nil {
		return nil, err
	}
	for _, rel := range assets {
		src := filepath.Join(dir, filepath.FromSlash(rel))
		files = append(files, exportFile{
			rel:   path.Join("assets", rel),
			write: func(dst string) error { return copyFile(src, dst) },
		})
	}
	return files, nil
}

// staticPage is the page data for the export: every component in its
// initial state and the composer's starting draft.
func (s *Site) staticPage(name string) pageData {
	c := s.Content()
	composer := interaction.NewContactComposer(SessionOptions(c, s.opts.ScrollThreshold).Composer)
	return pageData{
		Page:       name,
		Content:    c,
		State:      session.Snapshot{Expanded: -1},
		Static:     true,
		Year:       s.now().Year(),
		Breakpoint: s.opts.NavBreakpoint,
		Draft:      composer.Draft(),
	}
}

func writeBytes(data []byte) func(string) error {
	return func(dst string) error { return os.WriteFile(dst, data, 0o644) }
}

func copyFS(fsys fs.FS, name, dst string) error {
	in, err := fsys.Open(name)
	if err != nil {
		return err
	}
	defer in.Close()
	return writeFrom(in, dst)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()
	return writeFrom(in, dst)
}

func writeFrom(r io.Reader, dst string) error {
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
