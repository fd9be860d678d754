package site

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"github.com/levelupinstalling/levelup/internal/content"
	"github.com/levelupinstalling/levelup/internal/interaction"
	"github.com/levelupinstalling/levelup/internal/session"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed static
var staticFiles embed.FS

func staticFS() fs.FS {
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// pageData holds the data passed to the page templates.
type pageData struct {
	Page    string
	Content *content.Content
	State   session.Snapshot
	// Static marks pages rendered for the export: no live channel and no
	// server-side form handling.
	Static     bool
	Year       int
	Breakpoint int

	Draft  interaction.Draft
	Errors map[string]string
}

var templateFuncs = template.FuncMap{
	"markdown": content.Markdown,
	"lower":    strings.ToLower,
	"mailto":   func(addr string) template.URL { return template.URL("mailto:" + addr) },
	"tel": func(phone string) template.URL {
		return template.URL("tel:" + strings.ReplaceAll(phone, " ", ""))
	},
	"last": func(i int, list []string) bool { return i == len(list)-1 },
}

func parseTemplates() (*template.Template, error) {
	tmpl, err := template.New("site").Funcs(templateFuncs).ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page templates: %w", err)
	}
	return tmpl, nil
}

// fieldErrors flattens a validation error for the contact template.
func fieldErrors(err *interaction.ValidationError) map[string]string {
	if err == nil {
		return nil
	}
	out := make(map[string]string, len(err.Fields))
	for _, f := range err.Fields {
		out[string(f.Field)] = f.Reason
	}
	return out
}
