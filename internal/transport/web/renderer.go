// Package web renders the portal's server-side pages and carries flash toasts between requests.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/frahmantamala/timeclock/internal"
	"github.com/frahmantamala/timeclock/internal/core/datamodel"
	"github.com/frahmantamala/timeclock/internal/core/pagination"
	"github.com/frahmantamala/timeclock/internal/request"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	layoutFile   = "templates/layout.html"
	partialsFile = "templates/partials.html"
)

// Page is the model every template receives. Data carries the page-specific view.
type Page struct {
	Title  string
	Active string
	Viewer *internal.Principal
	Flash  *Flash
	Errors map[string]string
	Form   url.Values
	Data   interface{}
}

func (p Page) IsHR() bool {
	return p.Viewer.IsHR()
}

func (p Page) Error(field string) string {
	return p.Errors[field]
}

func (p Page) Value(field string) string {
	return p.Form.Get(field)
}

type Renderer struct {
	pages map[string]*template.Template
	loc   *time.Location
}

func NewRenderer(loc *time.Location) (*Renderer, error) {
	if loc == nil {
		loc = time.UTC
	}
	r := &Renderer{pages: make(map[string]*template.Template), loc: loc}

	files, err := fs.Glob(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	for _, file := range files {
		if file == layoutFile || file == partialsFile {
			continue
		}
		name := strings.TrimSuffix(path.Base(file), ".html")
		tmpl, err := template.New(name).Funcs(r.funcs()).ParseFS(templateFS, layoutFile, partialsFile, file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

func (r *Renderer) Location() *time.Location {
	return r.loc
}

func (r *Renderer) Has(name string) bool {
	_, ok := r.pages[name]
	return ok
}

// Render executes the named page fully before writing, so a template error never leaves a
// half-written response.
func (r *Renderer) Render(w io.Writer, name string, page Page) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %q", name)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"datetime": func(ts datamodel.Timestamp) string {
			if ts.IsZero() {
				return ""
			}
			return ts.In(r.loc).Format("2006-01-02 15:04")
		},
		"clock": func(ts datamodel.Timestamp) string {
			if ts.IsZero() {
				return ""
			}
			return ts.In(r.loc).Format("15:04")
		},
		"hours": func(h float64) string {
			return fmt.Sprintf("%.1f", h)
		},
		"days": func(d *float64) string {
			if d == nil {
				return "-"
			}
			return fmt.Sprintf("%g", *d)
		},
		"num": func(n float64) string {
			return fmt.Sprintf("%g", n)
		},
		"str": func(s *string) string {
			if s == nil {
				return ""
			}
			return *s
		},
		"statusColor": request.StatusColor,
		"statusLabel": request.StatusLabel,
		"pager":       NewPager,
		"clockForm": func(ret string, next interface{}) ClockForm {
			return ClockForm{Return: ret, Next: fmt.Sprint(next)}
		},
	}
}

// ClockForm feeds the clock-in/out button partial.
type ClockForm struct {
	Return string
	Next   string
}

// Pager links the previous and next windows of a list, keeping extra query pairs.
type Pager struct {
	Base  string
	Page  pagination.Page
	Extra []string
}

func NewPager(base string, page pagination.Page, extra ...string) Pager {
	return Pager{Base: base, Page: page, Extra: extra}
}

func (p Pager) link(page pagination.Page) string {
	q := url.Values{}
	q.Set("limit", fmt.Sprint(page.Limit))
	q.Set("offset", fmt.Sprint(page.Offset))
	for i := 0; i+1 < len(p.Extra); i += 2 {
		if p.Extra[i+1] != "" {
			q.Set(p.Extra[i], p.Extra[i+1])
		}
	}
	return p.Base + "?" + q.Encode()
}

func (p Pager) PreviousURL() string {
	return p.link(p.Page.Previous())
}

func (p Pager) NextURL() string {
	return p.link(p.Page.Next())
}
