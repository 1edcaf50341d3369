// Package templates loads the embedded prompt, instruction and email
// templates and renders them by ID. IDs mirror the asset layout, e.g.
// "instructions/roles/booking_agent".
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"sync"
	"text/template"
)

//go:embed all:assets
var assets embed.FS

// Registry resolves parsed templates by ID.
type Registry struct {
	templates map[string]*template.Template
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
	defaultErr  error
)

// Get returns the registry over the embedded assets. Panics on a parse
// error, which only a broken build can produce.
func Get() *Registry {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(assets, "assets")
		if err != nil {
			defaultErr = fmt.Errorf("prepare embedded templates: %w", err)
			return
		}
		defaultReg, defaultErr = NewRegistry(sub)
	})
	if defaultErr != nil {
		panic(defaultErr)
	}
	return defaultReg
}

// NewRegistry parses every .tmpl file in the filesystem into a registry.
func NewRegistry(fsys fs.FS) (*Registry, error) {
	r := &Registry{templates: map[string]*template.Template{}}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".tmpl" {
			return nil
		}

		id := strings.TrimSuffix(p, ".tmpl")
		content, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("read template %s: %w", id, err)
		}
		parsed, err := template.New(id).Funcs(builtinFuncs).Parse(string(content))
		if err != nil {
			return fmt.Errorf("parse template %s: %w", id, err)
		}
		r.templates[id] = parsed
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Render executes a template by ID with the provided data.
func (r *Registry) Render(id string, data any) (string, error) {
	tmpl, ok := r.templates[id]
	if !ok {
		return "", fmt.Errorf("template not found: %s", id)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template %s: %w", id, err)
	}
	return buf.String(), nil
}

// List returns all template IDs, sorted.
func (r *Registry) List() []string {
	ids := make([]string, 0, len(r.templates))
	for id := range r.templates {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ListPrefix returns the template IDs under a prefix, sorted. Template
// families like the per-role instruction closings are discovered this way,
// so adding a role needs a new asset only.
func (r *Registry) ListPrefix(prefix string) []string {
	ids := make([]string, 0)
	for id := range r.templates {
		if strings.HasPrefix(id, prefix) {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}
