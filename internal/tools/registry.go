package tools

import (
	"sort"
	"sync"
	"time"

	adktool "google.golang.org/adk/tool"
	"google.golang.org/adk/tool/functiontool"

	"voyager/internal/metrics"
	"voyager/pkg/errors"
)

// Definition describes a tool's metadata for registration and prompts.
type Definition struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// HandlerFunc is the signature every tool handler implements. The tool
// context carries the session and user of the running invocation and
// satisfies context.Context.
type HandlerFunc func(ctx adktool.Context, args map[string]interface{}) (map[string]interface{}, error)

// Registry stores ADK tools by name for discovery and lookup.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]adktool.Tool
	defs  map[string]Definition
}

// NewRegistry constructs an empty tool registry.
func NewRegistry() *Registry {
	return &Registry{
		tools: make(map[string]adktool.Tool),
		defs:  make(map[string]Definition),
	}
}

// Register wraps the handler in an instrumented function tool and stores it
// under the definition's name. Declarations are static, so a construction
// error is a programming mistake and panics at startup.
func (r *Registry) Register(def Definition, handler HandlerFunc) {
	fn := instrumented(def.Name, handler)
	t, err := functiontool.New(
		functiontool.Config{
			Name:        def.Name,
			Description: def.Description,
		},
		func(ctx adktool.Context, args map[string]interface{}) (map[string]interface{}, error) {
			return fn(ctx, args)
		},
	)
	if err != nil {
		panic("register tool " + def.Name + ": " + err.Error())
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.tools[def.Name] = t
	r.defs[def.Name] = def
}

// Get retrieves a tool by name if registered.
func (r *Registry) Get(name string) (adktool.Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	return t, ok
}

// Resolve maps tool names to their registered instances, failing on the
// first unknown name.
func (r *Registry) Resolve(names []string) ([]adktool.Tool, error) {
	out := make([]adktool.Tool, 0, len(names))
	for _, name := range names {
		t, ok := r.Get(name)
		if !ok {
			return nil, errors.Wrapf(errors.ErrNotFound, "tool %s", name)
		}
		out = append(out, t)
	}
	return out, nil
}

// Definitions returns metadata for all registered tools, sorted by name.
func (r *Registry) Definitions() []Definition {
	r.mu.RLock()
	defs := make([]Definition, 0, len(r.defs))
	for _, def := range r.defs {
		defs = append(defs, def)
	}
	r.mu.RUnlock()

	sort.Slice(defs, func(i, j int) bool { return defs[i].Name < defs[j].Name })
	return defs
}

// List returns the names of all registered tools, sorted.
func (r *Registry) List() []string {
	defs := r.Definitions()
	names := make([]string, 0, len(defs))
	for _, def := range defs {
		names = append(names, def.Name)
	}
	return names
}

// instrumented wraps a handler with latency and outcome metrics.
func instrumented(name string, handler HandlerFunc) HandlerFunc {
	return func(ctx adktool.Context, args map[string]interface{}) (map[string]interface{}, error) {
		start := time.Now()
		result, err := handler(ctx, args)
		metrics.RecordToolExecution(name, time.Since(start), err)
		return result, err
	}
}
