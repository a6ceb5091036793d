package matview

import (
	"sort"
	"sync"

	"gopkg.in/src-d/go-errors.v1"

	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
)

var (
	// ErrExistingView is returned when a view is registered under a name
	// already in use.
	ErrExistingView = errors.NewKind("materialized view already registered: %s")

	// ErrViewNotFound is returned when a view is not registered.
	ErrViewNotFound = errors.NewKind("materialized view not found: %s")
)

// View is a registered materialized view: its extracted summary plus the
// target table its contents are queryable under.
type View struct {
	name     string
	rewriter *Rewriter
}

// Name returns the registered name of the view.
func (v *View) Name() string { return v.name }

// Target returns the table the view contents are queryable under.
func (v *View) Target() string { return v.rewriter.Target() }

// Info returns the extracted summary of the view.
func (v *View) Info() *Info { return v.rewriter.Info() }

// Rewriter returns the query rewriter for the view.
func (v *View) Rewriter() *Rewriter { return v.rewriter }

// Registry holds the materialized views available for query rewriting. It
// is safe for concurrent use.
type Registry struct {
	catalog sql.Catalog

	mu    sync.RWMutex
	views map[string]*View
}

// NewRegistry creates an empty registry backed by the given catalog.
func NewRegistry(catalog sql.Catalog) *Registry {
	return &Registry{
		catalog: catalog,
		views:   make(map[string]*View),
	}
}

// Register extracts the view definition and makes it available for rewrites
// under the given name. Definitions that cannot be summarized are refused
// with ErrNotSupported.
func (r *Registry) Register(name, target string, definition sql.Node) (*View, error) {
	info, err := Extract(definition)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.views[name]; ok {
		return nil, ErrExistingView.New(name)
	}
	view := &View{
		name:     name,
		rewriter: NewRewriter(r.catalog, info, target),
	}
	r.views[name] = view
	return view, nil
}

// Deregister removes a view from the registry.
func (r *Registry) Deregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.views[name]; !ok {
		return ErrViewNotFound.New(name)
	}
	delete(r.views, name)
	return nil
}

// View returns the view registered under the given name.
func (r *Registry) View(name string) (*View, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.views[name]
	return v, ok
}

// Views returns all registered views ordered by name.
func (r *Registry) Views() []*View {
	r.mu.RLock()
	defer r.mu.RUnlock()
	views := make([]*View, 0, len(r.views))
	for _, v := range r.views {
		views = append(views, v)
	}
	sort.Slice(views, func(i, j int) bool {
		return views[i].name < views[j].name
	})
	return views
}

// Rewrite tries every registered view in name order and returns the first
// successful rewrite of the query, or the query unchanged when no view can
// serve it.
func (r *Registry) Rewrite(ctx *sql.Context, q sql.Node) sql.Node {
	for _, v := range r.Views() {
		if rewritten := v.rewriter.Rewrite(ctx, q); rewritten != q {
			return rewritten
		}
	}
	return q
}
