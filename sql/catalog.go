package sql

import "sync"

// Catalog is the metadata oracle consulted during domain translation. Given
// a table and a column it answers the column's declared type.
type Catalog interface {
	// ColumnType returns the type of the given column, or ErrTableNotFound /
	// ErrColumnNotFound if the catalog cannot resolve it.
	ColumnType(ctx *Context, table, column string) (Type, error)
}

// MapCatalog is an in-memory Catalog backed by a map of table schemas. The
// zero value is usable.
type MapCatalog struct {
	mu     sync.RWMutex
	tables map[string]map[string]Type
}

var _ Catalog = (*MapCatalog)(nil)

// NewMapCatalog returns an empty MapCatalog.
func NewMapCatalog() *MapCatalog {
	return &MapCatalog{tables: make(map[string]map[string]Type)}
}

// AddColumn registers a column of the given type under the given table.
func (c *MapCatalog) AddColumn(table, column string, typ Type) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.tables == nil {
		c.tables = make(map[string]map[string]Type)
	}
	t, ok := c.tables[table]
	if !ok {
		t = make(map[string]Type)
		c.tables[table] = t
	}
	t[column] = typ
}

// ColumnType implements the Catalog interface.
func (c *MapCatalog) ColumnType(ctx *Context, table, column string) (Type, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	t, ok := c.tables[table]
	if !ok {
		return nil, ErrTableNotFound.New(table)
	}
	typ, ok := t[column]
	if !ok {
		return nil, ErrColumnNotFound.New(table, column)
	}
	return typ, nil
}
