// Package tableregistry tracks the live line-item tables of the process.
// Each entry pairs a row store with its column schema and a lock that
// serializes access to both.
package tableregistry

import (
	"sync"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/gstdesk/internal/config"
	linetabledomain "github.com/smallbiznis/gstdesk/internal/linetable/domain"
	linetableservice "github.com/smallbiznis/gstdesk/internal/linetable/service"
	columndomain "github.com/smallbiznis/gstdesk/internal/tablecolumn/domain"
	columnservice "github.com/smallbiznis/gstdesk/internal/tablecolumn/service"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Entry is one live table. Rows and Schema are single-threaded; callers
// hold mu around every access.
type Entry struct {
	ID     snowflake.ID
	Rows   linetabledomain.Table
	Schema columndomain.Schema

	mu sync.Mutex
}

// Lock serializes access to the entry's rows and schema.
func (e *Entry) Lock() { e.mu.Lock() }

// Unlock releases the entry lock.
func (e *Entry) Unlock() { e.mu.Unlock() }

type Params struct {
	fx.In

	Log     *zap.Logger
	GenID   *snowflake.Node
	Options *config.TableOptionsHolder
}

// Registry creates and resolves table entries by id.
type Registry struct {
	log     *zap.Logger
	genID   *snowflake.Node
	options *config.TableOptionsHolder

	mu     sync.RWMutex
	tables map[snowflake.ID]*Entry
}

func New(p Params) *Registry {
	return &Registry{
		log:     p.Log.Named("tableregistry"),
		genID:   p.GenID,
		options: p.Options,
		tables:  make(map[snowflake.ID]*Entry),
	}
}

// Create allocates a new empty table with the default column schema.
func (r *Registry) Create() *Entry {
	opts := r.options.Get()

	entry := &Entry{
		ID:   r.genID.Generate(),
		Rows: linetableservice.NewTable(r.genID),
		Schema: columnservice.NewSchema(r.genID, columnservice.SchemaOptions{
			TaxRates: opts.TaxRates,
			Units:    opts.Units,
		}),
	}

	r.mu.Lock()
	r.tables[entry.ID] = entry
	r.mu.Unlock()

	r.log.Info("table created", zap.String("table_id", entry.ID.String()))
	return entry
}

// Get resolves an entry by id.
func (r *Registry) Get(id snowflake.ID) (*Entry, bool) {
	r.mu.RLock()
	entry, ok := r.tables[id]
	r.mu.RUnlock()
	return entry, ok
}

// Drop removes the entry. Unknown ids are a no-op.
func (r *Registry) Drop(id snowflake.ID) {
	r.mu.Lock()
	_, ok := r.tables[id]
	delete(r.tables, id)
	r.mu.Unlock()

	if ok {
		r.log.Info("table dropped", zap.String("table_id", id.String()))
	}
}

// List returns the ids of all live tables.
func (r *Registry) List() []snowflake.ID {
	r.mu.RLock()
	ids := make([]snowflake.ID, 0, len(r.tables))
	for id := range r.tables {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	return ids
}
