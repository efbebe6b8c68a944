package archive

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tokamak-network/reportgen/internal/config"
)

const cacheSize = 256

// Store dispatches to the Postgres backend when a DSN is set, otherwise to
// the JSON file backend.
type Store struct {
	path string
	db   *sql.DB

	loadOnce sync.Once
	mu       sync.RWMutex
	byID     map[string]Entry

	schemaOnce sync.Once
	schemaErr  error

	readCache *lru.Cache[string, Entry]
}

// New opens a file-backed store at path.
func New(path string) *Store {
	return &Store{
		path: path,
		byID: make(map[string]Entry),
	}
}

// NewPostgres opens a Postgres-backed store with an LRU read cache.
func NewPostgres(dsn string) (*Store, error) {
	db, err := sql.Open("pgx", strings.TrimSpace(dsn))
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	cache, err := lru.New[string, Entry](cacheSize)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return &Store{db: db, readCache: cache}, nil
}

// NewFromConfig prefers Postgres, falling back to the file backend when the
// DSN is missing or the database is unreachable.
func NewFromConfig(cfg config.ArchiveConfig) *Store {
	if cfg.DSN == "" {
		return New(cfg.Path)
	}
	s, err := NewPostgres(cfg.DSN)
	if err != nil {
		log.Printf("archive: postgres unavailable, using file store: %v", err)
		return New(cfg.Path)
	}
	return s
}

// Put archives an entry, assigning a timestamped id when none is set.
func (s *Store) Put(e Entry) string {
	if s == nil {
		return ""
	}
	e = normalizeEntry(e)
	if e.ID == "" {
		e.ID = fmt.Sprintf("rpt-%s", e.CreatedAt.Format("20060102-150405.000"))
	}
	if s.db != nil {
		s.putDB(e)
	} else {
		s.putFile(e)
	}
	return e.ID
}

// Get fetches one archived report by id.
func (s *Store) Get(id string) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	if s.db != nil {
		return s.getDB(id)
	}
	return s.getFile(id)
}

// List returns up to limit entries, most recent first. Listings omit the
// markdown body; Get returns the full entry.
func (s *Store) List(limit int) []Entry {
	if s == nil {
		return nil
	}
	if limit <= 0 {
		limit = 50
	}
	if s.db != nil {
		return s.listDB(limit)
	}
	return s.listFile(limit)
}

// Close releases the database handle; a file store has nothing to close.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func newerFirst(a, b Entry) bool {
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.ID > b.ID
}
