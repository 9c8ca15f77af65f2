// Package app holds the demo inventory components wired by the container.
package app

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Clock abstracts time for components that stamp their output.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ── StockRepository ───────────────────────────────────────────────────────────

// StockRepository keeps item quantities in memory.
type StockRepository struct {
	mu    sync.RWMutex
	items map[string]int
}

func NewStockRepository() *StockRepository {
	return &StockRepository{items: make(map[string]int)}
}

// PostConstruct seeds the demo stock.
func (r *StockRepository) PostConstruct() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items["widget"] = 12
	r.items["gizmo"] = 3
	return nil
}

func (r *StockRepository) Add(item string, qty int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items[item] += qty
	return r.items[item]
}

func (r *StockRepository) Take(item string, qty int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.items[item] < qty {
		return fmt.Errorf("take %d %s: only %d in stock", qty, item, r.items[item])
	}
	r.items[item] -= qty
	return nil
}

// Snapshot returns a copy of the stock.
func (r *StockRepository) Snapshot() map[string]int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]int, len(r.items))
	for k, v := range r.items {
		out[k] = v
	}
	return out
}

// ── AuditLog ──────────────────────────────────────────────────────────────────

// AuditLog buffers inventory movements and flushes them to the logger on
// shutdown.
type AuditLog struct {
	logger *zap.Logger `autowired:""`

	mu      sync.Mutex
	entries []string
}

func (a *AuditLog) Record(format string, args ...any) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, fmt.Sprintf(format, args...))
}

func (a *AuditLog) Entries() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.entries...)
}

// PreDestroy flushes the buffered entries.
func (a *AuditLog) PreDestroy() error {
	entries := a.Entries()
	a.logger.Info("audit log flushed", zap.Strings("entries", entries))
	return nil
}

// ── InventoryService ──────────────────────────────────────────────────────────

// InventoryService moves stock and records every movement.
type InventoryService struct {
	repo  *StockRepository
	audit *AuditLog
	clock Clock
}

func NewInventoryService(repo *StockRepository, audit *AuditLog, clock Clock) *InventoryService {
	return &InventoryService{repo: repo, audit: audit, clock: clock}
}

func (s *InventoryService) Receive(item string, qty int) int {
	total := s.repo.Add(item, qty)
	s.audit.Record("%s received %d %s", s.clock.Now().Format(time.RFC3339), qty, item)
	return total
}

func (s *InventoryService) Ship(item string, qty int) error {
	if err := s.repo.Take(item, qty); err != nil {
		return err
	}
	s.audit.Record("%s shipped %d %s", s.clock.Now().Format(time.RFC3339), qty, item)
	return nil
}

func (s *InventoryService) Stock() map[string]int { return s.repo.Snapshot() }

// ── StockReport ───────────────────────────────────────────────────────────────

// StockReport is a point-in-time view of the stock, built per lookup.
type StockReport struct {
	Service *InventoryService `autowired:""`
	Clock   Clock             `autowired:""`

	GeneratedAt time.Time
	Lines       []string
}

// PostConstruct renders the report lines.
func (r *StockReport) PostConstruct() error {
	r.GeneratedAt = r.Clock.Now()

	stock := r.Service.Stock()
	items := make([]string, 0, len(stock))
	for item := range stock {
		items = append(items, item)
	}
	sort.Strings(items)

	for _, item := range items {
		r.Lines = append(r.Lines, fmt.Sprintf("%-10s %5d", item, stock[item]))
	}
	return nil
}
