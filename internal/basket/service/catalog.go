package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"basket-service/internal/basket/model"
)

// ProductStore: где живут строки прайса. Повторная вставка той же тройки
// (наименование, магазин, цена) ничего не добавляет.
type ProductStore interface {
	InsertProducts(ctx context.Context, entries []model.Entry) (added int, err error)
	AllProducts(ctx context.Context) ([]model.Entry, error)
	ClearProducts(ctx context.Context) (removed int, err error)
}

// Catalog держит текущий снимок индекса. Читатели берут Snapshot() один раз на запрос
// и работают с ним без блокировок; загрузка и очистка идут по одной и подменяют снимок целиком.
type Catalog struct {
	store  ProductStore
	logger zerolog.Logger

	mu  sync.Mutex // писатели
	cur atomic.Pointer[Index]
}

func NewCatalog(store ProductStore, logger zerolog.Logger) *Catalog {
	c := &Catalog{
		store:  store,
		logger: logger.With().Str("component", "catalog").Logger(),
	}
	c.cur.Store(BuildIndex(nil))
	return c
}

func (c *Catalog) Snapshot() *Index { return c.cur.Load() }

// Load перестраивает снимок из хранилища целиком.
func (c *Catalog) Load(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := c.store.AllProducts(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	idx := BuildIndex(entries)
	c.cur.Store(idx)
	c.logger.Info().Int("entries", len(entries)).Int("products", idx.Len()).Int("groups", len(idx.keys)).Msg("catalog loaded")
	return nil
}

// Ingest сохраняет строки прайса и вливает их в снимок. Существующие записи не удаляются,
// минимальная цена по паре (товар, магазин) может только понизиться.
func (c *Catalog) Ingest(ctx context.Context, rows [][]string) (model.IngestReport, error) {
	entries, bad, err := ParseRows(rows)
	if err != nil {
		return model.IngestReport{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	added, err := c.store.InsertProducts(ctx, entries)
	if err != nil {
		return model.IngestReport{}, fmt.Errorf("store products: %w", err)
	}
	c.cur.Store(c.cur.Load().With(entries))

	rep := model.IngestReport{
		Rows:       len(entries) + len(bad),
		Added:      added,
		Duplicates: len(entries) - added,
		Errors:     len(bad),
		RowErrors:  bad,
	}
	c.logger.Info().
		Int("rows", rep.Rows).
		Int("added", rep.Added).
		Int("duplicates", rep.Duplicates).
		Int("errors", rep.Errors).
		Msg("catalog ingested")
	return rep, nil
}

// Clear удаляет все товары; снимок становится пустым.
func (c *Catalog) Clear(ctx context.Context) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	n, err := c.store.ClearProducts(ctx)
	if err != nil {
		return 0, fmt.Errorf("clear catalog: %w", err)
	}
	c.cur.Store(BuildIndex(nil))
	c.logger.Warn().Int("removed", n).Msg("catalog cleared")
	return n, nil
}
