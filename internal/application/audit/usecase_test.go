package audit_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazaartech/inventory-ledger/internal/application/audit"
	"github.com/bazaartech/inventory-ledger/internal/domain/entity"
	"github.com/bazaartech/inventory-ledger/internal/domain/repository"
	"github.com/bazaartech/inventory-ledger/pkg/logger"
)

// fakeActivityRepo guarda entradas en memoria; failAppend fuerza el fallo de escritura.
type fakeActivityRepo struct {
	mu         sync.Mutex
	entries    []*entity.ActivityEntry
	failAppend bool
	lastFilter repository.ActivityFilter
}

func (f *fakeActivityRepo) Append(entry *entity.ActivityEntry) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failAppend {
		return "", errors.New("disco lleno")
	}
	f.entries = append(f.entries, entry)
	return "entry-1", nil
}

func (f *fakeActivityRepo) List(filter repository.ActivityFilter, limit int) ([]*entity.ActivityEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastFilter = filter
	if len(f.entries) > limit {
		return f.entries[:limit], nil
	}
	return f.entries, nil
}

func newUC(repo *fakeActivityRepo) *audit.ActivityLogUseCase {
	return audit.NewActivityLogUseCase(repo, logger.New(logger.Config{Env: "test", Level: "error"}))
}

func TestRecord_PersisteEntrada(t *testing.T) {
	repo := &fakeActivityRepo{}
	uc := newUC(repo)

	uc.Record(context.Background(), "user-1", "stock_in", entity.ActivityModuleInventory, entity.ActivityDetails{
		Kind: entity.DetailKindMovement, MovementType: "IN", Quantity: 5,
	})

	require.Len(t, repo.entries, 1)
	assert.Equal(t, "user-1", repo.entries[0].Actor)
	assert.Equal(t, "stock_in", repo.entries[0].Action)
	assert.Equal(t, entity.ActivityModuleInventory, repo.entries[0].Module)
}

// Actor o action vacíos se descartan sin tocar el repositorio.
func TestRecord_ActorOAccionVacios_SeDescartan(t *testing.T) {
	repo := &fakeActivityRepo{}
	uc := newUC(repo)

	uc.Record(context.Background(), "", "stock_in", entity.ActivityModuleInventory, entity.ActivityDetails{})
	uc.Record(context.Background(), "user-1", "", entity.ActivityModuleInventory, entity.ActivityDetails{})

	assert.Empty(t, repo.entries)
}

// Un fallo de escritura se traga: Record nunca propaga el error ni entra en pánico.
func TestRecord_FalloDeEscritura_NoRevienta(t *testing.T) {
	repo := &fakeActivityRepo{failAppend: true}
	uc := newUC(repo)

	assert.NotPanics(t, func() {
		uc.Record(context.Background(), "user-1", "stock_out", entity.ActivityModuleInventory, entity.ActivityDetails{})
	})
}

func TestQuery_TimeframeTieneprioridad(t *testing.T) {
	repo := &fakeActivityRepo{}
	uc := newUC(repo)

	explicit := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := uc.Query(context.Background(), audit.QueryInput{
		Timeframe: "today",
		From:      &explicit,
	})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilter.From)
	assert.True(t, repo.lastFilter.From.After(explicit),
		"timeframe=today debe reemplazar el From explícito")
	assert.Nil(t, repo.lastFilter.To)
}

func TestQuery_PropagaFiltros(t *testing.T) {
	repo := &fakeActivityRepo{
		entries: []*entity.ActivityEntry{
			{ID: "a", Actor: "user-1", Action: "stock_in", Module: entity.ActivityModuleInventory},
		},
	}
	uc := newUC(repo)

	out, err := uc.Query(context.Background(), audit.QueryInput{
		Module: entity.ActivityModuleInventory,
		Action: "stock",
		Actor:  "user-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Total)
	assert.Equal(t, entity.ActivityModuleInventory, repo.lastFilter.Module)
	assert.Equal(t, "stock", repo.lastFilter.Action)
	assert.Equal(t, "user-1", repo.lastFilter.Actor)
}
