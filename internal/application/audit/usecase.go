package audit

import (
	"context"
	"time"

	"github.com/bazaartech/inventory-ledger/internal/application/dto"
	"github.com/bazaartech/inventory-ledger/internal/domain/entity"
	"github.com/bazaartech/inventory-ledger/internal/domain/repository"
	"github.com/bazaartech/inventory-ledger/pkg/logger"
)

// maxLogEntries tope de entradas devueltas por consulta, igual que el dashboard original.
const maxLogEntries = 100

// ActivityLogUseCase registro y consulta del log de actividad. El registro es
// best-effort: un fallo de escritura se anota en el log interno y se traga;
// nunca revienta ni bloquea la operación que lo originó.
type ActivityLogUseCase struct {
	repo repository.ActivityRepository
	log  *logger.Logger
}

// NewActivityLogUseCase construye el caso de uso.
func NewActivityLogUseCase(repo repository.ActivityRepository, log *logger.Logger) *ActivityLogUseCase {
	return &ActivityLogUseCase{repo: repo, log: log}
}

// Record persiste una entrada de actividad. Actor y action vacíos se descartan
// (única validación); cualquier error de persistencia se traga tras loguearlo.
func (uc *ActivityLogUseCase) Record(ctx context.Context, actor, action, module string, details entity.ActivityDetails) {
	if actor == "" || action == "" {
		uc.log.Warn().Str("action", action).Msg("entrada de actividad descartada: actor o action vacío")
		return
	}
	entry := &entity.ActivityEntry{
		Actor:     actor,
		Action:    action,
		Module:    module,
		Details:   details,
		Timestamp: time.Now(),
	}
	if _, err := uc.repo.Append(entry); err != nil {
		uc.log.Error().Err(err).
			Str("actor", actor).
			Str("action", action).
			Msg("fallo al escribir entrada de actividad (no bloqueante)")
	}
}

// QueryInput filtros de consulta del log. Timeframe acepta today|week|month y
// tiene prioridad sobre From/To explícitos.
type QueryInput struct {
	Module    string
	Action    string
	Actor     string
	Timeframe string
	From      *time.Time
	To        *time.Time
}

// Query devuelve entradas filtradas, más recientes primero, máximo 100.
func (uc *ActivityLogUseCase) Query(ctx context.Context, in QueryInput) (*dto.ActivityListResponse, error) {
	from, to := in.From, in.To
	if tf := timeframeStart(in.Timeframe, time.Now()); tf != nil {
		from, to = tf, nil
	}
	entries, err := uc.repo.List(repository.ActivityFilter{
		Module: in.Module,
		Action: in.Action,
		Actor:  in.Actor,
		From:   from,
		To:     to,
	}, maxLogEntries)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ActivityEntryResponse, 0, len(entries))
	for _, e := range entries {
		items = append(items, dto.ActivityEntryResponse{
			ID:        e.ID,
			Actor:     e.Actor,
			Action:    e.Action,
			Module:    e.Module,
			Details:   e.Details,
			Timestamp: e.Timestamp,
		})
	}
	return &dto.ActivityListResponse{Total: len(items), Items: items}, nil
}

// timeframeStart traduce el atajo del dashboard a un límite inferior de fecha.
func timeframeStart(timeframe string, now time.Time) *time.Time {
	var from time.Time
	switch timeframe {
	case "today":
		from = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	case "week":
		from = now.AddDate(0, 0, -7)
	case "month":
		from = now.AddDate(0, -1, 0)
	default:
		return nil
	}
	return &from
}
