package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/silogtran-api/internal/application/dto"
	"github.com/jhoicas/silogtran-api/internal/application/historial"
	"github.com/jhoicas/silogtran-api/internal/domain"
	"github.com/jhoicas/silogtran-api/internal/domain/entity"
	"github.com/jhoicas/silogtran-api/internal/domain/search"
)

// HistorialUseCase consulta y registra la actividad reciente de la sesión.
type HistorialUseCase struct {
	store      *historial.Store
	navigation search.Navigation
}

// NewHistorialUseCase construye el caso de uso.
func NewHistorialUseCase(store *historial.Store, navigation search.Navigation) *HistorialUseCase {
	return &HistorialUseCase{store: store, navigation: navigation}
}

// List historial de la sesión, el más reciente primero.
func (uc *HistorialUseCase) List(ctx context.Context, namespace string) *dto.HistorialResponse {
	return toHistorialResponse(uc.store.List(ctx, namespace))
}

// RecordVisit registra una visita indicada por {module, option} o por el id de acción de un
// resultado del catálogo. Con acción desconocida devuelve domain.ErrNotFound.
func (uc *HistorialUseCase) RecordVisit(ctx context.Context, namespace string, req dto.RecordVisitRequest) (*dto.HistorialResponse, error) {
	module, option := req.Module, req.Option
	if req.Action != "" {
		target, ok := uc.navigation.Resolve(req.Action)
		if !ok {
			return nil, fmt.Errorf("historial: acción %q: %w", req.Action, domain.ErrNotFound)
		}
		module, option = target.Module, target.Option
	}
	items, err := uc.store.RecordVisit(ctx, namespace, module, option)
	if err != nil {
		return nil, err
	}
	return toHistorialResponse(items), nil
}

func toHistorialResponse(items []entity.HistorialEntry) *dto.HistorialResponse {
	return &dto.HistorialResponse{Count: len(items), Items: toHistorialDTOs(items)}
}

func toHistorialDTOs(items []entity.HistorialEntry) []dto.HistorialEntryDTO {
	out := make([]dto.HistorialEntryDTO, len(items))
	for i, it := range items {
		out[i] = dto.HistorialEntryDTO{
			ID:        it.ID,
			Module:    it.Module,
			Option:    it.Option,
			Label:     it.Module + " → " + it.Option,
			Timestamp: it.Timestamp.UTC().Truncate(time.Millisecond),
		}
	}
	return out
}
