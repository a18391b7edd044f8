package navidad

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/retail-curves/internal/application/dto"
	"github.com/jhoicas/retail-curves/internal/domain"
	"github.com/jhoicas/retail-curves/internal/domain/entity"
	"github.com/jhoicas/retail-curves/internal/domain/repository"
	"github.com/jhoicas/retail-curves/pkg/logger"
)

// ImportService caso de uso de importación: corre el cargador y deja registro de auditoría.
type ImportService struct {
	loader   *Loader
	runs     repository.ImportRunRepository
	receipts ReceiptGenerator
	log      *logger.Logger
}

// NewImportService construye el servicio. receipts puede ser nil si no se generan PDF.
func NewImportService(loader *Loader, runs repository.ImportRunRepository, receipts ReceiptGenerator, log *logger.Logger) *ImportService {
	if log == nil {
		log = logger.Nop()
	}
	return &ImportService{loader: loader, runs: runs, receipts: receipts, log: log}
}

// Import procesa el archivo y registra la corrida. Si el cargador falla se devuelve la
// corrida fallida junto con el error.
func (s *ImportService) Import(ctx context.Context, userID *string, fileName string, in Input) (*dto.ImportRunResponse, error) {
	in.ChunkSize = EffectiveChunkSize(in.ChunkSize)
	run := &entity.ImportRun{
		ID:         uuid.New().String(),
		UserID:     userID,
		FileName:   fileName,
		Sheet:      in.Sheet,
		Pad:        in.Pad,
		StrictArea: in.StrictArea,
		ChunkSize:  in.ChunkSize,
		StartedAt:  time.Now(),
	}

	sum, err := s.loader.Process(ctx, in)
	run.FinishedAt = time.Now()
	if err != nil {
		run.Status = entity.ImportStatusFailed
		run.Error = err.Error()
	} else {
		run.Status = entity.ImportStatusSuccess
		run.Summary = *sum
	}

	// El registro usa un contexto propio: una importación cancelada igual queda auditada.
	if rerr := s.runs.Create(context.WithoutCancel(ctx), run); rerr != nil {
		s.log.Error().Err(rerr).Str("run_id", run.ID).Msg("no se pudo registrar la corrida")
		if err == nil {
			return toImportRunResponse(run), fmt.Errorf("registrar corrida: %w", rerr)
		}
	}
	if err != nil {
		return toImportRunResponse(run), err
	}
	return toImportRunResponse(run), nil
}

// Get obtiene una corrida por ID.
func (s *ImportService) Get(ctx context.Context, id string) (*dto.ImportRunResponse, error) {
	run, err := s.runs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, domain.ErrNotFound
	}
	return toImportRunResponse(run), nil
}

// List corridas más recientes primero.
func (s *ImportService) List(ctx context.Context, limit, offset int) (*dto.ImportRunListResponse, error) {
	page := dto.PageRequest{Limit: limit, Offset: offset}
	page.DefaultPage()
	runs, err := s.runs.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ImportRunResponse, 0, len(runs))
	for _, r := range runs {
		items = append(items, *toImportRunResponse(r))
	}
	return &dto.ImportRunListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// Receipt genera el comprobante PDF de una corrida.
func (s *ImportService) Receipt(ctx context.Context, id string) ([]byte, error) {
	if s.receipts == nil {
		return nil, fmt.Errorf("comprobantes deshabilitados: %w", domain.ErrInvalidInput)
	}
	run, err := s.runs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if run == nil {
		return nil, domain.ErrNotFound
	}
	return s.receipts.GenerateImportReceipt(ctx, run)
}

func toImportRunResponse(r *entity.ImportRun) *dto.ImportRunResponse {
	sum := r.Summary
	return &dto.ImportRunResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		FileName:   r.FileName,
		Sheet:      r.Sheet,
		Pad:        r.Pad,
		StrictArea: r.StrictArea,
		ChunkSize:  r.ChunkSize,
		Status:     r.Status,
		Error:      r.Error,
		Summary: dto.ImportSummaryResponse{
			Rows:            sum.Rows,
			StockCreated:    sum.StockCreated,
			StockUpdated:    sum.StockUpdated,
			StockSkipped:    sum.StockSkipped,
			SalesCreated:    sum.SalesCreated,
			SalesUpdated:    sum.SalesUpdated,
			SalesSkipped:    sum.SalesSkipped,
			DetectedColumns: sum.DetectedColumns,
			RowsRaw:         sum.RowsRaw,
			Chunks:          sum.Chunks,
		},
		StartedAt:  r.StartedAt,
		FinishedAt: r.FinishedAt,
	}
}
