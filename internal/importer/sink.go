package importer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"ratemyrep/internal/domain"
)

// Counts es el resumen de registros presentes en el destino.
type Counts struct {
	Officials int
	Staff     int
}

// Sink es un destino de importacion.
type Sink interface {
	WriteOfficials(ctx context.Context, officials []domain.Official) (int, error)
	WriteStaff(ctx context.Context, staff []domain.StaffMember) (int, error)
	Count(ctx context.Context) (Counts, error)
}

// Summary es el resultado de Run.
type Summary struct {
	OfficialsImported int
	StaffImported     int
	Counts            Counts
}

// Run importa funcionarios y despues staff, y valida contando lo que quedo en el destino.
func Run(ctx context.Context, logger *zap.Logger, sink Sink, officials []domain.Official, staff []domain.StaffMember) (Summary, error) {
	var sum Summary
	var err error

	logger.Info("importing officials", zap.Int("rows", len(officials)))
	if sum.OfficialsImported, err = sink.WriteOfficials(ctx, officials); err != nil {
		return sum, fmt.Errorf("import officials: %w", err)
	}

	logger.Info("importing staff", zap.Int("rows", len(staff)))
	if sum.StaffImported, err = sink.WriteStaff(ctx, staff); err != nil {
		return sum, fmt.Errorf("import staff: %w", err)
	}

	if sum.Counts, err = sink.Count(ctx); err != nil {
		return sum, fmt.Errorf("validate import: %w", err)
	}
	logger.Info("import finished",
		zap.Int("officials_imported", sum.OfficialsImported),
		zap.Int("staff_imported", sum.StaffImported),
		zap.Int("officials_total", sum.Counts.Officials),
		zap.Int("staff_total", sum.Counts.Staff),
	)
	return sum, nil
}
