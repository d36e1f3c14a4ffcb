package importer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"ratemyrep/internal/airtable"
	"ratemyrep/internal/domain"
	"ratemyrep/internal/repository"
)

// DefaultBatchDelay separa los lotes para no pasar el rate limit de Airtable.
const DefaultBatchDelay = 200 * time.Millisecond

type batchClient interface {
	CreateBatch(ctx context.Context, table string, batch []map[string]any) ([]airtable.Record, error)
	List(ctx context.Context, table string, opts airtable.ListOptions) ([]airtable.Record, error)
}

// AirtableSink escribe en lotes de airtable.MaxBatchSize.
type AirtableSink struct {
	client         batchClient
	logger         *zap.Logger
	officialsTable string
	staffTable     string
	delay          time.Duration
	sleep          func(context.Context, time.Duration) error
}

func NewAirtableSink(client batchClient, logger *zap.Logger, officialsTable, staffTable string, delay time.Duration) *AirtableSink {
	return &AirtableSink{
		client:         client,
		logger:         logger,
		officialsTable: officialsTable,
		staffTable:     staffTable,
		delay:          delay,
		sleep:          sleepCtx,
	}
}

func (s *AirtableSink) WriteOfficials(ctx context.Context, officials []domain.Official) (int, error) {
	rows := make([]map[string]any, 0, len(officials))
	for _, o := range officials {
		rows = append(rows, repository.EncodeOfficialFields(o))
	}
	return s.writeBatches(ctx, s.officialsTable, rows)
}

func (s *AirtableSink) WriteStaff(ctx context.Context, staff []domain.StaffMember) (int, error) {
	rows := make([]map[string]any, 0, len(staff))
	for _, m := range staff {
		rows = append(rows, repository.EncodeStaffFields(m))
	}
	return s.writeBatches(ctx, s.staffTable, rows)
}

func (s *AirtableSink) writeBatches(ctx context.Context, table string, rows []map[string]any) (int, error) {
	imported := 0
	for start := 0; start < len(rows); start += airtable.MaxBatchSize {
		end := min(start+airtable.MaxBatchSize, len(rows))
		created, err := s.client.CreateBatch(ctx, table, rows[start:end])
		if err != nil {
			return imported, err
		}
		imported += len(created)
		s.logger.Info("batch imported", zap.String("table", table), zap.Int("imported", imported), zap.Int("total", len(rows)))

		if end < len(rows) && s.delay > 0 {
			if err := s.sleep(ctx, s.delay); err != nil {
				return imported, err
			}
		}
	}
	return imported, nil
}

func (s *AirtableSink) Count(ctx context.Context) (Counts, error) {
	officials, err := s.client.List(ctx, s.officialsTable, airtable.ListOptions{})
	if err != nil {
		return Counts{}, err
	}
	staff, err := s.client.List(ctx, s.staffTable, airtable.ListOptions{})
	if err != nil {
		return Counts{}, err
	}
	return Counts{Officials: len(officials), Staff: len(staff)}, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
