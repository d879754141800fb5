package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/vfg2006/brand-kpi-collector/infrastructure/database/postgres"
	"github.com/vfg2006/brand-kpi-collector/internal/domain"
)

const (
	collectRunsTable = "collect_runs cr"
)

// CollectRunRepository persiste o histórico de execuções da coleta,
// com uma linha por par (data, slot).
type CollectRunRepository interface {
	SaveOrUpdate(run *domain.CollectRun) error
	GetByDateAndSlot(date time.Time, slotLabel string) (*domain.CollectRun, error)
	GetLatest() (*domain.CollectRun, error)
}

type collectRunRepository struct {
	conn *postgres.Connection
}

func NewCollectRunRepository(conn *postgres.Connection) CollectRunRepository {
	return &collectRunRepository{
		conn: conn,
	}
}

func (r *collectRunRepository) SaveOrUpdate(run *domain.CollectRun) error {
	aggregateJSON, err := json.Marshal(run.Aggregate)
	if err != nil {
		return fmt.Errorf("erro ao serializar o agregado: %w", err)
	}

	kpisJSON, err := json.Marshal(run.KPIs)
	if err != nil {
		return fmt.Errorf("erro ao serializar os KPIs: %w", err)
	}

	now := time.Now()

	query, args, err := squirrel.
		Insert("collect_runs").
		Columns("run_id", "date", "slot_label", "aggregate", "kpis", "started_at", "finished_at", "created_at", "updated_at").
		Values(run.ID, run.Date.Format(time.DateOnly), run.SlotLabel, aggregateJSON, kpisJSON, run.StartedAt, run.FinishedAt, now, now).
		Suffix(`ON CONFLICT (date, slot_label) DO UPDATE SET
			run_id = EXCLUDED.run_id,
			aggregate = EXCLUDED.aggregate,
			kpis = EXCLUDED.kpis,
			started_at = EXCLUDED.started_at,
			finished_at = EXCLUDED.finished_at,
			updated_at = EXCLUDED.updated_at`).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return fmt.Errorf("erro ao construir a query: %w", err)
	}

	if _, err := r.conn.Exec(query, args...); err != nil {
		return fmt.Errorf("erro ao gravar o run: %w", err)
	}

	return nil
}

func (r *collectRunRepository) GetByDateAndSlot(date time.Time, slotLabel string) (*domain.CollectRun, error) {
	query, args, err := squirrel.
		Select("cr.run_id, cr.date, cr.slot_label, cr.aggregate, cr.kpis, cr.started_at, cr.finished_at").
		From(collectRunsTable).
		Where(squirrel.Eq{"cr.date": date.Format(time.DateOnly), "cr.slot_label": slotLabel}).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	run, err := r.scanRun(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear o run: %w", err)
	}

	return run, nil
}

func (r *collectRunRepository) GetLatest() (*domain.CollectRun, error) {
	query, args, err := squirrel.
		Select("cr.run_id, cr.date, cr.slot_label, cr.aggregate, cr.kpis, cr.started_at, cr.finished_at").
		From(collectRunsTable).
		OrderBy("cr.date DESC", "cr.slot_label DESC").
		Limit(1).
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("erro ao construir a query: %w", err)
	}

	run, err := r.scanRun(r.conn.QueryRow(query, args...))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("erro ao escanear o run: %w", err)
	}

	return run, nil
}

func (r *collectRunRepository) scanRun(row *sql.Row) (*domain.CollectRun, error) {
	var run domain.CollectRun
	var aggregateJSON, kpisJSON []byte

	err := row.Scan(
		&run.ID,
		&run.Date,
		&run.SlotLabel,
		&aggregateJSON,
		&kpisJSON,
		&run.StartedAt,
		&run.FinishedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(aggregateJSON) > 0 {
		if err := json.Unmarshal(aggregateJSON, &run.Aggregate); err != nil {
			return nil, fmt.Errorf("erro ao desserializar o agregado: %w", err)
		}
	}

	if len(kpisJSON) > 0 {
		if err := json.Unmarshal(kpisJSON, &run.KPIs); err != nil {
			return nil, fmt.Errorf("erro ao desserializar os KPIs: %w", err)
		}
	}

	return &run, nil
}
