package slot

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"shipment_id",
	"method_id",
	"slot_timestamp",
	"duration_minutes",
	"pickup_delay_minutes",
	"preparation_delay_minutes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы со слотами доставки
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория слотов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// FindByMethodFromDate возвращает слоты метода с slot_timestamp >= fromDate,
// упорядоченные по времени начала
// fromDate = nil означает "все слоты метода"
func (r *Repository) FindByMethodFromDate(ctx context.Context, methodID int64, fromDate *time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("shipping_slots").
		Where(squirrel.Eq{"method_id": methodID}).
		OrderBy("slot_timestamp ASC")

	if fromDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"slot_timestamp": fromDate.UTC()})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByMethodFromDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindByMethodFromDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// FindByMethodAndTimestamp возвращает слоты метода на конкретный момент времени
// Момент нормализуется в UTC перед сравнением
// Внутри транзакции блокирует строки (FOR UPDATE) - используется
// транзакционной проверкой вместимости при назначении слота
func (r *Repository) FindByMethodAndTimestamp(ctx context.Context, methodID int64, timestamp time.Time) ([]*domain.Slot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(slotColumns...).
		From("shipping_slots").
		Where(squirrel.Eq{
			"method_id":      methodID,
			"slot_timestamp": timestamp.UTC(),
		}).
		OrderBy("id ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: FindByMethodAndTimestamp - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: FindByMethodAndTimestamp - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanSlots(rows)
}

// Save сохраняет слот: вставка для новых записей (ID == 0),
// обновление для существующих
// Timestamp всегда пишется в UTC
func (r *Repository) Save(ctx context.Context, slot *domain.Slot) error {
	if slot.ID == 0 {
		return r.insert(ctx, slot)
	}
	return r.update(ctx, slot)
}

// Delete удаляет слот по ID
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("shipping_slots").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

func (r *Repository) insert(ctx context.Context, slot *domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("shipping_slots").
		Columns(
			"shipment_id",
			"method_id",
			"slot_timestamp",
			"duration_minutes",
			"pickup_delay_minutes",
			"preparation_delay_minutes",
		).
		Values(
			slot.ShipmentID,
			slot.MethodID,
			slot.Timestamp.UTC(),
			slot.DurationMinutes,
			slot.PickupDelayMinutes,
			slot.PreparationDelayMinutes,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Save - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return fmt.Errorf("%w: Save - execute insert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return nil
}

func (r *Repository) update(ctx context.Context, slot *domain.Slot) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("shipping_slots").
		Set("shipment_id", slot.ShipmentID).
		Set("method_id", slot.MethodID).
		Set("slot_timestamp", slot.Timestamp.UTC()).
		Set("duration_minutes", slot.DurationMinutes).
		Set("pickup_delay_minutes", slot.PickupDelayMinutes).
		Set("preparation_delay_minutes", slot.PreparationDelayMinutes).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": slot.ID}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Save - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Save - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Save - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

// scanSlots сканирует результаты запроса в слайс слотов
func (r *Repository) scanSlots(rows *sql.Rows) ([]*domain.Slot, error) {
	slots := make([]*domain.Slot, 0)

	for rows.Next() {
		var s domain.Slot
		var shipmentID sql.NullInt64
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&s.ID,
			&shipmentID,
			&s.MethodID,
			&s.Timestamp,
			&s.DurationMinutes,
			&s.PickupDelayMinutes,
			&s.PreparationDelayMinutes,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanSlots - scan row: %v", ErrScanRow, err)
		}

		if shipmentID.Valid {
			s.ShipmentID = &shipmentID.Int64
		}
		s.Timestamp = s.Timestamp.UTC()
		s.CreatedAt = createdAt.Time
		s.UpdatedAt = updatedAt.Time

		slots = append(slots, &s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanSlots - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}
