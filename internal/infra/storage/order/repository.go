package order

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/psqlbuilder"
)

// Состояние активного заказа (корзины)
const stateCart = "cart"

// Repository реализует доступ к активному заказу покупателя
// Заказ адресуется явным токеном - никакого неявного session state,
// операции детерминированы и тестируемы
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория заказов
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetActiveOrder возвращает активный заказ по токену вместе с
// отправлениями (упорядочены по позиции) и их слотами
func (r *Repository) GetActiveOrder(ctx context.Context, orderToken string) (*domain.Order, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"token",
		"created_at",
		"updated_at",
	).
		From("orders").
		Where(squirrel.Eq{
			"token": orderToken,
			"state": stateCart,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveOrder - build select query: %v", ErrBuildQuery, err)
	}

	var o domain.Order
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&o.ID,
		&o.Token,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveOrder - scan order: %v", ErrScanRow, err)
	}

	o.CreatedAt = createdAt.Time
	o.UpdatedAt = updatedAt.Time

	shipments, err := r.getShipments(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Shipments = shipments

	return &o, nil
}

// getShipments возвращает отправления заказа со слотами (LEFT JOIN)
func (r *Repository) getShipments(ctx context.Context, orderID int64) ([]*domain.Shipment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"s.id",
		"s.order_id",
		"s.method_id",
		"s.position",
		"s.created_at",
		"s.updated_at",
		"sl.id",
		"sl.shipment_id",
		"sl.method_id",
		"sl.slot_timestamp",
		"sl.duration_minutes",
		"sl.pickup_delay_minutes",
		"sl.preparation_delay_minutes",
		"sl.created_at",
		"sl.updated_at",
	).
		From("shipments s").
		LeftJoin("shipping_slots sl ON sl.shipment_id = s.id").
		Where(squirrel.Eq{"s.order_id": orderID}).
		OrderBy("s.position ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: getShipments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: getShipments - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	shipments := make([]*domain.Shipment, 0)

	for rows.Next() {
		var sh domain.Shipment
		var shCreatedAt, shUpdatedAt sql.NullTime

		var slotID, slotShipmentID, slotMethodID sql.NullInt64
		var slotTimestamp sql.NullTime
		var slotDuration, slotPickupDelay, slotPreparationDelay sql.NullInt64
		var slotCreatedAt, slotUpdatedAt sql.NullTime

		err := rows.Scan(
			&sh.ID,
			&sh.OrderID,
			&sh.MethodID,
			&sh.Position,
			&shCreatedAt,
			&shUpdatedAt,
			&slotID,
			&slotShipmentID,
			&slotMethodID,
			&slotTimestamp,
			&slotDuration,
			&slotPickupDelay,
			&slotPreparationDelay,
			&slotCreatedAt,
			&slotUpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: getShipments - scan row: %v", ErrScanRow, err)
		}

		sh.CreatedAt = shCreatedAt.Time
		sh.UpdatedAt = shUpdatedAt.Time

		if slotID.Valid {
			s := &domain.Slot{
				ID:                      slotID.Int64,
				MethodID:                slotMethodID.Int64,
				Timestamp:               slotTimestamp.Time.UTC(),
				DurationMinutes:         int(slotDuration.Int64),
				PickupDelayMinutes:      int(slotPickupDelay.Int64),
				PreparationDelayMinutes: int(slotPreparationDelay.Int64),
				CreatedAt:               slotCreatedAt.Time,
				UpdatedAt:               slotUpdatedAt.Time,
			}
			if slotShipmentID.Valid {
				s.ShipmentID = &slotShipmentID.Int64
			}
			sh.Slot = s
		}

		shipments = append(shipments, &sh)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: getShipments - rows error: %v", ErrScanRow, err)
	}

	return shipments, nil
}
