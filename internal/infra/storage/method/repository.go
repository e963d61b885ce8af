package method

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/dbmetrics"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/psqlbuilder"
)

// Repository репозиторий методов доставки и их конфигураций расписания
// Конфигурация присоединяется LEFT JOIN'ом: метод без конфигурации -
// валидное состояние (планирование слотов для него не поддерживается)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория методов доставки
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

var methodColumns = []string{
	"m.id",
	"m.code",
	"m.name",
	"m.created_at",
	"m.updated_at",
	"c.id",
	"c.method_id",
	"c.duration_minutes",
	"c.pickup_delay_minutes",
	"c.preparation_delay_minutes",
	"c.available_spots",
	"c.rrule",
	"c.dtstart",
	"c.dtend",
	"c.created_at",
	"c.updated_at",
}

// FindByCode получает метод доставки по коду вместе с конфигурацией слотов
func (r *Repository) FindByCode(ctx context.Context, code string) (*domain.ShippingMethod, error) {
	return r.findOne(ctx, squirrel.Eq{"m.code": code})
}

// GetByID получает метод доставки по ID вместе с конфигурацией слотов
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.ShippingMethod, error) {
	return r.findOne(ctx, squirrel.Eq{"m.id": id})
}

func (r *Repository) findOne(ctx context.Context, where squirrel.Eq) (*domain.ShippingMethod, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(methodColumns...).
		From("shipping_methods m").
		LeftJoin("shipping_slot_configs c ON c.method_id = m.id").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: findOne - build select query: %v", ErrBuildQuery, err)
	}

	var m domain.ShippingMethod
	var mCreatedAt, mUpdatedAt sql.NullTime

	var cfgID, cfgMethodID sql.NullInt64
	var cfgDuration, cfgPickupDelay, cfgPreparationDelay, cfgSpots sql.NullInt64
	var cfgRRule sql.NullString
	var cfgDTStart, cfgDTEnd, cfgCreatedAt, cfgUpdatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&m.ID,
		&m.Code,
		&m.Name,
		&mCreatedAt,
		&mUpdatedAt,
		&cfgID,
		&cfgMethodID,
		&cfgDuration,
		&cfgPickupDelay,
		&cfgPreparationDelay,
		&cfgSpots,
		&cfgRRule,
		&cfgDTStart,
		&cfgDTEnd,
		&cfgCreatedAt,
		&cfgUpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrMethodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: findOne - scan method: %v", ErrScanRow, err)
	}

	m.CreatedAt = mCreatedAt.Time
	m.UpdatedAt = mUpdatedAt.Time

	if cfgID.Valid {
		cfg := &domain.ShippingSlotConfig{
			ID:                      cfgID.Int64,
			MethodID:                cfgMethodID.Int64,
			DurationMinutes:         int(cfgDuration.Int64),
			PickupDelayMinutes:      int(cfgPickupDelay.Int64),
			PreparationDelayMinutes: int(cfgPreparationDelay.Int64),
			AvailableSpots:          int(cfgSpots.Int64),
			RRule:                   cfgRRule.String,
			DTStart:                 cfgDTStart.Time.UTC(),
			CreatedAt:               cfgCreatedAt.Time,
			UpdatedAt:               cfgUpdatedAt.Time,
		}
		if cfgDTEnd.Valid {
			dtend := cfgDTEnd.Time.UTC()
			cfg.DTEnd = &dtend
		}
		m.SlotConfig = cfg
	}

	return &m, nil
}
