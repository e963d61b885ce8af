package assign_slot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	methodRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/method"
	orderRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/order"
	"github.com/m04kA/SMC-DeliverySlotService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeCartContext struct {
	orders map[string]*domain.Order
}

func (f *fakeCartContext) GetActiveOrder(_ context.Context, token string) (*domain.Order, error) {
	order, ok := f.orders[token]
	if !ok {
		return nil, orderRepo.ErrOrderNotFound
	}
	return order, nil
}

type fakeMethodLookup struct {
	byCode map[string]*domain.ShippingMethod
}

func (f *fakeMethodLookup) FindByCode(_ context.Context, code string) (*domain.ShippingMethod, error) {
	method, ok := f.byCode[code]
	if !ok {
		return nil, methodRepo.ErrMethodNotFound
	}
	return method, nil
}

type fakeSlotStore struct {
	slots []*domain.Slot
	saved []*domain.Slot
}

func (f *fakeSlotStore) FindByMethodAndTimestamp(_ context.Context, methodID int64, timestamp time.Time) ([]*domain.Slot, error) {
	var result []*domain.Slot
	for _, slot := range f.slots {
		if slot.MethodID == methodID && domain.SameInstant(slot.Timestamp, timestamp) {
			result = append(result, slot)
		}
	}
	return result, nil
}

func (f *fakeSlotStore) Save(_ context.Context, slot *domain.Slot) error {
	if slot.ID == 0 {
		slot.ID = int64(len(f.saved) + 1000)
	}
	f.saved = append(f.saved, slot)
	return nil
}

// fakeTxManager выполняет функцию без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func testMethod(spots int) *domain.ShippingMethod {
	return &domain.ShippingMethod{
		ID:   1,
		Code: "courier",
		Name: "Courier delivery",
		SlotConfig: &domain.ShippingSlotConfig{
			ID:                      10,
			MethodID:                1,
			DurationMinutes:         45,
			PickupDelayMinutes:      15,
			PreparationDelayMinutes: 30,
			AvailableSpots:          spots,
			RRule:                   "FREQ=DAILY",
			DTStart:                 time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC),
		},
	}
}

func testOrder(token string, shipments ...*domain.Shipment) *domain.Order {
	return &domain.Order{ID: 1, Token: token, Shipments: shipments}
}

func newUseCase(carts *fakeCartContext, methods *fakeMethodLookup, store *fakeSlotStore) *UseCase {
	return NewUseCase(carts, methods, store, fakeTxManager{}, nopLogger{})
}

func TestExecute_AssignsNewSlot(t *testing.T) {
	carts := &fakeCartContext{orders: map[string]*domain.Order{
		"token-1": testOrder("token-1", &domain.Shipment{ID: 100, OrderID: 1, MethodID: 1}),
	}}
	methods := &fakeMethodLookup{byCode: map[string]*domain.ShippingMethod{"courier": testMethod(2)}}
	store := &fakeSlotStore{}

	uc := newUseCase(carts, methods, store)

	// Время в зоне +03:00 - должно нормализоваться в UTC
	moscow := time.FixedZone("MSK", 3*60*60)
	resp, err := uc.Execute(context.Background(), &Request{
		OrderToken:    "token-1",
		MethodCode:    "courier",
		ShipmentIndex: 0,
		StartTime:     time.Date(2026, 1, 10, 13, 0, 0, 0, moscow),
	})
	require.NoError(t, err)
	require.Len(t, store.saved, 1)

	saved := store.saved[0]
	assert.Equal(t, "2026-01-10T10:00:00Z", saved.TimestampKey())
	assert.Equal(t, time.UTC, saved.Timestamp.Location())
	require.NotNil(t, saved.ShipmentID)
	assert.Equal(t, int64(100), *saved.ShipmentID)

	// Снимок параметров конфигурации на момент назначения
	assert.Equal(t, 45, saved.DurationMinutes)
	assert.Equal(t, 15, saved.PickupDelayMinutes)
	assert.Equal(t, 30, saved.PreparationDelayMinutes)

	assert.Equal(t, saved.ID, resp.ID)
	assert.Equal(t, int64(100), resp.ShipmentID)
}

func TestExecute_ReusesExistingSlot(t *testing.T) {
	existing := &domain.Slot{
		ID:         42,
		ShipmentID: ptr.Ptr(int64(100)),
		MethodID:   1,
		Timestamp:  time.Date(2026, 1, 5, 10, 0, 0, 0, time.UTC),
	}
	carts := &fakeCartContext{orders: map[string]*domain.Order{
		"token-1": testOrder("token-1", &domain.Shipment{ID: 100, OrderID: 1, MethodID: 1, Slot: existing}),
	}}
	methods := &fakeMethodLookup{byCode: map[string]*domain.ShippingMethod{"courier": testMethod(2)}}
	store := &fakeSlotStore{slots: []*domain.Slot{existing}}

	uc := newUseCase(carts, methods, store)

	resp, err := uc.Execute(context.Background(), &Request{
		OrderToken:    "token-1",
		MethodCode:    "courier",
		ShipmentIndex: 0,
		StartTime:     time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, store.saved, 1)

	// Существующий слот перезаписан, дубликат не создан
	assert.Same(t, existing, store.saved[0])
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "2026-01-12T10:00:00Z", existing.TimestampKey())
}

func TestExecute_SlotFull(t *testing.T) {
	ts := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)
	carts := &fakeCartContext{orders: map[string]*domain.Order{
		"token-1": testOrder("token-1", &domain.Shipment{ID: 100, OrderID: 1, MethodID: 1}),
	}}
	methods := &fakeMethodLookup{byCode: map[string]*domain.ShippingMethod{"courier": testMethod(1)}}
	store := &fakeSlotStore{slots: []*domain.Slot{
		{ID: 2, ShipmentID: ptr.Ptr(int64(200)), MethodID: 1, Timestamp: ts},
	}}

	uc := newUseCase(carts, methods, store)

	_, err := uc.Execute(context.Background(), &Request{
		OrderToken:    "token-1",
		MethodCode:    "courier",
		ShipmentIndex: 0,
		StartTime:     ts,
	})
	assert.ErrorIs(t, err, ErrSlotFull)
	assert.Empty(t, store.saved)
}

func TestExecute_OwnSlotDoesNotBlock(t *testing.T) {
	ts := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)
	existing := &domain.Slot{ID: 42, ShipmentID: ptr.Ptr(int64(100)), MethodID: 1, Timestamp: ts}

	carts := &fakeCartContext{orders: map[string]*domain.Order{
		"token-1": testOrder("token-1", &domain.Shipment{ID: 100, OrderID: 1, MethodID: 1, Slot: existing}),
	}}
	methods := &fakeMethodLookup{byCode: map[string]*domain.ShippingMethod{"courier": testMethod(1)}}
	store := &fakeSlotStore{slots: []*domain.Slot{existing}}

	uc := newUseCase(carts, methods, store)

	// Перевыбор того же вхождения при вместимости 1 - собственный слот
	// не считается против себя
	_, err := uc.Execute(context.Background(), &Request{
		OrderToken:    "token-1",
		MethodCode:    "courier",
		ShipmentIndex: 0,
		StartTime:     ts,
	})
	assert.NoError(t, err)
}

func TestExecute_OrphanSlotDoesNotBlock(t *testing.T) {
	ts := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)
	carts := &fakeCartContext{orders: map[string]*domain.Order{
		"token-1": testOrder("token-1", &domain.Shipment{ID: 100, OrderID: 1, MethodID: 1}),
	}}
	methods := &fakeMethodLookup{byCode: map[string]*domain.ShippingMethod{"courier": testMethod(1)}}
	store := &fakeSlotStore{slots: []*domain.Slot{
		{ID: 9, MethodID: 1, Timestamp: ts}, // сирота
	}}

	uc := newUseCase(carts, methods, store)

	_, err := uc.Execute(context.Background(), &Request{
		OrderToken:    "token-1",
		MethodCode:    "courier",
		ShipmentIndex: 0,
		StartTime:     ts,
	})
	assert.NoError(t, err)
}

func TestExecute_Errors(t *testing.T) {
	carts := &fakeCartContext{orders: map[string]*domain.Order{
		"token-1": testOrder("token-1", &domain.Shipment{ID: 100, OrderID: 1, MethodID: 1}),
	}}
	methods := &fakeMethodLookup{byCode: map[string]*domain.ShippingMethod{
		"courier": testMethod(1),
		"pickup":  {ID: 2, Code: "pickup"}, // без конфигурации слотов
	}}

	uc := newUseCase(carts, methods, &fakeSlotStore{})
	ts := time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "missing order token",
			req:     &Request{MethodCode: "courier", StartTime: ts},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "missing start time",
			req:     &Request{OrderToken: "token-1", MethodCode: "courier"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "negative shipment index",
			req:     &Request{OrderToken: "token-1", MethodCode: "courier", ShipmentIndex: -1, StartTime: ts},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "order not found",
			req:     &Request{OrderToken: "missing", MethodCode: "courier", StartTime: ts},
			wantErr: ErrShipmentNotFound,
		},
		{
			name:    "shipment index out of range",
			req:     &Request{OrderToken: "token-1", MethodCode: "courier", ShipmentIndex: 5, StartTime: ts},
			wantErr: ErrShipmentNotFound,
		},
		{
			name:    "method not found",
			req:     &Request{OrderToken: "token-1", MethodCode: "unknown", StartTime: ts},
			wantErr: ErrMethodNotFound,
		},
		{
			name:    "method without slot config",
			req:     &Request{OrderToken: "token-1", MethodCode: "pickup", StartTime: ts},
			wantErr: ErrConfigMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
