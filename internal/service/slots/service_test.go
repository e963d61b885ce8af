package slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
	methodRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/method"
	orderRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/order"
	slotRepo "github.com/m04kA/SMC-DeliverySlotService/internal/infra/storage/slot"
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

type fakeMethodStore struct {
	byCode map[string]*domain.ShippingMethod
}

func (f *fakeMethodStore) FindByCode(_ context.Context, code string) (*domain.ShippingMethod, error) {
	method, ok := f.byCode[code]
	if !ok {
		return nil, methodRepo.ErrMethodNotFound
	}
	return method, nil
}

type fakeSlotStore struct {
	deleted []int64
	missing map[int64]bool
}

func (f *fakeSlotStore) Delete(_ context.Context, id int64) error {
	if f.missing[id] {
		return slotRepo.ErrSlotNotFound
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func orderWithSlot(token string, slot *domain.Slot) *domain.Order {
	return &domain.Order{
		ID:    1,
		Token: token,
		Shipments: []*domain.Shipment{
			{ID: 100, OrderID: 1, MethodID: 1, Slot: slot},
		},
	}
}

func TestReset_DeletesSlot(t *testing.T) {
	slot := &domain.Slot{ID: 42, ShipmentID: ptr.Ptr(int64(100)), MethodID: 1,
		Timestamp: time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)}

	store := &fakeSlotStore{}
	carts := &fakeCartContext{orders: map[string]*domain.Order{"token-1": orderWithSlot("token-1", slot)}}

	svc := NewService(carts, &fakeMethodStore{}, store, nopLogger{})

	err := svc.Reset(context.Background(), "token-1", 0)
	require.NoError(t, err)
	assert.Equal(t, []int64{42}, store.deleted)
}

func TestReset_NoSlotIsNoop(t *testing.T) {
	store := &fakeSlotStore{}
	carts := &fakeCartContext{orders: map[string]*domain.Order{"token-1": orderWithSlot("token-1", nil)}}

	svc := NewService(carts, &fakeMethodStore{}, store, nopLogger{})

	// Повторный reset - тот же исход, операция идемпотентна
	require.NoError(t, svc.Reset(context.Background(), "token-1", 0))
	require.NoError(t, svc.Reset(context.Background(), "token-1", 0))
	assert.Empty(t, store.deleted)
}

func TestReset_AlreadyDeletedSlot(t *testing.T) {
	slot := &domain.Slot{ID: 42, ShipmentID: ptr.Ptr(int64(100)), MethodID: 1}

	store := &fakeSlotStore{missing: map[int64]bool{42: true}}
	carts := &fakeCartContext{orders: map[string]*domain.Order{"token-1": orderWithSlot("token-1", slot)}}

	svc := NewService(carts, &fakeMethodStore{}, store, nopLogger{})

	// Параллельный reset успел раньше - не ошибка
	assert.NoError(t, svc.Reset(context.Background(), "token-1", 0))
}

func TestReset_ShipmentNotFound(t *testing.T) {
	carts := &fakeCartContext{orders: map[string]*domain.Order{"token-1": orderWithSlot("token-1", nil)}}
	svc := NewService(carts, &fakeMethodStore{}, &fakeSlotStore{}, nopLogger{})

	assert.ErrorIs(t, svc.Reset(context.Background(), "missing", 0), ErrShipmentNotFound)
	assert.ErrorIs(t, svc.Reset(context.Background(), "token-1", 7), ErrShipmentNotFound)
}

func TestFindByMethod(t *testing.T) {
	slot := &domain.Slot{ID: 42, ShipmentID: ptr.Ptr(int64(100)), MethodID: 1,
		Timestamp: time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)}
	method := &domain.ShippingMethod{ID: 1, Code: "courier"}

	carts := &fakeCartContext{orders: map[string]*domain.Order{"token-1": orderWithSlot("token-1", slot)}}
	svc := NewService(carts, &fakeMethodStore{}, &fakeSlotStore{}, nopLogger{})

	found, err := svc.FindByMethod(context.Background(), "token-1", method)
	require.NoError(t, err)
	assert.Equal(t, slot, found)

	// Заказ не найден - nil, не ошибка
	found, err = svc.FindByMethod(context.Background(), "missing", method)
	require.NoError(t, err)
	assert.Nil(t, found)

	// Отправления с таким методом нет - nil
	found, err = svc.FindByMethod(context.Background(), "token-1", &domain.ShippingMethod{ID: 9})
	require.NoError(t, err)
	assert.Nil(t, found)
}

func TestGetCurrentSlotByCode(t *testing.T) {
	slot := &domain.Slot{ID: 42, ShipmentID: ptr.Ptr(int64(100)), MethodID: 1,
		Timestamp: time.Date(2026, 1, 10, 10, 0, 0, 0, time.UTC)}
	method := &domain.ShippingMethod{ID: 1, Code: "courier"}

	carts := &fakeCartContext{orders: map[string]*domain.Order{"token-1": orderWithSlot("token-1", slot)}}
	methods := &fakeMethodStore{byCode: map[string]*domain.ShippingMethod{"courier": method}}

	svc := NewService(carts, methods, &fakeSlotStore{}, nopLogger{})

	resp, err := svc.GetCurrentSlotByCode(context.Background(), "token-1", "courier")
	require.NoError(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, slot.Timestamp, resp.Timestamp)
}

func TestGetCurrentSlotByCode_MethodNotFound(t *testing.T) {
	svc := NewService(&fakeCartContext{}, &fakeMethodStore{}, &fakeSlotStore{}, nopLogger{})

	_, err := svc.GetCurrentSlotByCode(context.Background(), "token-1", "unknown")
	assert.ErrorIs(t, err, ErrMethodNotFound)
}

func TestGetCurrentSlotByCode_NoSlot(t *testing.T) {
	method := &domain.ShippingMethod{ID: 1, Code: "courier"}
	carts := &fakeCartContext{orders: map[string]*domain.Order{"token-1": orderWithSlot("token-1", nil)}}
	methods := &fakeMethodStore{byCode: map[string]*domain.ShippingMethod{"courier": method}}

	svc := NewService(carts, methods, &fakeSlotStore{}, nopLogger{})

	resp, err := svc.GetCurrentSlotByCode(context.Background(), "token-1", "courier")
	require.NoError(t, err)
	assert.Nil(t, resp)
}
