package assign_slot

import "time"

// Request модель запроса на назначение слота отправлению
type Request struct {
	OrderToken    string    // Токен активного заказа
	MethodCode    string    // Код метода доставки
	ShipmentIndex int       // Индекс отправления в заказе
	StartTime     time.Time // Начало выбранного вхождения (любая зона, нормализуется в UTC)
}

// Response модель ответа с назначенным слотом
type Response struct {
	ID                      int64     // ID слота
	ShipmentID              int64     // ID отправления
	MethodID                int64     // ID метода доставки
	Timestamp               time.Time // Начало вхождения (UTC)
	DurationMinutes         int       // Длительность (снимок из конфигурации)
	PickupDelayMinutes      int       // Задержка выдачи (снимок из конфигурации)
	PreparationDelayMinutes int       // Задержка подготовки (снимок из конфигурации)
	CreatedAt               time.Time // Время создания
	UpdatedAt               time.Time // Время обновления
}
