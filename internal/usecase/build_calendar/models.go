package build_calendar

import "time"

// Request модель запроса календарной ленты вхождений
type Request struct {
	OrderToken string    // Токен активного заказа (пустой = анонимный просмотр)
	MethodCode string    // Код метода доставки
	StartDate  time.Time // Начало окна
	EndDate    time.Time // Конец окна
}

// Response модель ответа с календарной лентой
type Response struct {
	MethodCode string  // Код метода доставки
	Events     []Event // События в порядке вхождений расписания
}

// Event одно выбираемое вхождение календаря
// Полные вхождения в ленту не попадают вовсе
type Event struct {
	Start     time.Time // Начало вхождения (UTC)
	End       time.Time // Конец вхождения (UTC)
	IsCurrent bool      // Вхождение выбрано покупателем сейчас
}
