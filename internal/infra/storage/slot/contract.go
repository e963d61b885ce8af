package slot

import (
	"github.com/m04kA/SMC-DeliverySlotService/pkg/dbmetrics"
)

// Переиспользуем интерфейсы из dbmetrics для работы с БД
// Репозиторий получает активную транзакцию через контекст
type DBExecutor = dbmetrics.DBExecutor
