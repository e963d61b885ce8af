package method

import "errors"

var (
	// ErrMethodNotFound возвращается, когда метод доставки не найден
	ErrMethodNotFound = errors.New("method.repository: shipping method not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("method.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("method.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("method.repository: failed to scan row")
)
