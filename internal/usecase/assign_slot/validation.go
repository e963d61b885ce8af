package assign_slot

import "fmt"

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.OrderToken == "" {
		return fmt.Errorf("%w: orderToken is required", ErrInvalidInput)
	}

	if req.MethodCode == "" {
		return fmt.Errorf("%w: methodCode is required", ErrInvalidInput)
	}

	if req.ShipmentIndex < 0 {
		return fmt.Errorf("%w: shipmentIndex must be non-negative", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	return nil
}
