package get_full_occurrences

import "time"

// FullOccurrencesResponse список вхождений без свободных мест
type FullOccurrencesResponse struct {
	MethodCode      string   `json:"methodCode"`
	FullOccurrences []string `json:"fullOccurrences"` // RFC3339, UTC, по возрастанию
}

// FromTimestamps конвертирует метки времени в HTTP-модель
func FromTimestamps(methodCode string, timestamps []time.Time) *FullOccurrencesResponse {
	occurrences := make([]string, 0, len(timestamps))
	for _, ts := range timestamps {
		occurrences = append(occurrences, ts.UTC().Format(time.RFC3339))
	}

	return &FullOccurrencesResponse{
		MethodCode:      methodCode,
		FullOccurrences: occurrences,
	}
}
