package is_slot_full

// SlotFullResponse признак переполненности выбранного слота
type SlotFullResponse struct {
	Full bool `json:"full"`
}
