package dto

// SlotResponse is one entry of the computed day view. Fully-booked
// and past slots are included with status "booked", never omitted.
type SlotResponse struct {
	ID                  string `json:"id"`
	Time                string `json:"time"`
	StartTime           string `json:"start_time"`
	EndTime             string `json:"end_time"`
	Status              string `json:"status"`
	IsAvailable         bool   `json:"is_available"`
	IsFullyBooked       bool   `json:"is_fully_booked"`
	CurrentAppointments int    `json:"current_appointments"`
	MaxAppointments     int    `json:"max_appointments"`
	RemainingCapacity   int    `json:"remaining_capacity"`
}

type AvailableSlotsResponse struct {
	Doctor    DoctorResponse `json:"doctor"`
	Date      string         `json:"date"`
	DayOfWeek string         `json:"day_of_week"`
	Slots     []SlotResponse `json:"available_slots"`
}
