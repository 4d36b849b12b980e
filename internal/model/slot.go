package model

// Slot is a bookable appointment time unit tied to a calendar date.
// Patient empty means unbooked; once set it is never cleared, as there is
// no cancellation path.
type Slot struct {
	ID      int64  `json:"id"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Patient string `json:"patient,omitempty"`
}

// Booked reports whether the slot has been assigned to a patient.
func (s Slot) Booked() bool {
	return s.Patient != ""
}

// Appointment is one entry in the append-only appointment log. It embeds
// the patient fields alongside the chosen slot time and date.
type Appointment struct {
	Name       string `json:"name"`
	Age        string `json:"age"`
	Place      string `json:"place"`
	Phone      string `json:"phone"`
	BookedSlot string `json:"bookedSlot"`
	Date       string `json:"date"`
}
