package model

// Collection names used as keys in the record store. Each maps to a full
// JSON-serialized sequence of records of one kind.
const (
	CollectionDoctors       = "doctors"
	CollectionPatients      = "patients"
	CollectionPharmacyUsers = "pharmacyUsers"
	CollectionSlots         = "slots"
	CollectionAppointments  = "appointments"
)

// DateLayout is the ISO calendar-date form slots and appointments carry.
const DateLayout = "2006-01-02"
