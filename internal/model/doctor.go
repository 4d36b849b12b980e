package model

// Doctor is a registered doctor. Phone is the natural key; the store does
// not enforce uniqueness, so callers check for an existing record before
// treating a submission as new.
type Doctor struct {
	ID             int64  `json:"id"`
	Phone          string `json:"phone"`
	Name           string `json:"name"`
	License        string `json:"license"`
	Specialization string `json:"specialization,omitempty"`
	Hospital       string `json:"hospital,omitempty"`
}

type RegisterDoctorRequest struct {
	Name           string `json:"name" validate:"required"`
	License        string `json:"license" validate:"required"`
	Specialization string `json:"specialization"`
	Hospital       string `json:"hospital"`
}
