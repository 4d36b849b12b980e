package model

// Patient is a registered patient, unique by phone.
type Patient struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Age   string `json:"age"`
	Place string `json:"place"`
	Phone string `json:"phone"`
}

type RegisterPatientRequest struct {
	Name  string `json:"name" validate:"required"`
	Age   string `json:"age" validate:"required"`
	Place string `json:"place" validate:"required"`
}
