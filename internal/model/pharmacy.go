package model

// Placeholder profile fields filled in at pharmacy signup. The pharmacy
// flow collects only a phone number; the profile is completed later,
// outside this system.
const (
	DefaultPharmacyName  = "New Pharmacy"
	DefaultLicenseNumber = "TEMP123"
)

// PharmacyUser is a registered pharmacy operator, unique by phone.
type PharmacyUser struct {
	ID            int64  `json:"id"`
	Phone         string `json:"phone"`
	PharmacyName  string `json:"pharmacyName"`
	LicenseNumber string `json:"licenseNumber"`
}
