package model

// Product is one pharmacy inventory entry. Products live only in session
// memory for the lifetime of a pharmacy session; they are never written to
// the record store.
type Product struct {
	ID               int64   `json:"id"`
	ProductName      string  `json:"productName" validate:"required"`
	GenericName      string  `json:"genericName" validate:"required"`
	Manufacturer     string  `json:"manufacturer" validate:"required"`
	MarketingCompany string  `json:"marketingCompany"`
	PurchaseAccount  string  `json:"purchaseAccount"`
	SalesAccount     string  `json:"salesAccount"`
	DrugSchedule     string  `json:"drugSchedule"`
	MRP              float64 `json:"mrp" validate:"required,gt=0"`
	Rate             float64 `json:"rate" validate:"required,gt=0"`
	GSTRate          float64 `json:"gstRate" validate:"gte=0"`
	RackNo           string  `json:"rackNo"`
	HSNCode          string  `json:"hsnCode" validate:"required"`
	BatchNo          string  `json:"batchNo" validate:"required"`
	ExpiryDate       string  `json:"expiryDate"`
	PTR              float64 `json:"ptr"`
	Unit             string  `json:"unit"`
	MRPInclusive     bool    `json:"mrpInclusive"`
	Supplier         string  `json:"supplier"`
	Stock            int     `json:"stock"`
}
