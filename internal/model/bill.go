package model

// Payment modes for a sales bill.
const (
	PaymentCash   = "Cash"
	PaymentCredit = "Credit"
)

// LineItem is one row of a bill-in-progress. Amount, GSTAmount and
// DiscountAmount are derived and never set directly:
//
//	amount         = quantity * rate
//	gstAmount      = amount * gstPercent / 100
//	discountAmount = amount * discountPercent / 100
type LineItem struct {
	ProductName     string  `json:"productName"`
	BatchNo         string  `json:"batchNo"`
	ExpiryDate      string  `json:"expiryDate"`
	Quantity        float64 `json:"quantity"`
	Rate            float64 `json:"rate"`
	Pack            float64 `json:"pack"`
	Amount          float64 `json:"amount"`
	GSTPercent      float64 `json:"gstPercent"`
	DiscountPercent float64 `json:"discountPercent"`
	GSTAmount       float64 `json:"gstAmount"`
	DiscountAmount  float64 `json:"discountAmount"`
	Cess            bool    `json:"cess"`
}

// BillHeader carries the bill-level fields entered by the operator.
type BillHeader struct {
	BillNumber      string  `json:"billNumber"`
	BillDate        string  `json:"billDate"`
	DoctorName      string  `json:"doctorName"`
	PatientName     string  `json:"patientName"`
	CashCredit      string  `json:"cashCredit"`
	DiscountPercent float64 `json:"discountPercent"`
}

// Bill is a sales bill in progress. The aggregates are re-derived from the
// item sequence after every mutation, so they are never stale:
//
//	netTotal      = sum of amount
//	totalGst      = sum of gstAmount
//	totalDiscount = sum of discountAmount
//	grandTotal    = netTotal + totalGst - totalDiscount
//
// Bills exist only while being composed; there is no persisted sales
// collection.
type Bill struct {
	BillHeader
	Items         []LineItem `json:"items"`
	NetTotal      float64    `json:"netTotal"`
	TotalGST      float64    `json:"totalGst"`
	TotalDiscount float64    `json:"totalDiscount"`
	GrandTotal    float64    `json:"grandTotal"`
}
