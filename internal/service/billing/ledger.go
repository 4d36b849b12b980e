// Package billing maintains the line-item ledger of a sales bill in
// progress and keeps its derived totals consistent. Every mutation is
// followed by a full recomputation of the per-item derived fields and the
// four bill aggregates, so a stale aggregate is never observable.
//
// Bills are not persisted; finalization hands a read-only snapshot to
// whatever collaborator prints or stores it.
package billing

import (
	"fmt"
	"time"

	"github.com/caremitra/portal/internal/model"
	"github.com/caremitra/portal/pkg/apperror"
)

// Field names an editable line-item field for UpdateItem.
type Field string

const (
	FieldProductName     Field = "productName"
	FieldBatchNo         Field = "batchNo"
	FieldExpiryDate      Field = "expiryDate"
	FieldQuantity        Field = "quantity"
	FieldRate            Field = "rate"
	FieldPack            Field = "pack"
	FieldGSTPercent      Field = "gstPercent"
	FieldDiscountPercent Field = "discountPercent"
	FieldCess            Field = "cess"
)

// Ledger is the editable item list of one bill in progress.
type Ledger struct {
	bill model.Bill
}

// NewLedger opens a bill with the given header and one blank editable
// row. An empty bill date defaults to today.
func NewLedger(header model.BillHeader) *Ledger {
	if header.BillDate == "" {
		header.BillDate = time.Now().Format(model.DateLayout)
	}
	if header.CashCredit == "" {
		header.CashCredit = model.PaymentCash
	}

	l := &Ledger{bill: model.Bill{BillHeader: header}}
	l.AddItem()
	return l
}

// AddItem appends a blank line item (quantity 1, all money fields zero)
// to the end of the sequence. The new item contributes nothing, so the
// recomputation leaves the aggregates unchanged.
func (l *Ledger) AddItem() {
	l.bill.Items = append(l.bill.Items, model.LineItem{Quantity: 1, Pack: 1})
	l.recompute()
}

// UpdateItem replaces one field of the item at index. When the field is
// quantity, rate, gstPercent or discountPercent, the item's derived
// fields and all four bill aggregates are recomputed. An out-of-range
// index or a value of the wrong type is rejected without mutating
// anything.
func (l *Ledger) UpdateItem(index int, field Field, value any) error {
	if index < 0 || index >= len(l.bill.Items) {
		return apperror.Validation(fmt.Sprintf("item index %d out of range", index))
	}
	item := &l.bill.Items[index]

	switch field {
	case FieldProductName, FieldBatchNo, FieldExpiryDate:
		s, ok := value.(string)
		if !ok {
			return apperror.Validation(fmt.Sprintf("field %s expects a string", field))
		}
		switch field {
		case FieldProductName:
			item.ProductName = s
		case FieldBatchNo:
			item.BatchNo = s
		case FieldExpiryDate:
			item.ExpiryDate = s
		}

	case FieldQuantity, FieldRate, FieldPack, FieldGSTPercent, FieldDiscountPercent:
		f, ok := toFloat(value)
		if !ok {
			return apperror.Validation(fmt.Sprintf("field %s expects a number", field))
		}
		switch field {
		case FieldQuantity:
			item.Quantity = f
		case FieldRate:
			item.Rate = f
		case FieldPack:
			item.Pack = f
		case FieldGSTPercent:
			item.GSTPercent = f
		case FieldDiscountPercent:
			item.DiscountPercent = f
		}

	case FieldCess:
		b, ok := value.(bool)
		if !ok {
			return apperror.Validation(fmt.Sprintf("field %s expects a boolean", field))
		}
		item.Cess = b

	default:
		return apperror.Validation(fmt.Sprintf("unknown item field %q", field))
	}

	l.recompute()
	return nil
}

// RemoveItem deletes the item at index and recomputes the aggregates.
// Removing the last remaining item leaves an empty sequence with all
// aggregates zero.
func (l *Ledger) RemoveItem(index int) error {
	if index < 0 || index >= len(l.bill.Items) {
		return apperror.Validation(fmt.Sprintf("item index %d out of range", index))
	}

	l.bill.Items = append(l.bill.Items[:index], l.bill.Items[index+1:]...)
	l.recompute()
	return nil
}

// SetBillNumber updates the header bill number.
func (l *Ledger) SetBillNumber(n string) { l.bill.BillNumber = n }

// SetDoctorName updates the prescribing doctor on the header.
func (l *Ledger) SetDoctorName(n string) { l.bill.DoctorName = n }

// SetPatientName updates the patient on the header.
func (l *Ledger) SetPatientName(n string) { l.bill.PatientName = n }

// SetCashCredit selects the payment mode.
func (l *Ledger) SetCashCredit(mode string) error {
	if mode != model.PaymentCash && mode != model.PaymentCredit {
		return apperror.Validation(fmt.Sprintf("unknown payment mode %q", mode))
	}
	l.bill.CashCredit = mode
	return nil
}

// SetDiscountPercent updates the bill-level discount and recomputes the
// aggregates. The value is not clamped to [0,100]; out-of-range input
// propagates arithmetically.
func (l *Ledger) SetDiscountPercent(v float64) {
	l.bill.DiscountPercent = v
	l.recompute()
}

// Snapshot returns a read-only copy of the current header, items and
// aggregates for finalization (persistence or printing). The ledger keeps
// ownership of its own state.
func (l *Ledger) Snapshot() model.Bill {
	bill := l.bill
	bill.Items = make([]model.LineItem, len(l.bill.Items))
	copy(bill.Items, l.bill.Items)
	return bill
}

func (l *Ledger) recompute() {
	for i := range l.bill.Items {
		deriveItem(&l.bill.Items[i])
	}
	l.bill.NetTotal, l.bill.TotalGST, l.bill.TotalDiscount, l.bill.GrandTotal = Totals(l.bill.Items)
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	default:
		return 0, false
	}
}
