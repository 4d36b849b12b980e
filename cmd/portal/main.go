// Command portal is the demo application shell. It wires the record
// store and the three portal modules together and walks one session
// through each: a doctor registering, a patient booking a slot and a
// pharmacy composing a sales bill.
package main

import (
	"context"
	"os"
	"time"

	"github.com/caremitra/portal/config"
	"github.com/caremitra/portal/internal/model"
	"github.com/caremitra/portal/internal/repository"
	"github.com/caremitra/portal/internal/repository/localstore"
	"github.com/caremitra/portal/internal/service/auth"
	"github.com/caremitra/portal/internal/service/billing"
	"github.com/caremitra/portal/internal/service/booking"
	"github.com/caremitra/portal/internal/service/inventory"
	"github.com/caremitra/portal/internal/store"
	"github.com/caremitra/portal/pkg/idgen"
	"github.com/caremitra/portal/pkg/logger"
	"github.com/caremitra/portal/pkg/token"
)

// consoleNotifier stands in for the SMS channel: it reveals the code on
// the console, the way the original popped an alert. It keeps the last
// code so the scripted walkthrough can type it back in.
type consoleNotifier struct {
	log      *logger.Logger
	lastCode string
}

func (n *consoleNotifier) Notify(phone, code string) {
	n.lastCode = code
	n.log.Info("your OTP is "+code, "phone", phone)
}

func main() {
	log := logger.New(nil)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err, "failed to load configuration")
	}
	log = logger.New(&logger.Config{
		Level:      logger.ParseLevel(cfg.Logging.Level),
		TimeFormat: time.RFC3339,
		Output:     os.Stdout,
	})

	st, err := store.Open(cfg.Store.Path, log)
	if err != nil {
		log.Fatal(err, "failed to open record store")
	}
	defer st.Close()

	doctorRepo := localstore.NewDoctorRepository(st)
	patientRepo := localstore.NewPatientRepository(st)
	pharmacyRepo := localstore.NewPharmacyUserRepository(st)
	slotRepo := localstore.NewSlotRepository(st)

	notifier := &consoleNotifier{log: log}
	verifier := auth.NewMockVerifier(notifier, auth.VerifierConfig{
		CodeTTL:     cfg.OTP.CodeTTL,
		ResendEvery: cfg.OTP.ResendEvery,
		ResendBurst: cfg.OTP.ResendBurst,
	}, log)
	tokens := token.NewService(cfg.Session.Secret, cfg.Session.Expiry)

	authSvc := auth.NewService(doctorRepo, patientRepo, pharmacyRepo, verifier, tokens, log)
	bookingSvc := booking.NewService(st, log)
	inventorySvc := inventory.NewService(log)

	ctx := context.Background()
	today := time.Now().Format(model.DateLayout)
	if err := seedSlots(ctx, slotRepo, today); err != nil {
		log.Fatal(err, "failed to seed slots")
	}

	runDoctor(ctx, authSvc, notifier, log)
	runPatient(ctx, authSvc, bookingSvc, notifier, today, log)
	runPharmacy(ctx, authSvc, inventorySvc, notifier, log)
}

func seedSlots(ctx context.Context, repo repository.SlotRepository, date string) error {
	existing, err := repo.List(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	var slots []model.Slot
	for _, t := range []string{"10:00 AM", "10:30 AM", "11:00 AM"} {
		slots = append(slots, model.Slot{ID: idgen.Next(), Date: date, Time: t})
	}
	return repo.Replace(ctx, slots)
}

func runDoctor(ctx context.Context, svc *auth.Service, notifier *consoleNotifier, log *logger.Logger) {
	sess := auth.NewSession(auth.PortalDoctor)
	if err := svc.StartLogin(ctx, sess, "9000000001"); err != nil {
		log.Fatal(err, "doctor login failed")
	}
	if err := svc.VerifyCode(ctx, sess, notifier.lastCode); err != nil {
		log.Fatal(err, "doctor verification failed")
	}

	if sess.State == auth.StateRegistration {
		err := svc.RegisterDoctor(ctx, sess, model.RegisterDoctorRequest{
			Name:           "Asha Rao",
			License:        "MCI-44321",
			Specialization: "Cardiology",
			Hospital:       "City Care Hospital",
		})
		if err != nil {
			log.Fatal(err, "doctor registration failed")
		}
	}

	log.Info("doctor on dashboard", "name", sess.Doctor.Name)
	svc.Logout(sess)
}

func runPatient(ctx context.Context, svc *auth.Service, bookingSvc *booking.Service, notifier *consoleNotifier, date string, log *logger.Logger) {
	sess := auth.NewSession(auth.PortalPatient)
	if err := svc.StartLogin(ctx, sess, "9000000002"); err != nil {
		log.Fatal(err, "patient login failed")
	}
	if err := svc.VerifyCode(ctx, sess, notifier.lastCode); err != nil {
		log.Fatal(err, "patient verification failed")
	}

	if sess.State == auth.StateRegistration {
		err := svc.RegisterPatient(ctx, sess, model.RegisterPatientRequest{
			Name:  "Ravi Kumar",
			Age:   "34",
			Place: "Mysuru",
		})
		if err != nil {
			log.Fatal(err, "patient registration failed")
		}
	}

	slots, err := bookingSvc.SlotsForDate(ctx, date)
	if err != nil {
		log.Fatal(err, "failed to list slots")
	}
	if len(slots) == 0 {
		log.Info("no available slots for this date", "date", date)
	} else {
		if err := bookingSvc.Book(ctx, slots[0].ID, *sess.Patient); err != nil {
			log.Fatal(err, "booking failed")
		}
		log.Info("appointment booked", "time", slots[0].Time, "date", date)
	}
	svc.Logout(sess)
}

func runPharmacy(ctx context.Context, svc *auth.Service, inventorySvc *inventory.Service, notifier *consoleNotifier, log *logger.Logger) {
	sess := auth.NewSession(auth.PortalPharmacy)
	sess.Mode = auth.ModeSignup
	if err := svc.StartLogin(ctx, sess, "9000000003"); err != nil {
		log.Fatal(err, "pharmacy login failed")
	}
	if err := svc.VerifyCode(ctx, sess, notifier.lastCode); err != nil {
		log.Fatal(err, "pharmacy verification failed")
	}
	log.Info("pharmacy on dashboard", "pharmacy", sess.PharmacyUser.PharmacyName)

	product, err := inventorySvc.Save(model.Product{
		ProductName:  "Paracetamol 500",
		GenericName:  "Paracetamol",
		Manufacturer: "Acme Pharma",
		HSNCode:      "3004",
		MRP:          30,
		Rate:         25,
		GSTRate:      12,
		BatchNo:      "B1204",
		Stock:        200,
	})
	if err != nil {
		log.Fatal(err, "product save failed")
	}

	ledger := billing.NewLedger(model.BillHeader{
		BillNumber:  "INV-0001",
		DoctorName:  "Asha Rao",
		PatientName: "Ravi Kumar",
	})
	check(log, ledger.UpdateItem(0, billing.FieldProductName, product.ProductName))
	check(log, ledger.UpdateItem(0, billing.FieldBatchNo, product.BatchNo))
	check(log, ledger.UpdateItem(0, billing.FieldQuantity, 3.0))
	check(log, ledger.UpdateItem(0, billing.FieldRate, product.Rate))
	check(log, ledger.UpdateItem(0, billing.FieldGSTPercent, product.GSTRate))
	check(log, ledger.UpdateItem(0, billing.FieldDiscountPercent, 10.0))

	bill := ledger.Snapshot()
	log.Info("bill composed",
		"net_total", bill.NetTotal,
		"total_gst", bill.TotalGST,
		"total_discount", bill.TotalDiscount,
		"grand_total", bill.GrandTotal,
	)
	svc.Logout(sess)
}

func check(log *logger.Logger, err error) {
	if err != nil {
		log.Fatal(err, "bill edit failed")
	}
}
