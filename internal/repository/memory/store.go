package memory

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"spacecityrentals/internal/db"
	"spacecityrentals/internal/entities"
	"spacecityrentals/internal/repository"
)

// Store is the fixture-backed adapter used in demo mode and in tests. It
// implements the same store interfaces as the Postgres adapter so the
// lifecycle code runs unchanged against either.
type Store struct {
	mu       sync.Mutex
	vehicles []db.Vehicle
	bookings []db.Booking
	events   []db.PaymentEvent
	admins   []db.Admin
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// NewSeededStore returns a store pre-loaded with the demo fleet.
func NewSeededStore() *Store {
	s := NewStore()
	s.vehicles = append(s.vehicles, seedVehicles()...)
	return s
}

// Vehicles, Bookings, PaymentEvents and Admins all share the one mutex;
// operations on the demo dataset are short and uncontended.

type vehicleStore struct{ s *Store }
type bookingStore struct{ s *Store }
type paymentEventStore struct{ s *Store }
type adminStore struct{ s *Store }

func (s *Store) Vehicles() repository.VehicleStore          { return vehicleStore{s} }
func (s *Store) Bookings() repository.BookingStore          { return bookingStore{s} }
func (s *Store) PaymentEvents() repository.PaymentEventStore { return paymentEventStore{s} }
func (s *Store) Admins() repository.AdminStore              { return adminStore{s} }

// AsStore bundles the adapters the way cmd/server wires them.
func (s *Store) AsStore() repository.Store {
	return repository.Store{
		Vehicles:      s.Vehicles(),
		Bookings:      s.Bookings(),
		PaymentEvents: s.PaymentEvents(),
		Admins:        s.Admins(),
	}
}

// ---- vehicles ----

func (vs vehicleStore) ListActive() ([]db.Vehicle, error) {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()
	var out []db.Vehicle
	for _, v := range vs.s.vehicles {
		if v.IsActive {
			out = append(out, v)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (vs vehicleStore) GetBySlug(slug string) (*db.Vehicle, error) {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()
	for i := range vs.s.vehicles {
		if vs.s.vehicles[i].Slug == slug {
			v := vs.s.vehicles[i]
			return &v, nil
		}
	}
	return nil, repository.ErrNoRows
}

func (vs vehicleStore) GetByID(id string) (*db.Vehicle, error) {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()
	for i := range vs.s.vehicles {
		if vs.s.vehicles[i].ID == id {
			v := vs.s.vehicles[i]
			return &v, nil
		}
	}
	return nil, repository.ErrNoRows
}

func (vs vehicleStore) Create(v *db.Vehicle) error {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	v.CreatedAt = now
	v.UpdatedAt = now
	vs.s.vehicles = append(vs.s.vehicles, *v)
	return nil
}

func (vs vehicleStore) Update(v *db.Vehicle) error {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()
	for i := range vs.s.vehicles {
		if vs.s.vehicles[i].ID == v.ID {
			v.CreatedAt = vs.s.vehicles[i].CreatedAt
			v.RentalCount = vs.s.vehicles[i].RentalCount
			v.UpdatedAt = time.Now().UTC()
			vs.s.vehicles[i] = *v
			return nil
		}
	}
	return repository.ErrNoRows
}

func (vs vehicleStore) Deactivate(id string) error {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()
	for i := range vs.s.vehicles {
		if vs.s.vehicles[i].ID == id {
			vs.s.vehicles[i].IsActive = false
			vs.s.vehicles[i].UpdatedAt = time.Now().UTC()
			return nil
		}
	}
	return repository.ErrNoRows
}

func (vs vehicleStore) IncrementRentalCount(id string) error {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()
	for i := range vs.s.vehicles {
		if vs.s.vehicles[i].ID == id {
			vs.s.vehicles[i].RentalCount++
			return nil
		}
	}
	return repository.ErrNoRows
}

func (vs vehicleStore) CountActive() (int, error) {
	vs.s.mu.Lock()
	defer vs.s.mu.Unlock()
	n := 0
	for _, v := range vs.s.vehicles {
		if v.IsActive {
			n++
		}
	}
	return n, nil
}

// ---- bookings ----

func (bs bookingStore) withVehicle(b db.Booking) db.Booking {
	for _, v := range bs.s.vehicles {
		if v.ID == b.VehicleID {
			b.VehicleName = v.Name
			b.VehicleSlug = v.Slug
			break
		}
	}
	return b
}

func (bs bookingStore) Create(b *db.Booking) error {
	bs.s.mu.Lock()
	defer bs.s.mu.Unlock()
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	stored := *b
	stored.VehicleName = ""
	stored.VehicleSlug = ""
	bs.s.bookings = append(bs.s.bookings, stored)
	*b = bs.withVehicle(stored)
	return nil
}

func (bs bookingStore) find(match func(db.Booking) bool) (*db.Booking, error) {
	for i := range bs.s.bookings {
		if match(bs.s.bookings[i]) {
			b := bs.withVehicle(bs.s.bookings[i])
			return &b, nil
		}
	}
	return nil, repository.ErrNoRows
}

func (bs bookingStore) GetByID(id string) (*db.Booking, error) {
	bs.s.mu.Lock()
	defer bs.s.mu.Unlock()
	return bs.find(func(b db.Booking) bool { return b.ID == id })
}

func (bs bookingStore) GetByCode(code string) (*db.Booking, error) {
	bs.s.mu.Lock()
	defer bs.s.mu.Unlock()
	return bs.find(func(b db.Booking) bool {
		return strings.EqualFold(b.ConfirmationCode, code)
	})
}

func (bs bookingStore) GetByPaymentIntentID(paymentIntentID string) (*db.Booking, error) {
	bs.s.mu.Lock()
	defer bs.s.mu.Unlock()
	return bs.find(func(b db.Booking) bool {
		return b.StripePaymentIntentID != nil && *b.StripePaymentIntentID == paymentIntentID
	})
}

func (bs bookingStore) collect(match func(db.Booking) bool) []db.Booking {
	var out []db.Booking
	for i := range bs.s.bookings {
		if match(bs.s.bookings[i]) {
			out = append(out, bs.withVehicle(bs.s.bookings[i]))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (bs bookingStore) ListByEmail(email string) ([]db.Booking, error) {
	bs.s.mu.Lock()
	defer bs.s.mu.Unlock()
	return bs.collect(func(b db.Booking) bool {
		return strings.EqualFold(b.GuestEmail, email)
	}), nil
}

func (bs bookingStore) List(statusFilter string) ([]db.Booking, error) {
	bs.s.mu.Lock()
	defer bs.s.mu.Unlock()
	return bs.collect(func(b db.Booking) bool {
		return statusFilter == "" || b.Status == statusFilter
	}), nil
}

func (bs bookingStore) ListByPaymentStatus(paymentStatus string) ([]db.Booking, error) {
	bs.s.mu.Lock()
	defer bs.s.mu.Unlock()
	return bs.collect(func(b db.Booking) bool { return b.PaymentStatus == paymentStatus }), nil
}

func (bs bookingStore) mutate(id string, apply func(*db.Booking)) (*db.Booking, error) {
	for i := range bs.s.bookings {
		if bs.s.bookings[i].ID == id {
			apply(&bs.s.bookings[i])
			bs.s.bookings[i].UpdatedAt = time.Now().UTC()
			b := bs.withVehicle(bs.s.bookings[i])
			return &b, nil
		}
	}
	return nil, repository.ErrNoRows
}

func (bs bookingStore) UpdateStatus(id, status string, notes entities.OptionalString) (*db.Booking, error) {
	bs.s.mu.Lock()
	defer bs.s.mu.Unlock()
	return bs.mutate(id, func(b *db.Booking) {
		b.Status = status
		if notes.Set {
			b.AdminNotes = notes.Value
		}
	})
}

func (bs bookingStore) SetCaptured(id string, amountCents int64) error {
	bs.s.mu.Lock()
	defer bs.s.mu.Unlock()
	_, err := bs.mutate(id, func(b *db.Booking) {
		b.PaymentStatus = db.PaymentStatusCaptured
		b.CapturedAmountCents = &amountCents
	})
	return err
}

func (bs bookingStore) SetRefunded(id, paymentStatus string, refundedTotalCents int64) error {
	bs.s.mu.Lock()
	defer bs.s.mu.Unlock()
	_, err := bs.mutate(id, func(b *db.Booking) {
		b.PaymentStatus = paymentStatus
		b.RefundedAmountCents = refundedTotalCents
	})
	return err
}

func (bs bookingStore) SetPaymentStatus(id, paymentStatus string) error {
	bs.s.mu.Lock()
	defer bs.s.mu.Unlock()
	_, err := bs.mutate(id, func(b *db.Booking) {
		b.PaymentStatus = paymentStatus
	})
	return err
}

func (bs bookingStore) ApprovedOverlapping(date string) ([]string, error) {
	bs.s.mu.Lock()
	defer bs.s.mu.Unlock()
	seen := map[string]bool{}
	var ids []string
	for _, b := range bs.s.bookings {
		if b.Status != db.BookingStatusApproved {
			continue
		}
		if b.StartDate <= date && b.EndDate >= date && !seen[b.VehicleID] {
			seen[b.VehicleID] = true
			ids = append(ids, b.VehicleID)
		}
	}
	return ids, nil
}

func (bs bookingStore) CountAll() (int, error) {
	bs.s.mu.Lock()
	defer bs.s.mu.Unlock()
	return len(bs.s.bookings), nil
}

func (bs bookingStore) CountByStatus(status string) (int, error) {
	bs.s.mu.Lock()
	defer bs.s.mu.Unlock()
	n := 0
	for _, b := range bs.s.bookings {
		if b.Status == status {
			n++
		}
	}
	return n, nil
}

// ---- payment events ----

func (es paymentEventStore) Append(e *db.PaymentEvent) error {
	es.s.mu.Lock()
	defer es.s.mu.Unlock()
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedAt = time.Now().UTC()
	es.s.events = append(es.s.events, *e)
	return nil
}

func (es paymentEventStore) ListByBooking(bookingID string) ([]db.PaymentEvent, error) {
	es.s.mu.Lock()
	defer es.s.mu.Unlock()
	var out []db.PaymentEvent
	for _, e := range es.s.events {
		if e.BookingID == bookingID {
			out = append(out, e)
		}
	}
	return out, nil
}

// ---- admins ----

func (as adminStore) GetByEmail(email string) (*db.Admin, error) {
	as.s.mu.Lock()
	defer as.s.mu.Unlock()
	for i := range as.s.admins {
		if strings.EqualFold(as.s.admins[i].Email, email) {
			a := as.s.admins[i]
			return &a, nil
		}
	}
	return nil, repository.ErrNoRows
}

func (as adminStore) Create(email, passwordHash string) error {
	as.s.mu.Lock()
	defer as.s.mu.Unlock()
	as.s.admins = append(as.s.admins, db.Admin{
		ID:           len(as.s.admins) + 1,
		Email:        email,
		PasswordHash: passwordHash,
	})
	return nil
}
