package usecase_test

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"clinic-scheduling-api/internal/delivery/http/middleware"
	"clinic-scheduling-api/internal/domain/entity"
	"clinic-scheduling-api/internal/domain/repository"
)

// In-memory repository fakes. The appointment fake serializes its
// check-then-insert with a mutex, mirroring the per-slot serialization
// the real ledger gets from advisory locks, and it works on copies so
// caller-side mutations never leak into storage before a save.

func authContext(userID uuid.UUID, roleID int) context.Context {
	ctx := context.WithValue(context.Background(), middleware.UserIDKey, userID)
	return context.WithValue(ctx, middleware.RoleIDKey, roleID)
}

func dateKey(t time.Time) string { return t.Format("2006-01-02") }

// ----------------------------------------------------------------------------
// Appointment ledger fake
// ----------------------------------------------------------------------------

type fakeAppointmentRepo struct {
	mu   sync.Mutex
	byID map[uuid.UUID]entity.Appointment
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{byID: make(map[uuid.UUID]entity.Appointment)}
}

func (r *fakeAppointmentRepo) seed(a entity.Appointment) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[a.ID] = a
}

// stored returns the persisted copy, bypassing ownership checks.
func (r *fakeAppointmentRepo) stored(id uuid.UUID) (entity.Appointment, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	return a, ok
}

func (r *fakeAppointmentRepo) countActiveLocked(doctorID uuid.UUID, date time.Time, timeKey string, exclude uuid.UUID) int {
	n := 0
	for _, a := range r.byID {
		if a.ID == exclude {
			continue
		}
		if a.DoctorID != doctorID || dateKey(a.AppointmentDate) != dateKey(date) || a.AppointmentTime != timeKey {
			continue
		}
		if a.IsActive() {
			n++
		}
	}
	return n
}

func (r *fakeAppointmentRepo) CreateScheduled(ctx context.Context, appointment *entity.Appointment, capacity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.countActiveLocked(appointment.DoctorID, appointment.AppointmentDate, appointment.AppointmentTime, uuid.Nil) >= capacity {
		return repository.ErrSlotCapacityExceeded
	}
	r.byID[appointment.ID] = *appointment
	return nil
}

func (r *fakeAppointmentRepo) Reschedule(ctx context.Context, appointment *entity.Appointment, newDate time.Time, newTime string, capacity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.countActiveLocked(appointment.DoctorID, newDate, newTime, appointment.ID) >= capacity {
		return repository.ErrSlotCapacityExceeded
	}
	appointment.AppointmentDate = newDate
	appointment.AppointmentTime = newTime
	r.byID[appointment.ID] = *appointment
	return nil
}

func (r *fakeAppointmentRepo) Update(ctx context.Context, appointment *entity.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byID[appointment.ID] = *appointment
	return nil
}

func (r *fakeAppointmentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.byID[id]
	if !ok {
		return nil, nil
	}
	copied := a
	return &copied, nil
}

func (r *fakeAppointmentRepo) FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Appointment
	for _, a := range r.byID {
		if a.PatientID == patientID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) FindByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []entity.Appointment
	for _, a := range r.byID {
		if a.DoctorID == doctorID && dateKey(a.AppointmentDate) == dateKey(date) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *fakeAppointmentRepo) CountActiveByTime(ctx context.Context, doctorID uuid.UUID, date time.Time) (map[string]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	counts := make(map[string]int)
	for _, a := range r.byID {
		if a.DoctorID == doctorID && dateKey(a.AppointmentDate) == dateKey(date) && a.IsActive() {
			counts[a.AppointmentTime]++
		}
	}
	return counts, nil
}

// ----------------------------------------------------------------------------
// Doctor fake
// ----------------------------------------------------------------------------

type fakeDoctorRepo struct {
	doctors map[uuid.UUID]entity.DoctorProfile
}

func newFakeDoctorRepo(doctors ...entity.DoctorProfile) *fakeDoctorRepo {
	r := &fakeDoctorRepo{doctors: make(map[uuid.UUID]entity.DoctorProfile)}
	for _, d := range doctors {
		r.doctors[d.UserID] = d
	}
	return r
}

func (r *fakeDoctorRepo) Create(db *gorm.DB, doctor *entity.DoctorProfile) error {
	r.doctors[doctor.UserID] = *doctor
	return nil
}

func (r *fakeDoctorRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	d, ok := r.doctors[userID]
	if !ok {
		return nil, nil
	}
	copied := d
	return &copied, nil
}

func (r *fakeDoctorRepo) FindFirstAvailableByDepartment(ctx context.Context, department string) (*entity.DoctorProfile, error) {
	for _, d := range r.doctors {
		if d.Department == department && d.IsAvailable {
			copied := d
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeDoctorRepo) ListAvailableByDepartment(ctx context.Context, department string) ([]entity.DoctorProfile, error) {
	var out []entity.DoctorProfile
	for _, d := range r.doctors {
		if (department == "" || d.Department == department) && d.IsAvailable {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDoctorRepo) ListDepartments(ctx context.Context) ([]repository.DepartmentSummary, error) {
	counts := make(map[string]int)
	for _, d := range r.doctors {
		if d.IsAvailable {
			counts[d.Department]++
		}
	}
	var out []repository.DepartmentSummary
	for dept, n := range counts {
		out = append(out, repository.DepartmentSummary{Department: dept, DoctorsCount: n})
	}
	return out, nil
}

func (r *fakeDoctorRepo) UpdateSchedule(ctx context.Context, doctor *entity.DoctorProfile) error {
	r.doctors[doctor.UserID] = *doctor
	return nil
}

// ----------------------------------------------------------------------------
// Patient fake
// ----------------------------------------------------------------------------

type fakePatientRepo struct {
	patients map[uuid.UUID]entity.PatientProfile
}

func newFakePatientRepo(patients ...entity.PatientProfile) *fakePatientRepo {
	r := &fakePatientRepo{patients: make(map[uuid.UUID]entity.PatientProfile)}
	for _, p := range patients {
		r.patients[p.UserID] = p
	}
	return r
}

func (r *fakePatientRepo) Create(db *gorm.DB, profile *entity.PatientProfile) error {
	r.patients[profile.UserID] = *profile
	return nil
}

func (r *fakePatientRepo) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.PatientProfile, error) {
	p, ok := r.patients[userID]
	if !ok {
		return nil, nil
	}
	copied := p
	return &copied, nil
}

// ----------------------------------------------------------------------------
// Explicit slot fake
// ----------------------------------------------------------------------------

type fakeSlotRepo struct {
	slots map[uuid.UUID]entity.AppointmentSlot
}

func newFakeSlotRepo(slots ...entity.AppointmentSlot) *fakeSlotRepo {
	r := &fakeSlotRepo{slots: make(map[uuid.UUID]entity.AppointmentSlot)}
	for _, s := range slots {
		r.slots[s.ID] = s
	}
	return r
}

func (r *fakeSlotRepo) Create(ctx context.Context, slot *entity.AppointmentSlot) error {
	r.slots[slot.ID] = *slot
	return nil
}

func (r *fakeSlotRepo) Update(ctx context.Context, slot *entity.AppointmentSlot) error {
	r.slots[slot.ID] = *slot
	return nil
}

func (r *fakeSlotRepo) Delete(ctx context.Context, id uuid.UUID) (int64, error) {
	if _, ok := r.slots[id]; !ok {
		return 0, nil
	}
	delete(r.slots, id)
	return 1, nil
}

func (r *fakeSlotRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.AppointmentSlot, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, nil
	}
	copied := s
	return &copied, nil
}

func (r *fakeSlotRepo) FindByDoctorAndDate(ctx context.Context, doctorID uuid.UUID, date time.Time) ([]entity.AppointmentSlot, error) {
	var out []entity.AppointmentSlot
	for _, s := range r.slots {
		if s.DoctorID == doctorID && dateKey(s.Date) == dateKey(date) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *fakeSlotRepo) FindByDoctorDateTime(ctx context.Context, doctorID uuid.UUID, date time.Time, startTime string) (*entity.AppointmentSlot, error) {
	for _, s := range r.slots {
		if s.DoctorID == doctorID && dateKey(s.Date) == dateKey(date) && s.StartTime == startTime {
			copied := s
			return &copied, nil
		}
	}
	return nil, nil
}

// ----------------------------------------------------------------------------
// Availability window fake
// ----------------------------------------------------------------------------

type fakeWindowRepo struct {
	windows []entity.AvailabilityWindow
}

func (r *fakeWindowRepo) Create(ctx context.Context, window *entity.AvailabilityWindow) error {
	r.windows = append(r.windows, *window)
	return nil
}

func (r *fakeWindowRepo) FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.AvailabilityWindow, error) {
	var out []entity.AvailabilityWindow
	for _, w := range r.windows {
		if w.DoctorID == doctorID {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWindowRepo) FindAvailableByDoctorAndDay(ctx context.Context, doctorID uuid.UUID, dayOfWeek string) ([]entity.AvailabilityWindow, error) {
	var out []entity.AvailabilityWindow
	for _, w := range r.windows {
		if w.DoctorID == doctorID && w.IsAvailable && strings.EqualFold(w.DayOfWeek, dayOfWeek) {
			out = append(out, w)
		}
	}
	return out, nil
}

func (r *fakeWindowRepo) ReplaceForDoctor(ctx context.Context, doctorID uuid.UUID, windows []entity.AvailabilityWindow) error {
	var kept []entity.AvailabilityWindow
	for _, w := range r.windows {
		if w.DoctorID != doctorID {
			kept = append(kept, w)
		}
	}
	r.windows = append(kept, windows...)
	return nil
}

func (r *fakeWindowRepo) Delete(ctx context.Context, doctorID, windowID uuid.UUID) (int64, error) {
	for i, w := range r.windows {
		if w.DoctorID == doctorID && w.ID == windowID {
			r.windows = append(r.windows[:i], r.windows[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// ----------------------------------------------------------------------------
// Audit fake
// ----------------------------------------------------------------------------

type noopAuditService struct{}

func (noopAuditService) Record(tx *gorm.DB, userID *uuid.UUID, action string, metadata entity.JSON) error {
	return nil
}

func (noopAuditService) RecordChange(tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue, newValue interface{}) error {
	return nil
}
