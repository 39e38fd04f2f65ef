package appointment

import (
	"context"
	"errors"
	"testing"
	"time"

	scheduleRepo "carewell/database/repository/schedule"
	"carewell/models"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeAppointmentRepo struct {
	byID        map[string]*models.Appointment
	created     []*models.Appointment
	updates     map[string]bson.M
	createErr   error
	updateErr   error
	getByIDCall int
}

func newFakeAppointmentRepo() *fakeAppointmentRepo {
	return &fakeAppointmentRepo{
		byID:    make(map[string]*models.Appointment),
		updates: make(map[string]bson.M),
	}
}

func (f *fakeAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, appt)
	f.byID[appt.ID] = appt
	return nil
}

func (f *fakeAppointmentRepo) GetByID(ctx context.Context, patientID, appointmentID string) (*models.Appointment, error) {
	f.getByIDCall++
	appt, ok := f.byID[appointmentID]
	if !ok || appt.PatientID != patientID {
		return nil, nil
	}
	copied := *appt
	return &copied, nil
}

func (f *fakeAppointmentRepo) Update(ctx context.Context, appointmentID string, set bson.M) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updates[appointmentID] = set
	return nil
}

func (f *fakeAppointmentRepo) ListUpcoming(ctx context.Context, patientID string, now time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) ListPast(ctx context.Context, patientID string, now time.Time) ([]models.Appointment, error) {
	return nil, nil
}

func (f *fakeAppointmentRepo) CountStats(ctx context.Context, patientID string, now time.Time) (*models.AppointmentStats, error) {
	return &models.AppointmentStats{}, nil
}

type fakeSchedule struct {
	reserveErr error
	reserved   []string
	released   []string
}

func (f *fakeSchedule) SetDaySchedules(ctx context.Context, doctorID string, days []models.DoctorDaySchedule) error {
	return nil
}

func (f *fakeSchedule) GetRange(ctx context.Context, doctorID, startDate, endDate string) ([]models.DoctorDaySchedule, error) {
	return nil, nil
}

func (f *fakeSchedule) GetDay(ctx context.Context, doctorID, date string) (*models.DoctorDaySchedule, error) {
	return nil, nil
}

func (f *fakeSchedule) ReserveSlot(ctx context.Context, doctorID, date, slotTime string) error {
	if f.reserveErr != nil {
		return f.reserveErr
	}
	f.reserved = append(f.reserved, date+" "+slotTime)
	return nil
}

func (f *fakeSchedule) ReleaseSlot(ctx context.Context, doctorID, date, slotTime string) error {
	f.released = append(f.released, date+" "+slotTime)
	return nil
}

type fakeDirectory struct{}

func (fakeDirectory) GetBranches(ctx context.Context) ([]models.Branch, error) { return nil, nil }

func (fakeDirectory) GetBranchByID(ctx context.Context, branchID string) (*models.Branch, error) {
	return &models.Branch{ID: branchID, Name: "Main Campus", Active: true}, nil
}

func (fakeDirectory) GetDepartments(ctx context.Context) ([]models.Department, error) {
	return nil, nil
}

func (fakeDirectory) GetDepartmentByID(ctx context.Context, departmentID string) (*models.Department, error) {
	return &models.Department{ID: departmentID, Name: "Cardiology"}, nil
}

func (fakeDirectory) GetDoctors(ctx context.Context, branchID, departmentID string) ([]models.Doctor, error) {
	return nil, nil
}

func (fakeDirectory) GetDoctorByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	return &models.Doctor{
		ID:           doctorID,
		Name:         "Dr. Chen",
		DepartmentID: "dept-1",
		BranchIDs:    []string{"branch-1"},
		Active:       true,
	}, nil
}

func fixedNow() time.Time {
	return time.Date(2025, time.June, 15, 10, 0, 0, 0, time.UTC)
}

func newTestService(repo *fakeAppointmentRepo, sched *fakeSchedule) *DefaultAppointmentService {
	return &DefaultAppointmentService{
		Repo:      repo,
		Schedule:  sched,
		Directory: fakeDirectory{},
		Now:       fixedNow,
	}
}

func validBookRequest() models.BookAppointmentRequest {
	return models.BookAppointmentRequest{
		DoctorID:        "doc-1",
		BranchID:        "branch-1",
		DepartmentID:    "dept-1",
		AppointmentDate: "2025-06-20",
		AppointmentTime: "09:30:00",
	}
}

func TestBookSuccess(t *testing.T) {
	repo := newFakeAppointmentRepo()
	sched := &fakeSchedule{}
	svc := newTestService(repo, sched)

	appt, err := svc.Book(context.Background(), "patient-1", validBookRequest())
	if err != nil {
		t.Fatalf("Book error: %v", err)
	}
	if appt.Status != models.AppointmentStatusUpcoming {
		t.Errorf("status = %q, want upcoming", appt.Status)
	}
	if appt.DoctorName != "Dr. Chen" || appt.Branch != "Main Campus" || appt.Department != "Cardiology" {
		t.Errorf("directory names not denormalized: %+v", appt)
	}
	if len(sched.reserved) != 1 || sched.reserved[0] != "2025-06-20 09:30" {
		t.Errorf("reserved = %v, want the 09:30 slot key", sched.reserved)
	}
	if len(repo.created) != 1 {
		t.Fatalf("created %d appointments, want 1", len(repo.created))
	}
}

func TestBookConflict(t *testing.T) {
	repo := newFakeAppointmentRepo()
	sched := &fakeSchedule{reserveErr: scheduleRepo.ErrSlotUnavailable}
	svc := newTestService(repo, sched)

	_, err := svc.Book(context.Background(), "patient-1", validBookRequest())
	if !IsConflict(err) {
		t.Fatalf("got %v, want conflict", err)
	}
	if len(repo.created) != 0 {
		t.Errorf("conflict must not create an appointment, created %d", len(repo.created))
	}
}

func TestBookReleasesSlotOnInsertFailure(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.createErr = errors.New("write failed")
	sched := &fakeSchedule{}
	svc := newTestService(repo, sched)

	_, err := svc.Book(context.Background(), "patient-1", validBookRequest())
	if err == nil {
		t.Fatal("expected insert failure to surface")
	}
	if len(sched.released) != 1 || sched.released[0] != "2025-06-20 09:30" {
		t.Errorf("released = %v, want the reserved slot given back", sched.released)
	}
}

func TestBookValidation(t *testing.T) {
	svc := newTestService(newFakeAppointmentRepo(), &fakeSchedule{})

	tests := []struct {
		name   string
		mutate func(*models.BookAppointmentRequest)
	}{
		{"bad date", func(r *models.BookAppointmentRequest) { r.AppointmentDate = "20-06-2025" }},
		{"bad time", func(r *models.BookAppointmentRequest) { r.AppointmentTime = "9:30 AM" }},
		{"past datetime", func(r *models.BookAppointmentRequest) { r.AppointmentDate = "2025-06-01" }},
		{"wrong department", func(r *models.BookAppointmentRequest) { r.DepartmentID = "dept-9" }},
		{"wrong branch", func(r *models.BookAppointmentRequest) { r.BranchID = "branch-9" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validBookRequest()
			tt.mutate(&req)
			_, err := svc.Book(context.Background(), "patient-1", req)
			if !IsValidation(err) {
				t.Fatalf("got %v, want validation error", err)
			}
		})
	}
}

func upcomingAppointment() *models.Appointment {
	return &models.Appointment{
		ID:                  "appt-1",
		PatientID:           "patient-1",
		DoctorID:            "doc-1",
		AppointmentDate:     "2025-06-20",
		AppointmentTime:     "09:30:00",
		AppointmentDateTime: time.Date(2025, time.June, 20, 9, 30, 0, 0, time.UTC),
		Status:              models.AppointmentStatusUpcoming,
	}
}

func TestRescheduleSuccess(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.byID["appt-1"] = upcomingAppointment()
	sched := &fakeSchedule{}
	svc := newTestService(repo, sched)

	appt, err := svc.Reschedule(context.Background(), "patient-1", "appt-1", models.RescheduleRequest{
		AppointmentDate: "2025-06-22",
		AppointmentTime: "11:00:00",
	})
	if err != nil {
		t.Fatalf("Reschedule error: %v", err)
	}
	if appt.ID != "appt-1" {
		t.Errorf("identity changed across reschedule: %q", appt.ID)
	}
	if appt.AppointmentDate != "2025-06-22" || appt.AppointmentTime != "11:00:00" {
		t.Errorf("appointment not moved: %+v", appt)
	}
	if len(sched.reserved) != 1 || sched.reserved[0] != "2025-06-22 11:00" {
		t.Errorf("reserved = %v", sched.reserved)
	}
	// The old slot opens up again.
	if len(sched.released) != 1 || sched.released[0] != "2025-06-20 09:30" {
		t.Errorf("released = %v", sched.released)
	}
}

func TestRescheduleConflictLeavesAppointmentUntouched(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.byID["appt-1"] = upcomingAppointment()
	sched := &fakeSchedule{reserveErr: scheduleRepo.ErrSlotUnavailable}
	svc := newTestService(repo, sched)

	_, err := svc.Reschedule(context.Background(), "patient-1", "appt-1", models.RescheduleRequest{
		AppointmentDate: "2025-06-22",
		AppointmentTime: "11:00:00",
	})
	if !IsConflict(err) {
		t.Fatalf("got %v, want conflict", err)
	}
	if len(repo.updates) != 0 {
		t.Errorf("conflict must not update the appointment: %v", repo.updates)
	}
	if len(sched.released) != 0 {
		t.Errorf("conflict must not release the original slot: %v", sched.released)
	}
}

func TestRescheduleRejectsNonUpcoming(t *testing.T) {
	repo := newFakeAppointmentRepo()
	appt := upcomingAppointment()
	appt.Status = models.AppointmentStatusCancelled
	repo.byID["appt-1"] = appt
	svc := newTestService(repo, &fakeSchedule{})

	_, err := svc.Reschedule(context.Background(), "patient-1", "appt-1", models.RescheduleRequest{
		AppointmentDate: "2025-06-22",
		AppointmentTime: "11:00:00",
	})
	if !IsValidation(err) {
		t.Fatalf("got %v, want validation error", err)
	}
}

func TestRescheduleUnknownAppointment(t *testing.T) {
	svc := newTestService(newFakeAppointmentRepo(), &fakeSchedule{})

	_, err := svc.Reschedule(context.Background(), "patient-1", "appt-9", models.RescheduleRequest{
		AppointmentDate: "2025-06-22",
		AppointmentTime: "11:00:00",
	})
	if !IsNotFound(err) {
		t.Fatalf("got %v, want not found", err)
	}
}

func TestRescheduleScopedToPatient(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.byID["appt-1"] = upcomingAppointment()
	svc := newTestService(repo, &fakeSchedule{})

	_, err := svc.Reschedule(context.Background(), "patient-2", "appt-1", models.RescheduleRequest{
		AppointmentDate: "2025-06-22",
		AppointmentTime: "11:00:00",
	})
	if !IsNotFound(err) {
		t.Fatalf("another patient's appointment must read as not found, got %v", err)
	}
}

func TestCancelSuccess(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.byID["appt-1"] = upcomingAppointment()
	sched := &fakeSchedule{}
	svc := newTestService(repo, sched)

	if err := svc.Cancel(context.Background(), "patient-1", "appt-1", "  feeling better  "); err != nil {
		t.Fatalf("Cancel error: %v", err)
	}

	set, ok := repo.updates["appt-1"]
	if !ok {
		t.Fatal("appointment not updated")
	}
	if set["status"] != models.AppointmentStatusCancelled {
		t.Errorf("status = %v, want cancelled", set["status"])
	}
	if set["cancellationReason"] != "feeling better" {
		t.Errorf("reason = %v, want trimmed reason", set["cancellationReason"])
	}
	if len(sched.released) != 1 || sched.released[0] != "2025-06-20 09:30" {
		t.Errorf("released = %v, want the cancelled slot", sched.released)
	}
}

func TestCancelBlankReason(t *testing.T) {
	repo := newFakeAppointmentRepo()
	repo.byID["appt-1"] = upcomingAppointment()
	svc := newTestService(repo, &fakeSchedule{})

	for _, reason := range []string{"", "   ", "\t\n"} {
		err := svc.Cancel(context.Background(), "patient-1", "appt-1", reason)
		if !IsValidation(err) {
			t.Fatalf("reason %q: got %v, want validation error", reason, err)
		}
	}
	// The gate fires before any read or write.
	if repo.getByIDCall != 0 || len(repo.updates) != 0 {
		t.Errorf("blank reason must not touch the repository: reads=%d updates=%v", repo.getByIDCall, repo.updates)
	}
}

func TestCancelAlreadyCancelled(t *testing.T) {
	repo := newFakeAppointmentRepo()
	appt := upcomingAppointment()
	appt.Status = models.AppointmentStatusCancelled
	repo.byID["appt-1"] = appt
	svc := newTestService(repo, &fakeSchedule{})

	err := svc.Cancel(context.Background(), "patient-1", "appt-1", "changed plans")
	if !IsValidation(err) {
		t.Fatalf("got %v, want validation error", err)
	}
}
