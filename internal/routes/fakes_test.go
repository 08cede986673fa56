package routes

import (
	"context"
	"sort"
	"strings"
	"sync"

	"doctor-portal-server/internal/models"
	"doctor-portal-server/internal/store"
)

type fakePractitioners struct {
	mu             sync.Mutex
	rows           map[uint]*models.Practitioner
	nextID         uint
	profileWrites  int
	passwordWrites int
}

func newFakePractitioners() *fakePractitioners {
	return &fakePractitioners{rows: map[uint]*models.Practitioner{}, nextID: 1}
}

func (f *fakePractitioners) seed(p models.Practitioner, password string) *models.Practitioner {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := p.SetPassword(password); err != nil {
		panic(err)
	}
	if p.ID == 0 {
		p.ID = f.nextID
	}
	if p.ID >= f.nextID {
		f.nextID = p.ID + 1
	}
	f.rows[p.ID] = &p
	return &p
}

func (f *fakePractitioners) get(id uint) *models.Practitioner {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[id]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func (f *fakePractitioners) emailTaken(email string, exceptID uint) bool {
	for id, p := range f.rows {
		if id != exceptID && strings.EqualFold(p.Email, email) {
			return true
		}
	}
	return false
}

func (f *fakePractitioners) Create(_ context.Context, p *models.Practitioner) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.emailTaken(p.Email, 0) {
		return store.ErrDuplicateEmail
	}
	p.ID = f.nextID
	f.nextID++
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakePractitioners) GetByID(_ context.Context, id uint) (*models.Practitioner, error) {
	if p := f.get(id); p != nil {
		return p, nil
	}
	return nil, store.ErrNotFound
}

func (f *fakePractitioners) GetByEmail(_ context.Context, email string) (*models.Practitioner, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.rows {
		if strings.EqualFold(p.Email, email) {
			cp := *p
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakePractitioners) EmailTaken(_ context.Context, email string, exceptID uint) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.emailTaken(email, exceptID), nil
}

func (f *fakePractitioners) UpdateProfile(_ context.Context, id uint, p *models.Practitioner) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return store.ErrNotFound
	}
	if f.emailTaken(p.Email, id) {
		return store.ErrDuplicateEmail
	}
	f.profileWrites++
	row.FirstName = p.FirstName
	row.LastName = p.LastName
	row.Email = p.Email
	row.PhoneNumber = p.PhoneNumber
	row.WorkAddress = p.WorkAddress
	row.Specialty = p.Specialty
	row.LicenseNumber = p.LicenseNumber
	row.Nationality = p.Nationality
	row.BirthDate = p.BirthDate
	row.Gender = p.Gender
	return nil
}

func (f *fakePractitioners) UpdatePassword(_ context.Context, id uint, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok {
		return store.ErrNotFound
	}
	f.passwordWrites++
	row.Password = passwordHash
	return nil
}

type fakePatients struct {
	mu     sync.Mutex
	rows   map[uint]*models.Patient
	nextID uint
	// leakForeign makes GetForPractitioner skip its owner filter.
	leakForeign bool
}

func newFakePatients() *fakePatients {
	return &fakePatients{rows: map[uint]*models.Patient{}, nextID: 1}
}

func (f *fakePatients) seed(p models.Patient) *models.Patient {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == 0 {
		p.ID = f.nextID
	}
	if p.ID >= f.nextID {
		f.nextID = p.ID + 1
	}
	f.rows[p.ID] = &p
	return &p
}

func (f *fakePatients) get(id uint) *models.Patient {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[id]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func (f *fakePatients) Create(_ context.Context, p *models.Patient) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = f.nextID
	f.nextID++
	cp := *p
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakePatients) ListByPractitioner(_ context.Context, practitionerID uint) ([]models.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []models.Patient{}
	for _, p := range f.rows {
		if p.DoctorID == practitionerID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakePatients) CountByPractitioner(ctx context.Context, practitionerID uint) (int64, error) {
	list, err := f.ListByPractitioner(ctx, practitionerID)
	return int64(len(list)), err
}

func (f *fakePatients) GetForPractitioner(_ context.Context, id, practitionerID uint) (*models.Patient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.rows[id]
	if !ok || (p.DoctorID != practitionerID && !f.leakForeign) {
		return nil, store.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakePatients) UpdateForPractitioner(_ context.Context, practitionerID uint, p *models.Patient) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[p.ID]
	if !ok || row.DoctorID != practitionerID {
		return store.ErrNotFound
	}
	cp := *p
	cp.DoctorID = row.DoctorID
	f.rows[p.ID] = &cp
	return nil
}

func (f *fakePatients) DeleteForPractitioner(_ context.Context, id, practitionerID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	row, ok := f.rows[id]
	if !ok || row.DoctorID != practitionerID {
		return store.ErrNotFound
	}
	delete(f.rows, id)
	return nil
}
