package service

import (
	"context"

	"github.com/prn-tf/wilayah/internal/domain"
	"github.com/prn-tf/wilayah/internal/repository"
)

// MockUserRepository is a mock implementation of repository.UserRepository.
type MockUserRepository struct {
	users     map[int64]*domain.User
	nextID    int64
	createErr error
	getErr    error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:  make(map[int64]*domain.User),
		nextID: 1,
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	for _, u := range m.users {
		if u.Email == user.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	if u, exists := m.users[id]; exists {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	for _, u := range m.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockUserRepository) List(ctx context.Context) ([]*domain.User, error) {
	var result []*domain.User
	for _, u := range m.users {
		result = append(result, u)
	}
	return result, nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id int64) error {
	if _, exists := m.users[id]; !exists {
		return domain.ErrUserNotFound
	}
	delete(m.users, id)
	return nil
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

// MockProvinceRepository is a mock implementation of repository.ProvinceRepository.
type MockProvinceRepository struct {
	provinces map[int64]*domain.Province
	nextID    int64
	createErr error
	listErr   error
}

func NewMockProvinceRepository() *MockProvinceRepository {
	return &MockProvinceRepository{
		provinces: make(map[int64]*domain.Province),
		nextID:    1,
	}
}

func (m *MockProvinceRepository) Create(ctx context.Context, province *domain.Province) error {
	if m.createErr != nil {
		return m.createErr
	}
	province.ID = m.nextID
	m.nextID++
	m.provinces[province.ID] = province
	return nil
}

func (m *MockProvinceRepository) GetByID(ctx context.Context, id int64) (*domain.Province, error) {
	if p, exists := m.provinces[id]; exists {
		return p, nil
	}
	return nil, domain.ErrProvinceNotFound
}

func (m *MockProvinceRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*domain.Province, error) {
	if p, exists := m.provinces[id]; exists && p.UserID == userID {
		return p, nil
	}
	return nil, domain.ErrProvinceNotFound
}

func (m *MockProvinceRepository) ListByUser(ctx context.Context, userID int64) ([]*domain.Province, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*domain.Province
	for _, p := range m.provinces {
		if p.UserID == userID {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *MockProvinceRepository) ListRefs(ctx context.Context) ([]*domain.ProvinceRef, error) {
	var result []*domain.ProvinceRef
	for _, p := range m.provinces {
		result = append(result, &domain.ProvinceRef{ID: p.ID, Nama: p.Nama})
	}
	return result, nil
}

func (m *MockProvinceRepository) Update(ctx context.Context, province *domain.Province) error {
	if p, exists := m.provinces[province.ID]; exists && p.UserID == province.UserID {
		m.provinces[province.ID] = province
		return nil
	}
	return domain.ErrProvinceNotFound
}

func (m *MockProvinceRepository) Delete(ctx context.Context, id, userID int64) error {
	if p, exists := m.provinces[id]; exists && p.UserID == userID {
		delete(m.provinces, id)
		return nil
	}
	return domain.ErrProvinceNotFound
}

func (m *MockProvinceRepository) Exists(ctx context.Context, id int64) (bool, error) {
	_, exists := m.provinces[id]
	return exists, nil
}

var _ repository.ProvinceRepository = (*MockProvinceRepository)(nil)

// MockDistrictRepository is a mock implementation of repository.DistrictRepository.
type MockDistrictRepository struct {
	districts map[int64]*domain.District
	provinces *MockProvinceRepository
	nextID    int64
	createErr error
}

func NewMockDistrictRepository(provinces *MockProvinceRepository) *MockDistrictRepository {
	return &MockDistrictRepository{
		districts: make(map[int64]*domain.District),
		provinces: provinces,
		nextID:    1,
	}
}

func (m *MockDistrictRepository) Create(ctx context.Context, district *domain.District) error {
	if m.createErr != nil {
		return m.createErr
	}
	if _, exists := m.provinces.provinces[district.ProvinsiID]; !exists {
		return repository.ErrForeignKeyViolation
	}
	district.ID = m.nextID
	m.nextID++
	m.districts[district.ID] = district
	return nil
}

func (m *MockDistrictRepository) GetByID(ctx context.Context, id int64) (*domain.District, error) {
	if d, exists := m.districts[id]; exists {
		return d, nil
	}
	return nil, domain.ErrDistrictNotFound
}

func (m *MockDistrictRepository) ListWithProvince(ctx context.Context) ([]*domain.District, error) {
	var result []*domain.District
	for _, d := range m.districts {
		joined := *d
		if p, exists := m.provinces.provinces[d.ProvinsiID]; exists {
			joined.Provinsi = p
		}
		result = append(result, &joined)
	}
	return result, nil
}

func (m *MockDistrictRepository) Update(ctx context.Context, district *domain.District) error {
	if _, exists := m.districts[district.ID]; !exists {
		return domain.ErrDistrictNotFound
	}
	if _, exists := m.provinces.provinces[district.ProvinsiID]; !exists {
		return repository.ErrForeignKeyViolation
	}
	m.districts[district.ID] = district
	return nil
}

func (m *MockDistrictRepository) Delete(ctx context.Context, id int64) error {
	if _, exists := m.districts[id]; !exists {
		return domain.ErrDistrictNotFound
	}
	delete(m.districts, id)
	return nil
}

var _ repository.DistrictRepository = (*MockDistrictRepository)(nil)
