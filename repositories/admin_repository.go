package repositories

import (
	"errors"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"hotel-control-backend/models"
)

// AdminRepository is the store boundary for admin accounts. Admins carry no
// business logic; the repository exists for seeding and the read-only API.
type AdminRepository interface {
	FindAll() ([]models.Admin, error)
	FindByUsername(username string) (*models.Admin, error)
	Save(admin *models.Admin) error
	Count() (int64, error)
}

type GormAdminRepository struct {
	DB *gorm.DB
}

func NewGormAdminRepository(db *gorm.DB) *GormAdminRepository {
	return &GormAdminRepository{DB: db}
}

func (r *GormAdminRepository) FindAll() ([]models.Admin, error) {
	var admins []models.Admin
	err := r.DB.Order("id").Find(&admins).Error
	return admins, err
}

func (r *GormAdminRepository) FindByUsername(username string) (*models.Admin, error) {
	var admin models.Admin
	if err := r.DB.Where("username = ?", username).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

func (r *GormAdminRepository) Save(admin *models.Admin) error {
	return r.DB.Save(admin).Error
}

func (r *GormAdminRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&models.Admin{}).Count(&count).Error
	return count, err
}

type MemoryAdminRepository struct {
	mu     sync.Mutex
	admins map[uint]models.Admin
	nextID uint
}

func NewMemoryAdminRepository() *MemoryAdminRepository {
	return &MemoryAdminRepository{admins: map[uint]models.Admin{}, nextID: 1}
}

func (r *MemoryAdminRepository) FindAll() ([]models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	admins := make([]models.Admin, 0, len(r.admins))
	for _, admin := range r.admins {
		admins = append(admins, admin)
	}
	sort.Slice(admins, func(i, j int) bool { return admins[i].ID < admins[j].ID })
	return admins, nil
}

func (r *MemoryAdminRepository) FindByUsername(username string) (*models.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, admin := range r.admins {
		if admin.Username == username {
			found := admin
			return &found, nil
		}
	}
	return nil, ErrAdminNotFound
}

func (r *MemoryAdminRepository) Save(admin *models.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if admin.ID == 0 {
		admin.ID = r.nextID
		r.nextID++
		admin.CreatedAt = now
	}
	admin.UpdatedAt = now
	r.admins[admin.ID] = *admin
	return nil
}

func (r *MemoryAdminRepository) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.admins)), nil
}
