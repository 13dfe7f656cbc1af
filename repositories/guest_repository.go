package repositories

import (
	"errors"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"

	"hotel-control-backend/models"
)

// GuestRepository is the store boundary for guests. Returned guests carry
// the owning room's number in the RoomNumber convenience field.
type GuestRepository interface {
	FindAll() ([]models.Guest, error)
	FindByID(id uint) (*models.Guest, error)
	Save(guest *models.Guest) error
}

// ---------------------------------------------------------------------------
// gorm implementation
// ---------------------------------------------------------------------------

type GormGuestRepository struct {
	DB *gorm.DB
}

func NewGormGuestRepository(db *gorm.DB) *GormGuestRepository {
	return &GormGuestRepository{DB: db}
}

func fillRoomNumber(guests []models.Guest) {
	for i := range guests {
		if guests[i].Room != nil {
			guests[i].RoomNumber = guests[i].Room.RoomNumber
		}
	}
}

func (r *GormGuestRepository) FindAll() ([]models.Guest, error) {
	var guests []models.Guest
	if err := r.DB.Preload("Room").Order("id").Find(&guests).Error; err != nil {
		return nil, err
	}
	fillRoomNumber(guests)
	return guests, nil
}

func (r *GormGuestRepository) FindByID(id uint) (*models.Guest, error) {
	var guest models.Guest
	if err := r.DB.Preload("Room").First(&guest, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGuestNotFound
		}
		return nil, err
	}
	if guest.Room != nil {
		guest.RoomNumber = guest.Room.RoomNumber
	}
	return &guest, nil
}

func (r *GormGuestRepository) Save(guest *models.Guest) error {
	return r.DB.Omit("Room").Save(guest).Error
}

// ---------------------------------------------------------------------------
// in-memory implementation
// ---------------------------------------------------------------------------

type MemoryGuestRepository struct {
	mu     sync.Mutex
	guests map[uint]models.Guest
	nextID uint

	// rooms resolves the RoomNumber convenience field; wired by NewMemoryStore.
	rooms *MemoryRoomRepository
}

func NewMemoryGuestRepository() *MemoryGuestRepository {
	return &MemoryGuestRepository{guests: map[uint]models.Guest{}, nextID: 1}
}

func (r *MemoryGuestRepository) attach(guest models.Guest) models.Guest {
	if r.rooms == nil {
		return guest
	}
	r.rooms.mu.Lock()
	defer r.rooms.mu.Unlock()
	if room, ok := r.rooms.rooms[guest.RoomID]; ok {
		guest.RoomNumber = room.RoomNumber
		roomCopy := room
		guest.Room = &roomCopy
	}
	return guest
}

func (r *MemoryGuestRepository) FindAll() ([]models.Guest, error) {
	r.mu.Lock()
	guests := make([]models.Guest, 0, len(r.guests))
	for _, guest := range r.guests {
		guests = append(guests, guest)
	}
	r.mu.Unlock()

	sort.Slice(guests, func(i, j int) bool { return guests[i].ID < guests[j].ID })
	for i := range guests {
		guests[i] = r.attach(guests[i])
	}
	return guests, nil
}

func (r *MemoryGuestRepository) FindByID(id uint) (*models.Guest, error) {
	r.mu.Lock()
	guest, ok := r.guests[id]
	r.mu.Unlock()
	if !ok {
		return nil, ErrGuestNotFound
	}
	guest = r.attach(guest)
	return &guest, nil
}

func (r *MemoryGuestRepository) Save(guest *models.Guest) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	if guest.ID == 0 {
		guest.ID = r.nextID
		r.nextID++
		guest.CreatedAt = now
	}
	guest.UpdatedAt = now

	stored := *guest
	stored.Room = nil
	r.guests[guest.ID] = stored
	return nil
}

// currentInRoom returns the guests still occupying a room: their checkout
// date has not arrived yet. Called with the room mutex held by the caller.
func (r *MemoryGuestRepository) currentInRoom(roomID uint) []models.Guest {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	var current []models.Guest
	for _, guest := range r.guests {
		if guest.RoomID == roomID && guest.CheckOutDate.After(now) {
			current = append(current, guest)
		}
	}
	sort.Slice(current, func(i, j int) bool { return current[i].ID < current[j].ID })
	return current
}

// NewMemoryStore builds the in-memory room and guest repositories with their
// cross-references wired, for demo mode and tests.
func NewMemoryStore() (*MemoryRoomRepository, *MemoryGuestRepository) {
	rooms := NewMemoryRoomRepository()
	guests := NewMemoryGuestRepository()
	rooms.guests = guests
	guests.rooms = rooms
	return rooms, guests
}
