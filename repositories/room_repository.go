package repositories

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"gorm.io/gorm"

	"hotel-control-backend/models"
)

// RoomRepository is the store boundary for rooms. The Guests field on the
// returned rooms is a read model: guests whose checkout date is still in the
// future count as current occupants.
type RoomRepository interface {
	FindAll() ([]models.Room, error)
	FindByID(id uint) (*models.Room, error)
	FindByNumber(number string) (*models.Room, error)
	Save(room *models.Room) error
	Count() (int64, error)
}

// ---------------------------------------------------------------------------
// gorm implementation
// ---------------------------------------------------------------------------

type GormRoomRepository struct {
	DB *gorm.DB
}

func NewGormRoomRepository(db *gorm.DB) *GormRoomRepository {
	return &GormRoomRepository{DB: db}
}

func (r *GormRoomRepository) withGuests() *gorm.DB {
	return r.DB.Preload("Guests", "check_out_date > ?", time.Now())
}

func (r *GormRoomRepository) FindAll() ([]models.Room, error) {
	var rooms []models.Room
	err := r.withGuests().Order("room_number").Find(&rooms).Error
	return rooms, err
}

func (r *GormRoomRepository) FindByID(id uint) (*models.Room, error) {
	var room models.Room
	if err := r.withGuests().First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *GormRoomRepository) FindByNumber(number string) (*models.Room, error) {
	var room models.Room
	err := r.withGuests().Where("room_number = ?", number).First(&room).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		return nil, err
	}
	return &room, nil
}

func (r *GormRoomRepository) Save(room *models.Room) error {
	// Guests is read-only here; the guests table owns the association.
	err := r.DB.Omit("Guests").Save(room).Error
	if err != nil && (strings.Contains(err.Error(), "Duplicate entry") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed")) {
		return ErrDuplicateRoomNumber
	}
	return err
}

func (r *GormRoomRepository) Count() (int64, error) {
	var count int64
	err := r.DB.Model(&models.Room{}).Count(&count).Error
	return count, err
}

// ---------------------------------------------------------------------------
// in-memory implementation
// ---------------------------------------------------------------------------

// MemoryRoomRepository backs demo mode and the tests. Unlike the maps it
// replaces, access is serialized by a mutex; cross-aggregate updates are
// still two separate saves, as in the persisted variant.
type MemoryRoomRepository struct {
	mu     sync.Mutex
	rooms  map[uint]models.Room
	nextID uint

	// guests feeds the Guests read model; wired by NewMemoryStore.
	guests *MemoryGuestRepository
}

func NewMemoryRoomRepository() *MemoryRoomRepository {
	return &MemoryRoomRepository{rooms: map[uint]models.Room{}, nextID: 1}
}

func (r *MemoryRoomRepository) attach(room models.Room) models.Room {
	room.Guests = nil
	if r.guests != nil {
		room.Guests = r.guests.currentInRoom(room.ID)
	}
	return room
}

func (r *MemoryRoomRepository) FindAll() ([]models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rooms := make([]models.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		rooms = append(rooms, r.attach(room))
	}
	sort.Slice(rooms, func(i, j int) bool { return rooms[i].RoomNumber < rooms[j].RoomNumber })
	return rooms, nil
}

func (r *MemoryRoomRepository) FindByID(id uint) (*models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, ErrRoomNotFound
	}
	room = r.attach(room)
	return &room, nil
}

func (r *MemoryRoomRepository) FindByNumber(number string) (*models.Room, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, room := range r.rooms {
		if room.RoomNumber == number {
			room = r.attach(room)
			return &room, nil
		}
	}
	return nil, ErrRoomNotFound
}

func (r *MemoryRoomRepository) Save(room *models.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, existing := range r.rooms {
		if existing.RoomNumber == room.RoomNumber && id != room.ID {
			return ErrDuplicateRoomNumber
		}
	}

	now := time.Now()
	if room.ID == 0 {
		room.ID = r.nextID
		r.nextID++
		room.CreatedAt = now
	}
	room.UpdatedAt = now

	stored := *room
	stored.Guests = nil
	r.rooms[room.ID] = stored
	return nil
}

func (r *MemoryRoomRepository) Count() (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.rooms)), nil
}
