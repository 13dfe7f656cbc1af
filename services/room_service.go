package services

import (
	"log"

	"hotel-control-backend/models"
	"hotel-control-backend/repositories"
)

type RoomService struct {
	Rooms repositories.RoomRepository
}

func NewRoomService(rooms repositories.RoomRepository) *RoomService {
	return &RoomService{Rooms: rooms}
}

func (s *RoomService) GetAll() ([]models.Room, error) {
	return s.Rooms.FindAll()
}

func (s *RoomService) GetByID(id uint) (*models.Room, error) {
	return s.Rooms.FindByID(id)
}

func (s *RoomService) GetByNumber(number string) (*models.Room, error) {
	return s.Rooms.FindByNumber(number)
}

func (s *RoomService) GetByStatus(status string) ([]models.Room, error) {
	rooms, err := s.Rooms.FindAll()
	if err != nil {
		return nil, err
	}

	status = models.NormalizeStatus(status)
	filtered := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.Status == status {
			filtered = append(filtered, room)
		}
	}
	return filtered, nil
}

func (s *RoomService) GetByType(roomType string) ([]models.Room, error) {
	rooms, err := s.Rooms.FindAll()
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.RoomType == roomType {
			filtered = append(filtered, room)
		}
	}
	return filtered, nil
}

// GetByPriceRange filters rooms with an inclusive price window.
func (s *RoomService) GetByPriceRange(minPrice, maxPrice float64) ([]models.Room, error) {
	rooms, err := s.Rooms.FindAll()
	if err != nil {
		return nil, err
	}

	filtered := make([]models.Room, 0, len(rooms))
	for _, room := range rooms {
		if room.PricePerNight >= minPrice && room.PricePerNight <= maxPrice {
			filtered = append(filtered, room)
		}
	}
	return filtered, nil
}

// UpdateStatus overwrites the room status. Any status may follow any other;
// there is no transition validation.
func (s *RoomService) UpdateStatus(id uint, newStatus string) (*models.Room, error) {
	log.Printf("➡️ RoomService.UpdateStatus id=%d status=%s", id, newStatus)

	room, err := s.Rooms.FindByID(id)
	if err != nil {
		return nil, err
	}

	room.Status = models.NormalizeStatus(newStatus)
	if err := s.Rooms.Save(room); err != nil {
		return nil, err
	}
	return room, nil
}

// UpdatePrice overwrites the nightly price, no range validation.
func (s *RoomService) UpdatePrice(id uint, newPrice float64) (*models.Room, error) {
	log.Printf("➡️ RoomService.UpdatePrice id=%d price=%.2f", id, newPrice)

	room, err := s.Rooms.FindByID(id)
	if err != nil {
		return nil, err
	}

	room.PricePerNight = newPrice
	if err := s.Rooms.Save(room); err != nil {
		return nil, err
	}
	return room, nil
}
