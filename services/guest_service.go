package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"hotel-control-backend/models"
	"hotel-control-backend/repositories"
	"hotel-control-backend/utils"
)

// ErrRoomNotAvailable rejects a check-in against a room that is occupied or
// under maintenance.
var ErrRoomNotAvailable = errors.New("room is not available for check-in")

// ErrInvalidCheckOutDate rejects a stay extension whose new date is before
// the current checkout date or before today.
var ErrInvalidCheckOutDate = errors.New("new check-out date must be after the current check-out date and today")

// CheckOutSummary is broadcast to admins after a check-out.
type CheckOutSummary struct {
	GuestID      uint   `json:"guestId"`
	GuestName    string `json:"guestName"`
	RoomID       uint   `json:"roomId"`
	RoomNumber   string `json:"roomNumber"`
	CheckOutDate string `json:"checkOutDate"`
}

type GuestService struct {
	Guests repositories.GuestRepository
	Rooms  repositories.RoomRepository
}

func NewGuestService(guests repositories.GuestRepository, rooms repositories.RoomRepository) *GuestService {
	return &GuestService{Guests: guests, Rooms: rooms}
}

func (s *GuestService) GetAll() ([]models.Guest, error) {
	return s.Guests.FindAll()
}

func (s *GuestService) GetByID(id uint) (*models.Guest, error) {
	return s.Guests.FindByID(id)
}

// CheckIn creates a guest in the room identified by number. The room must be
// AVAILABLE. Check-in date is today; checkout defaults to three nights when
// the caller supplies none. The guest and room writes are two separate
// saves, as in the persisted source — there is no transaction across them.
func (s *GuestService) CheckIn(firstName, lastName, email, phone, roomNumber string, checkOutDate *time.Time) (*models.Guest, error) {
	log.Printf("➡️ GuestService.CheckIn %s %s room=%s", firstName, lastName, roomNumber)

	room, err := s.Rooms.FindByNumber(roomNumber)
	if err != nil {
		return nil, err
	}

	if room.Status != models.RoomAvailable {
		return nil, fmt.Errorf("%w: room %s has status %s", ErrRoomNotAvailable, roomNumber, room.Status)
	}

	checkOut := utils.Today().AddDate(0, 0, 3)
	if checkOutDate != nil {
		checkOut = utils.Midnight(*checkOutDate)
	}

	guest := &models.Guest{
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		Phone:        phone,
		RoomID:       room.ID,
		CheckInDate:  utils.Today(),
		CheckOutDate: checkOut,
	}
	if err := s.Guests.Save(guest); err != nil {
		return nil, err
	}

	room.Status = models.RoomOccupied
	room.CurrentGuestsCount++
	if err := s.Rooms.Save(room); err != nil {
		return nil, err
	}

	guest.RoomNumber = room.RoomNumber
	log.Printf("✅ GuestService.CheckIn ok guest_id=%d room=%s", guest.ID, room.RoomNumber)
	return guest, nil
}

// CheckOut stamps today's date on the guest and frees the room.
//
// Known defect, reproduced from the source: the room is flipped back to
// AVAILABLE without checking for remaining co-occupants, so a multi-guest
// room loses its occupied status as soon as any one guest leaves. The fix
// would be to re-read the room and only free it when CurrentGuestsCount
// reaches zero.
func (s *GuestService) CheckOut(guestID uint) (*CheckOutSummary, error) {
	log.Printf("➡️ GuestService.CheckOut guest_id=%d", guestID)

	guest, err := s.Guests.FindByID(guestID)
	if err != nil {
		return nil, err
	}

	room, err := s.Rooms.FindByID(guest.RoomID)
	if err != nil {
		return nil, err
	}

	guest.CheckOutDate = utils.Today()
	if err := s.Guests.Save(guest); err != nil {
		return nil, err
	}

	room.Status = models.RoomAvailable
	if room.CurrentGuestsCount > 0 {
		room.CurrentGuestsCount--
	}
	if err := s.Rooms.Save(room); err != nil {
		return nil, err
	}

	log.Printf("✅ GuestService.CheckOut ok guest_id=%d room=%s", guestID, room.RoomNumber)
	return &CheckOutSummary{
		GuestID:      guest.ID,
		GuestName:    guest.FullName(),
		RoomID:       room.ID,
		RoomNumber:   room.RoomNumber,
		CheckOutDate: utils.FormatDate(guest.CheckOutDate),
	}, nil
}

// ExtendStay overwrites the guest's checkout date after validating it
// against the current date and the current checkout.
func (s *GuestService) ExtendStay(guestID uint, newCheckOutDate time.Time) (*models.Guest, error) {
	log.Printf("➡️ GuestService.ExtendStay guest_id=%d until=%s", guestID, utils.FormatDate(newCheckOutDate))

	guest, err := s.Guests.FindByID(guestID)
	if err != nil {
		return nil, err
	}

	newDate := utils.Midnight(newCheckOutDate)
	if newDate.Before(utils.Midnight(guest.CheckOutDate)) || newDate.Before(utils.Today()) {
		return nil, ErrInvalidCheckOutDate
	}

	guest.CheckOutDate = newDate
	if err := s.Guests.Save(guest); err != nil {
		return nil, err
	}
	return guest, nil
}

// Search filters guests by a single field, or across name/email/phone when
// the field is empty or unknown. Name and email matching is
// case-insensitive; phone and room number are matched as-is.
func (s *GuestService) Search(term, field string) ([]models.Guest, error) {
	guests, err := s.Guests.FindAll()
	if err != nil {
		return nil, err
	}

	lowered := strings.ToLower(term)
	match := func(g models.Guest) bool {
		switch field {
		case "lastName":
			return strings.Contains(strings.ToLower(g.LastName), lowered)
		case "firstName":
			return strings.Contains(strings.ToLower(g.FirstName), lowered)
		case "email":
			return strings.Contains(strings.ToLower(g.Email), lowered)
		case "phone":
			return strings.Contains(g.Phone, term)
		case "roomNumber":
			return strings.Contains(g.RoomNumber, term)
		default:
			return strings.Contains(strings.ToLower(g.LastName), lowered) ||
				strings.Contains(strings.ToLower(g.FirstName), lowered) ||
				strings.Contains(strings.ToLower(g.Email), lowered) ||
				strings.Contains(g.Phone, term)
		}
	}

	results := make([]models.Guest, 0)
	for _, guest := range guests {
		if match(guest) {
			results = append(results, guest)
		}
	}
	return results, nil
}
