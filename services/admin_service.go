package services

import (
	"log"
	"time"

	"hotel-control-backend/models"
	"hotel-control-backend/utils"
)

// HotelStats is the hotel-wide aggregate broadcast to admin subscribers.
type HotelStats struct {
	TotalGuests            int     `json:"totalGuests"`
	TotalRooms             int     `json:"totalRooms"`
	AvailableRooms         int     `json:"availableRooms"`
	OccupiedRooms          int     `json:"occupiedRooms"`
	MaintenanceRooms       int     `json:"maintenanceRooms"`
	OccupancyRate          float64 `json:"occupancyRate"`
	AverageStayDuration    float64 `json:"averageStayDuration"`
	GuestsCheckedInToday   int     `json:"guestsCheckedInToday"`
	GuestsCheckingOutToday int     `json:"guestsCheckingOutToday"`
	TotalRevenue           float64 `json:"totalRevenue"`
}

// ExtendStayDecision is the reply sent back for an extend-stay approval or
// rejection. The envelope reports success for both outcomes; only Approved
// and Reason tell them apart. That duality is source behaviour and is kept
// as a contract.
type ExtendStayDecision struct {
	Success         bool          `json:"success"`
	Approved        bool          `json:"approved"`
	Message         string        `json:"message"`
	Guest           *models.Guest `json:"guest"`
	RoomNumber      string        `json:"roomNumber"`
	NewCheckOutDate string        `json:"newCheckOutDate,omitempty"`
	Reason          string        `json:"reason,omitempty"`
}

type AdminService struct {
	GuestSvc *GuestService
	RoomSvc  *RoomService
}

func NewAdminService(guestSvc *GuestService, roomSvc *RoomService) *AdminService {
	return &AdminService{GuestSvc: guestSvc, RoomSvc: roomSvc}
}

// GetHotelStats aggregates room and guest counts into the dashboard figures.
func (s *AdminService) GetHotelStats() (*HotelStats, error) {
	guests, err := s.GuestSvc.GetAll()
	if err != nil {
		return nil, err
	}
	rooms, err := s.RoomSvc.GetAll()
	if err != nil {
		return nil, err
	}

	stats := &HotelStats{
		TotalGuests: len(guests),
		TotalRooms:  len(rooms),
	}

	for _, room := range rooms {
		switch room.Status {
		case models.RoomAvailable:
			stats.AvailableRooms++
		case models.RoomOccupied:
			stats.OccupiedRooms++
		case models.RoomMaintenance:
			stats.MaintenanceRooms++
		}
	}

	if len(rooms) > 0 {
		stats.OccupancyRate = float64(stats.OccupiedRooms) / float64(len(rooms)) * 100
	}

	today := utils.Today()
	priceByRoom := make(map[uint]float64, len(rooms))
	for _, room := range rooms {
		priceByRoom[room.ID] = room.PricePerNight
	}

	var totalNights int
	for _, guest := range guests {
		nights := utils.DaysBetween(guest.CheckInDate, guest.CheckOutDate)
		totalNights += nights
		stats.TotalRevenue += priceByRoom[guest.RoomID] * float64(nights)

		if utils.SameDay(guest.CheckInDate, today) {
			stats.GuestsCheckedInToday++
		}
		if utils.SameDay(guest.CheckOutDate, today) {
			stats.GuestsCheckingOutToday++
		}
	}
	if len(guests) > 0 {
		stats.AverageStayDuration = float64(totalNights) / float64(len(guests))
	}

	return stats, nil
}

// ProcessExtendStay resolves a guest's pending extension. Approval goes
// through GuestService.ExtendStay (with its date validation); rejection
// leaves the guest untouched and carries the admin comment as the reason.
func (s *AdminService) ProcessExtendStay(guestID uint, newCheckOutDate time.Time, approved bool, adminComment string) (*ExtendStayDecision, error) {
	log.Printf("➡️ AdminService.ProcessExtendStay guest_id=%d approved=%v", guestID, approved)

	guest, err := s.GuestSvc.GetByID(guestID)
	if err != nil {
		return nil, err
	}

	if !approved {
		return &ExtendStayDecision{
			Success:    true,
			Approved:   false,
			Message:    "Stay extension request rejected",
			Guest:      guest,
			RoomNumber: guest.RoomNumber,
			Reason:     adminComment,
		}, nil
	}

	updated, err := s.GuestSvc.ExtendStay(guestID, newCheckOutDate)
	if err != nil {
		return nil, err
	}

	return &ExtendStayDecision{
		Success:         true,
		Approved:        true,
		Message:         "Stay extension request approved",
		Guest:           updated,
		RoomNumber:      guest.RoomNumber,
		NewCheckOutDate: utils.FormatDate(updated.CheckOutDate),
	}, nil
}
