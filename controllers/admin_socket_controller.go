package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"hotel-control-backend/realtime"
	"hotel-control-backend/services"
	"hotel-control-backend/utils"
)

const adminErrorQueue = "/queue/admin/error"

// AdminSocketController handles the admin-side realtime actions: listings
// and stats go out as broadcasts to every admin subscriber, mutations
// additionally confirm to the requester's queue.
type AdminSocketController struct {
	Publisher realtime.Publisher
	RoomSvc   *services.RoomService
	GuestSvc  *services.GuestService
	AdminSvc  *services.AdminService
	IoTSvc    *services.IoTService
}

func NewAdminSocketController(
	publisher realtime.Publisher,
	roomSvc *services.RoomService,
	guestSvc *services.GuestService,
	adminSvc *services.AdminService,
	iotSvc *services.IoTService,
) *AdminSocketController {
	return &AdminSocketController{
		Publisher: publisher,
		RoomSvc:   roomSvc,
		GuestSvc:  guestSvc,
		AdminSvc:  adminSvc,
		IoTSvc:    iotSvc,
	}
}

// Register binds every admin action onto the dispatch table.
func (ac *AdminSocketController) Register(d *realtime.Dispatcher) {
	d.Register("admin/rooms", adminErrorQueue, ac.handleRooms)
	d.Register("admin/guests", adminErrorQueue, ac.handleGuests)
	d.Register("admin/stats", adminErrorQueue, ac.handleStats)
	d.Register("admin/rooms/by-status", adminErrorQueue, ac.handleRoomsByStatus)
	d.Register("admin/rooms/by-type", adminErrorQueue, ac.handleRoomsByType)
	d.Register("admin/rooms/by-price", adminErrorQueue, ac.handleRoomsByPrice)
	d.Register("admin/room/update-status", adminErrorQueue, ac.handleUpdateRoomStatus)
	d.Register("admin/room/update-price", adminErrorQueue, ac.handleUpdateRoomPrice)
	d.Register("admin/guest/check-in", adminErrorQueue, ac.handleCheckIn)
	d.Register("admin/guest/check-out", adminErrorQueue, ac.handleCheckOut)
	d.Register("admin/approve-extend-stay", adminErrorQueue, ac.handleApproveExtendStay)
	d.Register("admin/extend-stay-requests", adminErrorQueue, ac.handleExtendStayRequests)
	d.Register("admin/guests/search", adminErrorQueue, ac.handleSearchGuests)
}

func (ac *AdminSocketController) handleRooms(json.RawMessage) error {
	rooms, err := ac.RoomSvc.GetAll()
	if err != nil {
		return err
	}
	ac.Publisher.Broadcast("/topic/admin/rooms", rooms)
	return nil
}

func (ac *AdminSocketController) handleGuests(json.RawMessage) error {
	guests, err := ac.GuestSvc.GetAll()
	if err != nil {
		return err
	}
	ac.Publisher.Broadcast("/topic/admin/guests", guests)
	return nil
}

func (ac *AdminSocketController) handleStats(json.RawMessage) error {
	stats, err := ac.AdminSvc.GetHotelStats()
	if err != nil {
		return err
	}
	ac.Publisher.Broadcast("/topic/admin/stats", stats)
	return nil
}

func (ac *AdminSocketController) handleRoomsByStatus(payload json.RawMessage) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return err
	}

	rooms, err := ac.RoomSvc.GetByStatus(req.Status)
	if err != nil {
		return err
	}
	ac.Publisher.Broadcast("/topic/admin/rooms-by-status", rooms)
	return nil
}

func (ac *AdminSocketController) handleRoomsByType(payload json.RawMessage) error {
	var req struct {
		RoomType string `json:"roomType"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return err
	}

	rooms, err := ac.RoomSvc.GetByType(req.RoomType)
	if err != nil {
		return err
	}
	ac.Publisher.Broadcast("/topic/admin/rooms-by-type", rooms)
	return nil
}

func (ac *AdminSocketController) handleRoomsByPrice(payload json.RawMessage) error {
	var req struct {
		MinPrice float64 `json:"minPrice"`
		MaxPrice float64 `json:"maxPrice"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return err
	}

	rooms, err := ac.RoomSvc.GetByPriceRange(req.MinPrice, req.MaxPrice)
	if err != nil {
		return err
	}
	ac.Publisher.Broadcast("/topic/admin/rooms-by-price", rooms)
	return nil
}

func (ac *AdminSocketController) handleUpdateRoomStatus(payload json.RawMessage) error {
	var req struct {
		RoomID      uint   `json:"roomId"`
		Status      string `json:"status"`
		RequesterID string `json:"requesterId"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return err
	}

	room, err := ac.RoomSvc.UpdateStatus(req.RoomID, req.Status)
	if err != nil {
		return err
	}

	ac.Publisher.Broadcast("/topic/admin/room-updated", room)
	ac.Publisher.SendToUser(requesterID(req.RequesterID), "/queue/admin/room-update-result", map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Status of room %s updated", room.RoomNumber),
		"room":    room,
	})
	return nil
}

func (ac *AdminSocketController) handleUpdateRoomPrice(payload json.RawMessage) error {
	var req struct {
		RoomID      uint    `json:"roomId"`
		Price       float64 `json:"price"`
		RequesterID string  `json:"requesterId"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return err
	}

	room, err := ac.RoomSvc.UpdatePrice(req.RoomID, req.Price)
	if err != nil {
		return err
	}

	ac.Publisher.Broadcast("/topic/admin/room-price-updated", room)
	ac.Publisher.SendToUser(requesterID(req.RequesterID), "/queue/admin/room-update-result", map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Price of room %s updated", room.RoomNumber),
		"room":    room,
	})
	return nil
}

func (ac *AdminSocketController) handleCheckIn(payload json.RawMessage) error {
	var req struct {
		FirstName    string `json:"firstName"`
		LastName     string `json:"lastName"`
		Email        string `json:"email"`
		Phone        string `json:"phone"`
		RoomNumber   string `json:"roomNumber"`
		CheckOutDate string `json:"checkOutDate"`
		RequesterID  string `json:"requesterId"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return err
	}

	var checkOut *time.Time
	if req.CheckOutDate != "" {
		parsed, err := utils.ParseDate(req.CheckOutDate)
		if err != nil {
			return fmt.Errorf("invalid checkOutDate %q: %w", req.CheckOutDate, err)
		}
		checkOut = &parsed
	}

	guest, err := ac.GuestSvc.CheckIn(req.FirstName, req.LastName, req.Email, req.Phone, req.RoomNumber, checkOut)
	if err != nil {
		return err
	}

	room, err := ac.RoomSvc.GetByNumber(req.RoomNumber)
	if err != nil {
		return err
	}

	ac.Publisher.Broadcast("/topic/admin/guest-checked-in", guest)
	ac.Publisher.SendToUser(requesterID(req.RequesterID), "/queue/admin/check-in-result", map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Guest %s checked in to room %s", guest.FullName(), room.RoomNumber),
		"guest":   guest,
		"room":    room,
	})
	return nil
}

func (ac *AdminSocketController) handleCheckOut(payload json.RawMessage) error {
	var req struct {
		GuestID     uint   `json:"guestId"`
		RequesterID string `json:"requesterId"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return err
	}

	summary, err := ac.GuestSvc.CheckOut(req.GuestID)
	if err != nil {
		return err
	}

	ac.Publisher.Broadcast("/topic/admin/guest-checked-out", summary)
	ac.Publisher.SendToUser(requesterID(req.RequesterID), "/queue/admin/check-out-result", map[string]interface{}{
		"success":      true,
		"message":      fmt.Sprintf("Guest %s checked out of room %s", summary.GuestName, summary.RoomNumber),
		"checkoutInfo": summary,
	})
	return nil
}

func (ac *AdminSocketController) handleApproveExtendStay(payload json.RawMessage) error {
	var req struct {
		GuestID         uint   `json:"guestId"`
		NewCheckOutDate string `json:"newCheckOutDate"`
		Approved        bool   `json:"approved"`
		Comment         string `json:"comment"`
		RequesterID     string `json:"requesterId"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return err
	}

	newDate, err := utils.ParseDate(req.NewCheckOutDate)
	if err != nil {
		return fmt.Errorf("invalid newCheckOutDate %q: %w", req.NewCheckOutDate, err)
	}

	decision, err := ac.AdminSvc.ProcessExtendStay(req.GuestID, newDate, req.Approved, req.Comment)
	if err != nil {
		return err
	}
	ac.IoTSvc.ResolveExtendStayRequests(req.GuestID, req.Approved)

	topic := "/topic/admin/guest-stay-extension-rejected"
	if req.Approved {
		topic = "/topic/admin/guest-stay-extended"
	}
	ac.Publisher.Broadcast(topic, decision)
	ac.Publisher.SendToUser(requesterID(req.RequesterID), "/queue/admin/extend-stay-result", decision)

	// Notify the guest, if online. Guest reply destinations are keyed by
	// the "guest-{id}" requester convention.
	notification := map[string]interface{}{"success": req.Approved}
	if req.Approved {
		notification["message"] = "Your stay extension request has been approved"
		notification["newCheckOutDate"] = decision.NewCheckOutDate
		notification["roomNumber"] = decision.RoomNumber
	} else {
		notification["message"] = "Your stay extension request has been rejected"
		notification["reason"] = req.Comment
	}
	ac.Publisher.SendToUser(fmt.Sprintf("guest-%d", req.GuestID), "/queue/extend-stay-response", notification)
	return nil
}

func (ac *AdminSocketController) handleExtendStayRequests(json.RawMessage) error {
	ac.Publisher.Broadcast("/topic/admin/extend-stay-requests", ac.IoTSvc.ListExtendStayRequests())
	return nil
}

func (ac *AdminSocketController) handleSearchGuests(payload json.RawMessage) error {
	var req struct {
		SearchTerm  string `json:"searchTerm"`
		SearchField string `json:"searchField"`
		RequesterID string `json:"requesterId"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return err
	}

	log.Printf("➡️ admin search guests field=%s term=%s", req.SearchField, req.SearchTerm)
	results, err := ac.GuestSvc.Search(req.SearchTerm, req.SearchField)
	if err != nil {
		return err
	}

	// search results go to the requester only, never to a topic
	ac.Publisher.SendToUser(requesterID(req.RequesterID), "/queue/admin/guest-search-results", results)
	return nil
}

// requesterID defaults the payload-supplied identifier like the source did.
func requesterID(id string) string {
	if id == "" {
		return "0"
	}
	return id
}
