package controllers

import (
	"encoding/json"
	"fmt"

	"hotel-control-backend/models"
	"hotel-control-backend/realtime"
	"hotel-control-backend/services"
	"hotel-control-backend/utils"
)

const guestErrorQueue = "/queue/error"

// GuestSocketController handles the guest-facing realtime actions. Every
// operation takes the guest id as its capability token — any caller who
// knows a guest id can act as that guest; there is no session validation.
type GuestSocketController struct {
	Publisher realtime.Publisher
	GuestSvc  *services.GuestService
	RoomSvc   *services.RoomService
	IoTSvc    *services.IoTService
}

func NewGuestSocketController(
	publisher realtime.Publisher,
	guestSvc *services.GuestService,
	roomSvc *services.RoomService,
	iotSvc *services.IoTService,
) *GuestSocketController {
	return &GuestSocketController{
		Publisher: publisher,
		GuestSvc:  guestSvc,
		RoomSvc:   roomSvc,
		IoTSvc:    iotSvc,
	}
}

// Register binds every guest action onto the dispatch table.
func (gc *GuestSocketController) Register(d *realtime.Dispatcher) {
	d.Register("guest/my-room", guestErrorQueue, gc.handleMyRoom)
	d.Register("guest/my-info", guestErrorQueue, gc.handleMyInfo)
	d.Register("guest/door/open", guestErrorQueue, gc.handleDoorOpen)
	d.Register("guest/door/close", guestErrorQueue, gc.handleDoorClose)
	d.Register("guest/climate", guestErrorQueue, gc.handleClimateStatus)
	d.Register("guest/climate/set-temperature", guestErrorQueue, gc.handleSetTemperature)
	d.Register("guest/request-extend-stay", guestErrorQueue, gc.handleRequestExtendStay)
}

type guestRequest struct {
	GuestID     uint   `json:"guestId"`
	RequesterID string `json:"requesterId"`
}

// resolve loads the guest and its room; everything in this controller is
// scoped to state reachable through the supplied guest id.
func (gc *GuestSocketController) resolve(req guestRequest) (*models.Guest, *models.Room, error) {
	guest, err := gc.GuestSvc.GetByID(req.GuestID)
	if err != nil {
		return nil, nil, err
	}
	room, err := gc.RoomSvc.GetByID(guest.RoomID)
	if err != nil {
		return nil, nil, err
	}
	return guest, room, nil
}

func (gc *GuestSocketController) handleMyRoom(payload json.RawMessage) error {
	var req guestRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return err
	}

	guest, room, err := gc.resolve(req)
	if err != nil {
		return err
	}

	gc.Publisher.SendToUser(requesterID(req.RequesterID), "/queue/my-room", map[string]interface{}{
		"roomNumber":    room.RoomNumber,
		"roomType":      room.RoomType,
		"pricePerNight": room.PricePerNight,
		"checkInDate":   utils.FormatDate(guest.CheckInDate),
		"checkOutDate":  utils.FormatDate(guest.CheckOutDate),
	})
	return nil
}

func (gc *GuestSocketController) handleMyInfo(payload json.RawMessage) error {
	var req guestRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return err
	}

	guest, room, err := gc.resolve(req)
	if err != nil {
		return err
	}

	gc.Publisher.SendToUser(requesterID(req.RequesterID), "/queue/my-info", map[string]interface{}{
		"id":           guest.ID,
		"firstName":    guest.FirstName,
		"lastName":     guest.LastName,
		"email":        guest.Email,
		"phone":        guest.Phone,
		"roomNumber":   room.RoomNumber,
		"checkInDate":  utils.FormatDate(guest.CheckInDate),
		"checkOutDate": utils.FormatDate(guest.CheckOutDate),
	})
	return nil
}

func (gc *GuestSocketController) handleDoorOpen(payload json.RawMessage) error {
	return gc.handleDoor(payload, gc.IoTSvc.SimulateDoorOpen)
}

func (gc *GuestSocketController) handleDoorClose(payload json.RawMessage) error {
	return gc.handleDoor(payload, gc.IoTSvc.SimulateDoorClose)
}

func (gc *GuestSocketController) handleDoor(payload json.RawMessage, action func(uint, string) *services.DoorActionResult) error {
	var req guestRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return err
	}

	guest, room, err := gc.resolve(req)
	if err != nil {
		return err
	}

	gc.Publisher.SendToUser(requesterID(req.RequesterID), "/queue/door-status", action(guest.ID, room.RoomNumber))
	return nil
}

func (gc *GuestSocketController) handleClimateStatus(payload json.RawMessage) error {
	var req guestRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return err
	}

	guest, room, err := gc.resolve(req)
	if err != nil {
		return err
	}

	gc.Publisher.SendToUser(requesterID(req.RequesterID), "/queue/climate-status", gc.IoTSvc.GetClimateStatus(guest.ID, room.RoomNumber))
	return nil
}

func (gc *GuestSocketController) handleSetTemperature(payload json.RawMessage) error {
	var req struct {
		guestRequest
		Temperature float64 `json:"temperature"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return err
	}

	guest, room, err := gc.resolve(req.guestRequest)
	if err != nil {
		return err
	}

	result := gc.IoTSvc.SetTemperature(guest.ID, room.RoomNumber, req.Temperature)
	gc.Publisher.SendToUser(requesterID(req.RequesterID), "/queue/climate-update", result)
	return nil
}

func (gc *GuestSocketController) handleRequestExtendStay(payload json.RawMessage) error {
	var req struct {
		guestRequest
		NewCheckOutDate string `json:"newCheckOutDate"`
	}
	if err := json.Unmarshal(payload, &req); err != nil {
		return err
	}

	guest, _, err := gc.resolve(req.guestRequest)
	if err != nil {
		return err
	}

	newDate, err := utils.ParseDate(req.NewCheckOutDate)
	if err != nil {
		return fmt.Errorf("invalid newCheckOutDate %q: %w", req.NewCheckOutDate, err)
	}
	if newDate.Before(utils.Midnight(guest.CheckOutDate)) || newDate.Before(utils.Today()) {
		return services.ErrInvalidCheckOutDate
	}

	request := gc.IoTSvc.CreateExtendStayRequest(guest, newDate)

	gc.Publisher.Broadcast("/topic/admin/extend-stay-requests", request)
	gc.Publisher.SendToUser(requesterID(req.RequesterID), "/queue/extend-stay-request", map[string]interface{}{
		"success":   true,
		"message":   "Stay extension request sent to the administration",
		"requestId": request.RequestID,
	})
	return nil
}
