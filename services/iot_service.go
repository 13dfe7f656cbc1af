package services

import (
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"hotel-control-backend/models"
	"hotel-control-backend/utils"
)

// Extend-stay request states.
const (
	RequestPending  = "PENDING"
	RequestApproved = "APPROVED"
	RequestRejected = "REJECTED"
)

// DoorActionResult reports a simulated door operation.
type DoorActionResult struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DoorStatus string `json:"doorStatus"`
	Timestamp  string `json:"timestamp"`
}

// ClimateStatus reports the simulated climate system state.
type ClimateStatus struct {
	Temperature float64 `json:"temperature"`
	Humidity    int     `json:"humidity"`
	Mode        string  `json:"mode"`
	IsOn        bool    `json:"isOn"`
}

// TemperatureResult acknowledges a simulated thermostat change.
type TemperatureResult struct {
	Success     bool    `json:"success"`
	Message     string  `json:"message"`
	Temperature float64 `json:"temperature"`
	Timestamp   string  `json:"timestamp"`
}

// ExtendStayRequest is a guest's pending request to move the checkout date.
type ExtendStayRequest struct {
	RequestID             string `json:"requestId"`
	GuestID               uint   `json:"guestId"`
	GuestName             string `json:"guestName"`
	RoomNumber            string `json:"roomNumber"`
	CurrentCheckOutDate   string `json:"currentCheckOutDate"`
	RequestedCheckOutDate string `json:"requestedCheckOutDate"`
	RequestedAt           string `json:"requestedAt"`
	Status                string `json:"status"`
}

// IoTService simulates the in-room devices (door lock, thermostat) and keeps
// the live extend-stay request registry. The registry replaces the source's
// fabricated example list: the admin listing and the approval path now act
// on the same records.
type IoTService struct {
	mu       sync.Mutex
	requests map[string]ExtendStayRequest
}

func NewIoTService() *IoTService {
	return &IoTService{requests: map[string]ExtendStayRequest{}}
}

// SimulateDoorOpen always succeeds; there is no device behind it.
func (s *IoTService) SimulateDoorOpen(guestID uint, roomNumber string) *DoorActionResult {
	log.Printf("➡️ IoTService door open guest_id=%d room=%s", guestID, roomNumber)
	return &DoorActionResult{
		Success:    true,
		Message:    fmt.Sprintf("Door of room %s opened", roomNumber),
		DoorStatus: "OPEN",
		Timestamp:  time.Now().Format(time.RFC3339),
	}
}

// SimulateDoorClose always succeeds.
func (s *IoTService) SimulateDoorClose(guestID uint, roomNumber string) *DoorActionResult {
	log.Printf("➡️ IoTService door close guest_id=%d room=%s", guestID, roomNumber)
	return &DoorActionResult{
		Success:    true,
		Message:    fmt.Sprintf("Door of room %s closed", roomNumber),
		DoorStatus: "CLOSED",
		Timestamp:  time.Now().Format(time.RFC3339),
	}
}

// GetClimateStatus returns stub readings; a real integration would query the
// room's sensor feed.
func (s *IoTService) GetClimateStatus(guestID uint, roomNumber string) *ClimateStatus {
	return &ClimateStatus{
		Temperature: 22.5,
		Humidity:    45,
		Mode:        "AUTO",
		IsOn:        true,
	}
}

// SetTemperature accepts any numeric value and always succeeds.
func (s *IoTService) SetTemperature(guestID uint, roomNumber string, temperature float64) *TemperatureResult {
	log.Printf("➡️ IoTService set temperature guest_id=%d room=%s temp=%.1f", guestID, roomNumber, temperature)
	return &TemperatureResult{
		Success:     true,
		Message:     fmt.Sprintf("Temperature in room %s set to %.1f°C", roomNumber, temperature),
		Temperature: temperature,
		Timestamp:   time.Now().Format(time.RFC3339),
	}
}

// CreateExtendStayRequest records a PENDING request for the guest.
func (s *IoTService) CreateExtendStayRequest(guest *models.Guest, requestedCheckOut time.Time) ExtendStayRequest {
	request := ExtendStayRequest{
		RequestID:             "REQ-" + uuid.NewString(),
		GuestID:               guest.ID,
		GuestName:             guest.FullName(),
		RoomNumber:            guest.RoomNumber,
		CurrentCheckOutDate:   utils.FormatDate(guest.CheckOutDate),
		RequestedCheckOutDate: utils.FormatDate(requestedCheckOut),
		RequestedAt:           time.Now().Format(time.RFC3339),
		Status:                RequestPending,
	}

	s.mu.Lock()
	s.requests[request.RequestID] = request
	s.mu.Unlock()

	log.Printf("✅ IoTService extend-stay request %s for guest_id=%d", request.RequestID, guest.ID)
	return request
}

// ListExtendStayRequests returns every recorded request, oldest first.
func (s *IoTService) ListExtendStayRequests() []ExtendStayRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	requests := make([]ExtendStayRequest, 0, len(s.requests))
	for _, request := range s.requests {
		requests = append(requests, request)
	}
	sort.Slice(requests, func(i, j int) bool { return requests[i].RequestedAt < requests[j].RequestedAt })
	return requests
}

// ResolveExtendStayRequests marks every pending request of the guest as
// approved or rejected. Returns the number of requests resolved.
func (s *IoTService) ResolveExtendStayRequests(guestID uint, approved bool) int {
	status := RequestRejected
	if approved {
		status = RequestApproved
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	resolved := 0
	for id, request := range s.requests {
		if request.GuestID == guestID && request.Status == RequestPending {
			request.Status = status
			s.requests[id] = request
			resolved++
		}
	}
	return resolved
}
