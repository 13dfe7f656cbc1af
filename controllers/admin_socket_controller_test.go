package controllers

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-control-backend/models"
	"hotel-control-backend/realtime"
	"hotel-control-backend/repositories"
	"hotel-control-backend/services"
	"hotel-control-backend/utils"
)

type delivery struct {
	Destination string
	Payload     interface{}
}

// recordingPublisher captures deliveries in-process so handler tests can
// assert on destinations and payloads without a running hub.
type recordingPublisher struct {
	broadcasts []delivery
	directs    []delivery
}

func (p *recordingPublisher) Broadcast(destination string, payload interface{}) {
	p.broadcasts = append(p.broadcasts, delivery{destination, payload})
}

func (p *recordingPublisher) SendToUser(requesterID, queue string, payload interface{}) {
	p.directs = append(p.directs, delivery{realtime.UserQueue(requesterID, queue), payload})
}

func (p *recordingPublisher) broadcastTo(t *testing.T, destination string) interface{} {
	t.Helper()
	for _, d := range p.broadcasts {
		if d.Destination == destination {
			return d.Payload
		}
	}
	t.Fatalf("no broadcast to %s, got %v", destination, p.broadcasts)
	return nil
}

func (p *recordingPublisher) directTo(t *testing.T, destination string) interface{} {
	t.Helper()
	for _, d := range p.directs {
		if d.Destination == destination {
			return d.Payload
		}
	}
	t.Fatalf("no direct message to %s, got %v", destination, p.directs)
	return nil
}

type fixture struct {
	pub        *recordingPublisher
	dispatcher *realtime.Dispatcher
	rooms      *repositories.MemoryRoomRepository
	guests     *repositories.MemoryGuestRepository
	guestSvc   *services.GuestService
	iotSvc     *services.IoTService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	rooms, guests := repositories.NewMemoryStore()
	roomSvc := services.NewRoomService(rooms)
	guestSvc := services.NewGuestService(guests, rooms)
	adminSvc := services.NewAdminService(guestSvc, roomSvc)
	iotSvc := services.NewIoTService()

	pub := &recordingPublisher{}
	d := realtime.NewDispatcher(pub)
	NewAdminSocketController(pub, roomSvc, guestSvc, adminSvc, iotSvc).Register(d)
	NewGuestSocketController(pub, guestSvc, roomSvc, iotSvc).Register(d)

	return &fixture{pub: pub, dispatcher: d, rooms: rooms, guests: guests, guestSvc: guestSvc, iotSvc: iotSvc}
}

func (f *fixture) seedRoom(t *testing.T, number, status string, price float64) *models.Room {
	t.Helper()
	room := &models.Room{
		RoomNumber:    number,
		RoomType:      "standard",
		Status:        status,
		PricePerNight: price,
		MaxGuests:     2,
	}
	require.NoError(t, f.rooms.Save(room))
	return room
}

func (f *fixture) dispatch(action, payload string) {
	f.dispatcher.Dispatch(action, json.RawMessage(payload))
}

func TestAdminRoomsBroadcast(t *testing.T) {
	f := newFixture(t)
	f.seedRoom(t, "101", models.RoomAvailable, 80)
	f.seedRoom(t, "201", models.RoomMaintenance, 130)

	f.dispatch("admin/rooms", `{}`)

	rooms := f.pub.broadcastTo(t, "/topic/admin/rooms").([]models.Room)
	assert.Len(t, rooms, 2)
	assert.Empty(t, f.pub.directs)
}

func TestAdminUpdateRoomStatus(t *testing.T) {
	f := newFixture(t)
	room := f.seedRoom(t, "101", models.RoomAvailable, 80)

	f.dispatch("admin/room/update-status", fmt.Sprintf(`{"roomId":%d,"status":"maintenance","requesterId":"admin-1"}`, room.ID))

	updated := f.pub.broadcastTo(t, "/topic/admin/room-updated").(*models.Room)
	assert.Equal(t, models.RoomMaintenance, updated.Status)

	reply := f.pub.directTo(t, "/user/admin-1/queue/admin/room-update-result").(map[string]interface{})
	assert.Equal(t, true, reply["success"])

	stored, err := f.rooms.FindByID(room.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RoomMaintenance, stored.Status)
}

func TestAdminUpdateRoomStatusUnknownRoom(t *testing.T) {
	f := newFixture(t)

	f.dispatch("admin/room/update-status", `{"roomId":999,"status":"maintenance","requesterId":"admin-1"}`)

	assert.Empty(t, f.pub.broadcasts)
	reply := f.pub.directTo(t, "/user/admin-1/queue/admin/error").(realtime.ErrorReply)
	assert.False(t, reply.Success)
	assert.NotEmpty(t, reply.Message)
}

func TestAdminCheckIn(t *testing.T) {
	f := newFixture(t)
	f.seedRoom(t, "101", models.RoomAvailable, 80)

	f.dispatch("admin/guest/check-in", `{"firstName":"Ivan","lastName":"Petrov","roomNumber":"101","requesterId":"admin-1"}`)

	guest := f.pub.broadcastTo(t, "/topic/admin/guest-checked-in").(*models.Guest)
	assert.Equal(t, "Ivan Petrov", guest.FullName())

	reply := f.pub.directTo(t, "/user/admin-1/queue/admin/check-in-result").(map[string]interface{})
	assert.Equal(t, true, reply["success"])
	assert.Contains(t, reply["message"], "101")

	room, err := f.rooms.FindByNumber("101")
	require.NoError(t, err)
	assert.Equal(t, models.RoomOccupied, room.Status)
}

func TestAdminCheckInOccupiedRoomRejected(t *testing.T) {
	f := newFixture(t)
	f.seedRoom(t, "101", models.RoomOccupied, 80)

	f.dispatch("admin/guest/check-in", `{"firstName":"Ivan","lastName":"Petrov","roomNumber":"101","requesterId":"admin-1"}`)

	assert.Empty(t, f.pub.broadcasts, "failed check-in must not broadcast")
	reply := f.pub.directTo(t, "/user/admin-1/queue/admin/error").(realtime.ErrorReply)
	assert.False(t, reply.Success)
}

func TestAdminCheckOut(t *testing.T) {
	f := newFixture(t)
	f.seedRoom(t, "101", models.RoomAvailable, 80)
	guest, err := f.guestSvc.CheckIn("Ivan", "Petrov", "", "", "101", nil)
	require.NoError(t, err)

	f.dispatch("admin/guest/check-out", fmt.Sprintf(`{"guestId":%d,"requesterId":"admin-1"}`, guest.ID))

	summary := f.pub.broadcastTo(t, "/topic/admin/guest-checked-out").(*services.CheckOutSummary)
	assert.Equal(t, "101", summary.RoomNumber)

	reply := f.pub.directTo(t, "/user/admin-1/queue/admin/check-out-result").(map[string]interface{})
	assert.Equal(t, true, reply["success"])
}

// The rejection still travels as a successful result; the approved flag and
// reason are the only signal that the extension was declined.
func TestAdminRejectExtendStay(t *testing.T) {
	f := newFixture(t)
	f.seedRoom(t, "101", models.RoomAvailable, 80)
	guest, err := f.guestSvc.CheckIn("Ivan", "Petrov", "", "", "101", nil)
	require.NoError(t, err)

	newDate := utils.FormatDate(utils.Today().AddDate(0, 0, 10))
	f.dispatch("admin/approve-extend-stay", fmt.Sprintf(
		`{"guestId":%d,"newCheckOutDate":"%s","approved":false,"comment":"overbooked","requesterId":"admin-1"}`,
		guest.ID, newDate))

	decision := f.pub.directTo(t, "/user/admin-1/queue/admin/extend-stay-result").(*services.ExtendStayDecision)
	assert.True(t, decision.Success)
	assert.False(t, decision.Approved)
	assert.Equal(t, "overbooked", decision.Reason)

	f.pub.broadcastTo(t, "/topic/admin/guest-stay-extension-rejected")

	notification := f.pub.directTo(t, fmt.Sprintf("/user/guest-%d/queue/extend-stay-response", guest.ID)).(map[string]interface{})
	assert.Equal(t, false, notification["success"])
	assert.Equal(t, "overbooked", notification["reason"])

	stored, err := f.guestSvc.GetByID(guest.ID)
	require.NoError(t, err)
	assert.True(t, utils.SameDay(stored.CheckOutDate, utils.Today().AddDate(0, 0, 3)), "rejection must not move the checkout date")
}

func TestAdminApproveExtendStayResolvesRequests(t *testing.T) {
	f := newFixture(t)
	f.seedRoom(t, "101", models.RoomAvailable, 80)
	guest, err := f.guestSvc.CheckIn("Ivan", "Petrov", "", "", "101", nil)
	require.NoError(t, err)

	newDate := utils.Today().AddDate(0, 0, 10)
	f.iotSvc.CreateExtendStayRequest(guest, newDate)

	f.dispatch("admin/approve-extend-stay", fmt.Sprintf(
		`{"guestId":%d,"newCheckOutDate":"%s","approved":true,"requesterId":"admin-1"}`,
		guest.ID, utils.FormatDate(newDate)))

	decision := f.pub.broadcastTo(t, "/topic/admin/guest-stay-extended").(*services.ExtendStayDecision)
	assert.True(t, decision.Approved)

	requests := f.iotSvc.ListExtendStayRequests()
	require.Len(t, requests, 1)
	assert.Equal(t, services.RequestApproved, requests[0].Status)

	stored, err := f.guestSvc.GetByID(guest.ID)
	require.NoError(t, err)
	assert.True(t, utils.SameDay(stored.CheckOutDate, newDate))
}

func TestAdminSearchGuestsDirectedOnly(t *testing.T) {
	f := newFixture(t)
	f.seedRoom(t, "101", models.RoomAvailable, 80)
	_, err := f.guestSvc.CheckIn("Ivan", "Petrov", "ivan@example.com", "", "101", nil)
	require.NoError(t, err)

	f.dispatch("admin/guests/search", `{"searchTerm":"petrov","searchField":"lastName","requesterId":"admin-1"}`)

	assert.Empty(t, f.pub.broadcasts, "search results never hit a topic")
	results := f.pub.directTo(t, "/user/admin-1/queue/admin/guest-search-results").([]models.Guest)
	require.Len(t, results, 1)
	assert.Equal(t, "Ivan", results[0].FirstName)
}

func TestAdminStatsBroadcast(t *testing.T) {
	f := newFixture(t)
	f.seedRoom(t, "101", models.RoomAvailable, 100)
	f.seedRoom(t, "102", models.RoomAvailable, 100)
	_, err := f.guestSvc.CheckIn("Ivan", "Petrov", "", "", "101", nil)
	require.NoError(t, err)

	f.dispatch("admin/stats", `{}`)

	stats := f.pub.broadcastTo(t, "/topic/admin/stats").(*services.HotelStats)
	assert.Equal(t, 2, stats.TotalRooms)
	assert.Equal(t, 1, stats.OccupiedRooms)
	assert.InDelta(t, 50.0, stats.OccupancyRate, 0.001)
}
