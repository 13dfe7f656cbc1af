package controllers

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-control-backend/models"
	"hotel-control-backend/realtime"
	"hotel-control-backend/services"
	"hotel-control-backend/utils"
)

func (f *fixture) checkInGuest(t *testing.T) *models.Guest {
	t.Helper()
	f.seedRoom(t, "101", models.RoomAvailable, 80)
	guest, err := f.guestSvc.CheckIn("Ivan", "Petrov", "ivan@example.com", "+375291112233", "101", nil)
	require.NoError(t, err)
	return guest
}

func TestGuestMyRoom(t *testing.T) {
	f := newFixture(t)
	guest := f.checkInGuest(t)

	f.dispatch("guest/my-room", fmt.Sprintf(`{"guestId":%d,"requesterId":"guest-%d"}`, guest.ID, guest.ID))

	reply := f.pub.directTo(t, fmt.Sprintf("/user/guest-%d/queue/my-room", guest.ID)).(map[string]interface{})
	assert.Equal(t, "101", reply["roomNumber"])
	assert.Equal(t, utils.FormatDate(guest.CheckOutDate), reply["checkOutDate"])
	assert.Empty(t, f.pub.broadcasts)
}

func TestGuestMyRoomUnknownGuest(t *testing.T) {
	f := newFixture(t)

	f.dispatch("guest/my-room", `{"guestId":999,"requesterId":"guest-999"}`)

	reply := f.pub.directTo(t, "/user/guest-999/queue/error").(realtime.ErrorReply)
	assert.False(t, reply.Success)
}

func TestGuestDoorOpenAndClose(t *testing.T) {
	f := newFixture(t)
	guest := f.checkInGuest(t)
	queue := fmt.Sprintf("/user/guest-%d/queue/door-status", guest.ID)

	f.dispatch("guest/door/open", fmt.Sprintf(`{"guestId":%d,"requesterId":"guest-%d"}`, guest.ID, guest.ID))

	result := f.pub.directTo(t, queue).(*services.DoorActionResult)
	assert.True(t, result.Success)
	assert.Equal(t, "OPEN", result.DoorStatus)

	f.pub.directs = nil
	f.dispatch("guest/door/close", fmt.Sprintf(`{"guestId":%d,"requesterId":"guest-%d"}`, guest.ID, guest.ID))

	result = f.pub.directTo(t, queue).(*services.DoorActionResult)
	assert.Equal(t, "CLOSED", result.DoorStatus)
}

func TestGuestClimate(t *testing.T) {
	f := newFixture(t)
	guest := f.checkInGuest(t)

	f.dispatch("guest/climate", fmt.Sprintf(`{"guestId":%d,"requesterId":"guest-%d"}`, guest.ID, guest.ID))

	status := f.pub.directTo(t, fmt.Sprintf("/user/guest-%d/queue/climate-status", guest.ID)).(*services.ClimateStatus)
	assert.Equal(t, 22.5, status.Temperature)
	assert.Equal(t, "AUTO", status.Mode)

	f.dispatch("guest/climate/set-temperature", fmt.Sprintf(`{"guestId":%d,"temperature":19.5,"requesterId":"guest-%d"}`, guest.ID, guest.ID))

	result := f.pub.directTo(t, fmt.Sprintf("/user/guest-%d/queue/climate-update", guest.ID)).(*services.TemperatureResult)
	assert.True(t, result.Success)
	assert.Equal(t, 19.5, result.Temperature)
}

func TestGuestRequestExtendStay(t *testing.T) {
	f := newFixture(t)
	guest := f.checkInGuest(t)

	newDate := utils.FormatDate(utils.Today().AddDate(0, 0, 6))
	f.dispatch("guest/request-extend-stay", fmt.Sprintf(
		`{"guestId":%d,"newCheckOutDate":"%s","requesterId":"guest-%d"}`, guest.ID, newDate, guest.ID))

	request := f.pub.broadcastTo(t, "/topic/admin/extend-stay-requests").(services.ExtendStayRequest)
	assert.Equal(t, guest.ID, request.GuestID)
	assert.Equal(t, services.RequestPending, request.Status)

	ack := f.pub.directTo(t, fmt.Sprintf("/user/guest-%d/queue/extend-stay-request", guest.ID)).(map[string]interface{})
	assert.Equal(t, true, ack["success"])
	assert.Equal(t, request.RequestID, ack["requestId"])
}

// A date before today never reaches the admins; the requester gets an
// error reply and no broadcast goes out.
func TestGuestRequestExtendStayPastDate(t *testing.T) {
	f := newFixture(t)
	guest := f.checkInGuest(t)

	pastDate := utils.FormatDate(utils.Today().AddDate(0, 0, -1))
	f.dispatch("guest/request-extend-stay", fmt.Sprintf(
		`{"guestId":%d,"newCheckOutDate":"%s","requesterId":"guest-%d"}`, guest.ID, pastDate, guest.ID))

	assert.Empty(t, f.pub.broadcasts, "invalid request must not reach the admin topic")
	reply := f.pub.directTo(t, fmt.Sprintf("/user/guest-%d/queue/error", guest.ID)).(realtime.ErrorReply)
	assert.False(t, reply.Success)
	assert.Empty(t, f.iotSvc.ListExtendStayRequests())
}

func TestGuestRequestExtendStayMalformedDate(t *testing.T) {
	f := newFixture(t)
	guest := f.checkInGuest(t)

	f.dispatch("guest/request-extend-stay", fmt.Sprintf(
		`{"guestId":%d,"newCheckOutDate":"not-a-date","requesterId":"guest-%d"}`, guest.ID, guest.ID))

	assert.Empty(t, f.pub.broadcasts)
	reply := f.pub.directTo(t, fmt.Sprintf("/user/guest-%d/queue/error", guest.ID)).(realtime.ErrorReply)
	assert.False(t, reply.Success)
	assert.Contains(t, reply.Message, "not-a-date")
}
