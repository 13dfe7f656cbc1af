package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotel-control-backend/models"
	"hotel-control-backend/repositories"
	"hotel-control-backend/utils"
)

func newTestStore(t *testing.T) (*repositories.MemoryRoomRepository, *repositories.MemoryGuestRepository) {
	t.Helper()
	return repositories.NewMemoryStore()
}

func seedRoom(t *testing.T, rooms repositories.RoomRepository, number, status string, price float64) *models.Room {
	t.Helper()
	room := &models.Room{
		RoomNumber:    number,
		RoomType:      "standard",
		Status:        status,
		PricePerNight: price,
		MaxGuests:     2,
	}
	require.NoError(t, rooms.Save(room))
	return room
}

func TestCheckInDefaultStay(t *testing.T) {
	roomRepo, guestRepo := newTestStore(t)
	seedRoom(t, roomRepo, "101", models.RoomAvailable, 80)
	svc := NewGuestService(guestRepo, roomRepo)

	guest, err := svc.CheckIn("Ivan", "Petrov", "ivan@example.com", "+375291112233", "101", nil)
	require.NoError(t, err)

	assert.Equal(t, "101", guest.RoomNumber)
	assert.True(t, utils.SameDay(guest.CheckInDate, utils.Today()))
	assert.True(t, utils.SameDay(guest.CheckOutDate, utils.Today().AddDate(0, 0, 3)))

	room, err := roomRepo.FindByNumber("101")
	require.NoError(t, err)
	assert.Equal(t, models.RoomOccupied, room.Status)
	assert.Equal(t, 1, room.CurrentGuestsCount)
	require.Len(t, room.Guests, 1)
	assert.Equal(t, guest.ID, room.Guests[0].ID)
}

func TestCheckInExplicitCheckOutDate(t *testing.T) {
	roomRepo, guestRepo := newTestStore(t)
	seedRoom(t, roomRepo, "101", models.RoomAvailable, 80)
	svc := NewGuestService(guestRepo, roomRepo)

	wanted := utils.Today().AddDate(0, 0, 7)
	guest, err := svc.CheckIn("Anna", "Ivanova", "", "", "101", &wanted)
	require.NoError(t, err)
	assert.True(t, utils.SameDay(guest.CheckOutDate, wanted))
}

func TestCheckInRoomNotFound(t *testing.T) {
	roomRepo, guestRepo := newTestStore(t)
	svc := NewGuestService(guestRepo, roomRepo)

	_, err := svc.CheckIn("Ivan", "Petrov", "", "", "999", nil)
	assert.ErrorIs(t, err, repositories.ErrRoomNotFound)
}

func TestCheckInRoomNotAvailable(t *testing.T) {
	for _, status := range []string{models.RoomOccupied, models.RoomMaintenance} {
		t.Run(status, func(t *testing.T) {
			roomRepo, guestRepo := newTestStore(t)
			seedRoom(t, roomRepo, "101", status, 80)
			svc := NewGuestService(guestRepo, roomRepo)

			_, err := svc.CheckIn("Ivan", "Petrov", "", "", "101", nil)
			assert.ErrorIs(t, err, ErrRoomNotAvailable)

			// stores unchanged
			guests, err := guestRepo.FindAll()
			require.NoError(t, err)
			assert.Empty(t, guests)

			room, err := roomRepo.FindByNumber("101")
			require.NoError(t, err)
			assert.Equal(t, status, room.Status)
			assert.Equal(t, 0, room.CurrentGuestsCount)
		})
	}
}

func TestCheckOut(t *testing.T) {
	roomRepo, guestRepo := newTestStore(t)
	seedRoom(t, roomRepo, "101", models.RoomAvailable, 80)
	svc := NewGuestService(guestRepo, roomRepo)

	guest, err := svc.CheckIn("Ivan", "Petrov", "", "", "101", nil)
	require.NoError(t, err)

	summary, err := svc.CheckOut(guest.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ivan Petrov", summary.GuestName)
	assert.Equal(t, "101", summary.RoomNumber)
	assert.Equal(t, utils.FormatDate(utils.Today()), summary.CheckOutDate)

	updated, err := guestRepo.FindByID(guest.ID)
	require.NoError(t, err)
	assert.True(t, utils.SameDay(updated.CheckOutDate, utils.Today()))

	room, err := roomRepo.FindByNumber("101")
	require.NoError(t, err)
	assert.Equal(t, models.RoomAvailable, room.Status)
	assert.Equal(t, 0, room.CurrentGuestsCount)
}

// Reproduces the known defect: checking out one guest frees the room even
// while a co-occupant is still assigned to it.
func TestCheckOutFreesRoomDespiteCoOccupants(t *testing.T) {
	roomRepo, guestRepo := newTestStore(t)
	seedRoom(t, roomRepo, "101", models.RoomAvailable, 80)
	svc := NewGuestService(guestRepo, roomRepo)

	first, err := svc.CheckIn("Ivan", "Petrov", "", "", "101", nil)
	require.NoError(t, err)

	// second guest joins the occupied room via the store, as seeding would
	second := &models.Guest{
		FirstName:    "Maria",
		LastName:     "Petrova",
		RoomID:       first.RoomID,
		CheckInDate:  utils.Today(),
		CheckOutDate: utils.Today().AddDate(0, 0, 3),
	}
	require.NoError(t, guestRepo.Save(second))

	room, err := roomRepo.FindByNumber("101")
	require.NoError(t, err)
	require.Len(t, room.Guests, 2)

	_, err = svc.CheckOut(first.ID)
	require.NoError(t, err)

	room, err = roomRepo.FindByNumber("101")
	require.NoError(t, err)
	assert.Equal(t, models.RoomAvailable, room.Status, "room is freed even though a guest remains")
	assert.Len(t, room.Guests, 1, "the co-occupant is still assigned")
}

func TestExtendStay(t *testing.T) {
	roomRepo, guestRepo := newTestStore(t)
	seedRoom(t, roomRepo, "101", models.RoomAvailable, 80)
	svc := NewGuestService(guestRepo, roomRepo)

	guest, err := svc.CheckIn("Ivan", "Petrov", "", "", "101", nil)
	require.NoError(t, err)
	originalCheckOut := guest.CheckOutDate

	cases := []struct {
		name    string
		newDate time.Time
		wantErr error
	}{
		{"before current checkout", utils.Today().AddDate(0, 0, 1), ErrInvalidCheckOutDate},
		{"before today", utils.Today().AddDate(0, 0, -1), ErrInvalidCheckOutDate},
		{"valid extension", utils.Today().AddDate(0, 0, 10), nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			updated, err := svc.ExtendStay(guest.ID, tc.newDate)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)

				stored, err := guestRepo.FindByID(guest.ID)
				require.NoError(t, err)
				assert.True(t, utils.SameDay(stored.CheckOutDate, originalCheckOut), "rejection must not mutate the guest")
				return
			}
			require.NoError(t, err)
			assert.True(t, utils.SameDay(updated.CheckOutDate, tc.newDate))
		})
	}
}

func TestExtendStayGuestNotFound(t *testing.T) {
	roomRepo, guestRepo := newTestStore(t)
	svc := NewGuestService(guestRepo, roomRepo)

	_, err := svc.ExtendStay(42, utils.Today().AddDate(0, 0, 5))
	assert.ErrorIs(t, err, repositories.ErrGuestNotFound)
}

func TestSearch(t *testing.T) {
	roomRepo, guestRepo := newTestStore(t)
	seedRoom(t, roomRepo, "101", models.RoomAvailable, 80)
	seedRoom(t, roomRepo, "202", models.RoomAvailable, 130)
	svc := NewGuestService(guestRepo, roomRepo)

	_, err := svc.CheckIn("Ivan", "Petrov", "ivan@example.com", "+375291112233", "101", nil)
	require.NoError(t, err)
	_, err = svc.CheckIn("Maria", "Sidorova", "maria@example.com", "+375447654321", "202", nil)
	require.NoError(t, err)

	cases := []struct {
		name      string
		term      string
		field     string
		wantCount int
		wantFirst string
	}{
		{"last name case-insensitive", "petrov", "lastName", 1, "Ivan"},
		{"first name", "Mar", "firstName", 1, "Maria"},
		{"email", "IVAN@", "email", 1, "Ivan"},
		{"phone case-sensitive substring", "7654", "phone", 1, "Maria"},
		{"room number", "101", "roomNumber", 1, "Ivan"},
		{"default across fields", "petrov", "", 1, "Ivan"},
		{"no match", "nobody", "lastName", 0, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			results, err := svc.Search(tc.term, tc.field)
			require.NoError(t, err)
			require.Len(t, results, tc.wantCount)
			if tc.wantCount > 0 {
				assert.Equal(t, tc.wantFirst, results[0].FirstName)
			}
		})
	}
}
