package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hotel-control-backend/repositories"
	"hotel-control-backend/services"
	"hotel-control-backend/utils"
)

// HotelController is the read-only REST surface next to the realtime API:
// listings, by-id lookups and the stats aggregate.
type HotelController struct {
	RoomSvc  *services.RoomService
	GuestSvc *services.GuestService
	AdminSvc *services.AdminService
	Admins   repositories.AdminRepository
}

func NewHotelController(
	roomSvc *services.RoomService,
	guestSvc *services.GuestService,
	adminSvc *services.AdminService,
	admins repositories.AdminRepository,
) *HotelController {
	return &HotelController{
		RoomSvc:  roomSvc,
		GuestSvc: guestSvc,
		AdminSvc: adminSvc,
		Admins:   admins,
	}
}

// GetRooms handles GET /api/rooms.
func (hc *HotelController) GetRooms(c *gin.Context) {
	rooms, err := hc.RoomSvc.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// GetRoomByID handles GET /api/rooms/:id.
func (hc *HotelController) GetRoomByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid room id")
		return
	}

	room, err := hc.RoomSvc.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrRoomNotFound) {
			utils.JSONError(c, http.StatusNotFound, err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, room)
}

// GetGuests handles GET /api/guests.
func (hc *HotelController) GetGuests(c *gin.Context) {
	guests, err := hc.GuestSvc.GetAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, guests)
}

// GetGuestByID handles GET /api/guests/:id.
func (hc *HotelController) GetGuestByID(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid guest id")
		return
	}

	guest, err := hc.GuestSvc.GetByID(uint(id))
	if err != nil {
		if errors.Is(err, repositories.ErrGuestNotFound) {
			utils.JSONError(c, http.StatusNotFound, err.Error())
			return
		}
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, guest)
}

// GetStats handles GET /api/stats.
func (hc *HotelController) GetStats(c *gin.Context) {
	stats, err := hc.AdminSvc.GetHotelStats()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, stats)
}

// GetAdmins handles GET /api/admins. Password hashes never serialize.
func (hc *HotelController) GetAdmins(c *gin.Context) {
	admins, err := hc.Admins.FindAll()
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, admins)
}
