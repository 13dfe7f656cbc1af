package models

import (
	"time"

	"gorm.io/datatypes"
)

// Room statuses. The persisted model uses the uppercase variants throughout;
// inbound payloads may still carry lowercase "free"/"occupied" from older
// clients, which NormalizeStatus maps onto these.
const (
	RoomAvailable   = "AVAILABLE"
	RoomOccupied    = "OCCUPIED"
	RoomMaintenance = "MAINTENANCE"
)

// RoomLights is the per-room light switch state.
type RoomLights struct {
	Bathroom bool `json:"bathroom"`
	Bedroom  bool `json:"bedroom"`
	Hallway  bool `json:"hallway"`
}

// RoomSensors is the last sensor snapshot reported for a room. Stored as a
// JSON column so the schema stays flat.
type RoomSensors struct {
	Temperature float64    `json:"temperature"`
	Humidity    int        `json:"humidity"`
	Pressure    int        `json:"pressure"`
	Lights      RoomLights `json:"lights"`
}

type Room struct {
	ID uint `gorm:"primaryKey" json:"id"`

	RoomNumber    string  `json:"roomNumber" gorm:"column:room_number;uniqueIndex;type:varchar(10);not null"`
	RoomType      string  `json:"roomType" gorm:"column:room_type;type:varchar(50);not null"`
	Status        string  `json:"status" gorm:"type:varchar(20);not null"`
	PricePerNight float64 `json:"pricePerNight" gorm:"column:price_per_night;not null"`

	DoorLocked         bool `json:"doorLocked" gorm:"column:door_locked"`
	MaxGuests          int  `json:"maxGuests" gorm:"column:max_guests"`
	CurrentGuestsCount int  `json:"currentGuestsCount" gorm:"column:current_guests_count"`

	Sensors datatypes.JSONType[RoomSensors] `json:"sensors" gorm:"column:sensors"`

	// Guests currently assigned to the room. CurrentGuestsCount mirrors
	// len(Guests); both are maintained by GuestService, not by the store.
	Guests []Guest `json:"guests" gorm:"foreignKey:RoomID"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NormalizeStatus maps the lowercase legacy spellings onto the persisted
// uppercase variants. Unknown values pass through untouched.
func NormalizeStatus(status string) string {
	switch status {
	case "free", "available":
		return RoomAvailable
	case "occupied":
		return RoomOccupied
	case "maintenance":
		return RoomMaintenance
	default:
		return status
	}
}
