package models

import (
	"time"
)

type Guest struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	FirstName string `json:"firstName" gorm:"column:first_name;type:varchar(100);not null"`
	LastName  string `json:"lastName" gorm:"column:last_name;type:varchar(100);not null"`
	Email     string `json:"email" gorm:"type:varchar(200)"`
	Phone     string `json:"phone" gorm:"type:varchar(20)"`

	// Every guest belongs to exactly one room.
	RoomID uint  `gorm:"column:room_id;index;not null" json:"roomId"`
	Room   *Room `gorm:"foreignKey:RoomID" json:"-"`

	// Convenience for clients; filled from the owning room, never stored.
	RoomNumber string `gorm:"-" json:"roomNumber,omitempty"`

	CheckInDate  time.Time `json:"checkInDate" gorm:"column:check_in_date;not null"`
	CheckOutDate time.Time `json:"checkOutDate" gorm:"column:check_out_date;not null"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// FullName is used in notifications and checkout summaries.
func (g *Guest) FullName() string {
	return g.FirstName + " " + g.LastName
}
