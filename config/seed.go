package config

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"

	"hotel-control-backend/models"
	"hotel-control-backend/repositories"
)

func demoSensors(temp float64) datatypes.JSONType[models.RoomSensors] {
	return datatypes.NewJSONType(models.RoomSensors{
		Temperature: temp,
		Humidity:    45,
		Pressure:    1013,
		Lights:      models.RoomLights{},
	})
}

// SeedStore fills an empty store with the demo data set: one admin account
// and five rooms across the three room types, doors locked, sensors at
// baseline readings.
func SeedStore(rooms repositories.RoomRepository, admins repositories.AdminRepository) error {
	adminCount, err := admins.Count()
	if err != nil {
		return err
	}
	if adminCount == 0 {
		hash, err := bcrypt.GenerateFromPassword([]byte(envOrDefault("ADMIN_PASSWORD", "admin123")), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		admin := models.Admin{
			Username: "admin@hotel.local",
			Password: string(hash),
			FullName: "Admin User",
			Email:    "admin@hotel.local",
		}
		if err := admins.Save(&admin); err != nil {
			return err
		}
		log.Println("✅ Default admin seeded")
	}

	roomCount, err := rooms.Count()
	if err != nil {
		return err
	}
	if roomCount > 0 {
		log.Println("Rooms already seeded")
		return nil
	}

	demoRooms := []models.Room{
		{RoomNumber: "101", RoomType: "standard", Status: models.RoomAvailable, PricePerNight: 80, MaxGuests: 2, DoorLocked: true, Sensors: demoSensors(22.0)},
		{RoomNumber: "102", RoomType: "standard", Status: models.RoomAvailable, PricePerNight: 80, MaxGuests: 2, DoorLocked: true, Sensors: demoSensors(22.5)},
		{RoomNumber: "201", RoomType: "deluxe", Status: models.RoomAvailable, PricePerNight: 130, MaxGuests: 3, DoorLocked: true, Sensors: demoSensors(23.0)},
		{RoomNumber: "202", RoomType: "deluxe", Status: models.RoomMaintenance, PricePerNight: 130, MaxGuests: 3, DoorLocked: true, Sensors: demoSensors(21.5)},
		{RoomNumber: "301", RoomType: "suite", Status: models.RoomAvailable, PricePerNight: 220, MaxGuests: 4, DoorLocked: true, Sensors: demoSensors(22.0)},
	}
	for i := range demoRooms {
		if err := rooms.Save(&demoRooms[i]); err != nil {
			return err
		}
	}

	log.Printf("✅ %d demo rooms seeded", len(demoRooms))
	return nil
}
