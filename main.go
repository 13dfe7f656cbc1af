package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"hotel-control-backend/config"
	"hotel-control-backend/controllers"
	"hotel-control-backend/realtime"
	"hotel-control-backend/repositories"
	"hotel-control-backend/routes"
	"hotel-control-backend/services"
)

func buildStore() (repositories.RoomRepository, repositories.GuestRepository, repositories.AdminRepository) {
	if os.Getenv("DB_DRIVER") == "memory" {
		log.Println("⚠️  DB_DRIVER=memory: using the in-memory store (demo mode, nothing persists)")
		rooms, guests := repositories.NewMemoryStore()
		return rooms, guests, repositories.NewMemoryAdminRepository()
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	log.Println("✅ Database connection established and migrations applied")

	db := config.DB
	return repositories.NewGormRoomRepository(db),
		repositories.NewGormGuestRepository(db),
		repositories.NewGormAdminRepository(db)
}

func main() {
	// Load .env (optional)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	roomRepo, guestRepo, adminRepo := buildStore()

	if err := config.SeedStore(roomRepo, adminRepo); err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	// Services
	roomService := services.NewRoomService(roomRepo)
	guestService := services.NewGuestService(guestRepo, roomRepo)
	adminService := services.NewAdminService(guestService, roomService)
	iotService := services.NewIoTService()

	// Realtime fan-out
	hub := realtime.NewHub()
	go hub.Run()
	defer hub.Stop()

	dispatcher := realtime.NewDispatcher(hub)
	controllers.NewAdminSocketController(hub, roomService, guestService, adminService, iotService).Register(dispatcher)
	controllers.NewGuestSocketController(hub, guestService, roomService, iotService).Register(dispatcher)

	// REST surface
	hotelController := controllers.NewHotelController(roomService, guestService, adminService, adminRepo)
	router := routes.SetupRouter(hotelController, hub, dispatcher, config.NewRedisClient())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	addr := ":" + port

	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
