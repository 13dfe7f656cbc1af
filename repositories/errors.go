// Package repositories holds the store abstraction behind the services: one
// interface per aggregate with a gorm-backed and an in-memory implementation.
// Sentinel errors let the handlers distinguish "not found" from everything
// else without inspecting driver error strings.
package repositories

import "errors"

// ErrRoomNotFound is returned when a room id or number has no record.
var ErrRoomNotFound = errors.New("room not found")

// ErrGuestNotFound is returned when a guest id has no record.
var ErrGuestNotFound = errors.New("guest not found")

// ErrAdminNotFound is returned when an admin username has no record.
var ErrAdminNotFound = errors.New("admin not found")

// ErrDuplicateRoomNumber is returned when saving a room whose number is
// already taken by another record.
var ErrDuplicateRoomNumber = errors.New("room number already exists")
