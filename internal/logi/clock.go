package logi

import (
	"time"

	"github.com/google/uuid"
)

// Clock supplies the current time to the service.
type Clock interface {
	Now() time.Time
}

// RealClock reads the system clock.
type RealClock struct{}

func (RealClock) Now() time.Time { return time.Now() }

// IDGenerator supplies opaque unique strings for tracking codes and log
// session ids.
type IDGenerator interface {
	New() string
}

// UUIDGenerator returns random (version 4) UUIDs.
type UUIDGenerator struct{}

func (UUIDGenerator) New() string { return uuid.NewString() }
