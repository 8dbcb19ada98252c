package server

import (
	"context"

	"github.com/preston-bernstein/scratchers-service/internal/probe"
)

// Prober defines the minimal upstream probe behavior needed by the server.
type Prober interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
	Status() probe.Status
}
