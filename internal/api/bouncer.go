package api

//go:generate mockgen -source=bouncer.go -destination=../mocks/mock_bouncer.go -package=mocks

import (
	"context"

	"github.com/vitalvas/portbounce/pkg/client"
)

// Bouncer sends the CoA that bounces a port. *client.Client implements it.
type Bouncer interface {
	Send(ctx context.Context, req client.Request) client.Result
}
