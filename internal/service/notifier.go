package service

import (
	"context"

	"github.com/noah-isme/workshop-hub-api/internal/models"
)

// viewNotifier is told which views a state change touched so it can drop cached renders and
// signal subscribers when the visible view is among them.
type viewNotifier interface {
	Touch(ctx context.Context, reason string, views ...models.View)
}

type nopNotifier struct{}

func (nopNotifier) Touch(context.Context, string, ...models.View) {}
