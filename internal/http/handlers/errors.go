package handlers

import (
	"errors"

	"storedash/internal/apiclient"
	"storedash/internal/repos"
	"storedash/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// userMessage turns any failure into text fit for a flash or form banner.
func userMessage(err error) string {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		return verr.Msg
	case errors.Is(err, repos.ErrEmailTaken):
		return "A user with that email already exists"
	case errors.Is(err, repos.ErrNotFound):
		return "That record no longer exists"
	default:
		return apiclient.Message(err)
	}
}

// formStatus is the status a re-rendered form is served with.
func formStatus(err error) int {
	var verr *validate.Error
	if errors.As(err, &verr) || errors.Is(err, repos.ErrEmailTaken) {
		return fiber.StatusUnprocessableEntity
	}
	if errors.Is(err, repos.ErrNotFound) {
		return fiber.StatusNotFound
	}
	return fiber.StatusBadGateway
}
