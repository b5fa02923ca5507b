package service

import (
	"errors"
	"net/mail"
	"strings"

	"github.com/dom/vidtube/internal/domain"
	"github.com/dom/vidtube/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fromStore maps repository failures onto domain errors.
func fromStore(err error, notFoundMsg string) error {
	if err == nil {
		return nil
	}
	var de *domain.Error
	if errors.As(err, &de) {
		return err
	}
	if errors.Is(err, repository.ErrNotFound) {
		return domain.NotFound(notFoundMsg)
	}
	return domain.Internal("store operation failed", err)
}

func requireOwner(owner, caller primitive.ObjectID, msg string) error {
	if owner != caller {
		return domain.Forbidden(msg)
	}
	return nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", domain.Validation("invalid email address")
	}
	return email, nil
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
