package auth

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sgformer-backend/src/apperror"
	"sgformer-backend/src/models"
)

const (
	MsgLoginRequired = "Authentication required"
	MsgAdminRequired = "Admin access required"
	MsgDenied        = "Permission denied"
)

func RequireUser(id *models.Identity) error {
	if id == nil {
		return apperror.Authentication(MsgLoginRequired)
	}
	return nil
}

func RequireAdmin(id *models.Identity) error {
	if err := RequireUser(id); err != nil {
		return err
	}
	if !id.IsAdmin() {
		return apperror.Authorization(MsgAdminRequired)
	}
	return nil
}

// AuthorizeFormOwner lets only the admin who created the form manage it.
func AuthorizeFormOwner(id *models.Identity, form *models.Form) error {
	if err := RequireAdmin(id); err != nil {
		return err
	}
	if form.CreatedBy != id.ID {
		return apperror.Authorization(MsgDenied)
	}
	return nil
}

// ProtectSelf stops an admin from applying an action to their own account.
func ProtectSelf(actor *models.Identity, target primitive.ObjectID, message string) error {
	if actor != nil && actor.ID == target {
		return apperror.Validation(message)
	}
	return nil
}
