package rest

import (
	"context"
	"log"
	"time"

	"github.com/bchege/wellspring_api/internal/model"
	"github.com/bchege/wellspring_api/util"
	"github.com/bchege/wellspring_api/util/values"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

func (api *API) GetProfileHelper(ctx context.Context, userID uuid.UUID) (model.User, string, string, error) {
	user, err := api.GetUserByID(ctx, userID.String())
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.User{}, values.NotFound, "User not found", err
		}
		return model.User{}, values.Error, "Failed to get user", err
	}

	return user, values.Success, "Profile retrieved", nil
}

func (api *API) UpdateProfileHelper(ctx context.Context, userID uuid.UUID, req model.UpdateProfileRequest) (model.User, string, string, error) {
	if err := util.ValidateStruct(req); err != nil {
		return model.User{}, values.BadRequestBody, "Invalid profile fields", err
	}

	user, err := api.GetUserByID(ctx, userID.String())
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.User{}, values.NotFound, "User not found", err
		}
		return model.User{}, values.Error, "Failed to get user", err
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.DisplayName != nil {
		user.DisplayName = req.DisplayName
	}
	if req.Bio != nil {
		user.Bio = req.Bio
	}
	if req.Avatar != nil {
		user.Avatar = req.Avatar
	}
	if req.NotificationPreference != nil {
		user.NotificationPreference = *req.NotificationPreference
	}

	updated, err := api.UpdateUserProfile(ctx, user)
	if err != nil {
		return model.User{}, values.Error, "Failed to update profile", err
	}

	return updated, values.Success, "Profile updated successfully", nil
}

// UpdateConsentHelper stamps consent_date on every consent change so
// the record shows when the current choices were made.
func (api *API) UpdateConsentHelper(ctx context.Context, userID uuid.UUID, req model.UpdateConsentRequest) (model.ConsentResponse, string, string, error) {
	user, err := api.GetUserByID(ctx, userID.String())
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.ConsentResponse{}, values.NotFound, "User not found", err
		}
		return model.ConsentResponse{}, values.Error, "Failed to get user", err
	}

	if req.DataProcessingConsent != nil {
		user.DataProcessingConsent = *req.DataProcessingConsent
	}
	if req.MarketingConsent != nil {
		user.MarketingConsent = *req.MarketingConsent
	}

	consent, err := api.UpdateUserConsent(ctx, userID, user.DataProcessingConsent, user.MarketingConsent)
	if err != nil {
		return model.ConsentResponse{}, values.Error, "Failed to update consent", err
	}

	return consent, values.Success, "Consent updated successfully", nil
}

// RequestDeletionHelper soft-disables the account and schedules removal
// after the configured grace period. Support can cancel the request
// before the deletion date.
func (api *API) RequestDeletionHelper(ctx context.Context, userID uuid.UUID) (model.DeletionResponse, string, string, error) {
	user, err := api.GetUserByID(ctx, userID.String())
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.DeletionResponse{}, values.NotFound, "User not found", err
		}
		return model.DeletionResponse{}, values.Error, "Failed to get user", err
	}
	if user.DeletionRequested {
		return model.DeletionResponse{}, values.Conflict, "Deletion already requested", errValue("deletion already requested")
	}

	if err = api.MarkDeletionRequested(ctx, api.DB, userID); err != nil {
		return model.DeletionResponse{}, values.Error, "Failed to request deletion", err
	}

	deletionDate := time.Now().AddDate(0, 0, api.Config.DeletionGraceDays)

	go func() {
		emailData := map[string]interface{}{
			"Name":         user.FirstName,
			"DeletionDate": util.FormatTime("2 January 2006", deletionDate),
		}
		if sendErr := api.Mailer.Send(user.Email, emailData, "deletionRequested.tmpl"); sendErr != nil {
			log.Println(values.Error, "Failed to send deletion email", sendErr)
		}
	}()

	resp := model.DeletionResponse{
		Message:      "Your account is scheduled for deletion. You can contact support to cancel before the deletion date.",
		DeletionDate: deletionDate,
	}
	return resp, values.Success, "Deletion requested", nil
}

// ExportDataHelper assembles the portability bundle. The password hash
// never serializes; soft-deleted posts and comments are excluded.
func (api *API) ExportDataHelper(ctx context.Context, userID uuid.UUID) (model.UserExport, string, string, error) {
	user, err := api.GetUserByID(ctx, userID.String())
	if err != nil {
		if err == pgx.ErrNoRows {
			return model.UserExport{}, values.NotFound, "User not found", err
		}
		return model.UserExport{}, values.Error, "Failed to get user", err
	}

	memberships, err := api.ExportMemberships(ctx, userID)
	if err != nil {
		return model.UserExport{}, values.Error, "Failed to export memberships", err
	}
	posts, err := api.ExportPosts(ctx, userID)
	if err != nil {
		return model.UserExport{}, values.Error, "Failed to export posts", err
	}
	comments, err := api.ExportComments(ctx, userID)
	if err != nil {
		return model.UserExport{}, values.Error, "Failed to export comments", err
	}
	participations, err := api.ExportParticipations(ctx, userID)
	if err != nil {
		return model.UserExport{}, values.Error, "Failed to export event participations", err
	}

	export := model.UserExport{
		User:           user,
		Memberships:    memberships,
		Posts:          posts,
		Comments:       comments,
		Participations: participations,
	}
	return export, values.Success, "Data export generated", nil
}
