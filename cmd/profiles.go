package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Revanthsudeeep/waterconservation/internal/auth"
	"github.com/Revanthsudeeep/waterconservation/internal/core"
	"github.com/Revanthsudeeep/waterconservation/internal/storage"
	"github.com/Revanthsudeeep/waterconservation/internal/validator"
	"github.com/Revanthsudeeep/waterconservation/models"
	"github.com/google/uuid"
)

const maxAvatarBytes = 2 << 20

func (app *application) showProfileHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	caller, _ := app.auth.GetAuthenticatedUser(r)
	isOwner := caller != nil && caller.ID == id

	profile, err := app.core.GetProfile(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound) && isOwner:
			profile, err = app.core.EnsureProfile(r.Context(), caller)
			if err != nil {
				app.internalErrorResponse(w, r, err)
				return
			}
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
			return
		default:
			app.internalErrorResponse(w, r, err)
			return
		}
	}

	following := false
	if caller != nil && !isOwner {
		following, err = app.core.IsFollowing(r.Context(), caller.ID, id)
		if err != nil {
			app.internalErrorResponse(w, r, err)
			return
		}
	}

	data := envelope{
		"profile":   profile,
		"is_owner":  isOwner,
		"following": following,
	}
	if err := app.writeJSON(w, http.StatusOK, data, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateProfileHandler(w http.ResponseWriter, r *http.Request) {
	user, id, ok := app.requireProfileOwner(w, r)
	if !ok {
		return
	}

	var input struct {
		Username  *string `json:"username"`
		FullName  *string `json:"full_name"`
		Bio       *string `json:"bio"`
		AvatarURL *string `json:"avatar_url"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	update := models.ProfileUpdate{
		Username:  trimmed(input.Username),
		FullName:  trimmed(input.FullName),
		Bio:       trimmed(input.Bio),
		AvatarURL: trimmed(input.AvatarURL),
	}

	v := validator.New()
	if update.Username != nil {
		v.CheckNotBlank(*update.Username, "username", "must be provided")
		v.Check(validator.IsMatch(*update.Username, validator.UsernameRX), "username", "may only contain letters, digits and underscores")
		v.CheckMaxLength(*update.Username, 30, "username", "must not be more than 30 characters long")
	}
	if update.FullName != nil {
		v.CheckMaxLength(*update.FullName, 100, "full_name", "must not be more than 100 characters long")
	}
	if update.Bio != nil {
		v.CheckMaxLength(*update.Bio, 500, "bio", "must not be more than 500 characters long")
	}
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	if _, err := app.core.EnsureProfile(r.Context(), user); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	profile, err := app.core.UpdateProfile(r.Context(), id, update)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateUsername):
			v.AddError("username", "is already taken")
			app.failedValidationResponse(w, r, v.Errors)
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"profile": profile}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

// uploadAvatarHandler stores a multipart "avatar" image and points the profile at its public URL.
// The stored extension follows the sniffed content, never the client's file name.
func (app *application) uploadAvatarHandler(w http.ResponseWriter, r *http.Request) {
	user, id, ok := app.requireProfileOwner(w, r)
	if !ok {
		return
	}

	// Leave room for the multipart envelope around the file itself.
	r.Body = http.MaxBytesReader(w, r.Body, maxAvatarBytes+1<<16)
	if err := r.ParseMultipartForm(maxAvatarBytes); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: "avatar must be sent as multipart form data of at most 2 MB",
			ErrorStack:   err,
		})
		return
	}

	file, header, err := r.FormFile("avatar")
	if err != nil {
		app.failedValidationResponse(w, r, map[string]string{"avatar": "must be provided"})
		return
	}
	defer file.Close()

	v := validator.New()
	v.Check(header.Size <= maxAvatarBytes, "avatar", "must not be larger than 2 MB")

	sniff := make([]byte, 512)
	n, err := io.ReadFull(file, sniff)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		app.internalErrorResponse(w, r, err)
		return
	}
	sniff = sniff[:n]

	objectPath, err := storage.AvatarPath(id, http.DetectContentType(sniff))
	v.Check(err == nil, "avatar", "must be a PNG, JPEG, GIF or WebP image")

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	if err := app.bucket.Upload(r.Context(), objectPath, io.MultiReader(bytes.NewReader(sniff), file)); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if _, err := app.core.EnsureProfile(r.Context(), user); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	profile, err := app.core.SetAvatar(r.Context(), id, app.bucket.PublicURL(objectPath))
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"profile": profile}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) followHandler(w http.ResponseWriter, r *http.Request) {
	app.changeFollow(w, r, app.core.FollowUser)
}

func (app *application) unfollowHandler(w http.ResponseWriter, r *http.Request) {
	app.changeFollow(w, r, app.core.UnfollowUser)
}

func (app *application) changeFollow(w http.ResponseWriter, r *http.Request,
	change func(ctx context.Context, followerID, targetID uuid.UUID) (*models.Profile, error)) {
	targetID, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	user, ok := app.profileOwner(w, r)
	if !ok {
		return
	}

	profile, err := change(r.Context(), user.ID, targetID)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrSelfFollow):
			app.failedValidationResponse(w, r, map[string]string{"id": "you cannot follow yourself"})
		case errors.Is(err, core.ErrAlreadyFollowing):
			app.conflictResponse(w, r, err, "you already follow this user")
		case errors.Is(err, core.ErrNotFollowing):
			app.conflictResponse(w, r, err, "you do not follow this user")
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"profile": profile}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

// requireProfileOwner resolves the :id profile and rejects callers other than its owner.
func (app *application) requireProfileOwner(w http.ResponseWriter, r *http.Request) (*auth.User, uuid.UUID, bool) {
	id, err := app.readUUIDParam(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return nil, uuid.Nil, false
	}

	user, err := app.auth.GetAuthenticatedUser(r)
	if err != nil {
		app.authenticationRequiredResponse(w, r, err)
		return nil, uuid.Nil, false
	}
	if user.ID != id {
		app.forbiddenResponse(w, r)
		return nil, uuid.Nil, false
	}

	return user, id, true
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}
