package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Revanthsudeeep/waterconservation/internal/auth"
	"github.com/Revanthsudeeep/waterconservation/internal/core"
	"github.com/Revanthsudeeep/waterconservation/internal/validator"
)

const minPasswordLength = 8

func (app *application) signupHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string  `json:"email"`
		Password string  `json:"password"`
		FullName *string `json:"full_name"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	user := &auth.User{
		Email:             strings.TrimSpace(input.Email),
		PlaintextPassword: input.Password,
	}
	if input.FullName != nil {
		fullName := strings.TrimSpace(*input.FullName)
		user.FullName = &fullName
	}

	v := validator.New()
	checkEmail(v, user.Email)
	v.CheckNotBlank(user.PlaintextPassword, "password", "must be provided")
	v.Check(len(user.PlaintextPassword) >= minPasswordLength, "password", "must be at least 8 characters long")
	if user.FullName != nil {
		v.CheckMaxLength(*user.FullName, 100, "full_name", "must not be more than 100 characters long")
	}

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	if err := user.SetPassword(user.PlaintextPassword); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.core.CreateUser(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, core.ErrDuplicateEmail):
			v.AddError("email", "Email address is already in use")
			app.failedValidationResponse(w, r, v.Errors)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	token, err := app.auth.GenerateToken(user)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, userResponse(user, token), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	input.Email = strings.TrimSpace(input.Email)

	v := validator.New()
	checkEmail(v, input.Email)
	v.CheckNotBlank(input.Password, "password", "must be provided")

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	user, err := app.core.GetUserByEmail(r.Context(), input.Email)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.invalidCredentialsResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	match, err := user.IsPasswordMatch(input.Password)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}
	if !match {
		app.invalidCredentialsResponse(w, r)
		return
	}

	token, err := app.auth.GenerateToken(user)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, userResponse(user, token), nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

// authCallbackHandler finishes a sign-in: it provisions the caller's profile when
// missing and tells the client where to go next.
func (app *application) authCallbackHandler(w http.ResponseWriter, r *http.Request) {
	user, err := app.auth.GetAuthenticatedUser(r)
	if err != nil {
		if err := app.writeJSON(w, http.StatusOK, envelope{"redirect": "/auth"}, nil); err != nil {
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	profile, err := app.core.EnsureProfile(r.Context(), user)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	data := envelope{
		"profile":  profile,
		"redirect": "/profile/" + profile.ID.String(),
	}
	if err := app.writeJSON(w, http.StatusOK, data, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func userResponse(user *auth.User, token string) envelope {
	user.Token = token
	return envelope{"user": user}
}

func checkEmail(v *validator.Validator, email string) {
	v.CheckNotBlank(email, "email", "must be provided")
	v.CheckEmail(email, "must be a valid email address")
}
