package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Revanthsudeeep/waterconservation/internal/auth"
	"github.com/Revanthsudeeep/waterconservation/internal/community"
	"github.com/Revanthsudeeep/waterconservation/internal/core"
	"github.com/Revanthsudeeep/waterconservation/internal/validator"
	"github.com/Revanthsudeeep/waterconservation/models"
)

const maxPostLimit = 100

func (app *application) listPostsHandler(w http.ResponseWriter, r *http.Request) {
	limit, err := app.readInt(r.URL.Query(), "limit", core.DefaultPostLimit)

	v := validator.New()
	if err != nil {
		v.AddError("limit", err.Error())
	}
	v.Check(limit >= 1 && limit <= maxPostLimit, "limit", "must be between 1 and 100")
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	posts, err := app.core.ListPosts(r.Context(), limit)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"posts": posts}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) createPostHandler(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Content  string   `json:"content"`
		ImageURL *string  `json:"image_url"`
		Tags     []string `json:"tags"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	content := community.Sanitize(input.Content)
	tags := make([]string, 0, len(input.Tags))
	for _, tag := range input.Tags {
		tags = append(tags, strings.ToLower(strings.TrimSpace(tag)))
	}

	v := validator.New()
	v.CheckNotBlank(content, "content", "must be provided")
	v.CheckMaxLength(content, community.MaxPostLength, "content", "must not be more than 5000 characters long")
	for _, tag := range tags {
		v.CheckNotBlank(tag, "tags", "must not contain blank tags")
	}
	v.Check(validator.IsUnique(tags), "tags", "must not contain duplicate values")
	if input.ImageURL != nil {
		v.CheckNotBlank(*input.ImageURL, "image_url", "must not be blank when provided")
	}
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	user, ok := app.profileOwner(w, r)
	if !ok {
		return
	}

	post, err := app.core.CreatePost(r.Context(), &models.Post{
		UserID:   user.ID,
		Content:  content,
		ImageURL: input.ImageURL,
		Tags:     tags,
	})
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"post": post}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) toggleLikeHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := app.readInt64Param(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	user, err := app.auth.GetAuthenticatedUser(r)
	if err != nil {
		app.authenticationRequiredResponse(w, r, err)
		return
	}

	likes, liked, err := app.core.ToggleLike(r.Context(), postID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"likes": likes, "liked": liked}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) sharePostHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := app.readInt64Param(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	shares, err := app.core.IncrementShares(r.Context(), postID)
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	data := envelope{"shares": shares, "link": community.ShareLink(postID)}
	if err := app.writeJSON(w, http.StatusOK, data, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

// createCommentHandler checks relevance first and inserts second; a rejected
// comment never reaches the database.
func (app *application) createCommentHandler(w http.ResponseWriter, r *http.Request) {
	postID, err := app.readInt64Param(r, "id")
	if err != nil {
		app.notFoundResponse(w, r)
		return
	}

	var input struct {
		Content string `json:"content"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	content := community.Sanitize(input.Content)

	v := validator.New()
	v.CheckNotBlank(content, "content", "must be provided")
	v.CheckMaxLength(content, community.MaxCommentLength, "content", "must not be more than 1000 characters long")
	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	relevant, err := app.moderator.IsRelevant(r.Context(), content)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}
	if !relevant {
		v.AddError("content", "Comment must be related to the project.")
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	user, ok := app.profileOwner(w, r)
	if !ok {
		return
	}

	comment, err := app.core.CreateComment(r.Context(), &models.Comment{
		PostID:  postID,
		UserID:  user.ID,
		Content: content,
	})
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.notFoundResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"comment": comment}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

// profileOwner returns the caller after making sure they have a profile row,
// which posts and comments reference. It writes the error response itself.
func (app *application) profileOwner(w http.ResponseWriter, r *http.Request) (*auth.User, bool) {
	user, err := app.auth.GetAuthenticatedUser(r)
	if err != nil {
		app.authenticationRequiredResponse(w, r, err)
		return nil, false
	}

	if _, err := app.core.EnsureProfile(r.Context(), user); err != nil {
		app.internalErrorResponse(w, r, err)
		return nil, false
	}

	return user, true
}
