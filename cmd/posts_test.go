package main

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var commentCols = []string{"id", "post_id", "user_id", "content", "created_at", "username", "full_name", "avatar_url"}

func TestCreatePostRequiresAuthentication(t *testing.T) {
	app, _ := newTestApplication(t)

	rr := do(t, app, http.MethodPost, "/api/posts", map[string]any{"content": "hello"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestInvalidTokenIsRejected(t *testing.T) {
	app, _ := newTestApplication(t)

	rr := do(t, app, http.MethodGet, "/api/posts", nil, "not-a-jwt")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "Token", rr.Header().Get("WWW-Authenticate"))
}

func TestCreatePostSanitizesContent(t *testing.T) {
	app, mock := newTestApplication(t)
	user, token := signedIn(t, app, mock)

	mock.ExpectQuery(`FROM profiles WHERE id = \$1`).WithArgs(user.ID).WillReturnRows(profileRows(user.ID, "asha"))
	mock.ExpectQuery(`INSERT INTO posts`).
		WithArgs(user.ID, "Filled two barrels today", nil, `{"harvest"}`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content", "image_url", "likes", "shares", "tags", "created_at"}).
			AddRow(9, user.ID.String(), "Filled two barrels today", nil, "{}", 0, "{harvest}", fixedTime))
	mock.ExpectQuery(`FROM profiles WHERE id IN`).WithArgs(user.ID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "username", "full_name", "avatar_url"}).AddRow(user.ID.String(), "asha", "Asha Rao", nil))

	body := map[string]any{"content": "  <b>Filled</b> two barrels today<script>alert(1)</script> ", "tags": []string{" Harvest "}}
	rr := do(t, app, http.MethodPost, "/api/posts", body, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	post := decode(t, rr)["post"].(map[string]any)
	assert.Equal(t, "asha", post["profiles"].(map[string]any)["username"])
	assert.Equal(t, []any{}, post["comments"])
}

func TestCreatePostRejectsBlankContent(t *testing.T) {
	app, mock := newTestApplication(t)
	_, token := signedIn(t, app, mock)

	rr := do(t, app, http.MethodPost, "/api/posts", map[string]any{"content": "<p>   </p>"}, token)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, "validation failed", decode(t, rr)["errorMessage"])
}

func TestToggleLike(t *testing.T) {
	app, mock := newTestApplication(t)
	user, token := signedIn(t, app, mock)

	mock.ExpectQuery(`SELECT likes FROM posts`).WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"likes"}).AddRow("{}"))
	mock.ExpectExec(`UPDATE posts SET likes`).WillReturnResult(sqlmock.NewResult(0, 1))

	rr := do(t, app, http.MethodPost, "/api/posts/4/like", nil, token)
	require.Equal(t, http.StatusOK, rr.Code)

	body := decode(t, rr)
	assert.Equal(t, true, body["liked"])
	assert.Equal(t, []any{user.ID.String()}, body["likes"])
}

func TestToggleLikeUnknownPost(t *testing.T) {
	app, mock := newTestApplication(t)
	_, token := signedIn(t, app, mock)

	mock.ExpectQuery(`SELECT likes FROM posts`).WillReturnRows(sqlmock.NewRows([]string{"likes"}))

	rr := do(t, app, http.MethodPost, "/api/posts/404/like", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSharePost(t *testing.T) {
	app, mock := newTestApplication(t)

	mock.ExpectQuery(`UPDATE posts SET shares = shares \+ 1`).WithArgs(int64(12)).
		WillReturnRows(sqlmock.NewRows([]string{"shares"}).AddRow(3))

	rr := do(t, app, http.MethodPost, "/api/posts/12/share", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)

	body := decode(t, rr)
	assert.EqualValues(t, 3, body["shares"])
	assert.Equal(t, "/post/12", body["link"])

	rr = do(t, app, http.MethodPost, "/api/posts/0/share", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateCommentRejectedAsIrrelevant(t *testing.T) {
	app, mock := newTestApplication(t)
	_, token := signedIn(t, app, mock)
	moderator := &stubModerator{relevant: false}
	app.moderator = moderator

	rr := do(t, app, http.MethodPost, "/api/posts/3/comments", map[string]any{"content": "Buy cheap sunglasses"}, token)
	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	body := decode(t, rr)
	assert.Equal(t, "Comment must be related to the project.", body["errorDetails"].(map[string]any)["content"])
	assert.Equal(t, 1, moderator.calls)
}

func TestCreateCommentModerationFailure(t *testing.T) {
	app, mock := newTestApplication(t)
	_, token := signedIn(t, app, mock)
	app.moderator = &stubModerator{err: errors.New("upstream timeout")}

	rr := do(t, app, http.MethodPost, "/api/posts/3/comments", map[string]any{"content": "Mulch helps"}, token)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
}

func TestCreateComment(t *testing.T) {
	app, mock := newTestApplication(t)
	user, token := signedIn(t, app, mock)

	mock.ExpectQuery(`FROM profiles WHERE id = \$1`).WithArgs(user.ID).WillReturnRows(profileRows(user.ID, "asha"))
	mock.ExpectQuery(`WITH inserted AS`).WithArgs(int64(3), user.ID, "Mulch keeps the soil moist").
		WillReturnRows(sqlmock.NewRows(commentCols).
			AddRow(21, 3, user.ID.String(), "Mulch keeps the soil moist", fixedTime, "asha", "Asha Rao", nil))

	rr := do(t, app, http.MethodPost, "/api/posts/3/comments", map[string]any{"content": "Mulch keeps the soil moist"}, token)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	comment := decode(t, rr)["comment"].(map[string]any)
	assert.EqualValues(t, 21, comment["id"])
	assert.Equal(t, "Asha Rao", comment["profiles"].(map[string]any)["full_name"])
}

func TestListPosts(t *testing.T) {
	app, mock := newTestApplication(t)

	mock.ExpectQuery(`FROM posts ORDER BY`).WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "content", "image_url", "likes", "shares", "tags", "created_at"}))

	rr := do(t, app, http.MethodGet, "/api/posts?limit=5", nil, "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, []any{}, decode(t, rr)["posts"])

	rr = do(t, app, http.MethodGet, "/api/posts?limit=1000", nil, "")
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}
