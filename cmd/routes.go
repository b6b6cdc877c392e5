package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/api/healthcheck", app.healthcheckHandler)

	router.HandlerFunc(http.MethodPost, "/api/auth/signup", app.signupHandler)
	router.HandlerFunc(http.MethodPost, "/api/auth/login", app.loginHandler)
	router.HandlerFunc(http.MethodGet, "/api/auth/callback", app.authCallbackHandler)

	router.HandlerFunc(http.MethodGet, "/api/articles", app.listArticlesHandler)
	router.HandlerFunc(http.MethodGet, "/api/articles/:id", app.showArticleHandler)
	router.HandlerFunc(http.MethodGet, "/api/articles/:id/progress", app.articleProgressHandler)

	router.HandlerFunc(http.MethodGet, "/api/videos", app.listVideosHandler)
	router.HandlerFunc(http.MethodGet, "/api/videos/:id", app.showVideoHandler)

	router.HandlerFunc(http.MethodGet, "/api/zones", app.listZonesHandler)
	router.HandlerFunc(http.MethodGet, "/api/zones/states", app.listStatesHandler)
	router.HandlerFunc(http.MethodGet, "/api/zones/states/:state/cities", app.listCitiesHandler)
	router.HandlerFunc(http.MethodGet, "/api/weather", app.weatherHandler)

	router.HandlerFunc(http.MethodGet, "/api/calculator/coefficients", app.coefficientsHandler)
	router.HandlerFunc(http.MethodPost, "/api/calculator/harvest", app.harvestHandler)
	router.HandlerFunc(http.MethodPost, "/api/calculator/quality", app.qualityHandler)

	router.HandlerFunc(http.MethodGet, "/api/posts", app.listPostsHandler)
	router.HandlerFunc(http.MethodPost, "/api/posts", app.requireAuthenticatedUser(app.createPostHandler))
	router.HandlerFunc(http.MethodPost, "/api/posts/:id/like", app.requireAuthenticatedUser(app.toggleLikeHandler))
	router.HandlerFunc(http.MethodPost, "/api/posts/:id/share", app.sharePostHandler)
	router.HandlerFunc(http.MethodPost, "/api/posts/:id/comments", app.requireAuthenticatedUser(app.createCommentHandler))

	router.HandlerFunc(http.MethodGet, "/api/profiles/:id", app.showProfileHandler)
	router.HandlerFunc(http.MethodPut, "/api/profiles/:id", app.requireAuthenticatedUser(app.updateProfileHandler))
	router.HandlerFunc(http.MethodPost, "/api/profiles/:id/avatar", app.requireAuthenticatedUser(app.uploadAvatarHandler))
	router.HandlerFunc(http.MethodPost, "/api/profiles/:id/follow", app.requireAuthenticatedUser(app.followHandler))
	router.HandlerFunc(http.MethodDelete, "/api/profiles/:id/follow", app.requireAuthenticatedUser(app.unfollowHandler))

	router.Handler(http.MethodGet, "/storage/*filepath", app.bucket.Handler())

	return app.recoverPanic(app.authenticate(router))
}
