package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundErrorResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedErrorResponse)

	router.HandlerFunc(http.MethodGet, "/v1/healthcheck", app.healthCheckHandler)
	router.HandlerFunc(http.MethodGet, "/v1/categories", app.getCategoriesHandler)
	router.HandlerFunc(http.MethodGet, "/v1/feed.rss", app.feedHandler)

	// blog service
	router.HandlerFunc(http.MethodGet, "/v1/blogs", app.getAllBlogsHandler)
	router.HandlerFunc(http.MethodPost, "/v1/blogs", app.createBlogHandler)
	router.HandlerFunc(http.MethodGet, "/v1/blogs/:id", app.getBlogHandler)
	router.HandlerFunc(http.MethodPatch, "/v1/blogs/:id", app.updateBlogHandler)
	router.HandlerFunc(http.MethodPut, "/v1/blogs/:id", app.updateBlogHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/blogs/:id", app.deleteBlogHandler)
	router.HandlerFunc(http.MethodPost, "/v1/reset", app.resetBlogsHandler)

	// unsaved new-post form
	router.HandlerFunc(http.MethodGet, "/v1/draft", app.getDraftHandler)
	router.HandlerFunc(http.MethodPut, "/v1/draft", app.saveDraftHandler)
	router.HandlerFunc(http.MethodDelete, "/v1/draft", app.discardDraftHandler)

	return app.recoverPanic(app.logRequest(app.enableCORS(router)))
}
