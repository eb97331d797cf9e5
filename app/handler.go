package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/sushihentaime/blogshelf/internal/blogservice"
	"github.com/sushihentaime/blogshelf/internal/blogview"
	"github.com/sushihentaime/blogshelf/internal/common"
)

type blogDetail struct {
	Blog *blogservice.Blog
	HTML string
}

// storeErrorResponse maps errors coming back from the blog service.
func (app *application) storeErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, blogservice.ErrRecordNotFound):
		app.notFoundErrorResponse(w, r)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		app.requestCanceledResponse(w, r, err)
	default:
		app.serverErrorResponse(w, r, err)
	}
}

// listBlogs serves the collection from the cache when it is warm. The fill
// is skipped if a mutation invalidated the cache while the store was read.
func (app *application) listBlogs(ctx context.Context) ([]blogservice.Blog, error) {
	if cached, ok := app.cache.Get(common.CacheKeyBlogs()); ok {
		return cached.([]blogservice.Blog), nil
	}

	gen := app.cache.Generation()

	blogs, err := app.blogService.GetBlogs(ctx)
	if err != nil {
		return nil, err
	}

	app.cache.SetIfCurrent(common.CacheKeyBlogs(), blogs, gen)
	return blogs, nil
}

func (app *application) invalidateBlogs(ids ...string) {
	keys := []string{common.CacheKeyBlogs(), common.CacheKeyBlogSummaries()}
	for _, id := range ids {
		keys = append(keys, common.CacheKeyBlog(id))
	}

	app.cache.Invalidate(keys...)
}

func (app *application) getAllBlogsHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("view") == "summary" {
		app.getBlogSummariesHandler(w, r)
		return
	}

	blogs, err := app.listBlogs(r.Context())
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blogs": blogs}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getBlogSummariesHandler(w http.ResponseWriter, r *http.Request) {
	var summaries []blogview.Summary

	if cached, ok := app.cache.Get(common.CacheKeyBlogSummaries()); ok {
		summaries = cached.([]blogview.Summary)
	} else {
		gen := app.cache.Generation()

		blogs, err := app.listBlogs(r.Context())
		if err != nil {
			app.storeErrorResponse(w, r, err)
			return
		}

		summaries = blogview.Summaries(blogs)
		app.cache.SetIfCurrent(common.CacheKeyBlogSummaries(), summaries, gen)
	}

	err := app.writeJSON(w, http.StatusOK, envelope{"blogs": summaries}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	var detail blogDetail

	if cached, ok := app.cache.Get(common.CacheKeyBlog(id)); ok {
		detail = cached.(blogDetail)
	} else {
		gen := app.cache.Generation()

		blog, found, err := app.blogService.GetBlogByID(r.Context(), id)
		if err != nil {
			app.storeErrorResponse(w, r, err)
			return
		}

		if !found {
			app.notFoundErrorResponse(w, r)
			return
		}

		html, err := blogview.RenderMarkdown(blog.Content)
		if err != nil {
			app.serverErrorResponse(w, r, err)
			return
		}

		detail = blogDetail{Blog: blog, HTML: html}
		app.cache.SetIfCurrent(common.CacheKeyBlog(id), detail, gen)
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"blog": detail.Blog, "html": detail.HTML}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) createBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input blogservice.CreateBlogRequest

	// Parse the request body
	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	input.Trim()

	err = blogservice.ValidateCreateRequest(&input)
	if err != nil {
		var validationErr common.ValidationError
		if errors.As(err, &validationErr) {
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
			return
		}
		app.serverErrorResponse(w, r, err)
		return
	}

	blog, err := app.blogService.CreateBlog(r.Context(), &input)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.invalidateBlogs()

	headers := make(http.Header)
	headers.Set("Location", "/v1/blogs/"+blog.ID)

	err = app.writeJSON(w, http.StatusCreated, envelope{"blog": blog}, headers)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) updateBlogHandler(w http.ResponseWriter, r *http.Request) {
	var input blogservice.UpdateBlogRequest

	// id is a URL parameter
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	// Parse the request body
	err = app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	input.Trim()

	err = blogservice.ValidateUpdateRequest(&input)
	if err != nil {
		var validationErr common.ValidationError
		if errors.As(err, &validationErr) {
			app.failedValidationErrorResponse(w, r, validationErr.Errors)
			return
		}
		app.serverErrorResponse(w, r, err)
		return
	}

	blog, err := app.blogService.UpdateBlog(r.Context(), id, &input)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.invalidateBlogs(id)

	err = app.writeJSON(w, http.StatusOK, envelope{"blog": blog}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) deleteBlogHandler(w http.ResponseWriter, r *http.Request) {
	id, err := app.readIDParam(r, "id")
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.blogService.DeleteBlog(r.Context(), id)
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.invalidateBlogs(id)

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "blog deleted"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) resetBlogsHandler(w http.ResponseWriter, r *http.Request) {
	blogs, err := app.blogService.Reset(r.Context())
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	app.cache.Flush()

	err = app.writeJSON(w, http.StatusOK, envelope{"blogs": blogs}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) getCategoriesHandler(w http.ResponseWriter, r *http.Request) {
	err := app.writeJSON(w, http.StatusOK, envelope{"categories": app.blogService.Categories()}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) feedHandler(w http.ResponseWriter, r *http.Request) {
	blogs, err := app.listBlogs(r.Context())
	if err != nil {
		app.storeErrorResponse(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")

	err = blogview.WriteRSS(w, blogs, app.config.SiteURL, time.Now())
	if err != nil {
		app.logError(r, err)
	}
}

func (app *application) getDraftHandler(w http.ResponseWriter, r *http.Request) {
	draft, ok, err := app.blogService.GetDraft(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	if !ok {
		app.notFoundErrorResponse(w, r)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"draft": draft}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) saveDraftHandler(w http.ResponseWriter, r *http.Request) {
	var input blogservice.Draft

	err := app.parseJSON(w, r, &input)
	if err != nil {
		app.badRequestErrorResponse(w, r, err)
		return
	}

	err = app.blogService.SaveDraft(r.Context(), &input)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"draft": input}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *application) discardDraftHandler(w http.ResponseWriter, r *http.Request) {
	err := app.blogService.DiscardDraft(r.Context())
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, envelope{"message": "draft discarded"}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
