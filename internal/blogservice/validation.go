package blogservice

import (
	"strings"

	"github.com/sushihentaime/blogshelf/internal/common"
)

// The checks below belong to the calling layer. The store itself accepts
// whatever it is given.

func validateRequired(v *common.Validator, value, field string) {
	v.Check(v.NotBlank(value), field, "must be provided")
}

func validateCoverImage(v *common.Validator, coverImage string) {
	if coverImage == "" {
		return
	}
	v.Check(v.IsHTTPURL(coverImage), "coverImage", "must be an http or https URL")
}

func validateTags(v *common.Validator, tags []string) {
	for _, tag := range tags {
		if !v.NotBlank(tag) {
			v.AddError("tags", "must not contain empty tags")
			return
		}
	}
}

// ValidateCreateRequest checks the fields a new post must carry.
func ValidateCreateRequest(req *CreateBlogRequest) error {
	v := common.NewValidator()

	validateRequired(v, req.Title, "title")
	validateRequired(v, req.Description, "description")
	validateRequired(v, req.Content, "content")
	validateRequired(v, req.Author, "author")
	validateCoverImage(v, req.CoverImage)
	validateTags(v, req.Tags)

	if !v.Valid() {
		return v.ValidationError()
	}

	return nil
}

// ValidateUpdateRequest applies the create rules to the supplied fields only.
func ValidateUpdateRequest(req *UpdateBlogRequest) error {
	v := common.NewValidator()

	if req.Title != nil {
		validateRequired(v, *req.Title, "title")
	}
	if req.Description != nil {
		validateRequired(v, *req.Description, "description")
	}
	if req.Content != nil {
		validateRequired(v, *req.Content, "content")
	}
	if req.Author != nil {
		validateRequired(v, *req.Author, "author")
	}
	if req.CoverImage != nil {
		validateCoverImage(v, *req.CoverImage)
	}
	if req.Tags != nil {
		validateTags(v, *req.Tags)
	}

	if !v.Valid() {
		return v.ValidationError()
	}

	return nil
}

// Trim strips surrounding whitespace from the text fields, as the form does
// before submitting.
func (req *CreateBlogRequest) Trim() {
	req.Title = strings.TrimSpace(req.Title)
	req.Description = strings.TrimSpace(req.Description)
	req.Content = strings.TrimSpace(req.Content)
	req.Author = strings.TrimSpace(req.Author)
}

func (req *UpdateBlogRequest) Trim() {
	for _, f := range []*string{req.Title, req.Description, req.Content, req.Author} {
		if f != nil {
			*f = strings.TrimSpace(*f)
		}
	}
}
