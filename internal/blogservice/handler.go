package blogservice

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/sushihentaime/blogshelf/internal/common"
)

// NewBlogService returns the store service over kv. mb may be nil, in which
// case no events are published. A nil logger discards output.
func NewBlogService(kv common.KVStore, mb common.MessageProducer, logger *slog.Logger, latency Latency) *BlogService {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &BlogService{
		m:       newBlogModel(kv),
		mb:      mb,
		logger:  logger,
		latency: latency,
		now:     time.Now,
		newID:   newBlogID,
	}
}

// newBlogID returns a time-ordered unique id.
func newBlogID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}

type CreateBlogRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	CoverImage  string   `json:"coverImage"`
	Author      string   `json:"author"`
}

// UpdateBlogRequest carries the fields to replace. Nil fields are kept.
type UpdateBlogRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Content     *string   `json:"content"`
	Category    *string   `json:"category"`
	Tags        *[]string `json:"tags"`
	CoverImage  *string   `json:"coverImage"`
	Author      *string   `json:"author"`
}

// wait sleeps for d unless ctx ends first.
func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// load must be called with s.mu held.
func (s *BlogService) load(ctx context.Context) ([]Blog, error) {
	blogs, reseeded, err := s.m.load(ctx)
	if err != nil {
		return nil, err
	}

	if reseeded {
		s.logger.Warn("blog storage missing or unreadable, wrote seed dataset", slog.String("key", StorageKey), slog.Int("count", len(blogs)))
	}

	return blogs, nil
}

// GetBlogs returns the whole collection, newest first.
func (s *BlogService) GetBlogs(ctx context.Context) ([]Blog, error) {
	if err := wait(ctx, s.latency.List); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(ctx)
}

// GetBlogByID returns the blog with the given id. A missing blog is reported
// through the boolean, not as an error.
func (s *BlogService) GetBlogByID(ctx context.Context, id string) (*Blog, bool, error) {
	if err := wait(ctx, s.latency.Get); err != nil {
		return nil, false, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	blogs, err := s.load(ctx)
	if err != nil {
		return nil, false, err
	}

	idx := indexOf(blogs, id)
	if idx == -1 {
		return nil, false, nil
	}

	return &blogs[idx], true, nil
}

// CreateBlog assigns the id, creation date and read time, prepends the blog
// and clears any saved draft.
func (s *BlogService) CreateBlog(ctx context.Context, req *CreateBlogRequest) (*Blog, error) {
	if err := wait(ctx, s.latency.Create); err != nil {
		return nil, err
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	blogs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	blog := Blog{
		ID:          s.newID(),
		Title:       req.Title,
		Description: req.Description,
		Content:     req.Content,
		Category:    req.Category,
		Tags:        tags,
		CoverImage:  req.CoverImage,
		Author:      req.Author,
		ReadTime:    ReadTime(req.Content),
		CreatedAt:   s.now().UTC().Format(time.DateOnly),
	}

	if err := s.m.save(ctx, append([]Blog{blog}, blogs...)); err != nil {
		return nil, err
	}

	if err := s.m.deleteDraft(ctx); err != nil {
		s.logger.Error("could not clear draft", slog.String("error", err.Error()))
	}

	s.publish(ctx, common.BlogCreatedKey, &blog)

	return &blog, nil
}

// UpdateBlog merges the supplied fields over the stored blog. The id, the
// creation date and the read time are left as they were.
func (s *BlogService) UpdateBlog(ctx context.Context, id string, req *UpdateBlogRequest) (*Blog, error) {
	if err := wait(ctx, s.latency.Update); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	blogs, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	idx := indexOf(blogs, id)
	if idx == -1 {
		return nil, ErrRecordNotFound
	}

	updated := blogs[idx]
	req.apply(&updated)
	blogs[idx] = updated

	if err := s.m.save(ctx, blogs); err != nil {
		return nil, err
	}

	s.publish(ctx, common.BlogUpdatedKey, &updated)

	return &updated, nil
}

func (req *UpdateBlogRequest) apply(b *Blog) {
	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Description != nil {
		b.Description = *req.Description
	}
	if req.Content != nil {
		b.Content = *req.Content
	}
	if req.Category != nil {
		b.Category = *req.Category
	}
	if req.Tags != nil {
		b.Tags = *req.Tags
		if b.Tags == nil {
			b.Tags = []string{}
		}
	}
	if req.CoverImage != nil {
		b.CoverImage = *req.CoverImage
	}
	if req.Author != nil {
		b.Author = *req.Author
	}
}

// DeleteBlog removes the blog with the given id. Unknown ids are ignored.
func (s *BlogService) DeleteBlog(ctx context.Context, id string) error {
	if err := wait(ctx, s.latency.Delete); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	blogs, err := s.load(ctx)
	if err != nil {
		return err
	}

	kept := make([]Blog, 0, len(blogs))
	for _, b := range blogs {
		if b.ID != id {
			kept = append(kept, b)
		}
	}

	if err := s.m.save(ctx, kept); err != nil {
		return err
	}

	if len(kept) != len(blogs) {
		s.publish(ctx, common.BlogDeletedKey, &Blog{ID: id})
	}

	return nil
}

// Reset overwrites the collection with the seed dataset.
func (s *BlogService) Reset(ctx context.Context) ([]Blog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.m.reset(ctx)
}

func (s *BlogService) Categories() []string {
	categories := make([]string, len(Categories))
	copy(categories, Categories)
	return categories
}

// SaveDraft stores the unsaved new-post form. Drafts without a title are not
// stored.
func (s *BlogService) SaveDraft(ctx context.Context, draft *Draft) error {
	if draft.Title == "" {
		return nil
	}

	return s.m.saveDraft(ctx, draft)
}

func (s *BlogService) GetDraft(ctx context.Context) (*Draft, bool, error) {
	return s.m.getDraft(ctx)
}

func (s *BlogService) DiscardDraft(ctx context.Context) error {
	return s.m.deleteDraft(ctx)
}

// publish sends the event if a broker is configured. Failures are logged and
// never undo the mutation. The write is already committed, so the caller
// going away must not drop the event.
func (s *BlogService) publish(ctx context.Context, key common.BindingKey, b *Blog) {
	if s.mb == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)

	event := BlogEvent{
		Type:      string(key),
		ID:        b.ID,
		Title:     b.Title,
		Author:    b.Author,
		CreatedAt: b.CreatedAt,
	}

	msg, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("could not encode blog event", slog.String("error", err.Error()))
		return
	}

	if err := s.mb.Publish(ctx, msg, key, common.BlogExchange); err != nil {
		s.logger.Error("could not publish blog event", slog.String("type", event.Type), slog.String("id", event.ID), slog.String("error", err.Error()))
	}
}
