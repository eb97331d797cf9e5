package blogservice

import (
	"log/slog"
	"sync"
	"time"

	"github.com/sushihentaime/blogshelf/internal/common"
)

// Blog is one persisted article. The JSON keys are the stored layout.
type Blog struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	// Content is stored in Markdown format.
	Content    string   `json:"content"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags"`
	CoverImage string   `json:"coverImage"`
	Author     string   `json:"author"`
	ReadTime   string   `json:"readTime"`
	// CreatedAt is a YYYY-MM-DD date, set once on create.
	CreatedAt string `json:"createdAt"`
}

// Draft is an unsaved new-post form. It never carries derived fields.
type Draft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Tags        []string `json:"tags"`
	CoverImage  string   `json:"coverImage"`
	Author      string   `json:"author"`
}

// Latency is the artificial delay applied before each store call.
type Latency struct {
	List   time.Duration
	Get    time.Duration
	Create time.Duration
	Update time.Duration
	Delete time.Duration
}

var (
	DefaultLatency = Latency{
		List:   400 * time.Millisecond,
		Get:    200 * time.Millisecond,
		Create: 300 * time.Millisecond,
		Update: 300 * time.Millisecond,
		Delete: 200 * time.Millisecond,
	}

	NoLatency = Latency{}
)

// BlogEvent is published to the blog exchange after each mutation.
type BlogEvent struct {
	Type      string `json:"type"`
	ID        string `json:"id"`
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

type BlogModel struct {
	kv common.KVStore
}

type BlogService struct {
	m       *BlogModel
	mb      common.MessageProducer
	logger  *slog.Logger
	latency Latency

	// mu serializes every load-mutate-save cycle on the collection.
	mu sync.Mutex

	now   func() time.Time
	newID func() string
}
