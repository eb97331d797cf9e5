package mailservice

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/sushihentaime/blogshelf/internal/blogservice"
	"github.com/sushihentaime/blogshelf/internal/common"
	"golang.org/x/exp/rand"
)

func NewMailService(mb common.MessageConsumer, host, username, password, sender string, port int, recipients []string, siteURL string, logger MailLogger) *MailService {
	ctx, cancel := context.WithCancel(context.Background())
	return &MailService{
		mb:         mb,
		m:          NewMailer(host, port, username, password, sender, NewTemplate()),
		logger:     logger,
		recipients: recipients,
		siteURL:    strings.TrimRight(siteURL, "/"),
		maxRetries: 5,
		baseDelay:  500 * time.Millisecond,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// NotifyNewPosts consumes blog.created events and mails every recipient a
// link to the new post. It returns once the consumer goroutine is running.
func (s *MailService) NotifyNewPosts() {
	msgs, err := s.mb.Consume(common.BlogCreatedKey, common.BlogExchange, common.BlogCreatedQueue)
	if err != nil {
		s.logger.Error("could not consume message", slog.String("error", err.Error()))
		return
	}

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					return
				}

				var event blogservice.BlogEvent
				err := json.Unmarshal(msg.Body, &event)
				if err != nil {
					s.logger.Error("could not unmarshal message", slog.String("error", err.Error()))
					msg.Ack(false)
					continue
				}

				payload := newPostData{
					Title:     event.Title,
					Author:    event.Author,
					CreatedAt: event.CreatedAt,
					Link:      s.siteURL + "/blogs/" + event.ID,
				}

				for _, recipient := range s.recipients {
					s.sendWithRetry(recipient, payload)
				}

				msg.Ack(false)

			case <-s.ctx.Done():
				s.logger.Info("stopping NotifyNewPosts due to context cancellation")
				return
			}
		}
	}()
}

// sendWithRetry uses exponential backoff with jitter.
func (s *MailService) sendWithRetry(recipient string, payload newPostData) bool {
	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err := s.m.send(recipient, payload, newPostTemplate)
		if err == nil {
			s.logger.Info("new post email sent", slog.String("email", recipient))
			return true
		}

		if attempt == s.maxRetries-1 {
			break
		}

		var delay time.Duration
		if s.baseDelay > 0 {
			delay = time.Duration(rand.Int63n(int64(s.baseDelay) << uint(attempt)))
		}
		s.logger.Info("delaying new post email", slog.String("email", recipient), slog.Int("attempt", attempt), slog.Duration("delay", delay))

		select {
		case <-time.After(delay):
		case <-s.ctx.Done():
			return false
		}
	}

	s.logger.Error("could not send new post email", slog.String("email", recipient))
	return false
}

func (s *MailService) Close() {
	s.cancel()
}
