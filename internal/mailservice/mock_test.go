package mailservice

import (
	"bytes"
	"errors"
	"sync"

	"github.com/go-mail/mail/v2"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/mock"
	"github.com/sushihentaime/blogshelf/internal/common"
)

type MockTemplate struct {
	mock.Mock
}

func (m *MockTemplate) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	args := m.Called(name, data)
	return args.Get(0).(*bytes.Buffer), args.Get(1).(*bytes.Buffer), args.Get(2).(*bytes.Buffer), args.Error(3)
}

type MockDialer struct {
	mock.Mock
}

func (d *MockDialer) DialAndSend(m ...*mail.Message) error {
	args := d.Called(m)
	return args.Error(0)
}

var errSMTPUnavailable = errors.New("smtp unavailable")

// MockMailer fails the first failures sends, then succeeds.
type MockMailer struct {
	mu       sync.Mutex
	failures int
	attempts int
	sent     []string
	payloads []newPostData
}

func (m *MockMailer) send(recipient string, data any, templateFile string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.attempts++
	if m.failures > 0 {
		m.failures--
		return errSMTPUnavailable
	}

	m.sent = append(m.sent, recipient)
	m.payloads = append(m.payloads, data.(newPostData))
	return nil
}

func (m *MockMailer) Sent() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.sent...)
}

func (m *MockMailer) Attempts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attempts
}

type MockLogger struct {
	mu   sync.Mutex
	msgs []string
}

func (l *MockLogger) Error(msg string, args ...any) { l.record(msg) }

func (l *MockLogger) Info(msg string, args ...any) { l.record(msg) }

func (l *MockLogger) record(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, msg)
}

func (l *MockLogger) Messages() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.msgs...)
}

// MockAcknowledger counts acks on deliveries.
type MockAcknowledger struct {
	mu   sync.Mutex
	acks int
}

func (a *MockAcknowledger) Ack(tag uint64, multiple bool) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.acks++
	return nil
}

func (a *MockAcknowledger) Nack(tag uint64, multiple, requeue bool) error { return nil }

func (a *MockAcknowledger) Reject(tag uint64, requeue bool) error { return nil }

func (a *MockAcknowledger) Acks() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.acks
}

type MockMessageConsumer struct {
	mock.Mock
	bodies []string
	ack    amqp.Acknowledger
}

func (m *MockMessageConsumer) Consume(key common.BindingKey, exchange common.Exchange, queue common.Queue) (<-chan amqp.Delivery, error) {
	m.Called(key, exchange, queue)

	msgsChan := make(chan amqp.Delivery)

	go func() {
		defer close(msgsChan)
		for _, body := range m.bodies {
			msgsChan <- amqp.Delivery{Acknowledger: m.ack, Body: []byte(body)}
		}
	}()

	return msgsChan, nil
}
