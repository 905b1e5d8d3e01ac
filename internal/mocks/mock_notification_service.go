package mocks

import (
	"sync"

	"github.com/Shaxzodbek16/clot/domain"
)

// SentMessage records a single notification dispatch.
type SentMessage struct {
	Phone    string
	Template domain.SMSTemplate
	Params   map[string]string
}

// MockNotificationService implements domain.NotificationService interface
// for testing. It records every message so tests can read back the passcode
// that was "delivered".
type MockNotificationService struct {
	SendFunc func(phone string, template domain.SMSTemplate, params map[string]string) error

	mu   sync.Mutex
	Sent []SentMessage
}

// NewMockNotificationService creates a new MockNotificationService with default behaviors
func NewMockNotificationService() *MockNotificationService {
	return &MockNotificationService{}
}

func (m *MockNotificationService) Send(phone string, template domain.SMSTemplate, params map[string]string) error {
	m.mu.Lock()
	m.Sent = append(m.Sent, SentMessage{Phone: phone, Template: template, Params: params})
	m.mu.Unlock()

	if m.SendFunc != nil {
		return m.SendFunc(phone, template, params)
	}
	return nil
}

// LastCode returns the passcode carried by the most recent message.
func (m *MockNotificationService) LastCode() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Sent) == 0 {
		return ""
	}
	return m.Sent[len(m.Sent)-1].Params["code"]
}

// Compile-time interface compliance verification
var _ domain.NotificationService = (*MockNotificationService)(nil)
