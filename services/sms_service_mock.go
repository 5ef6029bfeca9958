package services

import "sync"

// SentSMS is one message captured by the mock sender
type SentSMS struct {
	To   string
	Body string
}

// MockSMSService is a mock implementation of SMSInterface for testing
type MockSMSService struct {
	mu       sync.Mutex
	messages []SentSMS
	FailWith error // when set, SendSMS returns this error
}

// NewMockSMSService creates a new mock SMS service
func NewMockSMSService() *MockSMSService {
	return &MockSMSService{}
}

// SetAsMockForTesting sets this mock as the global SMS service instance
func (m *MockSMSService) SetAsMockForTesting() {
	SetSMSService(m)
}

// SendSMS captures the message instead of sending it
func (m *MockSMSService) SendSMS(to, body string) error {
	if m.FailWith != nil {
		return m.FailWith
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, SentSMS{To: to, Body: body})
	return nil
}

// Messages returns a copy of every captured message
func (m *MockSMSService) Messages() []SentSMS {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentSMS, len(m.messages))
	copy(out, m.messages)
	return out
}
