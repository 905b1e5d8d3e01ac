package domain

import (
	"fmt"
	"time"
)

// AuditEventType defines the type of audit event
type AuditEventType string

const (
	// Credential lifecycle events
	UserRegisteredEvent      AuditEventType = "USER_REGISTERED"
	OTPIssuedEvent           AuditEventType = "OTP_ISSUED"
	OTPVerifiedEvent         AuditEventType = "OTP_VERIFIED"
	OTPVerifyFailedEvent     AuditEventType = "OTP_VERIFY_FAILED"
	UserActivatedEvent       AuditEventType = "USER_ACTIVATED"
	UserLoginEvent           AuditEventType = "USER_LOGIN"
	UserLoginFailedEvent     AuditEventType = "USER_LOGIN_FAILED"
	PasswordResetEvent       AuditEventType = "PASSWORD_RESET"
	UserLogoutEvent          AuditEventType = "USER_LOGOUT"
	UserLogoutAllEvent       AuditEventType = "USER_LOGOUT_ALL"
	UserDeactivatedEvent     AuditEventType = "USER_DEACTIVATED"
	SMSDeliveryFailedEvent   AuditEventType = "SMS_DELIVERY_FAILED"
	TokenRefreshEvent        AuditEventType = "TOKEN_REFRESHED"
	TokenRefreshFailedEvent  AuditEventType = "TOKEN_REFRESH_FAILED"
)

// AuditEvent represents a business event that occurred in the system.
// Events are rendered into log lines, not persisted.
type AuditEvent struct {
	EventType AuditEventType
	UserID    uint
	Phone     string
	Timestamp time.Time
	Success   bool
	ErrorMsg  string
}

// NewAuditEvent creates a new audit event with common fields populated
func NewAuditEvent(eventType AuditEventType, userID uint) *AuditEvent {
	return &AuditEvent{
		EventType: eventType,
		UserID:    userID,
		Timestamp: time.Now().UTC(),
		Success:   true,
	}
}

// WithPhone sets the phone field
func (e *AuditEvent) WithPhone(phone string) *AuditEvent {
	e.Phone = phone
	return e
}

// WithError sets error information on the audit event
func (e *AuditEvent) WithError(err error) *AuditEvent {
	e.Success = false
	if err != nil {
		e.ErrorMsg = err.Error()
	}
	return e
}

// String renders the event as a single log line.
func (e *AuditEvent) String() string {
	line := fmt.Sprintf("%s: user_id=%d", e.EventType, e.UserID)
	if e.Phone != "" {
		line += fmt.Sprintf(" phone=%s", e.Phone)
	}
	if !e.Success {
		line += fmt.Sprintf(" error=%q", e.ErrorMsg)
	}
	return line + fmt.Sprintf(" timestamp=%s", e.Timestamp.Format(time.RFC3339))
}
