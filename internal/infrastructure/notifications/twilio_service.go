package notifications

import (
	"fmt"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/Shaxzodbek16/clot/domain"
)

// TwilioServiceImpl implements domain.NotificationService
type TwilioServiceImpl struct {
	client     *twilio.RestClient
	fromNumber string
}

// NewTwilioService creates a new Twilio notification service
func NewTwilioService(accountSID, authToken, fromNumber string) domain.NotificationService {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})

	return &TwilioServiceImpl{
		client:     client,
		fromNumber: fromNumber,
	}
}

// renderTemplate builds the human-readable message for a template name.
func renderTemplate(template domain.SMSTemplate, params map[string]string) string {
	name := params["name"]
	code := params["code"]
	switch template {
	case domain.SMSTemplateForgotPassword:
		return fmt.Sprintf("Hi %s, use code %s to reset your password. Valid for 5 minutes.", name, code)
	default:
		return fmt.Sprintf("Hi %s, your verification code is %s. Valid for 5 minutes.", name, code)
	}
}

// Send implements domain.NotificationService
func (t *TwilioServiceImpl) Send(phone string, template domain.SMSTemplate, params map[string]string) error {
	message := renderTemplate(template, params)

	// If credentials are not configured, log instead of sending
	if t.fromNumber == "" {
		fmt.Printf("[MOCK SMS] To: %s, Template: %s, Message: %s\n", phone, template, message)
		return nil
	}

	msgParams := &twilioApi.CreateMessageParams{}
	msgParams.SetTo(phone)
	msgParams.SetFrom(t.fromNumber)
	msgParams.SetBody(message)

	if _, err := t.client.Api.CreateMessage(msgParams); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}

	return nil
}
