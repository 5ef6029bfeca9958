package services

import (
	"fmt"
	"log"
	"time"

	appConfig "github.com/homegenie-services/homegenie-api/config"
	"github.com/homegenie-services/homegenie-api/models"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

// SMSInterface defines the interface for sending text messages
type SMSInterface interface {
	SendSMS(to, body string) error
}

// TwilioSMSService sends SMS through the Twilio REST API
type TwilioSMSService struct {
	client *twilio.RestClient
	from   string
}

var smsServiceInstance SMSInterface

// InitSMSService initializes the Twilio-backed SMS service
func InitSMSService() SMSInterface {
	cfg := appConfig.GetConfig()

	smsServiceInstance = &TwilioSMSService{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
		from: cfg.TwilioFromNumber,
	}
	return smsServiceInstance
}

// GetSMSService returns the initialized SMS service instance
func GetSMSService() SMSInterface {
	return smsServiceInstance
}

// SetSMSService sets the SMS service instance (primarily for testing)
func SetSMSService(service SMSInterface) {
	smsServiceInstance = service
}

// SendSMS sends a single text message via Twilio
func (s *TwilioSMSService) SendSMS(to, body string) error {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	resp, err := s.client.Api.CreateMessage(params)
	if err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	if resp.Sid != nil {
		log.Printf("SMS sent to %s, SID: %s", to, *resp.Sid)
	}
	return nil
}

// NotifyOrderEvent sends the SMS for a workflow event to the order's
// customer, honoring the per-event toggles in notification settings, and
// records the attempt in the notification log. Failures are logged, never
// propagated: a notification problem must not fail the mutation behind it.
func NotifyOrderEvent(db *gorm.DB, order *models.Order, event string) {
	var settings models.NotificationSettings
	if err := db.Where("channel = ?", models.ChannelSMS).First(&settings).Error; err != nil {
		return // no SMS configuration, nothing to send
	}
	if !settings.EventEnabled(event) {
		return
	}

	sender := GetSMSService()
	if sender == nil {
		log.Printf("SMS service not initialized, skipping %s notification for order %s", event, order.OrderNumber)
		return
	}

	body := messageForEvent(order, event)
	status := "sent"
	errorMsg := ""
	if err := sender.SendSMS(order.CustomerPhone, body); err != nil {
		log.Printf("Failed to send %s SMS for order %s: %v", event, order.OrderNumber, err)
		status = "failed"
		errorMsg = err.Error()
	}

	entry := models.NotificationLog{
		OrderID:      order.ID,
		Channel:      models.ChannelSMS,
		Event:        event,
		Recipient:    order.CustomerPhone,
		Message:      body,
		Status:       status,
		ErrorMessage: errorMsg,
		SentAt:       time.Now(),
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("Failed to log notification for order %s: %v", order.OrderNumber, err)
	}
}

// messageForEvent builds the customer-facing SMS body for a workflow event
func messageForEvent(order *models.Order, event string) string {
	switch event {
	case models.EventOrderConfirmed:
		return fmt.Sprintf("Hi %s, your order %s has been confirmed. We will assign an engineer shortly.",
			order.CustomerName, order.OrderNumber)
	case models.EventEngineerAssigned:
		return fmt.Sprintf("Hi %s, an engineer has been assigned to your order %s.",
			order.CustomerName, order.OrderNumber)
	case models.EventVisitReminder:
		return fmt.Sprintf("Hi %s, a reminder that your service visit for order %s is scheduled tomorrow.",
			order.CustomerName, order.OrderNumber)
	case models.EventOrderCompleted:
		return fmt.Sprintf("Hi %s, your order %s is complete. Thank you for choosing HomeGenie!",
			order.CustomerName, order.OrderNumber)
	}
	return fmt.Sprintf("Update on your order %s.", order.OrderNumber)
}
