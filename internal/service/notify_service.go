package service

import (
	"fmt"
	"log"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/twilio/twilio-go"
	openapi "github.com/twilio/twilio-go/rest/api/v2010"

	"spacecityrentals/internal/config"
	"spacecityrentals/internal/db"
	"spacecityrentals/internal/entities"
)

// NotifyService builds the pre-filled guest contact actions offered to the
// admin after approving or declining a booking, and fire-and-forgets the
// email/SMS sends when SendGrid/Twilio are configured. Send failures are
// logged, never surfaced: the status change already happened.
type NotifyService struct {
	cfg *config.Config
}

func NewNotifyService(cfg *config.Config) *NotifyService {
	return &NotifyService{cfg: cfg}
}

func firstName(full string) string {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return full
	}
	return fields[0]
}

func formatDateRange(start, end string) string {
	return fmt.Sprintf("%s to %s", start, end)
}

// ContactActions returns the admin-facing pre-filled SMS and email for a
// status change. Bodies vary by action and embed the guest's first name,
// vehicle name, date range, and the status-lookup URL.
func (n *NotifyService) ContactActions(booking *db.Booking, status string) *entities.GuestContactActions {
	name := firstName(booking.GuestName)
	dates := formatDateRange(booking.StartDate, booking.EndDate)
	statusURL := fmt.Sprintf("%s/booking-status?code=%s", n.cfg.PublicBaseURL, booking.ConfirmationCode)

	var smsBody, emailSubject, emailBody string
	switch status {
	case db.BookingStatusApproved:
		smsBody = fmt.Sprintf("Space City Rentals: %s, your booking for the %s (%s) is approved! Confirmation %s. Details: %s",
			name, booking.VehicleName, dates, booking.ConfirmationCode, statusURL)
		emailSubject = fmt.Sprintf("Your Space City Rentals booking is approved - %s", booking.ConfirmationCode)
		emailBody = fmt.Sprintf(
			"Hi %s,\n\nGreat news - your booking for the %s is approved.\n\n"+
				"Dates: %s\n"+
				"Confirmation code: %s\n\n"+
				"Track your booking any time: %s\n\n"+
				"See you soon,\nSpace City Rentals",
			name, booking.VehicleName, dates, booking.ConfirmationCode, statusURL)
	case db.BookingStatusDeclined:
		smsBody = fmt.Sprintf("Space City Rentals: %s, unfortunately we couldn't confirm your booking for the %s (%s). Details: %s",
			name, booking.VehicleName, dates, statusURL)
		emailSubject = fmt.Sprintf("Update on your Space City Rentals booking - %s", booking.ConfirmationCode)
		emailBody = fmt.Sprintf(
			"Hi %s,\n\nUnfortunately we couldn't confirm your booking for the %s (%s).\n\n"+
				"Your card has not been charged. Reply to this email and we'll help you find alternate dates or another vehicle.\n\n"+
				"Booking status: %s\n\n"+
				"Space City Rentals",
			name, booking.VehicleName, dates, statusURL)
	default:
		smsBody = fmt.Sprintf("Space City Rentals: %s, your booking %s is %s. Details: %s",
			name, booking.ConfirmationCode, status, statusURL)
		emailSubject = fmt.Sprintf("Your Space City Rentals booking is %s - %s", status, booking.ConfirmationCode)
		emailBody = fmt.Sprintf("Hi %s,\n\nYour booking for the %s (%s) is now %s.\n\nTrack it here: %s\n\nSpace City Rentals",
			name, booking.VehicleName, dates, status, statusURL)
	}

	return &entities.GuestContactActions{
		GuestPhone:   booking.GuestPhone,
		GuestEmail:   booking.GuestEmail,
		SMSBody:      smsBody,
		EmailSubject: emailSubject,
		EmailBody:    emailBody,
		StatusURL:    statusURL,
	}
}

// SendStatusUpdate dispatches the email and SMS asynchronously.
func (n *NotifyService) SendStatusUpdate(booking *db.Booking, status string) {
	actions := n.ContactActions(booking, status)

	go func() {
		if err := n.sendEmail(booking.GuestEmail, booking.GuestName, actions.EmailSubject, actions.EmailBody); err != nil {
			log.Printf("Booking %s updated, but status email to %s failed: %v",
				booking.ConfirmationCode, booking.GuestEmail, err)
		}
	}()
	go func() {
		if err := n.sendSMS(booking.GuestPhone, actions.SMSBody); err != nil {
			log.Printf("Booking %s updated, but status SMS to %s failed: %v",
				booking.ConfirmationCode, booking.GuestPhone, err)
		}
	}()
}

func (n *NotifyService) sendEmail(toEmail, toName, subject, body string) error {
	if n.cfg.SendGridAPIKey == "" {
		log.Println("SENDGRID_API_KEY not configured; skipping status email")
		return nil
	}
	from := mail.NewEmail(n.cfg.SendGridFromName, n.cfg.SendGridFromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")
	client := sendgrid.NewSendClient(n.cfg.SendGridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}

func (n *NotifyService) sendSMS(to, message string) error {
	if n.cfg.TwilioAccountSID == "" {
		log.Println("Twilio not configured; skipping status SMS")
		return nil
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: n.cfg.TwilioAccountSID,
		Password: n.cfg.TwilioAuthToken,
	})
	params := &openapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(n.cfg.TwilioFromNumber)
	params.SetBody(message)
	if _, err := client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send SMS: %w", err)
	}
	return nil
}
