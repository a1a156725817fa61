package services

import (
	"fmt"
	"log"
	"time"

	"parishcare/internal/adapters/persistence/models"
	"parishcare/internal/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// NotificationService sends parish emails through SendGrid. Without an
// API key it degrades to logging the message, which keeps dev setups
// working offline.
type NotificationService struct {
	cfg     config.EmailConfig
	enabled bool
}

// NewNotificationService creates a new notification service
func NewNotificationService(cfg config.EmailConfig) *NotificationService {
	enabled := cfg.SendgridAPIKey != ""
	if !enabled {
		log.Println("⚠️ SENDGRID_API_KEY not set, emails will be logged to console")
	}
	return &NotificationService{
		cfg:     cfg,
		enabled: enabled,
	}
}

// IsEnabled checks if real email delivery is configured
func (s *NotificationService) IsEnabled() bool {
	return s.enabled
}

// send delivers one email, or logs it when delivery is disabled
func (s *NotificationService) send(toEmail, toName, subject, body string) error {
	if toEmail == "" {
		return nil
	}

	if !s.enabled {
		log.Printf("📧 [console] To: %s | %s\n%s", toEmail, subject, body)
		return nil
	}

	from := mail.NewEmail(s.cfg.FromName, s.cfg.FromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, body, "")

	client := sendgrid.NewSendClient(s.cfg.SendgridAPIKey)
	resp, err := client.Send(message)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

// NotifySweepSummary mails the nightly membership sweep result to the
// parish office
func (s *NotificationService) NotifySweepSummary(result *SweepResult) {
	body := fmt.Sprintf(
		"Membership status sweep finished at %s.\n\nMembers checked: %d\nStatuses changed: %d\nSkipped: %d\n",
		time.Now().Format("2006-01-02 15:04"),
		result.Total,
		result.Changed,
		len(result.Skipped),
	)

	if err := s.send(s.cfg.AdminEmail, "Parish Office", "Nightly membership sweep summary", body); err != nil {
		log.Printf("⚠️ Failed to send sweep summary: %v", err)
	}
}

// NotifyCertificateReady tells a member their certificate can be picked up
func (s *NotificationService) NotifyCertificateReady(cert *models.Certificate, member *models.User) {
	body := fmt.Sprintf(
		"Dear %s,\n\nYour %s certificate (reference %s) is ready for pickup at the parish office.\n\nGod bless,\n%s",
		member.FullName(),
		cert.Type,
		cert.ReferenceNo,
		s.cfg.FromName,
	)

	if err := s.send(member.Email, member.FullName(), "Your certificate is ready", body); err != nil {
		log.Printf("⚠️ Failed to send certificate notice for %s: %v", cert.ReferenceNo, err)
	}
}

// NotifyAppointmentApproved tells a member their sacrament appointment
// was approved
func (s *NotificationService) NotifyAppointmentApproved(appt *models.SacramentAppointment, member *models.User) {
	apptTime := ""
	if appt.ApptTime != nil {
		apptTime = " at " + *appt.ApptTime
	}
	body := fmt.Sprintf(
		"Dear %s,\n\nYour %s appointment on %s%s has been approved.\nLocation: %s\n\nGod bless,\n%s",
		member.FullName(),
		appt.Type,
		appt.ApptDate.Format("January 2, 2006"),
		apptTime,
		appt.Location,
		s.cfg.FromName,
	)

	if err := s.send(member.Email, member.FullName(), "Appointment approved", body); err != nil {
		log.Printf("⚠️ Failed to send appointment notice for member %d: %v", appt.UserID, err)
	}
}
