// internal/services/email_service.go
package services

import (
	"fmt"
	"net/smtp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shopdash/backend/internal/config"
	"github.com/shopdash/backend/internal/models"
	"github.com/shopdash/backend/internal/utils"
)

// Mailer is the outbound transport. The SMTP implementation below is the
// production one; tests substitute a fake.
type Mailer interface {
	Send(to, subject, html string) error
}

type EmailService struct {
	db     *gorm.DB
	mailer Mailer
}

type SendEmailInput struct {
	To       string           `json:"to" validate:"required,email"`
	Customer string           `json:"customer"`
	Subject  string           `json:"subject" validate:"required"`
	HTML     string           `json:"html" validate:"required"`
	Type     models.EmailType `json:"type" validate:"required"`
	OrderID  uuid.UUID        `json:"order_id" validate:"required"`
	StoreID  uuid.UUID        `json:"store_id" validate:"required"`
}

func NewEmailService(db *gorm.DB, mailer Mailer) *EmailService {
	return &EmailService{
		db:     db,
		mailer: mailer,
	}
}

// Send delivers one email and always logs the attempt, so failed sends stay
// auditable. On transport failure the "failed" row is written and the
// transport error is returned to the caller.
func (s *EmailService) Send(input SendEmailInput) (*models.Email, error) {
	if err := utils.ValidateStruct(&input); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	record := &models.Email{
		StoreID:   input.StoreID,
		OrderID:   input.OrderID,
		Recipient: input.To,
		Customer:  input.Customer,
		Subject:   input.Subject,
		Body:      input.HTML,
		Type:      input.Type,
	}

	if sendErr := s.mailer.Send(input.To, input.Subject, input.HTML); sendErr != nil {
		record.Status = models.EmailStatusFailed
		if err := s.db.Create(record).Error; err != nil {
			return nil, fmt.Errorf("failed to log failed email: %w", err)
		}
		return nil, fmt.Errorf("failed to send email: %w", sendErr)
	}

	now := time.Now()
	record.Status = models.EmailStatusSent
	record.SentAt = &now
	if err := s.db.Create(record).Error; err != nil {
		return nil, fmt.Errorf("failed to log email: %w", err)
	}

	return record, nil
}

// ListEmails returns the most recent send attempts, newest first.
func (s *EmailService) ListEmails(storeID uuid.UUID, limit int) ([]models.Email, error) {
	if limit <= 0 || limit > 100 {
		limit = 100
	}

	var emails []models.Email
	err := s.db.Where("store_id = ?", storeID).
		Order("created_at DESC").
		Limit(limit).
		Find(&emails).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return emails, nil
}

// SMTPMailer sends via plain SMTP, the same transport the rest of the stack
// uses (works with Resend, Mailgun, Gmail, ...).
type SMTPMailer struct {
	cfg config.EmailConfig
}

func NewSMTPMailer(cfg config.EmailConfig) *SMTPMailer {
	return &SMTPMailer{cfg: cfg}
}

func (m *SMTPMailer) Send(to, subject, html string) error {
	if m.cfg.SMTPHost == "" {
		// Email not configured, just log
		fmt.Printf("Email would be sent to %s: %s\n", to, subject)
		return nil
	}

	auth := smtp.PlainAuth("", m.cfg.SMTPUsername, m.cfg.SMTPPassword, m.cfg.SMTPHost)

	from := fmt.Sprintf("%q <%s>", m.cfg.FromName, m.cfg.FromEmail)
	msg := []byte(fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s", from, to, subject, html))

	addr := fmt.Sprintf("%s:%s", m.cfg.SMTPHost, m.cfg.SMTPPort)
	return smtp.SendMail(addr, auth, m.cfg.FromEmail, []string{to}, msg)
}
