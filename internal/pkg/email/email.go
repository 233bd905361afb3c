package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"
	"time"

	"github.com/codemyown/leave-mangement-system/internal/config"
)

//go:embed templates/*.html
var templateFS embed.FS

const maxRetries = 3

// EmailService is the outbound notification channel. Sends are fire-and-forget
// from the lifecycle's perspective: callers log failures and move on.
type EmailService interface {
	SendLeaveSubmitted(recipients []string, requesterName, leaveTypeName, startDate, endDate string, workingDays int) error
	SendLeaveDecision(to, leaveTypeName, startDate, endDate, status, comments string) error
	SendLeaveCancelled(recipients []string, requesterName, leaveTypeName, startDate, endDate string) error
}

type emailServiceImpl struct {
	cfg       config.SMTPConfig
	templates *template.Template
}

// NewEmailService creates a new email service instance
func NewEmailService(cfg config.SMTPConfig) (EmailService, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}

	return &emailServiceImpl{
		cfg:       cfg,
		templates: tmpl,
	}, nil
}

type leaveSubmittedEmailData struct {
	RequesterName string
	LeaveTypeName string
	StartDate     string
	EndDate       string
	WorkingDays   int
}

// SendLeaveSubmitted notifies the active approvers about a new leave request
func (s *emailServiceImpl) SendLeaveSubmitted(recipients []string, requesterName, leaveTypeName, startDate, endDate string, workingDays int) error {
	data := leaveSubmittedEmailData{
		RequesterName: requesterName,
		LeaveTypeName: leaveTypeName,
		StartDate:     startDate,
		EndDate:       endDate,
		WorkingDays:   workingDays,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "leave_submitted.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Leave request from %s (%s)", requesterName, leaveTypeName)
	return s.sendHTML(recipients, subject, body.String())
}

type leaveDecisionEmailData struct {
	LeaveTypeName string
	StartDate     string
	EndDate       string
	Status        string
	Comments      string
}

// SendLeaveDecision notifies the requester that the request was approved or rejected
func (s *emailServiceImpl) SendLeaveDecision(to, leaveTypeName, startDate, endDate, status, comments string) error {
	data := leaveDecisionEmailData{
		LeaveTypeName: leaveTypeName,
		StartDate:     startDate,
		EndDate:       endDate,
		Status:        status,
		Comments:      comments,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "leave_decision.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Your %s leave request was %s", leaveTypeName, status)
	return s.sendHTML([]string{to}, subject, body.String())
}

type leaveCancelledEmailData struct {
	RequesterName string
	LeaveTypeName string
	StartDate     string
	EndDate       string
}

// SendLeaveCancelled notifies the active approvers about a cancelled leave
func (s *emailServiceImpl) SendLeaveCancelled(recipients []string, requesterName, leaveTypeName, startDate, endDate string) error {
	data := leaveCancelledEmailData{
		RequesterName: requesterName,
		LeaveTypeName: leaveTypeName,
		StartDate:     startDate,
		EndDate:       endDate,
	}

	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, "leave_cancelled.html", data); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}

	subject := fmt.Sprintf("Leave cancelled by %s (%s)", requesterName, leaveTypeName)
	return s.sendHTML(recipients, subject, body.String())
}

func (s *emailServiceImpl) sendHTML(recipients []string, subject, htmlBody string) error {
	// Skip sending if SMTP is not configured
	if s.cfg.Host == "" {
		slog.Warn("SMTP not configured, skipping email send", "recipients", recipients, "subject", subject)
		return nil
	}
	if len(recipients) == 0 {
		return nil
	}

	from := s.cfg.From

	headers := fmt.Sprintf("From: %s <%s>\r\n", s.cfg.FromName, from)
	headers += fmt.Sprintf("Subject: %s\r\n", subject)
	headers += "MIME-Version: 1.0\r\n"
	headers += "Content-Type: text/html; charset=\"UTF-8\"\r\n"
	headers += "\r\n"

	message := []byte(headers + htmlBody)

	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)
	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := smtp.SendMail(addr, auth, from, recipients, message)
		if err == nil {
			slog.Info("Email sent successfully", "recipients", recipients, "subject", subject, "attempt", attempt)
			return nil
		}

		lastErr = err
		slog.Error("Failed to send email",
			"recipients", recipients,
			"subject", subject,
			"attempt", attempt,
			"max_retries", maxRetries,
			"error", err,
		)

		// Wait before retrying (exponential backoff: 1s, 2s, 4s)
		if attempt < maxRetries {
			time.Sleep(time.Duration(1<<(attempt-1)) * time.Second)
		}
	}

	return fmt.Errorf("failed to send email after %d attempts: %w", maxRetries, lastErr)
}
