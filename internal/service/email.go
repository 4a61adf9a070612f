package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"sheerent-backend/internal/logger"
)

type emailService struct {
	apiKey    string
	fromEmail string
	fromName  string
	enabled   bool
}

func NewEmailService(apiKey, fromEmail, fromName string, enabled bool) EmailService {
	return &emailService{
		apiKey:    apiKey,
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   enabled,
	}
}

func (s *emailService) SendOverdueReminder(ctx context.Context, email, name, itemName string, endTime time.Time) error {
	subject := fmt.Sprintf("Return reminder: %s", itemName)
	body := fmt.Sprintf("Hello %s,\n\nYour rental of %s was due on %s. Please return it to its locker as soon as possible.\n\nSheerent",
		name, itemName, endTime.Format("2006-01-02 15:04"))
	return s.send(email, name, subject, body)
}

func (s *emailService) SendDamageNotice(ctx context.Context, email, name, itemName string, deducted int32, increases map[string]int) error {
	classes := make([]string, 0, len(increases))
	for class, count := range increases {
		classes = append(classes, fmt.Sprintf("%s (+%d)", class, count))
	}
	sort.Strings(classes)

	subject := fmt.Sprintf("Damage found on returned item: %s", itemName)
	body := fmt.Sprintf("Hello %s,\n\nThe return inspection of %s found new damage: %s.\n%d points were deducted from your deposit.\n\nSheerent",
		name, itemName, strings.Join(classes, ", "), deducted)
	return s.send(email, name, subject, body)
}

func (s *emailService) send(toEmail, toName, subject, plainText string) error {
	if !s.enabled {
		logger.Debug("email disabled, skipping send", "to", toEmail, "subject", subject)
		return nil
	}

	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, plainText, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}
