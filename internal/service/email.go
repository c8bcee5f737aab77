package service

import (
	"context"
	"fmt"
	"time"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}

func (s *emailService) SendApplicationReceived(ctx context.Context, landlordEmail, tenantName, address string) error {
	body := fmt.Sprintf("Hello,\n\n%s has applied for your property at %s.\n\nLog in to review the application.\n\nBest regards,\nThe Rentfolio Team", tenantName, address)
	return s.send(landlordEmail, fmt.Sprintf("New application for %s", address), body)
}

func (s *emailService) SendApplicationDecision(ctx context.Context, tenantEmail, address string, approved bool) error {
	if approved {
		body := fmt.Sprintf("Hello,\n\nYour application for %s has been approved. The landlord will send you a lease to sign shortly.\n\nBest regards,\nThe Rentfolio Team", address)
		return s.send(tenantEmail, fmt.Sprintf("Application approved - %s", address), body)
	}
	body := fmt.Sprintf("Hello,\n\nYour application for %s was not successful this time.\n\nBest regards,\nThe Rentfolio Team", address)
	return s.send(tenantEmail, fmt.Sprintf("Application update - %s", address), body)
}

func (s *emailService) SendLeaseActivated(ctx context.Context, email, address string) error {
	body := fmt.Sprintf("Hello,\n\nThe lease for %s is now active.\n\nBest regards,\nThe Rentfolio Team", address)
	return s.send(email, fmt.Sprintf("Lease active - %s", address), body)
}

func (s *emailService) SendLeaseTerminated(ctx context.Context, email, address string) error {
	body := fmt.Sprintf("Hello,\n\nThe lease for %s has been terminated.\n\nBest regards,\nThe Rentfolio Team", address)
	return s.send(email, fmt.Sprintf("Lease terminated - %s", address), body)
}

func (s *emailService) SendInvoiceIssued(ctx context.Context, tenantEmail, description string, amountCents int32) error {
	body := fmt.Sprintf("Hello,\n\nA new invoice has been issued to you: %s.\n\nAmount due: $%.2f.\n\nPlease upload proof of payment once paid.\n\nBest regards,\nThe Rentfolio Team", description, float64(amountCents)/100)
	return s.send(tenantEmail, "New invoice", body)
}

func (s *emailService) SendPaymentConfirmed(ctx context.Context, tenantEmail string, amountCents int32) error {
	body := fmt.Sprintf("Hello,\n\nYour payment of $%.2f has been confirmed. Thank you.\n\nBest regards,\nThe Rentfolio Team", float64(amountCents)/100)
	return s.send(tenantEmail, "Payment confirmed", body)
}

func (s *emailService) SendInsuranceExpiring(ctx context.Context, tenantEmail string, expiryDate time.Time) error {
	body := fmt.Sprintf("Hello,\n\nYour renter's insurance policy expires on %s. Please submit an updated policy to stay compliant.\n\nBest regards,\nThe Rentfolio Team", expiryDate.Format("January 2, 2006"))
	return s.send(tenantEmail, "Insurance policy expiring soon", body)
}

func (s *emailService) SendSigningFollowUp(ctx context.Context, landlordEmail, address string) error {
	body := fmt.Sprintf("Hello,\n\nThe signing session for the lease at %s has been open for a while without a signature. You may want to follow up with the tenant or request a new session.\n\nBest regards,\nThe Rentfolio Team", address)
	return s.send(landlordEmail, fmt.Sprintf("Lease signing pending - %s", address), body)
}
