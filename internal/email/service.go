// Package email sends the shop owner's notification mails over SMTP.
package email

import (
	"fmt"
	"net/smtp"

	"github.com/example/shopfront-gateway/internal/events"
)

type Service struct {
	host string
	port string
	from string
	to   string
}

// NewService creates an SMTP sender. to is the shop owner's inbox; every
// notification goes there.
func NewService(host, port, from, to string) *Service {
	return &Service{
		host: host,
		port: port,
		from: from,
		to:   to,
	}
}

// SendNewOrderAlert notifies the owner that a customer submitted an order.
func (s *Service) SendNewOrderAlert(e events.OrderSubmitted) error {
	subject := fmt.Sprintf("New order from %s (%s)", e.CustomerName, shortID(e.OrderID))
	return s.send(subject, BuildNewOrderBody(e))
}

// SendPaymentDeclaredAlert notifies the owner that a customer says they have
// paid and the transfer needs manual confirmation.
func (s *Service) SendPaymentDeclaredAlert(e events.PaymentDeclared) error {
	subject := fmt.Sprintf("Payment declared for order %s", shortID(e.OrderID))
	return s.send(subject, BuildPaymentDeclaredBody(e))
}

func shortID(orderID string) string {
	if len(orderID) > 8 {
		return orderID[:8]
	}
	return orderID
}

func (s *Service) send(subject, body string) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.from, s.to, subject, body)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	return smtp.SendMail(addr, nil, s.from, []string{s.to}, []byte(msg))
}
