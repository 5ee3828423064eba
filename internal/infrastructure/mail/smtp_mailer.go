// Package mail envía el reporte de inventario por SMTP.
package mail

import (
	"context"
	"fmt"
	"io"
	"strings"

	"gopkg.in/gomail.v2"

	"github.com/jhoicas/inventario-empresas/internal/application/report"
	"github.com/jhoicas/inventario-empresas/pkg/config"
	"github.com/jhoicas/inventario-empresas/pkg/logger"
)

// Sender abstrae el envío de mensajes (gomail.Dialer en producción).
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// SMTPMailer implementa report.Mailer con gomail.
type SMTPMailer struct {
	sender Sender
	from   string
	log    *logger.Logger
}

var _ report.Mailer = (*SMTPMailer)(nil)

// NewSMTPMailer construye el mailer con un gomail.Dialer.
func NewSMTPMailer(cfg config.MailConfig, log *logger.Logger) *SMTPMailer {
	return NewSMTPMailerWithSender(gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), cfg.From, log)
}

// NewSMTPMailerWithSender permite inyectar el transporte (tests).
func NewSMTPMailerWithSender(sender Sender, from string, log *logger.Logger) *SMTPMailer {
	if log == nil {
		log = logger.Nop()
	}
	return &SMTPMailer{sender: sender, from: from, log: log.Component("mail")}
}

// SendInventoryReport envía el PDF adjunto. Respeta la cancelación del contexto antes de conectar.
func (m *SMTPMailer) SendInventoryReport(ctx context.Context, to string, doc report.Document, attachment report.File) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	msg := BuildMessage(m.from, to, doc, attachment)
	if err := m.sender.DialAndSend(msg); err != nil {
		m.log.Ctx(ctx).Error().Err(err).Str("to", to).Msg("error enviando reporte")
		return fmt.Errorf("smtp: %w", err)
	}
	return nil
}

// Subject asunto del correo del reporte.
func Subject(companyName string) string {
	if strings.TrimSpace(companyName) == "" {
		return "Reporte de Inventario"
	}
	return "Reporte de Inventario - " + companyName
}

// Body texto plano del correo.
func Body(doc report.Document) string {
	var b strings.Builder
	b.WriteString("Estimado usuario,\n\n")
	b.WriteString("Adjunto encontrará el reporte de inventario solicitado.\n\n")
	if doc.Company.Name != "" {
		fmt.Fprintf(&b, "Empresa: %s\n", doc.Company.Name)
	}
	if doc.Company.NIT != "" {
		fmt.Fprintf(&b, "NIT: %s\n", doc.Company.NIT)
	}
	b.WriteString("\nEste es un correo automático, por favor no responder.\n\n")
	b.WriteString("Saludos cordiales,\n")
	b.WriteString("Sistema de Gestión de Inventario")
	return b.String()
}

// BuildMessage arma el mensaje con el adjunto en memoria.
func BuildMessage(from, to string, doc report.Document, attachment report.File) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", Subject(doc.Company.Name))
	msg.SetBody("text/plain", Body(doc))
	msg.Attach(attachment.Name,
		gomail.SetCopyFunc(func(w io.Writer) error {
			_, err := w.Write(attachment.Data)
			return err
		}),
		gomail.SetHeader(map[string][]string{"Content-Type": {attachment.ContentType}}),
	)
	return msg
}
