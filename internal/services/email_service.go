package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/japetto/rental-portal-managment-backend-sub002/internal/config"
	"github.com/japetto/rental-portal-managment-backend-sub002/internal/utils"
)

// HTML template for the tenant invitation email.
const tenantInviteEmailHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>You're invited!</title>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif; line-height: 1.6; color: #333; background-color: #f8f9fa; margin: 0; padding: 20px; }
  .container { max-width: 500px; margin: auto; background: #ffffff; border: 1px solid #e9ecef; border-radius: 8px; overflow: hidden; }
  .header { background-color: #1f6f5c; color: white; padding: 20px; text-align: center; }
  .header h1 { margin: 0; font-size: 24px; }
  .content { padding: 30px; text-align: left; }
  .button { display: inline-block; background-color: #1f6f5c; color: #ffffff; padding: 12px 24px; border-radius: 5px; text-decoration: none; margin: 20px 0; }
  .footer { background-color: #f8f9fa; padding: 20px; text-align: center; font-size: 12px; color: #6c757d; }
  p { margin-bottom: 1em; }
</style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Welcome to %s</h1>
    </div>
    <div class="content">
      <p>Hi %s,</p>
      <p>You've been invited to join <strong>%s</strong> on our rental portal. Accept the invitation below to set up your account and manage your rental in one place.</p>
      <p style="text-align:center"><a class="button" href="%s">Accept Invitation</a></p>
      <p>If you weren't expecting this email you can safely ignore it.</p>
    </div>
    <div class="footer">
      © %d %s. All rights reserved.
    </div>
  </div>
</body>
</html>`

// HTML template for service-request status notifications.
const serviceRequestUpdateEmailHTML = `<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, "Helvetica Neue", Arial, sans-serif; line-height: 1.6; color: #333; background-color: #f8f9fa; margin: 0; padding: 20px; }
  .container { max-width: 500px; margin: auto; background: #ffffff; border: 1px solid #e9ecef; border-radius: 8px; overflow: hidden; }
  .header { background-color: #1f6f5c; color: white; padding: 20px; text-align: center; }
  .content { padding: 30px; }
  .status { font-weight: bold; color: #1f6f5c; }
  .footer { background-color: #f8f9fa; padding: 20px; text-align: center; font-size: 12px; color: #6c757d; }
  p { margin-bottom: 1em; }
</style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>Service Request Update</h1>
    </div>
    <div class="content">
      <p>Hi %s,</p>
      <p>Your service request is now <span class="status">%s</span>.</p>
      %s
    </div>
    <div class="footer">
      © %d %s. All rights reserved.
    </div>
  </div>
</body>
</html>`

// EmailSender is what the tenant and service-request flows need from
// the mail layer.
type EmailSender interface {
	SendTenantInvite(ctx context.Context, toEmail, firstName, propertyName, inviteURL string) error
	SendServiceRequestUpdate(ctx context.Context, toEmail, firstName, newStatus, note string) error
}

type emailService struct {
	cfg            *config.Config
	sendgridClient *sendgrid.Client
}

func NewEmailService(cfg *config.Config) EmailSender {
	return &emailService{
		cfg:            cfg,
		sendgridClient: sendgrid.NewSendClient(cfg.SendgridAPIKey),
	}
}

func (s *emailService) SendTenantInvite(_ context.Context, toEmail, firstName, propertyName, inviteURL string) error {
	subject := fmt.Sprintf("You're invited to %s", propertyName)
	plain := fmt.Sprintf(
		"Hi %s,\n\nYou've been invited to join %s. Accept here: %s\n\n— %s",
		firstName, propertyName, inviteURL, s.cfg.OrganizationName,
	)
	html := fmt.Sprintf(tenantInviteEmailHTML,
		s.cfg.OrganizationName, firstName, propertyName, inviteURL,
		time.Now().Year(), s.cfg.OrganizationName,
	)
	return s.send(toEmail, subject, plain, html)
}

func (s *emailService) SendServiceRequestUpdate(_ context.Context, toEmail, firstName, newStatus, note string) error {
	subject := fmt.Sprintf("Your service request is now %s", newStatus)
	plain := fmt.Sprintf("Hi %s,\n\nYour service request is now %s.", firstName, newStatus)
	noteHTML := ""
	if note != "" {
		plain += "\n\nNote from the team: " + note
		noteHTML = "<p>Note from the team: " + note + "</p>"
	}
	html := fmt.Sprintf(serviceRequestUpdateEmailHTML,
		firstName, newStatus, noteHTML,
		time.Now().Year(), s.cfg.OrganizationName,
	)
	return s.send(toEmail, subject, plain, html)
}

func (s *emailService) send(toAddr, subject, plain, html string) error {
	from := mail.NewEmail(s.cfg.OrganizationName, s.cfg.LDFlag_SendgridFromEmail)
	to := mail.NewEmail("", toAddr)

	msg := mail.NewSingleEmail(from, subject, to, plain, html)
	if s.cfg.LDFlag_SendgridSandboxMode {
		msg.MailSettings = &mail.MailSettings{SandboxMode: mail.NewSetting(true)}
	}

	resp, err := s.sendgridClient.Send(msg)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		utils.Logger.Errorf("SendGrid rejected email to %s: status %d", toAddr, resp.StatusCode)
		return utils.ErrExternalServiceFailure
	}
	return nil
}
