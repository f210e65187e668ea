package utils

import (
	"fmt"
	"log"

	"quizroom/config"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendEmail delivers a single HTML email through SendGrid. Callers fire
// it from a goroutine; a failure is logged, never surfaced to the
// request that triggered it.
func SendEmail(toEmail, toName, subject, htmlBody string) error {
	if config.AppConfig.SendGridKey == "" {
		log.Printf("Email skipped (no SENDGRID_API_KEY): %q to %s", subject, toEmail)
		return nil
	}

	from := mail.NewEmail("Quizroom", config.AppConfig.EmailSender)
	to := mail.NewEmail(toName, toEmail)
	message := mail.NewSingleEmail(from, subject, to, "", htmlBody)

	client := sendgrid.NewSendClient(config.AppConfig.SendGridKey)
	resp, err := client.Send(message)
	if err != nil {
		log.Printf("Error sending email to %s: %v", toEmail, err)
		return err
	}
	if resp.StatusCode >= 400 {
		log.Printf("SendGrid rejected email to %s: %d %s", toEmail, resp.StatusCode, resp.Body)
		return fmt.Errorf("sendgrid responded %d", resp.StatusCode)
	}
	return nil
}

func emailTemplate(title, bodyContent string) string {
	return fmt.Sprintf(`
	<html>
	<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
		<div style="max-width: 560px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
			<h2 style="color: #333333; text-align: center;">%s</h2>
			%s
			<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Quizroom Team</p>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// SendConfirmationEmail sends the email-confirmation link after signup.
func SendConfirmationEmail(email, name, rawToken string) {
	link := fmt.Sprintf("%s/auth/confirm-email?token=%s", config.AppConfig.AppBaseURL, rawToken)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Quizroom</strong>! Please confirm your email address to activate your account:</p>
		<p style="text-align: center;"><a href="%s">Confirm Email</a></p>
		<p style="font-size: 13px; color: #999999;">If you did not create this account you can ignore this email.</p>
	`, name, link)

	go SendEmail(email, name, "Confirm your Quizroom account", emailTemplate("Confirm Your Email", body))
}

// SendResetPasswordEmail sends the password-reset link. The token
// expires ten minutes after it is issued.
func SendResetPasswordEmail(email, name, rawToken string) {
	link := fmt.Sprintf("%s/auth/reset-password/%s", config.AppConfig.AppBaseURL, rawToken)
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>We received a request to reset your password. The link below is valid for 10 minutes:</p>
		<p style="text-align: center;"><a href="%s">Reset Password</a></p>
		<p style="font-size: 13px; color: #999999;">If you did not request this, no action is needed.</p>
	`, name, link)

	go SendEmail(email, name, "Reset your Quizroom password", emailTemplate("Password Reset", body))
}
