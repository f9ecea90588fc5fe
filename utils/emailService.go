package utils

import (
	"fmt"
	"lend/config"
	"lend/models"
	"log"
	"net/smtp"
	"strings"
)

// SendEmail sends an HTML email through the configured SMTP account. A no-op
// unless EMAIL_ENABLED is set, so local runs never reach the network.
func SendEmail(to []string, subject string, htmlBody string) error {
	if !config.AppConfig.EmailEnabled {
		log.Printf("Email disabled, skipping send to %v (%s)", to, subject)
		return nil
	}

	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: LendGo <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		log.Println("Error sending email:", err)
		return err
	}
	log.Println("Email sent successfully to", strings.Join(to, ","))
	return nil
}

// SendLoanApprovalEmail notifies a borrower that their loan was disbursed.
func SendLoanApprovalEmail(email, name string, loan models.LoanRecord) error {
	if email == "" {
		return nil
	}

	body := fmt.Sprintf(`
		<html>
			<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; padding: 20px;">
				<div style="max-width: 500px; margin: auto; background-color: #ffffff; border-radius: 8px; padding: 30px;">
					<h2 style="color: #001F54; text-align: center;">Loan Approved 🎉</h2>
					<p style="font-size: 16px; color: #555555;">Dear %s,</p>
					<p style="font-size: 16px; color: #555555;">Your loan of ₹%.0f has been approved and disbursed.</p>
					<div style="background-color: #f8f9fa; border-radius: 8px; padding: 20px; margin: 20px 0; text-align: center;">
						<p style="font-size: 14px; color: #666666; margin-bottom: 10px;">Your Monthly EMI:</p>
						<h2 style="color: #001F54; margin: 0;">₹%d</h2>
						<p style="font-size: 13px; color: #999999;">for %d months at %.1f%% per month</p>
					</div>
					<p style="text-align: center; font-size: 12px; color: #bbbbbb; margin-top: 30px;">Thank you for choosing us.</p>
				</div>
			</body>
		</html>
	`, name, loan.Amount, loan.EMI, loan.Months, loan.InterestRate)

	return SendEmail([]string{email}, "Your Loan Has Been Approved", body)
}
