package mailer

import (
	"fmt"
	"strings"
)

const company = "Riya Industrial Services"

func ApplicationReceived(to, applicantName, applicationID, jobTitle string) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", fallback(applicantName, "Applicant"))
	fmt.Fprintf(&b, "Thank you for applying for the %s position at %s.\n\n", jobTitle, company)
	fmt.Fprintf(&b, "Your application ID is %s. Please quote it in any correspondence.\n", applicationID)
	b.WriteString("Our team will review your profile and contact you if it matches our requirements.\n\n")
	fmt.Fprintf(&b, "Regards,\n%s\n", company)

	return Message{
		To:      to,
		Subject: fmt.Sprintf("Application Received - %s", jobTitle),
		Body:    b.String(),
	}
}

func PasswordReset(to, username, resetURL string) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", fallback(username, "Valued User"))
	b.WriteString("We received a request to reset the password for your account.\n")
	fmt.Fprintf(&b, "Use the link below within one hour to choose a new password:\n\n%s\n\n", resetURL)
	b.WriteString("If you did not request a reset, you can ignore this email.\n\n")
	fmt.Fprintf(&b, "Regards,\n%s\n", company)

	return Message{
		To:      to,
		Subject: "Password Reset Instructions - Your Account Security",
		Body:    b.String(),
	}
}

func PasswordResetSuccess(to, username string) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", fallback(username, "Valued User"))
	b.WriteString("Your password has been reset successfully. You can now sign in with the new password.\n\n")
	b.WriteString("If you did not make this change, contact the administrator immediately.\n\n")
	fmt.Fprintf(&b, "Regards,\n%s\n", company)

	return Message{
		To:      to,
		Subject: "Password Reset Successful - Action Completed",
		Body:    b.String(),
	}
}

func fallback(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
