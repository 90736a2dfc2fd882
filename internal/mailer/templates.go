package mailer

import "fmt"

// Templates for the small set of transactional messages the club platform
// sends. Bodies mirror the tone of the membership site.

// RegistrationReceived confirms a registration is awaiting review.
func RegistrationReceived(name string) (subject, html string) {
	subject = "Registration Received - Club Blogs"
	html = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2>Registration Received</h2>
  <p>Hi <strong>%s</strong>,</p>
  <p>Thanks for registering! Your membership request is awaiting review by an administrator. You will receive an activation link once it is approved.</p>
  <p>If you didn't create an account, you can ignore this email.</p>
  <p>&ndash; The Club Blogs Team</p>
</div>`, name)
	return subject, html
}

// Activation carries the account activation link.
func Activation(name, activationURL string) (subject, html string) {
	subject = "Activate Your Account - Club Blogs"
	html = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2>Welcome to Club Blogs</h2>
  <p>Hi <strong>%s</strong>,</p>
  <p>Your membership was approved. Click the button below to set a password and activate your account:</p>
  <p style="text-align: center; margin: 20px 0;">
    <a href="%s" style="background-color: #2563eb; color: #fff; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Activate Account</a>
  </p>
  <p>The link expires in 24 hours.</p>
  <p>&ndash; The Club Blogs Team</p>
</div>`, name, activationURL)
	return subject, html
}

// PasswordReset carries the reset link.
func PasswordReset(name, resetURL string) (subject, html string) {
	subject = "Password Reset - Club Blogs"
	html = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2>Password Reset Request</h2>
  <p>Hi <strong>%s</strong>,</p>
  <p>You requested a password reset. Click the button below to choose a new password:</p>
  <p style="text-align: center; margin: 20px 0;">
    <a href="%s" style="background-color: #dc2626; color: #fff; padding: 10px 20px; text-decoration: none; border-radius: 5px;">Reset Password</a>
  </p>
  <p>If you didn't request this, you can safely ignore this email.</p>
  <p>&ndash; The Club Blogs Team</p>
</div>`, name, resetURL)
	return subject, html
}

// Rejection informs a registrant their request was declined.
func Rejection(name string) (subject, html string) {
	subject = "Registration Update - Club Blogs"
	html = fmt.Sprintf(`<div style="font-family: Arial, sans-serif; line-height: 1.6;">
  <h2>Registration Update</h2>
  <p>Hi <strong>%s</strong>,</p>
  <p>We reviewed your registration request but unfortunately it was not approved at this time.</p>
  <p>If you believe this is a mistake, feel free to contact our support team.</p>
  <p>&ndash; The Club Blogs Team</p>
</div>`, name)
	return subject, html
}
