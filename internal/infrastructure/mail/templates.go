package mail

// HTML bodies for the four transactional messages. Placeholders in braces
// are substituted before sending.

const verificationTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Verify your email</h2>
  <p>Hello {name},</p>
  <p>Thanks for signing up. Enter this code to verify your email address:</p>
  <p style="font-size: 32px; font-weight: bold; letter-spacing: 6px;">{verificationCode}</p>
  <p>The code expires in 24 hours. If you didn't create an account, you can ignore this email.</p>
</body>
</html>`

const welcomeTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Welcome, {name}!</h2>
  <p>Your email has been verified and your account is ready to use.</p>
</body>
</html>`

const resetRequestTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Reset your password</h2>
  <p>We received a request to reset your password. Click the link below to choose a new one:</p>
  <p><a href="{resetURL}" style="color: #1a73e8;">Reset password</a></p>
  <p>The link expires in 1 hour. If you didn't request this, you can ignore this email.</p>
</body>
</html>`

const resetSuccessTemplate = `<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>Password reset successful</h2>
  <p>Your password has been changed. If this wasn't you, contact support immediately.</p>
</body>
</html>`
