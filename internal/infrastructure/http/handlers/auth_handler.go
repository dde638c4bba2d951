package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/authgate/authgate/internal/application/auth"
	domerrors "github.com/authgate/authgate/internal/domain/errors"
	"github.com/authgate/authgate/internal/infrastructure/http/middleware"
)

type AuthHandler struct {
	register       *auth.Register
	login          *auth.Login
	verifyEmail    *auth.VerifyEmail
	forgotPassword *auth.ForgotPassword
	resetPassword  *auth.ResetPassword
	checkAuth      *auth.CheckAuth
	validate       *validator.Validate
	secureCookies  bool
	log            zerolog.Logger
}

func NewAuthHandler(register *auth.Register, login *auth.Login, verifyEmail *auth.VerifyEmail, forgotPassword *auth.ForgotPassword, resetPassword *auth.ResetPassword, checkAuth *auth.CheckAuth, secureCookies bool, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		register:       register,
		login:          login,
		verifyEmail:    verifyEmail,
		forgotPassword: forgotPassword,
		resetPassword:  resetPassword,
		checkAuth:      checkAuth,
		validate:       validator.New(),
		secureCookies:  secureCookies,
		log:            log,
	}
}

// expectedErr reports whether err belongs to the taxonomy handlers turn
// into a 400 response.
func expectedErr(err error) bool {
	return errors.Is(err, domerrors.ErrInvalidInput) ||
		errors.Is(err, domerrors.ErrUserExists) ||
		errors.Is(err, domerrors.ErrInvalidCredentials) ||
		errors.Is(err, domerrors.ErrInvalidToken) ||
		errors.Is(err, domerrors.ErrUserNotFound)
}

// fail maps a use-case error onto the HTTP response. Expected failures
// carry their own message; anything else is logged and masked as a 500.
// The metric label is the bare operation name so success and failure of
// the same operation aggregate under one label value.
func (h *AuthHandler) fail(w http.ResponseWriter, r *http.Request, event, userID string, err error) {
	AuditLog(h.log, r, event, userID, false, err.Error())
	middleware.RecordAuthAttempt(strings.TrimPrefix(event, "user."), false)
	if expectedErr(err) {
		writeErr(w, http.StatusBadRequest, err.Error())
		return
	}
	h.log.Error().Err(err).Str("event", event).Msg("unexpected failure")
	writeErr(w, http.StatusInternalServerError, "server error")
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
		Name     string `json:"name" validate:"required,max=100"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, domerrors.ErrInvalidInput.Error())
		return
	}
	email := SanitizeEmail(body.Email)
	password := SanitizePassword(body.Password)
	name := SanitizeName(body.Name)
	if email == "" || password == "" || name == "" {
		writeErr(w, http.StatusBadRequest, domerrors.ErrInvalidInput.Error())
		return
	}
	result, err := h.register.Execute(r.Context(), auth.RegisterInput{
		Email:    email,
		Password: password,
		Name:     name,
	})
	if err != nil {
		h.fail(w, r, "user.signup", "", err)
		return
	}
	AuditLog(h.log, r, "user.signup", result.User.ID, true, "")
	middleware.RecordAuthAttempt("signup", true)
	setSessionCookie(w, result.SessionToken, result.SessionExpiresAt, h.secureCookies)
	user := result.User.Public()
	writeOK(w, http.StatusCreated, "User created successfully", &user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email" validate:"required,email,max=254"`
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		// Malformed credentials get the same message as wrong ones.
		writeErr(w, http.StatusBadRequest, domerrors.ErrInvalidCredentials.Error())
		return
	}
	result, err := h.login.Execute(r.Context(), auth.LoginInput{
		Email:    SanitizeEmail(body.Email),
		Password: SanitizePassword(body.Password),
	})
	if err != nil {
		h.fail(w, r, "user.login", "", err)
		return
	}
	AuditLog(h.log, r, "user.login", result.User.ID, true, "")
	middleware.RecordAuthAttempt("login", true)
	setSessionCookie(w, result.SessionToken, result.SessionExpiresAt, h.secureCookies)
	user := result.User.Public()
	writeOK(w, http.StatusOK, "Logged in successfully", &user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	clearSessionCookie(w, h.secureCookies)
	writeOK(w, http.StatusOK, "Logged out successfully", nil)
}

func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Code string `json:"code" validate:"required,max=64"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, domerrors.ErrInvalidToken.Error())
		return
	}
	result, err := h.verifyEmail.Execute(r.Context(), auth.VerifyEmailInput{Code: body.Code})
	if err != nil {
		h.fail(w, r, "user.verify_email", "", err)
		return
	}
	AuditLog(h.log, r, "user.verify_email", result.User.ID, true, "")
	middleware.RecordAuthAttempt("verify_email", true)
	user := result.User.Public()
	writeOK(w, http.StatusOK, "Email verified successfully", &user)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email string `json:"email" validate:"required,email,max=254"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, domerrors.ErrInvalidInput.Error())
		return
	}
	_, err := h.forgotPassword.Execute(r.Context(), auth.ForgotPasswordInput{
		Email: SanitizeEmail(body.Email),
	})
	if err != nil {
		h.fail(w, r, "user.forgot_password", "", err)
		return
	}
	AuditLog(h.log, r, "user.forgot_password", "", true, "")
	middleware.RecordAuthAttempt("forgot_password", true)
	writeOK(w, http.StatusOK, "Password reset link sent to your email", nil)
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")
	var body struct {
		Password string `json:"password" validate:"required,max=128"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid body")
		return
	}
	if err := h.validate.Struct(&body); err != nil {
		writeErr(w, http.StatusBadRequest, domerrors.ErrInvalidInput.Error())
		return
	}
	_, err := h.resetPassword.Execute(r.Context(), auth.ResetPasswordInput{
		Token:       token,
		NewPassword: SanitizePassword(body.Password),
	})
	if err != nil {
		h.fail(w, r, "user.reset_password", "", err)
		return
	}
	AuditLog(h.log, r, "user.reset_password", "", true, "")
	middleware.RecordAuthAttempt("reset_password", true)
	writeOK(w, http.StatusOK, "Password reset successful", nil)
}

func (h *AuthHandler) CheckAuth(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFromContext(r.Context())
	result, err := h.checkAuth.Execute(r.Context(), auth.CheckAuthInput{UserID: userID})
	if err != nil {
		h.fail(w, r, "user.check_auth", userID, err)
		return
	}
	user := result.User.Public()
	writeJSON(w, http.StatusOK, apiResponse{Success: true, User: &user})
}
