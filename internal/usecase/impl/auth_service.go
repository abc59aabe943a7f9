package impl

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"log/slog"
	"math/big"
	"time"

	"ladx/config"
	deliverycontext "ladx/internal/delivery/context"
	"ladx/internal/domain/entity"
	domainerrors "ladx/internal/domain/errors"
	"ladx/internal/domain/repository"
	"ladx/internal/domain/service"
	"ladx/internal/infra/mail"
	"ladx/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultOTPTTL        = 10 * time.Minute
	defaultResetTokenTTL = time.Hour
	resetTokenBytes      = 32
)

// authService implements the AuthUsecase interface.
type authService struct {
	txManager     repository.TransactionManager
	userRepo      repository.UserRepository
	adminRepo     repository.AdminRepository
	activityRepo  repository.ActivityLogRepository
	sessionStore  service.SessionStore
	hasher        service.PasswordHasher
	tokenService  service.TokenService
	mailSender    service.MailSender
	frontendURL   string
	otpTTL        time.Duration
	resetTokenTTL time.Duration
	logger        *slog.Logger
}

// AuthServiceParams holds dependencies for the auth service, injected by Fx.
type AuthServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	AdminRepo    repository.AdminRepository
	ActivityRepo repository.ActivityLogRepository
	SessionStore service.SessionStore
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	MailSender   service.MailSender
	Config       *config.Config
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	otpTTL := defaultOTPTTL
	resetTokenTTL := defaultResetTokenTTL
	if params.Config.Auth != nil {
		if params.Config.Auth.OTPTTL > 0 {
			otpTTL = params.Config.Auth.OTPTTL
		}
		if params.Config.Auth.ResetTokenTTL > 0 {
			resetTokenTTL = params.Config.Auth.ResetTokenTTL
		}
	}

	return &authService{
		txManager:     params.TxManager,
		userRepo:      params.UserRepo,
		adminRepo:     params.AdminRepo,
		activityRepo:  params.ActivityRepo,
		sessionStore:  params.SessionStore,
		hasher:        params.Hasher,
		tokenService:  params.TokenService,
		mailSender:    params.MailSender,
		frontendURL:   params.Config.App.FrontendURL,
		otpTTL:        otpTTL,
		resetTokenTTL: resetTokenTTL,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Signup validates the registration, stashes it as a pending signup and emails an OTP.
func (srv *authService) Signup(ctx context.Context, input usecase.SignupInput) (*usecase.SignupOutput, error) {
	srv.log(ctx).Info("Starting signup", slog.String("email", input.Email), slog.Any("role", input.Role))

	if input.Role == entity.RoleAdmin {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("admin accounts cannot self-register")
	}

	// Reject emails that already hold a verified account.
	if _, err := srv.userRepo.FindByEmail(ctx, input.Email); err == nil {
		return nil, domainerrors.ErrUserAlreadyExists
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, errors.Wrap(err, "failed to check existing email")
	}

	hashed, err := srv.hasher.Hash(input.Password)
	if err != nil {
		return nil, domainerrors.ErrPasswordHashFailed
	}

	otp, err := generateOTP()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate OTP")
	}

	pending := &service.PendingSignup{
		TempID:      uuid.New(),
		FullName:    input.FullName,
		Email:       input.Email,
		Country:     input.Country,
		State:       input.State,
		PhoneNumber: input.PhoneNumber,
		Gender:      input.Gender,
		Password:    hashed,
		Role:        input.Role,
		OTP:         otp,
		ExpiresAt:   time.Now().Add(srv.otpTTL),
	}
	if err := srv.sessionStore.SavePendingSignup(ctx, pending, srv.otpTTL); err != nil {
		return nil, errors.Wrap(err, "failed to save pending signup")
	}

	srv.sendOTPMail(ctx, pending)

	return &usecase.SignupOutput{TempID: pending.TempID}, nil
}

// VerifyOTP confirms a pending signup and creates the user.
func (srv *authService) VerifyOTP(ctx context.Context, input usecase.VerifyOTPInput) (*entity.User, error) {
	pending, err := srv.sessionStore.GetPendingSignup(ctx, input.TempID)
	if errors.Is(err, service.ErrPendingSignupNotFound) {
		return nil, domainerrors.ErrInvalidOTP.WrapMessage("Verification expired, please sign up again")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load pending signup")
	}

	if subtle.ConstantTimeCompare([]byte(pending.OTP), []byte(input.OTP)) != 1 {
		return nil, domainerrors.ErrInvalidOTP
	}

	user := &entity.User{
		FullName:    pending.FullName,
		Email:       pending.Email,
		Country:     pending.Country,
		State:       pending.State,
		PhoneNumber: pending.PhoneNumber,
		Gender:      pending.Gender,
		Password:    pending.Password,
		Role:        pending.Role,
		IsVerified:  true,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.NewUserRepository().Create(ctx, user); err != nil {
			if errors.Is(err, repository.ErrEmailTaken) {
				return domainerrors.ErrUserAlreadyExists
			}

			return err
		}

		recordActivity(ctx, srv.log(ctx), repoFactory.NewActivityLogRepository(),
			user.ID, "signup", "user", &user.ID, map[string]any{"role": user.Role.String()})

		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := srv.sessionStore.DeletePendingSignup(ctx, input.TempID); err != nil {
		srv.log(ctx).Warn("failed to delete pending signup", slog.String("error", err.Error()))
	}

	if welcome, err := mail.WelcomeMail(user.Email, user.FullName); err == nil {
		if err := srv.mailSender.Send(ctx, welcome); err != nil {
			srv.log(ctx).Warn("failed to send welcome email", slog.String("error", err.Error()))
		}
	}

	srv.log(ctx).Info("Signup verified", slog.String("user_id", user.ID.String()))

	return user, nil
}

// ResendOTP regenerates the OTP of a pending signup and emails it again.
func (srv *authService) ResendOTP(ctx context.Context, tempID uuid.UUID) error {
	pending, err := srv.sessionStore.GetPendingSignup(ctx, tempID)
	if errors.Is(err, service.ErrPendingSignupNotFound) {
		return domainerrors.ErrInvalidOTP.WrapMessage("Verification expired, please sign up again")
	}
	if err != nil {
		return errors.Wrap(err, "failed to load pending signup")
	}

	otp, err := generateOTP()
	if err != nil {
		return errors.Wrap(err, "failed to generate OTP")
	}
	pending.OTP = otp
	pending.ExpiresAt = time.Now().Add(srv.otpTTL)

	if err := srv.sessionStore.SavePendingSignup(ctx, pending, srv.otpTTL); err != nil {
		return errors.Wrap(err, "failed to save pending signup")
	}

	srv.sendOTPMail(ctx, pending)

	return nil
}

// Login authenticates a user and issues a session token.
func (srv *authService) Login(ctx context.Context, input usecase.LoginInput) (*usecase.LoginOutput, error) {
	user, err := srv.userRepo.FindByEmail(ctx, input.Email)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find user")
	}

	if !srv.hasher.Check(input.Password, user.Password) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if !user.IsVerified {
		return nil, domainerrors.ErrAccountNotVerified
	}

	token, err := srv.tokenService.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	// Saving overwrites any previous session, logging that session out.
	ttl := srv.tokenService.TokenDuration(user.Role)
	if err := srv.sessionStore.SaveSession(ctx, user.ID, token, ttl); err != nil {
		return nil, errors.Wrap(err, "failed to save session")
	}

	recordActivity(ctx, srv.log(ctx), srv.activityRepo, user.ID, "login", "user", &user.ID, nil)
	srv.log(ctx).Info("User logged in", slog.String("user_id", user.ID.String()))

	return &usecase.LoginOutput{Token: token, User: user}, nil
}

// Logout drops the active session for the principal.
func (srv *authService) Logout(ctx context.Context, principalID uuid.UUID) error {
	if err := srv.sessionStore.DeleteSession(ctx, principalID); err != nil {
		return errors.Wrap(err, "failed to delete session")
	}

	recordActivity(ctx, srv.log(ctx), srv.activityRepo, principalID, "logout", "user", &principalID, nil)

	return nil
}

// ForgotPassword issues a reset token and emails the reset link.
func (srv *authService) ForgotPassword(ctx context.Context, email string) error {
	user, err := srv.userRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		// Report success so addresses cannot be probed.
		srv.log(ctx).Info("Password reset requested for unknown email")

		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to find user")
	}

	rawToken, err := generateResetToken()
	if err != nil {
		return errors.Wrap(err, "failed to generate reset token")
	}

	// Only the hash is stored; the raw token travels in the email link.
	hash := sha256.Sum256([]byte(rawToken))
	expires := time.Now().Add(srv.resetTokenTTL)
	user.ResetPasswordToken = hex.EncodeToString(hash[:])
	user.ResetPasswordExpires = &expires

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to store reset token")
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", srv.frontendURL, rawToken)
	if resetMail, err := mail.ResetPasswordMail(user.Email, user.FullName, resetURL); err == nil {
		if err := srv.mailSender.Send(ctx, resetMail); err != nil {
			srv.log(ctx).Error("failed to send reset email", slog.String("error", err.Error()))
		}
	}

	return nil
}

// ResetPassword consumes a reset token and stores the new password.
func (srv *authService) ResetPassword(ctx context.Context, input usecase.ResetPasswordInput) error {
	hash := sha256.Sum256([]byte(input.Token))

	user, err := srv.userRepo.FindByResetTokenHash(ctx, hex.EncodeToString(hash[:]))
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrInvalidResetToken
	}
	if err != nil {
		return errors.Wrap(err, "failed to find user by reset token")
	}

	hashed, err := srv.hasher.Hash(input.NewPassword)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed
	}

	user.Password = hashed
	user.ResetPasswordToken = ""
	user.ResetPasswordExpires = nil
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return errors.Wrap(err, "failed to update password")
	}

	// Force a fresh login everywhere.
	if err := srv.sessionStore.DeleteSession(ctx, user.ID); err != nil {
		srv.log(ctx).Warn("failed to drop session after password reset", slog.String("error", err.Error()))
	}

	recordActivity(ctx, srv.log(ctx), srv.activityRepo, user.ID, "reset_password", "user", &user.ID, nil)

	return nil
}

// AdminLogin authenticates an admin and issues a session token.
func (srv *authService) AdminLogin(ctx context.Context, input usecase.AdminLoginInput) (*usecase.AdminLoginOutput, error) {
	admin, err := srv.adminRepo.FindByUsername(ctx, input.Username)
	if errors.Is(err, repository.ErrAdminNotFound) {
		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to find admin")
	}

	if !srv.hasher.Check(input.Password, admin.Password) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	token, err := srv.tokenService.GenerateToken(admin.ID, admin.Username, entity.RoleAdmin)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate token")
	}

	ttl := srv.tokenService.TokenDuration(entity.RoleAdmin)
	if err := srv.sessionStore.SaveSession(ctx, admin.ID, token, ttl); err != nil {
		return nil, errors.Wrap(err, "failed to save session")
	}

	srv.log(ctx).Info("Admin logged in", slog.String("admin_id", admin.ID.String()))

	return &usecase.AdminLoginOutput{Token: token, Admin: admin}, nil
}

// ValidateSession checks that the presented token is the active one for the principal.
func (srv *authService) ValidateSession(ctx context.Context, principalID uuid.UUID, token string) error {
	stored, err := srv.sessionStore.GetSession(ctx, principalID)
	if errors.Is(err, service.ErrSessionNotFound) {
		return domainerrors.ErrUnauthenticated
	}
	if err != nil {
		return errors.Wrap(err, "failed to load session")
	}

	if subtle.ConstantTimeCompare([]byte(stored), []byte(token)) != 1 {
		return domainerrors.ErrTokenMismatch
	}

	return nil
}

func (srv *authService) sendOTPMail(ctx context.Context, pending *service.PendingSignup) {
	ttlMinutes := int(srv.otpTTL.Minutes())
	otpMail, err := mail.OTPMail(pending.Email, pending.FullName, pending.OTP, ttlMinutes)
	if err != nil {
		srv.log(ctx).Error("failed to render OTP email", slog.String("error", err.Error()))

		return
	}

	if err := srv.mailSender.Send(ctx, otpMail); err != nil {
		srv.log(ctx).Error("failed to send OTP email", slog.String("error", err.Error()))
	}
}

// generateOTP returns a 6-digit numeric code.
func generateOTP() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%06d", n.Int64()), nil
}

// generateResetToken returns a url-safe random token.
func generateResetToken() (string, error) {
	buf := make([]byte, resetTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return hex.EncodeToString(buf), nil
}
