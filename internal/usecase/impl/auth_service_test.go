package impl

import (
	"context"
	"testing"
	"time"

	"ladx/internal/domain/entity"
	domainerrors "ladx/internal/domain/errors"
	"ladx/internal/domain/service"
	"ladx/internal/infra/auth"
	"ladx/internal/infra/session"
	"ladx/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authFixtures struct {
	userRepo     *fakeUserRepo
	adminRepo    *fakeAdminRepo
	activityRepo *fakeActivityRepo
	sessionStore service.SessionStore
	mailSender   *fakeMailSender
	hasher       service.PasswordHasher
	tokenService service.TokenService
}

func createTestAuthService(t *testing.T) (usecase.AuthUsecase, *authFixtures) {
	t.Helper()

	cfg := newTestConfig()
	fixtures := &authFixtures{
		userRepo:     newFakeUserRepo(),
		adminRepo:    newFakeAdminRepo(),
		activityRepo: newFakeActivityRepo(),
		sessionStore: session.NewMemoryStore(),
		mailSender:   &fakeMailSender{},
		hasher:       auth.NewBcryptHasher(cfg),
	}

	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)
	fixtures.tokenService = tokenService

	txManager := &fakeTxManager{factory: &fakeRepoFactory{
		userRepo:     fixtures.userRepo,
		activityRepo: fixtures.activityRepo,
	}}

	svc := NewAuthService(AuthServiceParams{
		TxManager:    txManager,
		UserRepo:     fixtures.userRepo,
		AdminRepo:    fixtures.adminRepo,
		ActivityRepo: fixtures.activityRepo,
		SessionStore: fixtures.sessionStore,
		Hasher:       fixtures.hasher,
		TokenService: tokenService,
		MailSender:   fixtures.mailSender,
		Config:       cfg,
		Logger:       newDiscardLogger(),
	})

	return svc, fixtures
}

func seedVerifiedUser(t *testing.T, fixtures *authFixtures, email, password string) *entity.User {
	t.Helper()

	hashed, err := fixtures.hasher.Hash(password)
	require.NoError(t, err)

	user := &entity.User{
		FullName:   "Ada Obi",
		Email:      email,
		Country:    "Nigeria",
		Password:   hashed,
		Role:       entity.RoleSender,
		IsVerified: true,
	}
	require.NoError(t, fixtures.userRepo.Create(context.Background(), user))

	return user
}

func signupInput(email string) usecase.SignupInput {
	return usecase.SignupInput{
		FullName:    "Ada Obi",
		Email:       email,
		Country:     "Nigeria",
		PhoneNumber: "+2348012345678",
		Password:    "password123",
		Role:        entity.RoleSender,
	}
}

func TestSignupRejectsAdminRole(t *testing.T) {
	svc, _ := createTestAuthService(t)

	input := signupInput("ada@example.com")
	input.Role = entity.RoleAdmin

	out, err := svc.Signup(context.Background(), input)
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestSignupRejectsRegisteredEmail(t *testing.T) {
	svc, fixtures := createTestAuthService(t)
	seedVerifiedUser(t, fixtures, "ada@example.com", "password123")

	out, err := svc.Signup(context.Background(), signupInput("ada@example.com"))
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrUserAlreadyExists)
}

func TestSignupStashesPendingAndEmailsOTP(t *testing.T) {
	svc, fixtures := createTestAuthService(t)

	out, err := svc.Signup(context.Background(), signupInput("ada@example.com"))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, out.TempID)

	pending, err := fixtures.sessionStore.GetPendingSignup(context.Background(), out.TempID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", pending.Email)
	assert.Len(t, pending.OTP, 6)
	assert.NotEqual(t, "password123", pending.Password)

	require.Len(t, fixtures.mailSender.sent, 1)
	assert.Equal(t, "ada@example.com", fixtures.mailSender.sent[0].To)
	assert.Contains(t, fixtures.mailSender.sent[0].HTML, pending.OTP)
}

func TestVerifyOTPWrongCode(t *testing.T) {
	svc, fixtures := createTestAuthService(t)

	out, err := svc.Signup(context.Background(), signupInput("ada@example.com"))
	require.NoError(t, err)

	pending, err := fixtures.sessionStore.GetPendingSignup(context.Background(), out.TempID)
	require.NoError(t, err)

	wrong := "000000"
	if pending.OTP == wrong {
		wrong = "000001"
	}

	user, err := svc.VerifyOTP(context.Background(), usecase.VerifyOTPInput{TempID: out.TempID, OTP: wrong})
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOTP)
}

func TestVerifyOTPUnknownTempID(t *testing.T) {
	svc, _ := createTestAuthService(t)

	user, err := svc.VerifyOTP(context.Background(), usecase.VerifyOTPInput{TempID: uuid.New(), OTP: "123456"})
	assert.Nil(t, user)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidOTP)
}

func TestVerifyOTPCreatesVerifiedUser(t *testing.T) {
	svc, fixtures := createTestAuthService(t)

	out, err := svc.Signup(context.Background(), signupInput("ada@example.com"))
	require.NoError(t, err)

	pending, err := fixtures.sessionStore.GetPendingSignup(context.Background(), out.TempID)
	require.NoError(t, err)

	user, err := svc.VerifyOTP(context.Background(), usecase.VerifyOTPInput{TempID: out.TempID, OTP: pending.OTP})
	require.NoError(t, err)
	assert.True(t, user.IsVerified)
	assert.Equal(t, entity.RoleSender, user.Role)

	stored, err := fixtures.userRepo.FindByEmail(context.Background(), "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, user.ID, stored.ID)

	// The pending signup is consumed.
	_, err = fixtures.sessionStore.GetPendingSignup(context.Background(), out.TempID)
	assert.ErrorIs(t, err, service.ErrPendingSignupNotFound)

	// Signup activity is on record.
	require.NotEmpty(t, fixtures.activityRepo.entries)
	assert.Equal(t, "signup", fixtures.activityRepo.entries[0].Action)
}

func TestResendOTPRotatesCode(t *testing.T) {
	svc, fixtures := createTestAuthService(t)

	out, err := svc.Signup(context.Background(), signupInput("ada@example.com"))
	require.NoError(t, err)

	before, err := fixtures.sessionStore.GetPendingSignup(context.Background(), out.TempID)
	require.NoError(t, err)

	require.NoError(t, svc.ResendOTP(context.Background(), out.TempID))

	after, err := fixtures.sessionStore.GetPendingSignup(context.Background(), out.TempID)
	require.NoError(t, err)
	assert.Len(t, after.OTP, 6)
	assert.True(t, after.ExpiresAt.After(before.ExpiresAt) || after.ExpiresAt.Equal(before.ExpiresAt))
	assert.Len(t, fixtures.mailSender.sent, 2)
}

func TestLoginWrongPassword(t *testing.T) {
	svc, fixtures := createTestAuthService(t)
	seedVerifiedUser(t, fixtures, "ada@example.com", "password123")

	out, err := svc.Login(context.Background(), usecase.LoginInput{Email: "ada@example.com", Password: "nope-nope"})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, _ := createTestAuthService(t)

	out, err := svc.Login(context.Background(), usecase.LoginInput{Email: "ghost@example.com", Password: "password123"})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestLoginUnverifiedAccount(t *testing.T) {
	svc, fixtures := createTestAuthService(t)
	user := seedVerifiedUser(t, fixtures, "ada@example.com", "password123")
	user.IsVerified = false
	require.NoError(t, fixtures.userRepo.Update(context.Background(), user))

	out, err := svc.Login(context.Background(), usecase.LoginInput{Email: "ada@example.com", Password: "password123"})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrAccountNotVerified)
}

func TestLoginStoresSessionToken(t *testing.T) {
	svc, fixtures := createTestAuthService(t)
	user := seedVerifiedUser(t, fixtures, "ada@example.com", "password123")

	out, err := svc.Login(context.Background(), usecase.LoginInput{Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)
	assert.Equal(t, user.ID, out.User.ID)

	stored, err := fixtures.sessionStore.GetSession(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, out.Token, stored)
}

func TestSecondLoginReplacesSession(t *testing.T) {
	svc, fixtures := createTestAuthService(t)
	user := seedVerifiedUser(t, fixtures, "ada@example.com", "password123")

	first, err := svc.Login(context.Background(), usecase.LoginInput{Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)

	// Claims carry issued-at with second precision; a later login must mint a
	// distinct token for the replacement check to mean anything.
	time.Sleep(1100 * time.Millisecond)

	second, err := svc.Login(context.Background(), usecase.LoginInput{Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)
	require.NotEqual(t, first.Token, second.Token)

	assert.ErrorIs(t, svc.ValidateSession(context.Background(), user.ID, first.Token), domainerrors.ErrTokenMismatch)
	assert.NoError(t, svc.ValidateSession(context.Background(), user.ID, second.Token))
}

func TestLogoutDropsSession(t *testing.T) {
	svc, fixtures := createTestAuthService(t)
	user := seedVerifiedUser(t, fixtures, "ada@example.com", "password123")

	out, err := svc.Login(context.Background(), usecase.LoginInput{Email: "ada@example.com", Password: "password123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), user.ID))
	assert.ErrorIs(t, svc.ValidateSession(context.Background(), user.ID, out.Token), domainerrors.ErrUnauthenticated)
}

func TestValidateSessionWithoutLogin(t *testing.T) {
	svc, _ := createTestAuthService(t)

	err := svc.ValidateSession(context.Background(), uuid.New(), "some-token")
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestForgotPasswordSilentForUnknownEmail(t *testing.T) {
	svc, fixtures := createTestAuthService(t)

	require.NoError(t, svc.ForgotPassword(context.Background(), "ghost@example.com"))
	assert.Empty(t, fixtures.mailSender.sent)
}

func TestForgotPasswordStoresHashNotToken(t *testing.T) {
	svc, fixtures := createTestAuthService(t)
	user := seedVerifiedUser(t, fixtures, "ada@example.com", "password123")

	require.NoError(t, svc.ForgotPassword(context.Background(), "ada@example.com"))

	updated, err := fixtures.userRepo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	require.NotEmpty(t, updated.ResetPasswordToken)
	require.NotNil(t, updated.ResetPasswordExpires)

	require.Len(t, fixtures.mailSender.sent, 1)
	// The raw token travels only in the email; the stored value is its hash.
	assert.NotContains(t, fixtures.mailSender.sent[0].HTML, updated.ResetPasswordToken)
	assert.Contains(t, fixtures.mailSender.sent[0].HTML, "reset-password/")
}

func TestResetPasswordInvalidToken(t *testing.T) {
	svc, _ := createTestAuthService(t)

	err := svc.ResetPassword(context.Background(), usecase.ResetPasswordInput{
		Token:       "deadbeef",
		NewPassword: "newpassword1",
	})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidResetToken)
}

func TestAdminLogin(t *testing.T) {
	svc, fixtures := createTestAuthService(t)

	hashed, err := fixtures.hasher.Hash("admin-secret")
	require.NoError(t, err)
	require.NoError(t, fixtures.adminRepo.Create(context.Background(), &entity.Admin{
		Username: "root",
		Password: hashed,
	}))

	out, err := svc.AdminLogin(context.Background(), usecase.AdminLoginInput{Username: "root", Password: "admin-secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, "root", out.Admin.Username)

	_, err = svc.AdminLogin(context.Background(), usecase.AdminLoginInput{Username: "root", Password: "wrong"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	_, err = svc.AdminLogin(context.Background(), usecase.AdminLoginInput{Username: "nobody", Password: "admin-secret"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}
