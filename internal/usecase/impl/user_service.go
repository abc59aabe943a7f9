package impl

import (
	"context"
	"log/slog"

	deliverycontext "ladx/internal/delivery/context"
	"ladx/internal/domain/entity"
	domainerrors "ladx/internal/domain/errors"
	"ladx/internal/domain/repository"
	"ladx/internal/domain/service"
	"ladx/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const kycFolder = "kyc"

// userService implements the UserUsecase interface.
type userService struct {
	userRepo     repository.UserRepository
	kycRepo      repository.KYCRepository
	activityRepo repository.ActivityLogRepository
	mediaStore   service.MediaStore
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for the user service, injected by Fx.
type UserServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	KYCRepo      repository.KYCRepository
	ActivityRepo repository.ActivityLogRepository
	MediaStore   service.MediaStore
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		userRepo:     params.UserRepo,
		kycRepo:      params.KYCRepo,
		activityRepo: params.ActivityRepo,
		mediaStore:   params.MediaStore,
		logger:       params.Logger,
	}
}

func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetProfile returns the user's profile.
func (srv *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load profile")
	}

	return user, nil
}

// UpdateProfile applies the given changes to the user's profile.
func (srv *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, input usecase.UpdateProfileInput) (*entity.User, error) {
	user, err := srv.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.FullName != nil {
		user.FullName = *input.FullName
	}
	if input.Country != nil {
		user.Country = *input.Country
	}
	if input.State != nil {
		user.State = *input.State
	}
	if input.PhoneNumber != nil {
		user.PhoneNumber = *input.PhoneNumber
	}
	if input.Gender != nil {
		if !input.Gender.IsValid() {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("invalid gender")
		}
		user.Gender = *input.Gender
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to update profile")
	}

	recordActivity(ctx, srv.log(ctx), srv.activityRepo, userID, "update", "user", &userID, nil)

	return user, nil
}

// SwitchRole toggles the user between sender and traveler.
func (srv *userService) SwitchRole(ctx context.Context, userID uuid.UUID, role entity.Role) (*entity.User, error) {
	if role != entity.RoleSender && role != entity.RoleTraveler {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("role must be sender or traveler")
	}

	user, err := srv.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Role == role {
		return user, nil
	}

	user.Role = role
	if err := srv.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "failed to switch role")
	}

	recordActivity(ctx, srv.log(ctx), srv.activityRepo, userID, "switch_role", "user", &userID,
		map[string]any{"role": role.String()})
	srv.log(ctx).Info("Role switched", slog.String("user_id", userID.String()), slog.Any("role", role))

	return user, nil
}

// SubmitKYC stores the identity document and creates a pending submission.
func (srv *userService) SubmitKYC(ctx context.Context, userID uuid.UUID, input usecase.SubmitKYCInput) (*entity.KYC, error) {
	user, err := srv.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if _, err := srv.kycRepo.FindByUserID(ctx, userID); err == nil {
		return nil, domainerrors.ErrConflict.WrapMessage("KYC already submitted")
	} else if !errors.Is(err, repository.ErrKYCNotFound) {
		return nil, errors.Wrap(err, "failed to check existing KYC")
	}

	stored, err := srv.mediaStore.Upload(ctx, kycFolder, input.DocumentFilename, input.DocumentMIME, input.Document)
	if err != nil {
		return nil, errors.Wrap(err, "failed to store KYC document")
	}

	kyc := &entity.KYC{
		UserID:             userID,
		ResidentialAddress: input.ResidentialAddress,
		DocumentURL:        stored.URL,
		DocumentKey:        stored.Key,
		Status:             entity.KYCStatusPending,
	}
	if err := srv.kycRepo.Create(ctx, kyc); err != nil {
		// Don't leave an orphaned document behind.
		if delErr := srv.mediaStore.Delete(ctx, stored.Key); delErr != nil {
			srv.log(ctx).Warn("failed to clean up KYC document", slog.String("error", delErr.Error()))
		}

		return nil, err
	}

	user.KYCID = &kyc.ID
	if err := srv.userRepo.Update(ctx, user); err != nil {
		srv.log(ctx).Warn("failed to link KYC to user", slog.String("error", err.Error()))
	}

	recordActivity(ctx, srv.log(ctx), srv.activityRepo, userID, "submit", "kyc", &kyc.ID, nil)

	return kyc, nil
}

// GetKYC returns the user's KYC submission.
func (srv *userService) GetKYC(ctx context.Context, userID uuid.UUID) (*entity.KYC, error) {
	kyc, err := srv.kycRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrKYCNotFound) {
		return nil, domainerrors.ErrNotFound.WrapMessage("No KYC submission found")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load KYC submission")
	}

	return kyc, nil
}
