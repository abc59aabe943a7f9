package handler

import (
	"log/slog"
	"net/http"

	"ladx/config"
	"ladx/internal/delivery/http/response"
	"ladx/internal/domain/entity"
	"ladx/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC usecase.UserUsecase
	Config *config.Config
	Logger *slog.Logger
}

// UserHandler holds dependencies for profile-related handlers.
type UserHandler struct {
	userUC usecase.UserUsecase
	cfg    *config.Config
	logger *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC: params.UserUC,
		cfg:    params.Config,
		logger: params.Logger,
	}
}

// UpdateProfileRequest carries the editable profile fields. Absent fields
// leave the current value untouched.
type UpdateProfileRequest struct {
	FullName    *string `json:"full_name"`
	Country     *string `json:"country"`
	State       *string `json:"state"`
	PhoneNumber *string `json:"phone_number"`
	Gender      *string `json:"gender" validate:"omitempty,oneof=Male Female Other"`
}

// SwitchRoleRequest changes the caller between sender and traveler.
type SwitchRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=sender traveler"`
}

// GetProfile returns the caller's profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	user, err := h.userUC.GetProfile(c.Request().Context(), principal.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Profile retrieved successfully")
}

// UpdateProfile applies profile edits for the caller.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid profile input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	input := usecase.UpdateProfileInput{
		FullName:    req.FullName,
		Country:     req.Country,
		State:       req.State,
		PhoneNumber: req.PhoneNumber,
	}
	if req.Gender != nil {
		gender := entity.Gender(*req.Gender)
		input.Gender = &gender
	}

	user, err := h.userUC.UpdateProfile(c.Request().Context(), principal.ID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Profile updated successfully")
}

// SwitchRole toggles the caller between sender and traveler.
func (h *UserHandler) SwitchRole(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	var req SwitchRoleRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid role input")
	}

	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", err.Error())
	}

	user, err := h.userUC.SwitchRole(c.Request().Context(), principal.ID, entity.Role(req.Role))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, user, "Role switched successfully")
}

// SubmitKYC accepts a multipart form with the residential address and
// the identity document file under the "document" field.
func (h *UserHandler) SubmitKYC(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	address := c.FormValue("residential_address")
	if address == "" {
		return response.BadRequest(c, "VALIDATION_ERROR", "residential_address is required")
	}

	fileHeader, err := c.FormFile("document")
	if err != nil {
		return response.BadRequest(c, "VALIDATION_ERROR", "document file is required")
	}

	if h.cfg.Media != nil && h.cfg.Media.MaxUploadSize > 0 && fileHeader.Size > h.cfg.Media.MaxUploadSize {
		return response.BadRequest(c, "FILE_TOO_LARGE", "document exceeds the upload size limit")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "could not read the document file")
	}
	defer file.Close()

	kyc, err := h.userUC.SubmitKYC(c.Request().Context(), principal.ID, usecase.SubmitKYCInput{
		ResidentialAddress: address,
		DocumentFilename:   fileHeader.Filename,
		DocumentMIME:       fileHeader.Header.Get("Content-Type"),
		Document:           file,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, kyc, "KYC submitted successfully")
}

// GetKYC returns the caller's KYC submission.
func (h *UserHandler) GetKYC(c echo.Context) error {
	principal, err := principalFrom(c)
	if err != nil {
		return err
	}

	kyc, err := h.userUC.GetKYC(c.Request().Context(), principal.ID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, kyc, "KYC retrieved successfully")
}
