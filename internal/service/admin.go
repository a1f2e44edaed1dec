package service

import (
	"context"
	"net/mail"

	"github.com/rmartins/grana-bff-go/internal/domain"
	"github.com/rmartins/grana-bff-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

var adminTracer = otel.Tracer("service/admin")

// AdminService manages users and permission groups. Plaintext passwords
// never leave this service; they are bcrypt-hashed before reaching the
// store.
type AdminService struct {
	store  port.FinanceStore
	logger *zap.Logger
}

// NewAdminService creates the admin service.
func NewAdminService(store port.FinanceStore, logger *zap.Logger) *AdminService {
	return &AdminService{store: store, logger: logger}
}

func validateUserRequest(req *domain.UserRequest, requirePassword bool) error {
	if req.Name == "" {
		return &domain.ErrValidation{Field: "name", Message: "required"}
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return &domain.ErrValidation{Field: "email", Message: "invalid email address"}
	}
	if requirePassword && req.Password == "" {
		return &domain.ErrValidation{Field: "password", Message: "required"}
	}
	if req.Password != "" && len(req.Password) < 8 {
		return &domain.ErrValidation{Field: "password", Message: "must be at least 8 characters"}
	}
	return nil
}

// ListUsers returns all users.
func (s *AdminService) ListUsers(ctx context.Context) ([]domain.User, error) {
	ctx, span := adminTracer.Start(ctx, "AdminService.ListUsers")
	defer span.End()

	return s.store.ListUsers(ctx)
}

// GetUser returns one user.
func (s *AdminService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	ctx, span := adminTracer.Start(ctx, "AdminService.GetUser")
	defer span.End()

	return s.store.GetUser(ctx, userID)
}

// CreateUser hashes the password and stores the new user.
func (s *AdminService) CreateUser(ctx context.Context, req *domain.UserRequest) (*domain.User, error) {
	ctx, span := adminTracer.Start(ctx, "AdminService.CreateUser")
	defer span.End()

	if err := validateUserRequest(req, true); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := s.store.CreateUser(ctx, req, string(hash))
	if err != nil {
		return nil, err
	}

	s.logger.Info("user created",
		zap.String("user_id", user.ID),
		zap.String("email", user.Email),
	)
	return user, nil
}

// UpdateUser replaces a user, rehashing the password only when a new one
// was supplied.
func (s *AdminService) UpdateUser(ctx context.Context, userID string, req *domain.UserRequest) (*domain.User, error) {
	ctx, span := adminTracer.Start(ctx, "AdminService.UpdateUser")
	defer span.End()

	if err := validateUserRequest(req, false); err != nil {
		return nil, err
	}

	var hash string
	if req.Password != "" {
		h, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		hash = string(h)
	}

	return s.store.UpdateUser(ctx, userID, req, hash)
}

// DeleteUser removes a user.
func (s *AdminService) DeleteUser(ctx context.Context, userID string) error {
	ctx, span := adminTracer.Start(ctx, "AdminService.DeleteUser")
	defer span.End()

	return s.store.DeleteUser(ctx, userID)
}

// ListPermissionGroups returns all permission groups.
func (s *AdminService) ListPermissionGroups(ctx context.Context) ([]domain.PermissionGroup, error) {
	ctx, span := adminTracer.Start(ctx, "AdminService.ListPermissionGroups")
	defer span.End()

	return s.store.ListPermissionGroups(ctx)
}

// CreatePermissionGroup stores a new permission group.
func (s *AdminService) CreatePermissionGroup(ctx context.Context, req *domain.PermissionGroupRequest) (*domain.PermissionGroup, error) {
	ctx, span := adminTracer.Start(ctx, "AdminService.CreatePermissionGroup")
	defer span.End()

	if req.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "required"}
	}
	return s.store.CreatePermissionGroup(ctx, req)
}

// UpdatePermissionGroup replaces a permission group.
func (s *AdminService) UpdatePermissionGroup(ctx context.Context, groupID string, req *domain.PermissionGroupRequest) (*domain.PermissionGroup, error) {
	ctx, span := adminTracer.Start(ctx, "AdminService.UpdatePermissionGroup")
	defer span.End()

	if req.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "required"}
	}
	return s.store.UpdatePermissionGroup(ctx, groupID, req)
}

// DeletePermissionGroup removes a permission group.
func (s *AdminService) DeletePermissionGroup(ctx context.Context, groupID string) error {
	ctx, span := adminTracer.Start(ctx, "AdminService.DeletePermissionGroup")
	defer span.End()

	return s.store.DeletePermissionGroup(ctx, groupID)
}
