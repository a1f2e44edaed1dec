package financeapi

import (
	"context"
	"net/http"

	"github.com/rmartins/grana-bff-go/internal/domain"
)

// --- Users & permission groups (implements part of port.FinanceStore) ---

// userPayload is the outbound shape for user writes. The plaintext
// password from the request never crosses this boundary; only the bcrypt
// hash does.
type userPayload struct {
	Name              string `json:"name"`
	Email             string `json:"email"`
	PasswordHash      string `json:"password_hash,omitempty"`
	PermissionGroupID string `json:"permission_group_id,omitempty"`
	IsActive          *bool  `json:"is_active,omitempty"`
}

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.ListUsers")
	defer span.End()

	return getList[domain.User](c, ctx, "users")
}

func (c *Client) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.GetUser")
	defer span.End()

	return getOne[domain.User](c, ctx, "users/"+escape(userID), "user", userID)
}

func (c *Client) CreateUser(ctx context.Context, req *domain.UserRequest, passwordHash string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.CreateUser")
	defer span.End()

	payload := userPayload{
		Name:              req.Name,
		Email:             req.Email,
		PasswordHash:      passwordHash,
		PermissionGroupID: req.PermissionGroupID,
		IsActive:          req.IsActive,
	}
	return postOne[domain.User](c, ctx, http.MethodPost, "users", payload)
}

func (c *Client) UpdateUser(ctx context.Context, userID string, req *domain.UserRequest, passwordHash string) (*domain.User, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.UpdateUser")
	defer span.End()

	payload := userPayload{
		Name:              req.Name,
		Email:             req.Email,
		PasswordHash:      passwordHash,
		PermissionGroupID: req.PermissionGroupID,
		IsActive:          req.IsActive,
	}
	return postOne[domain.User](c, ctx, http.MethodPut, "users/"+escape(userID), payload)
}

func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	ctx, span := tracer.Start(ctx, "FinanceAPI.DeleteUser")
	defer span.End()

	_, err := c.call(ctx, http.MethodDelete, "users/"+escape(userID), nil)
	return err
}

func (c *Client) ListPermissionGroups(ctx context.Context) ([]domain.PermissionGroup, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.ListPermissionGroups")
	defer span.End()

	return getList[domain.PermissionGroup](c, ctx, "permission-groups")
}

func (c *Client) CreatePermissionGroup(ctx context.Context, req *domain.PermissionGroupRequest) (*domain.PermissionGroup, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.CreatePermissionGroup")
	defer span.End()

	return postOne[domain.PermissionGroup](c, ctx, http.MethodPost, "permission-groups", req)
}

func (c *Client) UpdatePermissionGroup(ctx context.Context, groupID string, req *domain.PermissionGroupRequest) (*domain.PermissionGroup, error) {
	ctx, span := tracer.Start(ctx, "FinanceAPI.UpdatePermissionGroup")
	defer span.End()

	return postOne[domain.PermissionGroup](c, ctx, http.MethodPut, "permission-groups/"+escape(groupID), req)
}

func (c *Client) DeletePermissionGroup(ctx context.Context, groupID string) error {
	ctx, span := tracer.Start(ctx, "FinanceAPI.DeletePermissionGroup")
	defer span.End()

	_, err := c.call(ctx, http.MethodDelete, "permission-groups/"+escape(groupID), nil)
	return err
}
