// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"
	"time"

	"github.com/rmartins/grana-bff-go/internal/domain"
)

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}

// FinanceStore defines all data operations against the remote finance API.
// Implemented by the financeapi client (or any other backend).
type FinanceStore interface {
	// Bank accounts
	ListAccounts(ctx context.Context, userID string) ([]domain.BankAccount, error)
	GetAccount(ctx context.Context, userID, accountID string) (*domain.BankAccount, error)
	CreateAccount(ctx context.Context, userID string, req *domain.BankAccountRequest) (*domain.BankAccount, error)
	UpdateAccount(ctx context.Context, userID, accountID string, req *domain.BankAccountRequest) (*domain.BankAccount, error)
	DeleteAccount(ctx context.Context, userID, accountID string) error

	// Ledger records (bank transactions + receivables/payables)
	ListLedgerRecords(ctx context.Context, userID string, filter domain.LedgerFilter) ([]domain.LedgerRecord, error)
	GetLedgerRecord(ctx context.Context, userID, recordID string) (*domain.LedgerRecord, error)
	CreateLedgerRecord(ctx context.Context, userID string, req *domain.LedgerRecordRequest) (*domain.LedgerRecord, error)
	UpdateLedgerRecord(ctx context.Context, userID, recordID string, req *domain.LedgerRecordRequest) (*domain.LedgerRecord, error)
	DeleteLedgerRecord(ctx context.Context, userID, recordID string) error

	// Categories
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	CreateCategory(ctx context.Context, userID string, req *domain.CategoryRequest) (*domain.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID string, req *domain.CategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID string) error

	// Tags
	ListTags(ctx context.Context, userID string) ([]domain.Tag, error)
	CreateTag(ctx context.Context, userID string, req *domain.TagRequest) (*domain.Tag, error)
	DeleteTag(ctx context.Context, userID, tagID string) error

	// Recurring payments
	ListRecurringPayments(ctx context.Context, userID string) ([]domain.RecurringPayment, error)
	GetRecurringPayment(ctx context.Context, userID, recurringID string) (*domain.RecurringPayment, error)
	CreateRecurringPayment(ctx context.Context, userID string, req *domain.RecurringPaymentRequest) (*domain.RecurringPayment, error)
	UpdateRecurringPayment(ctx context.Context, userID, recurringID string, req *domain.RecurringPaymentRequest) (*domain.RecurringPayment, error)
	DeleteRecurringPayment(ctx context.Context, userID, recurringID string) error

	// OFX imports
	UploadOFX(ctx context.Context, userID, accountID, fileName string, data []byte) (*domain.OFXImport, error)
	ListOFXImports(ctx context.Context, userID string) ([]domain.OFXImport, error)
	ListOFXPending(ctx context.Context, userID, importID string) ([]domain.OFXPendingTransaction, error)
	ReviewOFXPending(ctx context.Context, userID, importID, pendingID string, req *domain.OFXReviewRequest) (*domain.OFXPendingTransaction, error)

	// Users & permission groups (admin surface)
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	CreateUser(ctx context.Context, req *domain.UserRequest, passwordHash string) (*domain.User, error)
	UpdateUser(ctx context.Context, userID string, req *domain.UserRequest, passwordHash string) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string) error
	ListPermissionGroups(ctx context.Context) ([]domain.PermissionGroup, error)
	CreatePermissionGroup(ctx context.Context, req *domain.PermissionGroupRequest) (*domain.PermissionGroup, error)
	UpdatePermissionGroup(ctx context.Context, groupID string, req *domain.PermissionGroupRequest) (*domain.PermissionGroup, error)
	DeletePermissionGroup(ctx context.Context, groupID string) error
}

// AuthStore defines credential and refresh-token operations.
type AuthStore interface {
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	GetCredentials(ctx context.Context, userID string) (*domain.AuthCredential, error)
	UpdateCredentials(ctx context.Context, userID string, updates map[string]any) error

	StoreRefreshToken(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error
	GetRefreshToken(ctx context.Context, tokenHash string) (*domain.AuthRefreshToken, error)
	RevokeRefreshToken(ctx context.Context, tokenHash string) error
	RevokeAllRefreshTokens(ctx context.Context, userID string) error
}
