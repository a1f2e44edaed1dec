package service_test

import (
	"context"
	"time"

	"github.com/rmartins/grana-bff-go/internal/domain"
)

// ============================================================
// Mock finance store
// ============================================================

// mockStore is an in-memory port.FinanceStore. Tests set the fields they
// care about; every mutation echoes a record back the way the real API
// does.
type mockStore struct {
	accounts []domain.BankAccount
	records  []domain.LedgerRecord

	categories []domain.Category
	tags       []domain.Tag
	recurring  []domain.RecurringPayment
	imports    []domain.OFXImport
	pending    []domain.OFXPendingTransaction
	users      []domain.User
	groups     []domain.PermissionGroup

	listAccountsErr error
	listRecordsErr  error

	listAccountsCalls int
	listRecordsCalls  int

	// Captured by CreateUser/UpdateUser.
	lastPasswordHash string
}

func (m *mockStore) ListAccounts(_ context.Context, _ string) ([]domain.BankAccount, error) {
	m.listAccountsCalls++
	return m.accounts, m.listAccountsErr
}

func (m *mockStore) GetAccount(_ context.Context, _, accountID string) (*domain.BankAccount, error) {
	for _, a := range m.accounts {
		if a.ID == accountID {
			return &a, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "account", ID: accountID}
}

func (m *mockStore) CreateAccount(_ context.Context, userID string, req *domain.BankAccountRequest) (*domain.BankAccount, error) {
	acc := domain.BankAccount{
		ID:                  "acc-new",
		UserID:              userID,
		Name:                req.Name,
		Institution:         req.Institution,
		AccountType:         req.AccountType,
		OpeningBalanceCents: req.OpeningBalanceCents,
		IsActive:            true,
	}
	m.accounts = append(m.accounts, acc)
	return &acc, nil
}

func (m *mockStore) UpdateAccount(_ context.Context, _, accountID string, req *domain.BankAccountRequest) (*domain.BankAccount, error) {
	return &domain.BankAccount{ID: accountID, Name: req.Name, AccountType: req.AccountType}, nil
}

func (m *mockStore) DeleteAccount(_ context.Context, _, _ string) error { return nil }

func (m *mockStore) ListLedgerRecords(_ context.Context, _ string, _ domain.LedgerFilter) ([]domain.LedgerRecord, error) {
	m.listRecordsCalls++
	return m.records, m.listRecordsErr
}

func (m *mockStore) GetLedgerRecord(_ context.Context, _, recordID string) (*domain.LedgerRecord, error) {
	for _, r := range m.records {
		if r.ID == recordID {
			return &r, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "ledger record", ID: recordID}
}

func (m *mockStore) CreateLedgerRecord(_ context.Context, _ string, req *domain.LedgerRecordRequest) (*domain.LedgerRecord, error) {
	occurred, _ := time.Parse("2006-01-02", req.OccurredAt)
	rec := domain.LedgerRecord{
		ID:                    "rec-new",
		Source:                domain.SourceBankLedger,
		Kind:                  req.Kind,
		Status:                req.Status,
		AmountCents:           req.AmountCents,
		OccurredAt:            occurred,
		AccountID:             req.AccountID,
		TransferFromAccountID: req.TransferFromAccountID,
		TransferToAccountID:   req.TransferToAccountID,
	}
	m.records = append(m.records, rec)
	return &rec, nil
}

func (m *mockStore) UpdateLedgerRecord(_ context.Context, _, recordID string, req *domain.LedgerRecordRequest) (*domain.LedgerRecord, error) {
	return &domain.LedgerRecord{ID: recordID, Kind: req.Kind, Status: req.Status, AmountCents: req.AmountCents}, nil
}

func (m *mockStore) DeleteLedgerRecord(_ context.Context, _, _ string) error { return nil }

func (m *mockStore) ListCategories(_ context.Context, _ string) ([]domain.Category, error) {
	return m.categories, nil
}

func (m *mockStore) CreateCategory(_ context.Context, _ string, req *domain.CategoryRequest) (*domain.Category, error) {
	return &domain.Category{ID: "cat-new", Name: req.Name, Kind: req.Kind}, nil
}

func (m *mockStore) UpdateCategory(_ context.Context, _, categoryID string, req *domain.CategoryRequest) (*domain.Category, error) {
	return &domain.Category{ID: categoryID, Name: req.Name, Kind: req.Kind}, nil
}

func (m *mockStore) DeleteCategory(_ context.Context, _, _ string) error { return nil }

func (m *mockStore) ListTags(_ context.Context, _ string) ([]domain.Tag, error) { return m.tags, nil }

func (m *mockStore) CreateTag(_ context.Context, _ string, req *domain.TagRequest) (*domain.Tag, error) {
	return &domain.Tag{ID: "tag-new", Name: req.Name}, nil
}

func (m *mockStore) DeleteTag(_ context.Context, _, _ string) error { return nil }

func (m *mockStore) ListRecurringPayments(_ context.Context, _ string) ([]domain.RecurringPayment, error) {
	return m.recurring, nil
}

func (m *mockStore) GetRecurringPayment(_ context.Context, _, recurringID string) (*domain.RecurringPayment, error) {
	for _, r := range m.recurring {
		if r.ID == recurringID {
			return &r, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "recurring payment", ID: recurringID}
}

func (m *mockStore) CreateRecurringPayment(_ context.Context, userID string, req *domain.RecurringPaymentRequest) (*domain.RecurringPayment, error) {
	start, _ := time.Parse("2006-01-02", req.StartDate)
	return &domain.RecurringPayment{
		ID: "rp-new", UserID: userID, Description: req.Description, Kind: req.Kind,
		AmountCents: req.AmountCents, AccountID: req.AccountID, Frequency: req.Frequency,
		DayOfMonth: req.DayOfMonth, StartDate: start, IsActive: true,
	}, nil
}

func (m *mockStore) UpdateRecurringPayment(_ context.Context, _, recurringID string, req *domain.RecurringPaymentRequest) (*domain.RecurringPayment, error) {
	return &domain.RecurringPayment{ID: recurringID, Description: req.Description}, nil
}

func (m *mockStore) DeleteRecurringPayment(_ context.Context, _, _ string) error { return nil }

func (m *mockStore) UploadOFX(_ context.Context, userID, accountID, fileName string, _ []byte) (*domain.OFXImport, error) {
	return &domain.OFXImport{ID: "imp-new", UserID: userID, AccountID: accountID, FileName: fileName, Status: "processing"}, nil
}

func (m *mockStore) ListOFXImports(_ context.Context, _ string) ([]domain.OFXImport, error) {
	return m.imports, nil
}

func (m *mockStore) ListOFXPending(_ context.Context, _, _ string) ([]domain.OFXPendingTransaction, error) {
	return m.pending, nil
}

func (m *mockStore) ReviewOFXPending(_ context.Context, _, _, pendingID string, req *domain.OFXReviewRequest) (*domain.OFXPendingTransaction, error) {
	return &domain.OFXPendingTransaction{ID: pendingID, SuggestedCategoryID: req.CategoryID, Reviewed: true}, nil
}

func (m *mockStore) ListUsers(_ context.Context) ([]domain.User, error) { return m.users, nil }

func (m *mockStore) GetUser(_ context.Context, userID string) (*domain.User, error) {
	for _, u := range m.users {
		if u.ID == userID {
			return &u, nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "user", ID: userID}
}

func (m *mockStore) CreateUser(_ context.Context, req *domain.UserRequest, passwordHash string) (*domain.User, error) {
	m.lastPasswordHash = passwordHash
	return &domain.User{ID: "user-new", Name: req.Name, Email: req.Email, IsActive: true}, nil
}

func (m *mockStore) UpdateUser(_ context.Context, userID string, req *domain.UserRequest, passwordHash string) (*domain.User, error) {
	m.lastPasswordHash = passwordHash
	return &domain.User{ID: userID, Name: req.Name, Email: req.Email}, nil
}

func (m *mockStore) DeleteUser(_ context.Context, _ string) error { return nil }

func (m *mockStore) ListPermissionGroups(_ context.Context) ([]domain.PermissionGroup, error) {
	return m.groups, nil
}

func (m *mockStore) CreatePermissionGroup(_ context.Context, req *domain.PermissionGroupRequest) (*domain.PermissionGroup, error) {
	return &domain.PermissionGroup{ID: "grp-new", Name: req.Name, Permissions: req.Permissions}, nil
}

func (m *mockStore) UpdatePermissionGroup(_ context.Context, groupID string, req *domain.PermissionGroupRequest) (*domain.PermissionGroup, error) {
	return &domain.PermissionGroup{ID: groupID, Name: req.Name, Permissions: req.Permissions}, nil
}

func (m *mockStore) DeletePermissionGroup(_ context.Context, _ string) error { return nil }

// ============================================================
// Mock auth store
// ============================================================

type mockAuthStore struct {
	usersByEmail map[string]*domain.User
	usersByID    map[string]*domain.User
	credentials  map[string]*domain.AuthCredential
	tokens       map[string]*domain.AuthRefreshToken

	credentialUpdates map[string]any
}

func newMockAuthStore() *mockAuthStore {
	return &mockAuthStore{
		usersByEmail: map[string]*domain.User{},
		usersByID:    map[string]*domain.User{},
		credentials:  map[string]*domain.AuthCredential{},
		tokens:       map[string]*domain.AuthRefreshToken{},
	}
}

func (m *mockAuthStore) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	return m.usersByEmail[email], nil
}

func (m *mockAuthStore) GetUserByID(_ context.Context, userID string) (*domain.User, error) {
	return m.usersByID[userID], nil
}

func (m *mockAuthStore) GetCredentials(_ context.Context, userID string) (*domain.AuthCredential, error) {
	return m.credentials[userID], nil
}

func (m *mockAuthStore) UpdateCredentials(_ context.Context, _ string, updates map[string]any) error {
	m.credentialUpdates = updates
	return nil
}

func (m *mockAuthStore) StoreRefreshToken(_ context.Context, userID, tokenHash string, expiresAt time.Time) error {
	m.tokens[tokenHash] = &domain.AuthRefreshToken{UserID: userID, TokenHash: tokenHash, ExpiresAt: expiresAt}
	return nil
}

func (m *mockAuthStore) GetRefreshToken(_ context.Context, tokenHash string) (*domain.AuthRefreshToken, error) {
	return m.tokens[tokenHash], nil
}

func (m *mockAuthStore) RevokeRefreshToken(_ context.Context, tokenHash string) error {
	delete(m.tokens, tokenHash)
	return nil
}

func (m *mockAuthStore) RevokeAllRefreshTokens(_ context.Context, userID string) error {
	for hash, tok := range m.tokens {
		if tok.UserID == userID {
			delete(m.tokens, hash)
		}
	}
	return nil
}
