package accounts

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spotbook/appointment-service/internal/domain"
	accountRepo "github.com/spotbook/appointment-service/internal/infra/storage/account"
	"github.com/spotbook/appointment-service/internal/service/accounts/models"
)

type fakeAccountRepo struct {
	accounts map[string]*domain.Account
	byEmail  map[string]*domain.Account
	paid     []string
}

func newFakeAccountRepo(accounts ...*domain.Account) *fakeAccountRepo {
	repo := &fakeAccountRepo{
		accounts: make(map[string]*domain.Account),
		byEmail:  make(map[string]*domain.Account),
	}
	for _, acc := range accounts {
		repo.accounts[acc.ID] = acc
		repo.byEmail[acc.Email] = acc
	}
	return repo
}

func (f *fakeAccountRepo) Create(_ context.Context, account *domain.Account) (*domain.Account, error) {
	if _, ok := f.byEmail[account.Email]; ok {
		return nil, accountRepo.ErrEmailTaken
	}
	f.accounts[account.ID] = account
	f.byEmail[account.Email] = account
	return account, nil
}

func (f *fakeAccountRepo) GetByID(_ context.Context, id string) (*domain.Account, error) {
	acc, ok := f.accounts[id]
	if !ok {
		return nil, accountRepo.ErrAccountNotFound
	}
	return acc, nil
}

func (f *fakeAccountRepo) GetByEmail(_ context.Context, email string) (*domain.Account, error) {
	acc, ok := f.byEmail[email]
	if !ok {
		return nil, accountRepo.ErrAccountNotFound
	}
	return acc, nil
}

func (f *fakeAccountRepo) List(_ context.Context) ([]*domain.Account, error) {
	var result []*domain.Account
	for _, acc := range f.accounts {
		result = append(result, acc)
	}
	return result, nil
}

func (f *fakeAccountRepo) SetApproved(_ context.Context, id string, approved bool) error {
	acc, ok := f.accounts[id]
	if !ok {
		return accountRepo.ErrAccountNotFound
	}
	acc.IsApproved = approved
	return nil
}

func (f *fakeAccountRepo) MarkPaid(_ context.Context, id string) error {
	acc, ok := f.accounts[id]
	if !ok {
		return accountRepo.ErrAccountNotFound
	}
	if !acc.HasPaid {
		acc.HasPaid = true
		f.paid = append(f.paid, id)
	}
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newService(accounts ...*domain.Account) (*Service, *fakeAccountRepo) {
	repo := newFakeAccountRepo(accounts...)
	return NewService(repo, nopLogger{}), repo
}

func admin() *domain.Account {
	return &domain.Account{ID: "acc-admin", Email: "admin@spotbook.local", Role: domain.RoleAdmin, IsApproved: true, HasPaid: true}
}

func TestRegister(t *testing.T) {
	t.Run("creates unapproved unpaid user", func(t *testing.T) {
		svc, repo := newService()

		resp, err := svc.Register(context.Background(), &models.RegisterAccountRequest{
			Name:  "John Doe",
			Email: "John@Example.com",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, string(domain.RoleUser), resp.Role)
		assert.False(t, resp.IsApproved)
		assert.False(t, resp.HasPaid)
		assert.False(t, resp.CanBook)

		// Email нормализуется к нижнему регистру
		stored := repo.accounts[resp.ID]
		assert.Equal(t, "john@example.com", stored.Email)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc, _ := newService(&domain.Account{ID: "a1", Email: "john@example.com", Role: domain.RoleUser})

		_, err := svc.Register(context.Background(), &models.RegisterAccountRequest{
			Name:  "John Doe",
			Email: "john@example.com",
		})
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("admin role is not self-assignable", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.Register(context.Background(), &models.RegisterAccountRequest{
			Name:  "Mallory",
			Email: "mallory@example.com",
			Role:  "admin",
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("invalid input", func(t *testing.T) {
		svc, _ := newService()

		_, err := svc.Register(context.Background(), &models.RegisterAccountRequest{Name: "J", Email: "j@example.com"})
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.Register(context.Background(), &models.RegisterAccountRequest{Name: "John", Email: "nope"})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})
}

func TestSetApproval(t *testing.T) {
	t.Run("admin approves account", func(t *testing.T) {
		svc, repo := newService(admin(), &domain.Account{ID: "acc-user", Email: "u@example.com", Role: domain.RoleUser})

		resp, err := svc.SetApproval(context.Background(), "acc-user", &models.SetApprovalRequest{
			AdminID:    "acc-admin",
			IsApproved: true,
		})
		require.NoError(t, err)
		assert.True(t, resp.IsApproved)
		assert.True(t, repo.accounts["acc-user"].IsApproved)
	})

	t.Run("approval can be revoked", func(t *testing.T) {
		svc, _ := newService(admin(), &domain.Account{ID: "acc-user", Email: "u@example.com", Role: domain.RoleUser, IsApproved: true})

		resp, err := svc.SetApproval(context.Background(), "acc-user", &models.SetApprovalRequest{
			AdminID:    "acc-admin",
			IsApproved: false,
		})
		require.NoError(t, err)
		assert.False(t, resp.IsApproved)
	})

	t.Run("non-admin is denied", func(t *testing.T) {
		svc, _ := newService(
			&domain.Account{ID: "acc-user", Email: "u@example.com", Role: domain.RoleUser},
			&domain.Account{ID: "acc-other", Email: "o@example.com", Role: domain.RoleUser},
		)

		_, err := svc.SetApproval(context.Background(), "acc-other", &models.SetApprovalRequest{
			AdminID:    "acc-user",
			IsApproved: true,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("unknown target", func(t *testing.T) {
		svc, _ := newService(admin())

		_, err := svc.SetApproval(context.Background(), "missing", &models.SetApprovalRequest{
			AdminID:    "acc-admin",
			IsApproved: true,
		})
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestMarkPaid(t *testing.T) {
	t.Run("marks once and stays idempotent", func(t *testing.T) {
		svc, repo := newService(&domain.Account{ID: "acc-user", Email: "u@example.com", Role: domain.RoleUser, IsApproved: true})

		require.NoError(t, svc.MarkPaid(context.Background(), "acc-user"))
		require.NoError(t, svc.MarkPaid(context.Background(), "acc-user"))

		assert.True(t, repo.accounts["acc-user"].HasPaid)
		// Повтор колбэка не дает второго побочного эффекта
		assert.Len(t, repo.paid, 1)
	})

	t.Run("unknown account", func(t *testing.T) {
		svc, _ := newService()
		err := svc.MarkPaid(context.Background(), "missing")
		assert.ErrorIs(t, err, ErrAccountNotFound)
	})
}

func TestList(t *testing.T) {
	t.Run("admin only", func(t *testing.T) {
		svc, _ := newService(&domain.Account{ID: "acc-user", Email: "u@example.com", Role: domain.RoleUser})

		_, err := svc.List(context.Background(), "acc-user")
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("returns all accounts", func(t *testing.T) {
		svc, _ := newService(admin(), &domain.Account{ID: "acc-user", Email: "u@example.com", Role: domain.RoleUser})

		resp, err := svc.List(context.Background(), "acc-admin")
		require.NoError(t, err)
		assert.Len(t, resp.Accounts, 2)
	})
}
