package folio

import (
	"context"
	"sync"
	"testing"
)

type fakeAccountRepo struct {
	mu       sync.Mutex
	accounts map[string]*Account
	nextID   int64
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{accounts: make(map[string]*Account)}
}

func (r *fakeAccountRepo) Create(ctx context.Context, account *Account) (*Account, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.accounts[account.Email]; ok {
		return nil, NewError(KindDuplicateEmail, "email already registered", nil)
	}
	r.nextID++
	stored := *account
	stored.ID = r.nextID
	r.accounts[account.Email] = &stored
	return &stored, nil
}

func (r *fakeAccountRepo) GetByEmail(ctx context.Context, email string) (*Account, error) {
	_ = ctx
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.accounts[email]
	if !ok {
		return nil, NewError(KindNotFound, "account not found", nil)
	}
	copied := *account
	return &copied, nil
}

func TestAccountsRegisterThenVerify(t *testing.T) {
	ctx := context.Background()
	accounts := NewAccounts(newFakeAccountRepo())

	id, err := accounts.Register(ctx, "ada@example.com", "engine-no-9")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if id == 0 {
		t.Fatalf("expected account id")
	}

	got, err := accounts.Verify(ctx, "ada@example.com", "engine-no-9")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if got != id {
		t.Fatalf("expected account %d, got %d", id, got)
	}
}

func TestAccountsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	accounts := NewAccounts(newFakeAccountRepo())

	if _, err := accounts.Register(ctx, "ada@example.com", "one"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := accounts.Register(ctx, "ada@example.com", "two")
	if KindFromError(err) != KindDuplicateEmail {
		t.Fatalf("expected duplicate email, got %v", err)
	}
}

func TestAccountsEmailNormalized(t *testing.T) {
	ctx := context.Background()
	accounts := NewAccounts(newFakeAccountRepo())

	if _, err := accounts.Register(ctx, "  Ada@Example.COM ", "pw"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, err := accounts.Verify(ctx, "ada@example.com", "pw"); err != nil {
		t.Fatalf("verify lowercased: %v", err)
	}
	if _, err := accounts.Register(ctx, "ADA@example.com", "pw"); KindFromError(err) != KindDuplicateEmail {
		t.Fatalf("expected duplicate for case variant, got %v", err)
	}
}

func TestAccountsVerifyFailuresIndistinguishable(t *testing.T) {
	ctx := context.Background()
	accounts := NewAccounts(newFakeAccountRepo())

	if _, err := accounts.Register(ctx, "ada@example.com", "correct"); err != nil {
		t.Fatalf("register: %v", err)
	}

	_, wrongPassword := accounts.Verify(ctx, "ada@example.com", "wrong")
	_, unknownEmail := accounts.Verify(ctx, "nobody@example.com", "correct")

	if KindFromError(wrongPassword) != KindInvalidCredentials {
		t.Fatalf("expected invalid credentials for wrong password, got %v", wrongPassword)
	}
	if KindFromError(unknownEmail) != KindInvalidCredentials {
		t.Fatalf("expected invalid credentials for unknown email, got %v", unknownEmail)
	}
	if wrongPassword.Error() != unknownEmail.Error() {
		t.Fatalf("failure messages must not reveal which check failed: %q vs %q",
			wrongPassword.Error(), unknownEmail.Error())
	}
}

func TestAccountsValidation(t *testing.T) {
	ctx := context.Background()
	accounts := NewAccounts(newFakeAccountRepo())

	if _, err := accounts.Register(ctx, "", "pw"); KindFromError(err) != KindValidation {
		t.Fatalf("expected validation error for empty email, got %v", err)
	}
	if _, err := accounts.Register(ctx, "ada@example.com", ""); KindFromError(err) != KindValidation {
		t.Fatalf("expected validation error for empty password, got %v", err)
	}
	if _, err := accounts.Verify(ctx, "", ""); KindFromError(err) != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAccountsHashNeverStoredPlain(t *testing.T) {
	ctx := context.Background()
	repo := newFakeAccountRepo()
	accounts := NewAccounts(repo)

	if _, err := accounts.Register(ctx, "ada@example.com", "plaintext"); err != nil {
		t.Fatalf("register: %v", err)
	}
	stored, err := repo.GetByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.PasswordHash == "plaintext" || stored.PasswordHash == "" {
		t.Fatalf("password must be stored hashed")
	}
}
