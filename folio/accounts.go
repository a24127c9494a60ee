package folio

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Accounts implements the credential flow over an AccountRepository.
type Accounts struct {
	Repo   AccountRepository
	Logger Logger
}

// NewAccounts creates a credential service.
func NewAccounts(repo AccountRepository) *Accounts {
	return &Accounts{Repo: repo, Logger: NopLogger{}}
}

// Register hashes the password and stores a new account, returning its ID.
func (a *Accounts) Register(ctx context.Context, email, password string) (int64, error) {
	if a == nil || a.Repo == nil {
		return 0, NewError(KindInternal, "account repository not configured", nil)
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return 0, NewError(KindValidation, "email and password are required", nil)
	}

	if existing, err := a.Repo.GetByEmail(ctx, email); err == nil && existing != nil {
		return 0, NewError(KindDuplicateEmail, "email already registered", nil)
	} else if err != nil && KindFromError(err) != KindNotFound {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, NewError(KindInternal, "password hashing failed", err)
	}

	account, err := a.Repo.Create(ctx, &Account{Email: email, PasswordHash: string(hash)})
	if err != nil {
		// The unique index is the authority; a concurrent Register for the
		// same email loses here, not at the pre-select.
		if KindFromError(err) == KindDuplicateEmail {
			return 0, NewError(KindDuplicateEmail, "email already registered", nil)
		}
		return 0, err
	}

	a.logger().Infof("account registered: %d", account.ID)
	return account.ID, nil
}

// Verify checks credentials and returns the account ID. Unknown email and
// wrong password are indistinguishable to the caller.
func (a *Accounts) Verify(ctx context.Context, email, password string) (int64, error) {
	if a == nil || a.Repo == nil {
		return 0, NewError(KindInternal, "account repository not configured", nil)
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || password == "" {
		return 0, NewError(KindValidation, "email and password are required", nil)
	}

	account, err := a.Repo.GetByEmail(ctx, email)
	if err != nil || account == nil {
		if err != nil && KindFromError(err) != KindNotFound {
			return 0, err
		}
		return 0, NewError(KindInvalidCredentials, "invalid email or password", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return 0, NewError(KindInvalidCredentials, "invalid email or password", nil)
	}

	return account.ID, nil
}

func (a *Accounts) logger() Logger {
	if a == nil || a.Logger == nil {
		return NopLogger{}
	}
	return a.Logger
}
