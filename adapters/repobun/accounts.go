package repobun

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/goliatone/go-folio/folio"
	"github.com/uptrace/bun"
)

type accountModel struct {
	bun.BaseModel `bun:"table:accounts,alias:accounts"`

	ID           int64     `bun:",pk,autoincrement"`
	Email        string    `bun:",notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull"`
}

// AccountRepository stores accounts in a Bun-backed database.
type AccountRepository struct {
	DB  *bun.DB
	Now func() time.Time
}

// NewAccountRepository creates a Bun-backed account repository.
func NewAccountRepository(db *bun.DB) *AccountRepository {
	return &AccountRepository{DB: db, Now: time.Now}
}

// Create inserts a new account. The unique email index is the final
// arbiter for duplicates.
func (r *AccountRepository) Create(ctx context.Context, account *folio.Account) (*folio.Account, error) {
	if r == nil || r.DB == nil {
		return nil, folio.NewError(folio.KindInternal, "account database not configured", nil)
	}
	if account == nil || account.Email == "" {
		return nil, folio.NewError(folio.KindValidation, "account email is required", nil)
	}

	model := accountModel{
		Email:        account.Email,
		PasswordHash: account.PasswordHash,
		CreatedAt:    r.now(),
	}
	if _, err := r.DB.NewInsert().Model(&model).Exec(ctx); err != nil {
		if isUniqueViolation(err) {
			return nil, folio.NewError(folio.KindDuplicateEmail, "email already registered", err)
		}
		return nil, err
	}

	return &folio.Account{
		ID:           model.ID,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		CreatedAt:    model.CreatedAt,
	}, nil
}

// GetByEmail returns the account for an email, or KindNotFound.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*folio.Account, error) {
	if r == nil || r.DB == nil {
		return nil, folio.NewError(folio.KindInternal, "account database not configured", nil)
	}
	if email == "" {
		return nil, folio.NewError(folio.KindValidation, "email is required", nil)
	}

	model := new(accountModel)
	err := r.DB.NewSelect().Model(model).Where("email = ?", email).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, folio.NewError(folio.KindNotFound, "account not found", err)
		}
		return nil, err
	}

	return &folio.Account{
		ID:           model.ID,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		CreatedAt:    model.CreatedAt,
	}, nil
}

func (r *AccountRepository) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "constraint failed") ||
		strings.Contains(msg, "duplicate key")
}
