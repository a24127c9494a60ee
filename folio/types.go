package folio

import (
	"context"
	"strings"
	"time"
)

// Account is a registered identity. PasswordHash never leaves the
// repository layer.
type Account struct {
	ID           int64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Entry is one item in the academic, work-experience or
// projects/publications sections.
type Entry struct {
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle,omitempty"`
	Duration    string `json:"duration,omitempty"`
	Description string `json:"description,omitempty"`
}

// Portfolio is the resume record owned by one account.
type Portfolio struct {
	AccountID            int64    `json:"-"`
	FullName             string   `json:"fullName"`
	ContactInfo          string   `json:"contactInfo"`
	PhotoPath            string   `json:"photoPath,omitempty"`
	Bio                  string   `json:"bio"`
	SoftSkills           []string `json:"softSkills"`
	TechnicalSkills      []string `json:"technicalSkills"`
	AcademicBackground   []Entry  `json:"academicBackground"`
	WorkExperience       []Entry  `json:"workExperience"`
	ProjectsPublications []Entry  `json:"projectsPublications"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// Validate checks the fields required before a record can be stored.
func (p *Portfolio) Validate() error {
	if p == nil || p.AccountID == 0 {
		return NewError(KindValidation, "portfolio account is required", nil)
	}
	if strings.TrimSpace(p.FullName) == "" {
		return NewError(KindValidation, "full name is required", nil)
	}
	return nil
}

// Normalize replaces nil list fields with empty slices so records
// round-trip to empty lists, never null.
func (p *Portfolio) Normalize() {
	if p.SoftSkills == nil {
		p.SoftSkills = []string{}
	}
	if p.TechnicalSkills == nil {
		p.TechnicalSkills = []string{}
	}
	if p.AcademicBackground == nil {
		p.AcademicBackground = []Entry{}
	}
	if p.WorkExperience == nil {
		p.WorkExperience = []Entry{}
	}
	if p.ProjectsPublications == nil {
		p.ProjectsPublications = []Entry{}
	}
}

// AccountRepository persists accounts.
type AccountRepository interface {
	Create(ctx context.Context, account *Account) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
}

// PortfolioRepository persists portfolio records with upsert-by-account
// semantics.
type PortfolioRepository interface {
	Upsert(ctx context.Context, record *Portfolio) error
	GetByAccount(ctx context.Context, accountID int64) (*Portfolio, error)
}

// HTMLRenderer maps a portfolio record to a self-contained HTML document.
type HTMLRenderer interface {
	Render(record *Portfolio) ([]byte, error)
}

// PDFEngine rasterizes HTML into PDF bytes.
type PDFEngine interface {
	Render(ctx context.Context, html []byte) ([]byte, error)
}

// PhotoStore persists uploaded portfolio photos. Get reads a stored
// photo back by the key Put stored it under.
type PhotoStore interface {
	Put(ctx context.Context, key string, data []byte) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
}

// Logger provides logging hooks.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Errorf(format string, args ...any)
}

// NopLogger discards all log output.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any) {}
func (NopLogger) Infof(string, ...any)  {}
func (NopLogger) Errorf(string, ...any) {}
