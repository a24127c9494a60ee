package repobun

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/goliatone/go-folio/folio"
	"github.com/uptrace/bun"
)

type portfolioModel struct {
	bun.BaseModel `bun:"table:portfolios,alias:portfolios"`

	AccountID            int64     `bun:"account_id,pk"`
	FullName             string    `bun:"full_name,notnull"`
	ContactInfo          string    `bun:"contact_info"`
	PhotoPath            string    `bun:"photo_path"`
	Bio                  string    `bun:"bio"`
	SoftSkills           []byte    `bun:"soft_skills"`
	TechnicalSkills      []byte    `bun:"technical_skills"`
	AcademicBackground   []byte    `bun:"academic_background"`
	WorkExperience       []byte    `bun:"work_experience"`
	ProjectsPublications []byte    `bun:"projects_publications"`
	CreatedAt            time.Time `bun:"created_at,notnull"`
	UpdatedAt            time.Time `bun:"updated_at,notnull"`
}

// PortfolioRepository stores portfolio records in a Bun-backed database.
type PortfolioRepository struct {
	DB  *bun.DB
	Now func() time.Time
}

// NewPortfolioRepository creates a Bun-backed portfolio repository.
func NewPortfolioRepository(db *bun.DB) *PortfolioRepository {
	return &PortfolioRepository{DB: db, Now: time.Now}
}

// Upsert inserts the record or, when a row for the account exists, updates
// every field in place as a single statement.
func (r *PortfolioRepository) Upsert(ctx context.Context, record *folio.Portfolio) error {
	if r == nil || r.DB == nil {
		return folio.NewError(folio.KindInternal, "portfolio database not configured", nil)
	}
	if record == nil || record.AccountID == 0 {
		return folio.NewError(folio.KindValidation, "portfolio account is required", nil)
	}

	model, err := modelFromPortfolio(record, r.now())
	if err != nil {
		return err
	}

	_, err = r.DB.NewInsert().Model(&model).
		On("CONFLICT (account_id) DO UPDATE").
		Set("full_name = EXCLUDED.full_name").
		Set("contact_info = EXCLUDED.contact_info").
		Set("photo_path = EXCLUDED.photo_path").
		Set("bio = EXCLUDED.bio").
		Set("soft_skills = EXCLUDED.soft_skills").
		Set("technical_skills = EXCLUDED.technical_skills").
		Set("academic_background = EXCLUDED.academic_background").
		Set("work_experience = EXCLUDED.work_experience").
		Set("projects_publications = EXCLUDED.projects_publications").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}

// GetByAccount returns the record with list fields deserialized, or
// KindNotFound.
func (r *PortfolioRepository) GetByAccount(ctx context.Context, accountID int64) (*folio.Portfolio, error) {
	if r == nil || r.DB == nil {
		return nil, folio.NewError(folio.KindInternal, "portfolio database not configured", nil)
	}
	if accountID == 0 {
		return nil, folio.NewError(folio.KindValidation, "account id is required", nil)
	}

	model := new(portfolioModel)
	err := r.DB.NewSelect().Model(model).Where("account_id = ?", accountID).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, folio.NewError(folio.KindNotFound, "portfolio not found", err)
		}
		return nil, err
	}
	return model.toPortfolio()
}

// CreateTables creates the accounts and portfolios tables when missing.
// Portfolio rows cascade on account deletion.
func CreateTables(ctx context.Context, db *bun.DB) error {
	if _, err := db.NewCreateTable().Model((*accountModel)(nil)).IfNotExists().Exec(ctx); err != nil {
		return err
	}
	_, err := db.NewCreateTable().Model((*portfolioModel)(nil)).
		IfNotExists().
		ForeignKey(`("account_id") REFERENCES "accounts" ("id") ON DELETE CASCADE`).
		Exec(ctx)
	return err
}

func (r *PortfolioRepository) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}

func modelFromPortfolio(record *folio.Portfolio, now time.Time) (portfolioModel, error) {
	record.Normalize()

	softSkills, err := json.Marshal(record.SoftSkills)
	if err != nil {
		return portfolioModel{}, err
	}
	technicalSkills, err := json.Marshal(record.TechnicalSkills)
	if err != nil {
		return portfolioModel{}, err
	}
	academic, err := json.Marshal(record.AcademicBackground)
	if err != nil {
		return portfolioModel{}, err
	}
	work, err := json.Marshal(record.WorkExperience)
	if err != nil {
		return portfolioModel{}, err
	}
	projects, err := json.Marshal(record.ProjectsPublications)
	if err != nil {
		return portfolioModel{}, err
	}

	return portfolioModel{
		AccountID:            record.AccountID,
		FullName:             record.FullName,
		ContactInfo:          record.ContactInfo,
		PhotoPath:            record.PhotoPath,
		Bio:                  record.Bio,
		SoftSkills:           softSkills,
		TechnicalSkills:      technicalSkills,
		AcademicBackground:   academic,
		WorkExperience:       work,
		ProjectsPublications: projects,
		CreatedAt:            now,
		UpdatedAt:            now,
	}, nil
}

func (m *portfolioModel) toPortfolio() (*folio.Portfolio, error) {
	record := &folio.Portfolio{
		AccountID:   m.AccountID,
		FullName:    m.FullName,
		ContactInfo: m.ContactInfo,
		PhotoPath:   m.PhotoPath,
		Bio:         m.Bio,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	if err := unmarshalList(m.SoftSkills, &record.SoftSkills); err != nil {
		return nil, err
	}
	if err := unmarshalList(m.TechnicalSkills, &record.TechnicalSkills); err != nil {
		return nil, err
	}
	if err := unmarshalList(m.AcademicBackground, &record.AcademicBackground); err != nil {
		return nil, err
	}
	if err := unmarshalList(m.WorkExperience, &record.WorkExperience); err != nil {
		return nil, err
	}
	if err := unmarshalList(m.ProjectsPublications, &record.ProjectsPublications); err != nil {
		return nil, err
	}

	record.Normalize()
	return record, nil
}

func unmarshalList[T any](data []byte, target *[]T) error {
	if len(data) == 0 {
		*target = []T{}
		return nil
	}
	return json.Unmarshal(data, target)
}
