package folio

import (
	"context"
	"encoding/base64"
	"path"
	"strings"
)

// Portfolios implements save/read/export over a PortfolioRepository.
type Portfolios struct {
	Repo     PortfolioRepository
	Renderer HTMLRenderer
	Engine   PDFEngine
	Photos   PhotoStore
	Logger   Logger
}

// NewPortfolios creates a portfolio service.
func NewPortfolios(repo PortfolioRepository) *Portfolios {
	return &Portfolios{Repo: repo, Logger: NopLogger{}}
}

// Save upserts the record for its owning account. An empty PhotoPath keeps
// the previously stored photo, if any.
func (p *Portfolios) Save(ctx context.Context, record *Portfolio) error {
	if p == nil || p.Repo == nil {
		return NewError(KindInternal, "portfolio repository not configured", nil)
	}
	if err := record.Validate(); err != nil {
		return err
	}

	record.Normalize()

	if record.PhotoPath == "" {
		existing, err := p.Repo.GetByAccount(ctx, record.AccountID)
		if err != nil && KindFromError(err) != KindNotFound {
			return err
		}
		if existing != nil {
			record.PhotoPath = existing.PhotoPath
		}
	}

	if err := p.Repo.Upsert(ctx, record); err != nil {
		return err
	}
	p.logger().Debugf("portfolio saved for account %d", record.AccountID)
	return nil
}

// GetByAccount returns the deserialized record, or KindNotFound.
func (p *Portfolios) GetByAccount(ctx context.Context, accountID int64) (*Portfolio, error) {
	if p == nil || p.Repo == nil {
		return nil, NewError(KindInternal, "portfolio repository not configured", nil)
	}
	record, err := p.Repo.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, NewError(KindNotFound, "portfolio not found", nil)
	}
	record.Normalize()
	return record, nil
}

// ExportPDF renders the account's portfolio to HTML and rasterizes it.
func (p *Portfolios) ExportPDF(ctx context.Context, accountID int64) ([]byte, error) {
	if p == nil || p.Renderer == nil || p.Engine == nil {
		return nil, NewError(KindInternal, "pdf pipeline not configured", nil)
	}

	record, err := p.GetByAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}
	p.inlinePhoto(ctx, record)

	html, err := p.Renderer.Render(record)
	if err != nil {
		return nil, NewError(KindPDF, "portfolio rendering failed", err)
	}

	pdf, err := p.Engine.Render(ctx, html)
	if err != nil {
		if KindFromError(err) == KindPDF {
			return nil, err
		}
		return nil, NewError(KindPDF, "pdf generation failed", err)
	}
	p.logger().Infof("pdf generated for account %d (%d bytes)", accountID, len(pdf))
	return pdf, nil
}

// inlinePhoto swaps the stored photo path for a data URI. The PDF
// document is loaded without a base URL, so the photo has to travel
// inside the HTML itself.
func (p *Portfolios) inlinePhoto(ctx context.Context, record *Portfolio) {
	if record.PhotoPath == "" || strings.HasPrefix(record.PhotoPath, "data:") {
		return
	}
	if p.Photos == nil {
		record.PhotoPath = ""
		return
	}

	key := path.Base(record.PhotoPath)
	data, err := p.Photos.Get(ctx, key)
	if err != nil {
		p.logger().Errorf("photo inline failed for account %d: %v", record.AccountID, err)
		record.PhotoPath = ""
		return
	}
	record.PhotoPath = photoDataURI(key, data)
}

func photoDataURI(key string, data []byte) string {
	mime := "image/jpeg"
	if strings.HasSuffix(strings.ToLower(key), ".png") {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func (p *Portfolios) logger() Logger {
	if p == nil || p.Logger == nil {
		return NopLogger{}
	}
	return p.Logger
}
