package httpapi

import (
	"encoding/json"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-folio/folio"
)

// GetPortfolio handles GET /api/portfolio.
func (h *Handler) GetPortfolio(c *fiber.Ctx) error {
	record, err := h.Portfolios.GetByAccount(c.UserContext(), accountID(c))
	if err != nil {
		if folio.KindFromError(err) == folio.KindNotFound {
			return c.JSON(fiber.Map{"success": true, "portfolio": nil})
		}
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "portfolio": record})
}

// SavePortfolio handles POST /api/portfolio and /api/portfolio/save.
// The body is multipart form data with an optional photo file; list
// fields arrive as JSON-encoded text.
func (h *Handler) SavePortfolio(c *fiber.Ctx) error {
	record := &folio.Portfolio{
		AccountID:   accountID(c),
		FullName:    c.FormValue("fullName"),
		ContactInfo: c.FormValue("contactInfo"),
		Bio:         c.FormValue("bio"),
	}

	if err := parseListField(c.FormValue("softSkills"), &record.SoftSkills); err != nil {
		return writeError(c, err)
	}
	if err := parseListField(c.FormValue("technicalSkills"), &record.TechnicalSkills); err != nil {
		return writeError(c, err)
	}
	if err := parseListField(c.FormValue("academicBackground"), &record.AcademicBackground); err != nil {
		return writeError(c, err)
	}
	if err := parseListField(c.FormValue("workExperience"), &record.WorkExperience); err != nil {
		return writeError(c, err)
	}
	if err := parseListField(c.FormValue("projectsPublications"), &record.ProjectsPublications); err != nil {
		return writeError(c, err)
	}

	// The record must be storable before the photo is written, otherwise
	// a rejected save would leave an orphaned file in the store.
	if err := record.Validate(); err != nil {
		return writeError(c, err)
	}

	// The upload is validated and stored before any row is written; an
	// absent file keeps the previously stored photo.
	if file, err := c.FormFile("photo"); err == nil && file != nil {
		path, err := h.storePhoto(c, file)
		if err != nil {
			return writeError(c, err)
		}
		record.PhotoPath = path
	}

	if err := h.Portfolios.Save(c.UserContext(), record); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "portfolio saved"})
}

// GeneratePDF handles POST /api/portfolio/generate-pdf.
func (h *Handler) GeneratePDF(c *fiber.Ctx) error {
	pdf, err := h.Portfolios.ExportPDF(c.UserContext(), accountID(c))
	if err != nil {
		return writeError(c, err)
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="portfolio.pdf"`)
	return c.Send(pdf)
}

func (h *Handler) storePhoto(c *fiber.Ctx, file *multipart.FileHeader) (string, error) {
	if err := folio.ValidatePhoto(file.Filename, file.Header.Get(fiber.HeaderContentType), file.Size); err != nil {
		return "", err
	}

	src, err := file.Open()
	if err != nil {
		return "", folio.NewError(folio.KindInternal, "photo read failed", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, folio.MaxPhotoBytes+1))
	if err != nil {
		return "", folio.NewError(folio.KindInternal, "photo read failed", err)
	}
	if int64(len(data)) > folio.MaxPhotoBytes {
		return "", folio.NewError(folio.KindFileTooLarge, "photo exceeds 5MB limit", nil)
	}

	return h.Photos.Put(c.UserContext(), folio.PhotoKey(file.Filename), data)
}

func parseListField[T any](raw string, target *[]T) error {
	if raw == "" {
		*target = []T{}
		return nil
	}
	if err := json.Unmarshal([]byte(raw), target); err != nil {
		return folio.NewError(folio.KindValidation, "list field is not valid JSON", err)
	}
	if *target == nil {
		*target = []T{}
	}
	return nil
}
