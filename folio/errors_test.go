package folio

import (
	"errors"
	"fmt"
	"testing"

	errorslib "github.com/goliatone/go-errors"
)

func TestAsGoErrorMapping(t *testing.T) {
	cases := []struct {
		err      error
		category errorslib.Category
		code     string
	}{
		{NewError(KindValidation, "bad input", nil), errorslib.CategoryValidation, "validation"},
		{NewError(KindDuplicateEmail, "taken", nil), errorslib.CategoryValidation, "duplicate_email"},
		{NewError(KindFileType, "gif", nil), errorslib.CategoryValidation, "file_type_rejected"},
		{NewError(KindFileTooLarge, "huge", nil), errorslib.CategoryValidation, "file_too_large"},
		{NewError(KindInvalidCredentials, "nope", nil), errorslib.CategoryAuthz, "invalid_credentials"},
		{NewError(KindUnauthorized, "no session", nil), errorslib.CategoryAuthz, "unauthorized"},
		{NewError(KindNotFound, "missing", nil), errorslib.CategoryNotFound, "not_found"},
		{NewError(KindPDF, "render", nil), errorslib.CategoryOperation, "pdf_generation"},
		{NewError(KindInternal, "boom", nil), errorslib.CategoryInternal, "internal"},
		{errors.New("plain"), errorslib.CategoryInternal, "internal"},
	}

	for _, tc := range cases {
		mapped := AsGoError(tc.err)
		if mapped == nil {
			t.Fatalf("expected mapping for %v", tc.err)
		}
		if mapped.Category != tc.category {
			t.Fatalf("expected category %s, got %s", tc.category, mapped.Category)
		}
		if mapped.TextCode != tc.code {
			t.Fatalf("expected text code %s, got %s", tc.code, mapped.TextCode)
		}
	}
}

func TestKindFromError(t *testing.T) {
	if kind := KindFromError(nil); kind != "" {
		t.Fatalf("expected empty kind for nil, got %s", kind)
	}
	if kind := KindFromError(errors.New("plain")); kind != KindInternal {
		t.Fatalf("expected internal kind, got %s", kind)
	}

	wrapped := fmt.Errorf("save failed: %w", NewError(KindDuplicateEmail, "taken", nil))
	if kind := KindFromError(wrapped); kind != KindDuplicateEmail {
		t.Fatalf("expected duplicate kind through wrapping, got %s", kind)
	}
}

func TestErrorMessage(t *testing.T) {
	err := NewError(KindPDF, "render failed", errors.New("tab crashed"))
	if err.Error() != "render failed: tab crashed" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
	if !errors.Is(err, err.Err) {
		t.Fatalf("expected unwrap to reach cause")
	}
}
