package folio

import (
	"strings"
	"testing"
)

func TestValidatePhotoAccepts(t *testing.T) {
	cases := []struct {
		filename    string
		contentType string
	}{
		{"me.jpg", "image/jpeg"},
		{"me.JPEG", "image/jpeg"},
		{"me.png", "image/png"},
		{"me.PNG", "image/png; charset=binary"},
	}
	for _, tc := range cases {
		if err := ValidatePhoto(tc.filename, tc.contentType, 1024); err != nil {
			t.Fatalf("expected %s (%s) accepted, got %v", tc.filename, tc.contentType, err)
		}
	}
}

func TestValidatePhotoRejectsType(t *testing.T) {
	cases := []struct {
		filename    string
		contentType string
	}{
		{"me.gif", "image/gif"},
		{"me.gif", "image/png"},
		{"me.png", "image/gif"},
		{"me.svg", "image/svg+xml"},
		{"me", "image/png"},
		{"script.png.exe", "image/png"},
	}
	for _, tc := range cases {
		err := ValidatePhoto(tc.filename, tc.contentType, 1024)
		if KindFromError(err) != KindFileType {
			t.Fatalf("expected file type rejection for %s (%s), got %v", tc.filename, tc.contentType, err)
		}
	}
}

func TestValidatePhotoRejectsOversize(t *testing.T) {
	if err := ValidatePhoto("me.png", "image/png", MaxPhotoBytes); err != nil {
		t.Fatalf("exactly 5MB should pass, got %v", err)
	}
	err := ValidatePhoto("me.png", "image/png", MaxPhotoBytes+1)
	if KindFromError(err) != KindFileTooLarge {
		t.Fatalf("expected too-large rejection, got %v", err)
	}
}

func TestPhotoKey(t *testing.T) {
	first := PhotoKey("Portrait.PNG")
	second := PhotoKey("Portrait.PNG")
	if first == second {
		t.Fatalf("keys must be collision resistant: %s", first)
	}
	if !strings.HasSuffix(first, ".png") {
		t.Fatalf("expected lowercased extension preserved, got %s", first)
	}
	if strings.Contains(first, "Portrait") {
		t.Fatalf("original name must not leak into key: %s", first)
	}
}
