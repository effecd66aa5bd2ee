package handlers

import "testing"

func TestValidImageExt(t *testing.T) {
	tests := []struct {
		filename string
		wantExt  string
		wantOK   bool
	}{
		{"bouquet.jpg", ".jpg", true},
		{"bouquet.JPEG", ".jpeg", true},
		{"bouquet.png", ".png", true},
		{"bouquet.webp", ".webp", true},
		{"bouquet.gif", ".gif", false},
		{"bouquet.jpg.exe", ".exe", false},
		{"noextension", "", false},
	}

	for _, tt := range tests {
		ext, ok := validImageExt(tt.filename)
		if ext != tt.wantExt || ok != tt.wantOK {
			t.Errorf("validImageExt(%q) = (%q, %v), want (%q, %v)",
				tt.filename, ext, ok, tt.wantExt, tt.wantOK)
		}
	}
}
