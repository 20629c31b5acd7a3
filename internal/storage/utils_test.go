package storage

import "testing"

func TestContentType(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"SDO_AIA_171_20260828_120000.jpg", "image/jpeg"},
		{"image.jpeg", "image/jpeg"},
		{"SDO_AIA_171_20260828_120000.png", "image/png"},
		{"SDO_AIA_171_20260828_120000.json", "application/json"},
		{"animation.gif", "image/gif"},
		{"notes.txt", "text/plain"},
		{"unknown.dat", "application/octet-stream"},
	}

	for _, tt := range tests {
		if got := ContentType(tt.filename); got != tt.want {
			t.Errorf("ContentType(%q) = %q, want %q", tt.filename, got, tt.want)
		}
	}
}
