package middleware

import "testing"

func TestValidateUploadName(t *testing.T) {
	cases := []struct {
		name    string
		file    string
		wantErr string
	}{
		{"jpeg ok", "photo.jpg", ""},
		{"uppercase extension ok", "CLIP.MP4", ""},
		{"gif ok", "anim.gif", ""},
		{"quicktime ok", "take1.mov", ""},
		{"pdf rejected", "report.pdf", "Unsupported file type"},
		{"no extension", "photo", "Unsupported file type"},
		{"empty name", "", "No file selected"},
		{"whitespace only", "   ", "No file selected"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateUploadName(tc.file)
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("ValidateUploadName(%q) = %v, want nil", tc.file, err)
				}
				return
			}
			if err == nil || err.Error() != tc.wantErr {
				t.Fatalf("ValidateUploadName(%q) = %v, want %q", tc.file, err, tc.wantErr)
			}
		})
	}
}

func TestValidateUploadContent(t *testing.T) {
	png := []byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A, 0, 0, 0, 0}
	gif := []byte("GIF89a\x00\x00\x00\x00")
	pdf := []byte("%PDF-1.7\n%\xe2\xe3")
	junk := []byte{0x00, 0x01, 0x02, 0x03}

	if err := ValidateUploadContent(png); err != nil {
		t.Fatalf("png content rejected: %v", err)
	}
	if err := ValidateUploadContent(gif); err != nil {
		t.Fatalf("gif content rejected: %v", err)
	}
	if err := ValidateUploadContent(pdf); err == nil {
		t.Fatal("pdf content accepted")
	}
	// unrecognized bytes pass, the extension check already gated the name
	if err := ValidateUploadContent(junk); err != nil {
		t.Fatalf("unknown content rejected: %v", err)
	}
}

func TestSanitizeFilename(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"photo.jpg", "photo.jpg"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\x\clip.mp4`, "clip.mp4"},
		{"  spaced.png  ", "spaced.png"},
	}
	for _, tc := range cases {
		if got := SanitizeFilename(tc.in); got != tc.want {
			t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
