package upload

import "testing"

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		pdf     int64
		json    int64
		wantErr bool
	}{
		{"valid", "3f2b8a6e-1c4d-4e6f-9a0b-7c8d9e0f1a2b", 10, 20, false},
		{"empty id", "", 10, 20, true},
		{"bad id", "../etc", 10, 20, true},
		{"empty pdf", "abc", 0, 20, true},
		{"empty json", "abc", 10, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.id, "a.pdf", "a.json", "red fox", tt.pdf, tt.json, 1)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestNew_SanitizesNamesAndBuildsURL(t *testing.T) {
	u, err := New("abc-123", `C:\Users\me\scan.pdf`, "../../secret.json", "fox", 1, 1, 42)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if u.PDFName() != "scan.pdf" {
		t.Errorf("pdf name = %q", u.PDFName())
	}
	if u.JSONName() != "secret.json" {
		t.Errorf("json name = %q", u.JSONName())
	}
	if u.PDFURL() != "/uploads/abc-123/pdf" {
		t.Errorf("url = %q", u.PDFURL())
	}
	if u.CreatedAt() != 42 || u.SearchText() != "fox" {
		t.Errorf("upload = %+v", u)
	}
}

func TestSanitizeFileName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"report.pdf", "report.pdf"},
		{"/tmp/x/report.pdf", "report.pdf"},
		{`a\b\c.pdf`, "c.pdf"},
		{"", "fallback"},
		{"..", "fallback"},
		{"/", "fallback"},
		{"bad\x00name\n.pdf", "badname.pdf"},
		{"  spaced.pdf  ", "spaced.pdf"},
	}
	for _, tt := range tests {
		if got := SanitizeFileName(tt.in, "fallback"); got != tt.want {
			t.Errorf("SanitizeFileName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
