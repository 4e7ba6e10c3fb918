package extractor

import (
	"context"
	"testing"
)

func TestTextQuality(t *testing.T) {
	clean := []string{"Account #: XXXX-4492 Balance: $1,294.00"}
	if q := textQuality(clean); q < 0.95 {
		t.Errorf("clean text quality: got %f, want >= 0.95", q)
	}

	garbage := []string{"þã¶þã¶þã¶þã¶"}
	if q := textQuality(garbage); q > 0.4 {
		t.Errorf("garbage text quality: got %f, want <= 0.4", q)
	}

	if q := textQuality(nil); q != 0 {
		t.Errorf("empty input quality: got %f, want 0", q)
	}
}

func TestIsReadableText(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  bool
	}{
		{
			name: "credit report text",
			pages: []string{
				"Consumer Credit Report\nCHASE BANK\nAccount #: XXXX-4492\nBalance: $1,294.00\nDate Opened: 1/15/2022",
			},
			want: true,
		},
		{
			name:  "too short",
			pages: []string{"Credit Report"},
			want:  false,
		},
		{
			name: "readable but no signal words",
			pages: []string{
				"The quick brown fox jumps over the lazy dog again and again and again and again",
			},
			want: false,
		},
		{
			name:  "empty",
			pages: nil,
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isReadableText(tt.pages); got != tt.want {
				t.Errorf("isReadableText: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractText_MissingFile(t *testing.T) {
	_, err := ExtractText(context.Background(), "does-not-exist.pdf")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestExtractText_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := ExtractText(ctx, "does-not-exist.pdf"); err == nil {
		t.Fatal("expected error with cancelled context")
	}
}
