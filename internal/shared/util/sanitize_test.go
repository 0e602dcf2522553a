package util

import (
	"errors"
	"testing"
)

func TestSanitizeStorageKey(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{name: "plain", in: "entries/ab12.json", want: "entries/ab12.json"},
		{name: "backslashes", in: `entries\ab12.json`, want: "entries/ab12.json"},
		{name: "double slash", in: "entries//ab12.json", want: "entries/ab12.json"},
		{name: "traversal", in: "../etc/passwd", wantErr: true},
		{name: "absolute", in: "/etc/passwd", wantErr: true},
		{name: "empty", in: "  ", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeStorageKey(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidStorageKey) {
					t.Fatalf("expected ErrInvalidStorageKey, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}
