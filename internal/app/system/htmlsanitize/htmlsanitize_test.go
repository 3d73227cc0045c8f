package htmlsanitize_test

import (
	"testing"

	"github.com/dalemusser/volunteerhub/internal/app/system/htmlsanitize"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "Helped at the food bank",
			want: "Helped at the food bank",
		},
		{
			name: "script removed",
			in:   "hello <script>alert(1)</script>world",
			want: "hello world",
		},
		{
			name: "formatting kept",
			in:   "<strong>3 hours</strong> at the shelter",
			want: "<strong>3 hours</strong> at the shelter",
		},
		{
			name: "javascript href stripped",
			in:   `<a href="javascript:alert(1)">click</a>`,
			want: "click",
		},
		{
			name: "event handler stripped",
			in:   `<em onmouseover="steal()">note</em>`,
			want: "<em>note</em>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := htmlsanitize.Sanitize(tt.in); got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestSanitizeStrict(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Riverside Park", "Riverside Park"},
		{"<b>Riverside</b> Park", "Riverside Park"},
		{"  padded  ", "padded"},
		{"<script>alert(1)</script>", ""},
	}

	for _, tt := range tests {
		if got := htmlsanitize.SanitizeStrict(tt.in); got != tt.want {
			t.Errorf("SanitizeStrict(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
