package helpers

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct{ in, want string }{
		{"Devworks Bootcamp", "devworks-bootcamp"},
		{"ModernTech Bootcamp", "moderntech-bootcamp"},
		{"  Spaces  Around  ", "spaces-around"},
		{"C# & .NET!", "c-net"},
		{"already-slugged", "already-slugged"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
