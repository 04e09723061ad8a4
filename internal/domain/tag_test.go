package domain

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Hiking", "hiking"},
		{"  Board  Games ", "board-games"},
		{"D&D", "d-d"},
		{"C++", "c"},
		{"ロック", ""},
		{"", ""},
		{"--already--sluggy--", "already-sluggy"},
		{"Indie Rock 90s", "indie-rock-90s"},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
