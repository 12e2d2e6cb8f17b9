package ccl

import "testing"

func TestMatchAction(t *testing.T) {
	cases := []struct {
		pattern, action string
		want            bool
	}{
		{"**", "anything.goes", true},
		{"read", "read", true},
		{"read", "write", false},
		{"data.*", "data.read", true},
		{"data.*", "data", true},
		{"data.*", "other", false},
		{"data.*.read", "data.x.read", true},
		{"data.*.read", "data.x.y.read", false},
	}
	for _, c := range cases {
		if got := MatchAction(c.pattern, c.action); got != c.want {
			t.Errorf("MatchAction(%q, %q) = %v, want %v", c.pattern, c.action, got, c.want)
		}
	}
}

func TestMatchResource(t *testing.T) {
	cases := []struct {
		pattern, resource string
		want              bool
	}{
		{"**", "/any/path", true},
		{"/data/**", "/data/x", true},
		{"/data/**", "/data", true},
		{"/data/**", "/other/x", false},
		{"/data/*/read", "/data/x/read", true},
		{"/data/*/read", "/data/x/y/read", false},
		{"/system/**", "/system/y", true},
	}
	for _, c := range cases {
		if got := MatchResource(c.pattern, c.resource); got != c.want {
			t.Errorf("MatchResource(%q, %q) = %v, want %v", c.pattern, c.resource, got, c.want)
		}
	}
}
