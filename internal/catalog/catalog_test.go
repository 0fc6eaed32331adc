package catalog

import "testing"

func TestNewDropsBlanksAndDuplicates(t *testing.T) {
	c := New([]string{"Paris", " ", "paris", "Tokyo "})
	names := c.Names()
	if len(names) != 2 || names[0] != "Paris" || names[1] != "Tokyo" {
		t.Fatalf("unexpected names: %v", names)
	}
}

func TestNewFallsBackToDefaults(t *testing.T) {
	c := New(nil)
	if c.Len() != len(DefaultLocations) {
		t.Fatalf("expected %d defaults, got %d", len(DefaultLocations), c.Len())
	}
	if c.Index("bengaluru") < 0 {
		t.Fatalf("expected default catalog to contain Bengaluru")
	}
}

func TestClosest(t *testing.T) {
	c := New([]string{"Bengaluru", "Chennai", "Mumbai"})
	cases := []struct {
		query string
		want  string
		ok    bool
	}{
		{"Bengaluru", "Bengaluru", true},
		{"chennai", "Chennai", true},
		{"Bengalru", "Bengaluru", true},
		{"Mumbay", "Mumbai", true},
		{"Reykjavik", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := c.Closest(tc.query)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("Closest(%q) = %q, %v; want %q, %v", tc.query, got, ok, tc.want, tc.ok)
		}
	}
}

func TestResolveKeepsUnknownInput(t *testing.T) {
	c := New([]string{"Bengaluru"})
	if got := c.Resolve("  Reykjavik "); got != "Reykjavik" {
		t.Fatalf("expected trimmed input, got %q", got)
	}
	if got := c.Resolve("bengalur"); got != "Bengaluru" {
		t.Fatalf("expected catalog match, got %q", got)
	}
}
