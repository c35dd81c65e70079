package domain

import "testing"

func TestNewSearchQuery_Trims(t *testing.T) {
	cases := []struct {
		in    string
		want  string
		empty bool
	}{
		{in: "Parasite", want: "Parasite"},
		{in: "  Parasite \t\n", want: "Parasite"},
		{in: "   ", want: "", empty: true},
		{in: "", want: "", empty: true},
		{in: " Fast & Furious ", want: "Fast & Furious"},
	}
	for _, tc := range cases {
		q := NewSearchQuery(tc.in)
		if q.Title != tc.want {
			t.Fatalf("in=%q 期望 title=%q，实际=%q", tc.in, tc.want, q.Title)
		}
		if q.Empty() != tc.empty {
			t.Fatalf("in=%q 期望 empty=%v，实际=%v", tc.in, tc.empty, q.Empty())
		}
	}
}

func TestMovieRecord_PrimaryCountryCode_TakesFirst(t *testing.T) {
	m := MovieRecord{ProductionCountryCodes: []string{"KR", "US"}}
	code, ok := m.PrimaryCountryCode()
	if !ok || code != "KR" {
		t.Fatalf("期望 KR，实际 code=%q ok=%v", code, ok)
	}

	if _, ok := (MovieRecord{}).PrimaryCountryCode(); ok {
		t.Fatalf("空列表不应返回国家代码")
	}
}
