package render

import "testing"

func TestEscape(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{in: `Tom & Jerry <"cat">`, want: "Tom &amp; Jerry &lt;&quot;cat&quot;&gt;"},
		{in: "it's fine", want: "it's fine"},
		{in: "서울", want: "서울"},
		{in: "", want: ""},
		{in: 51780579, want: "51780579"},
		{in: int64(-1), want: "-1"},
		{in: 3.5, want: "3.5"},
		{in: true, want: "true"},
	}
	for _, tc := range cases {
		if got := Escape(tc.in); got != tc.want {
			t.Fatalf("Escape(%#v)=%q，期望 %q", tc.in, got, tc.want)
		}
	}
}

func TestEscape_NotIdempotent(t *testing.T) {
	once := Escape("<")
	twice := Escape(once)
	if once != "&lt;" || twice != "&amp;lt;" {
		t.Fatalf("重复转义应再次转义 &：once=%q twice=%q", once, twice)
	}
}
