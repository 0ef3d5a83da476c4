package helpers

import "testing"

func TestEscapeRedisGlob(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"member:":      "member:",
		"a*b":          `a\*b`,
		"q?[x]":        `q\?\[x\]`,
		`back\slash`:   `back\\slash`,
		"member_plain": "member_plain",
	}
	for in, want := range cases {
		if got := EscapeRedisGlob(in); got != want {
			t.Fatalf("EscapeRedisGlob(%q)=%q, want %q", in, got, want)
		}
	}
}
