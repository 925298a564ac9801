package typst

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const special = `\#$@[]"`

// unescape reads s the way Typst reads escaped markup text and reports any
// control character that appears without a preceding backslash.
func unescape(t *testing.T, s string) string {
	t.Helper()
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\\' {
			require.Less(t, i+1, len(s), "dangling backslash in %q", s)
			i++
			b.WriteByte(s[i])
			continue
		}
		require.NotContains(t, special, string(c), "unescaped %q at offset %d in %q", c, i, s)
		b.WriteByte(c)
	}
	return b.String()
}

func TestEscape(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"plain text", "plain text"},
		{"#hash", `\#hash`},
		{"$5", `\$5`},
		{"jane@example.com", `jane\@example.com`},
		{"[link]", `\[link\]`},
		{`say "hi"`, `say \"hi\"`},
		{`C:\path`, `C:\\path`},
		{`\#`, `\\\#`},
		{`\\`, `\\\\`},
		{"ünïcödé ✓", "ünïcödé ✓"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got := Escape(tc.in)
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.in, unescape(t, got))
		})
	}
}

func TestEscape_RoundTripRandom(t *testing.T) {
	alphabet := []rune(special + "ab *_é\n")
	rng := rand.New(rand.NewPCG(1, 2))
	for range 500 {
		n := rng.IntN(24)
		rs := make([]rune, n)
		for i := range rs {
			rs[i] = alphabet[rng.IntN(len(alphabet))]
		}
		s := string(rs)
		assert.Equal(t, s, unescape(t, Escape(s)))
	}
}

func FuzzEscape(f *testing.F) {
	for _, seed := range []string{"", `\`, `#$@[]"`, `a\"b`, "x@y.z"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, s string) {
		if got := unescape(t, Escape(s)); got != s {
			t.Fatalf("round trip: got %q, want %q", got, s)
		}
	})
}
