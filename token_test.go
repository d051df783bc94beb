package timec

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestTokenize(t *testing.T) {
	for _, test := range []struct {
		format   string
		expected []token
	}{
		{
			format:   "%Y-%m-%d",
			expected: []token{{letter: 'Y'}, literalToken("-"), {letter: 'm'}, literalToken("-"), {letter: 'd'}},
		},
		{
			format:   "plain",
			expected: []token{literalToken("plain")},
		},
		{
			format:   "%-d.%-m.",
			expected: []token{{letter: 'd', noPad: true}, literalToken("."), {letter: 'm', noPad: true}, literalToken(".")},
		},
		{
			format:   "%Od%Ey",
			expected: []token{{letter: 'd', alt: true}, {letter: 'y', alt: true}},
		},
		{
			format:   "100%%",
			expected: []token{literalToken("100"), {letter: '%'}},
		},
		{
			format:   "trailing %",
			expected: []token{literalToken("trailing "), literalToken("%")},
		},
		{
			format:   "%O",
			expected: []token{literalToken("%O")},
		},
		{
			format:   "",
			expected: nil,
		},
	} {
		test := test
		t.Run(test.format, func(t *testing.T) {
			got := tokenize(test.format)
			if diff := cmp.Diff(test.expected, got, cmp.AllowUnexported(token{})); diff != "" {
				t.Fatalf("unexpected tokens (-expected +got):\n%s", diff)
			}
		})
	}
}
