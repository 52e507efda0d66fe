package matchround

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadPairs_Valid(t *testing.T) {
	src := `[
		{"word": "长大", "first": {"char": "长", "reading": "zh:ang:3"}, "second": {"char": "大"}},
		{"word": "大人", "first": {"char": "大"}, "second": {"char": "人"}}
	]`
	pairs, err := LoadPairs(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, pairs, 2)
	require.Equal(t, "长大", pairs[0].Word)
	require.Equal(t, "zh:ang:3", pairs[0].First.Reading.Key())
	require.Empty(t, pairs[1].First.Reading.Syllables)
}

func TestLoadPairs_RejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":        `[`,
		"not an array":    `{"word": "长大"}`,
		"empty catalog":   `[]`,
		"missing word":    `[{"first": {"char": "长"}, "second": {"char": "大"}}]`,
		"missing char":    `[{"word": "长大", "first": {"reading": "zh:ang:3"}, "second": {"char": "大"}}]`,
		"unknown field":   `[{"word": "长大", "first": {"char": "长"}, "second": {"char": "大"}, "third": {}}]`,
		"bad reading key": `[{"word": "长大", "first": {"char": "长", "reading": "zhang3"}, "second": {"char": "大"}}]`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadPairs(strings.NewReader(src))
			require.Error(t, err)
		})
	}
}
