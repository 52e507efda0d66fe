package confusion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Valid(t *testing.T) {
	src := `{
		"version": 2,
		"onsets": {"zh": ["z", "ch"]},
		"rimes": {"an": ["ang"]},
		"characters": {"未": ["末"]}
	}`
	tables, err := Load(strings.NewReader(src))
	require.NoError(t, err)
	require.Equal(t, 2, tables.Version)
	require.Equal(t, []string{"z", "ch"}, tables.ConfusableOnsets("zh"))
	require.Equal(t, []string{"ang"}, tables.ConfusableRimes("an"))
	require.Equal(t, []string{"末"}, tables.ConfusableCharacters("未"))
}

func TestLoad_RejectsMalformed(t *testing.T) {
	cases := map[string]string{
		"not json":        `{`,
		"missing version": `{"onsets": {}}`,
		"empty list":      `{"version": 1, "rimes": {"an": []}}`,
		"empty substitute": `{"version": 1, "onsets": {"zh": [""]}}`,
		"unknown field":   `{"version": 1, "tones": {}}`,
		"wrong value type": `{"version": 1, "characters": {"未": "末"}}`,
	}
	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(strings.NewReader(src))
			require.Error(t, err)
		})
	}
}

func TestDefault_SelfConsistent(t *testing.T) {
	d := Default()
	require.NotZero(t, d.Version)

	// No unit may list itself as its own confusable.
	for onset, subs := range d.Onsets {
		for _, s := range subs {
			require.NotEqual(t, onset, s, "onset %q lists itself", onset)
		}
	}
	for rime, subs := range d.Rimes {
		for _, s := range subs {
			require.NotEqual(t, rime, s, "rime %q lists itself", rime)
		}
	}
	for ch, subs := range d.Characters {
		for _, s := range subs {
			require.NotEqual(t, ch, s, "character %q lists itself", ch)
		}
	}
}

func TestMerge_AppendsWithoutDuplicates(t *testing.T) {
	base := &Tables{
		Version: 1,
		Onsets:  map[string][]string{"zh": {"z"}},
	}
	base.Merge(&Tables{
		Onsets:     map[string][]string{"zh": {"z", "ch"}, "b": {"p"}},
		Characters: map[string][]string{"未": {"末"}},
	})

	require.Equal(t, []string{"z", "ch"}, base.Onsets["zh"])
	require.Equal(t, []string{"p"}, base.Onsets["b"])
	require.Equal(t, []string{"末"}, base.Characters["未"])
}
