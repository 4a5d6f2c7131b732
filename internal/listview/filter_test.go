package listview

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct{ name, brand string }

func (r row) SearchFields() []string { return []string{r.name, r.brand} }

var rows = []row{
	{"Claw Hammer", "Stanley"},
	{"Cordless Drill", "DeWalt"},
	{"Tape Measure", "stanley"},
	{"Wood Screws", ""},
}

func TestFilterCaseInsensitiveSubstring(t *testing.T) {
	got := Filter(rows, "STAN")
	assert.Equal(t, []row{rows[0], rows[2]}, got)

	got = Filter(rows, "drill")
	assert.Equal(t, []row{rows[1]}, got)
}

func TestFilterBlankQueryReturnsEverything(t *testing.T) {
	for _, q := range []string{"", "   ", "\t"} {
		got := Filter(rows, q)
		assert.Equal(t, rows, got)
	}
}

func TestFilterResultIsSubsetAndSourceUntouched(t *testing.T) {
	src := append([]row(nil), rows...)
	for _, q := range []string{"a", "e", "zz", "w", "Hammer"} {
		got := Filter(src, q)
		require.LessOrEqual(t, len(got), len(src))
		for _, r := range got {
			assert.Contains(t, src, r)
			hit := false
			for _, f := range r.SearchFields() {
				if strings.Contains(strings.ToLower(f), strings.ToLower(q)) {
					hit = true
				}
			}
			assert.True(t, hit, "%v should match %q", r, q)
		}
	}
	assert.Equal(t, rows, src)

	got := Filter(src, "")
	got[0] = row{"changed", ""}
	assert.Equal(t, rows[0], src[0])
}

func TestFilterNoMatch(t *testing.T) {
	assert.Empty(t, Filter(rows, "chainsaw"))
}

func TestFilterUnicodeFolding(t *testing.T) {
	items := []row{{"STRASSE Bolts", ""}, {"Éclair Nails", ""}}
	assert.Len(t, Filter(items, "straße"), 1)
	assert.Len(t, Filter(items, "éclair"), 1)
}

func TestViewStates(t *testing.T) {
	fail := true
	v := NewView(func(context.Context) ([]row, error) {
		if fail {
			return nil, errors.New("network down")
		}
		return rows, nil
	})
	assert.Equal(t, Loading, v.State())

	assert.Equal(t, Error, v.Load(context.Background()))
	assert.EqualError(t, v.Err(), "network down")
	assert.Nil(t, v.Filtered(""))

	fail = false
	assert.Equal(t, Loaded, v.Retry(context.Background()))
	assert.NoError(t, v.Err())
	assert.Len(t, v.Items(), 4)
	assert.Len(t, v.Filtered("stanley"), 2)
	assert.Equal(t, "loaded", v.State().String())
}
