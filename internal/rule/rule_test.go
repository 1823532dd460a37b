package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromLegacy(t *testing.T) {
	rules := FromLegacy("*.log build")
	if assert.Len(t, rules, 1) {
		assert.Equal(t, LegacyName, rules[0].Name)
		assert.Equal(t, "*.log build", rules[0].Patterns)
		assert.True(t, rules[0].Enabled)
	}

	assert.Empty(t, FromLegacy("   "))
}

func TestActiveSkipsDisabledAndDuplicates(t *testing.T) {
	rules := []Rule{
		New("Logs", "*.log", ""),
		{Name: "Off", Patterns: "*", Enabled: false},
		New("Logs", "*.txt", ""),
		New("Docs", "*.md", ""),
	}

	active := Active(rules)
	assert.Equal(t, []string{"Logs", "Docs"}, Names(active))
	assert.Equal(t, "*.log", active[0].Patterns)
}

func TestSortedByNameDoesNotMutate(t *testing.T) {
	rules := []Rule{New("b", "", ""), New("a", "", ""), New("c", "", "")}

	sorted := SortedByName(rules)

	assert.Equal(t, []string{"a", "b", "c"}, Names(sorted))
	assert.Equal(t, []string{"b", "a", "c"}, Names(rules))
}

func TestColorRGB(t *testing.T) {
	r, g, b, ok := Color("#FF8000").RGB()
	assert.True(t, ok)
	assert.Equal(t, []uint8{255, 128, 0}, []uint8{r, g, b})

	r, g, b, ok = Color("#0f0").RGB()
	assert.True(t, ok)
	assert.Equal(t, []uint8{0, 255, 0}, []uint8{r, g, b})

	_, _, _, ok = Color("").RGB()
	assert.False(t, ok)
	_, _, _, ok = Color("red").RGB()
	assert.False(t, ok)
}

func TestColorValidate(t *testing.T) {
	assert.NoError(t, Color("").Validate())
	assert.NoError(t, Muted.Validate())
	assert.Error(t, Color("#12345").Validate())
	assert.Equal(t, "#ABCDEF", Color("abcdef").String())
}
