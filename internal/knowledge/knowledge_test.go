// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package knowledge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/answer-engine/pkg/types"
)

func TestLoad(t *testing.T) {
	base, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, base.categories)
	require.NotEmpty(t, base.keywords)
}

func TestLookupExactMatch(t *testing.T) {
	base, err := Load()
	require.NoError(t, err)

	match := base.Lookup("what is the ndvi formula")
	require.Equal(t, types.MatchExact, match.Kind)
	require.NotNil(t, match.Entry)
	assert.Equal(t, "ndvi", match.Entry.Name)
	assert.Equal(t, "formulas", match.Category)
	assert.Equal(t, 0.95, match.Confidence)
	assert.Contains(t, match.Entry.Formula, "NIR - Red")
}

func TestLookupExactMatchByAlias(t *testing.T) {
	base, err := Load()
	require.NoError(t, err)

	match := base.Lookup("explain the normalized difference water index")
	require.Equal(t, types.MatchExact, match.Kind)
	require.NotNil(t, match.Entry)
	assert.Equal(t, "ndwi", match.Entry.Name)
}

func TestLookupExactBeatsPartial(t *testing.T) {
	base, err := Load()
	require.NoError(t, err)

	// "ndvi satellite bands" also contains the domain keyword
	// "satellite", but the exact entry must win.
	match := base.Lookup("ndvi satellite bands")
	require.Equal(t, types.MatchExact, match.Kind)
	require.NotNil(t, match.Entry)
	assert.Equal(t, "ndvi", match.Entry.Name)
	assert.Equal(t, 0.95, match.Confidence)
}

func TestLookupPartialMatch(t *testing.T) {
	base, err := Load()
	require.NoError(t, err)

	match := base.Lookup("how do satellite orbits decay over time")
	assert.Equal(t, types.MatchPartial, match.Kind)
	assert.Nil(t, match.Entry)
	assert.Equal(t, 0.5, match.Confidence)
}

func TestLookupNoMatch(t *testing.T) {
	base, err := Load()
	require.NoError(t, err)

	match := base.Lookup("best pasta recipes in rome")
	assert.Equal(t, types.MatchNone, match.Kind)
	assert.Nil(t, match.Entry)
	assert.Equal(t, 0.0, match.Confidence)
}

func TestLookupCaseInsensitive(t *testing.T) {
	base, err := Load()
	require.NoError(t, err)

	upper := base.Lookup("WHAT IS NDVI")
	lower := base.Lookup("what is ndvi")
	assert.Equal(t, lower, upper)
}

func TestFormatMatch(t *testing.T) {
	base, err := Load()
	require.NoError(t, err)

	exact := FormatMatch(base.Lookup("ndvi"))
	assert.True(t, strings.HasPrefix(exact, "**Ndvi**"))
	assert.Contains(t, exact, "NDVI = (NIR - Red) / (NIR + Red)")

	partial := FormatMatch(base.Lookup("remote sensing basics"))
	assert.Contains(t, partial, "GIS or remote-sensing")

	none := FormatMatch(types.KnowledgeMatch{Kind: types.MatchNone})
	assert.Empty(t, none)
}
