package metadata

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/legispipe/core"
)

func TestDefault(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)
	assert.Equal(t, []string{"de", "id", "nd", "ne", "ny"}, table.IDs())

	ne, err := table.Jurisdiction("NE")
	require.NoError(t, err)
	assert.Equal(t, "ne", ne.ID)
	assert.Equal(t, []core.Chamber{core.Upper}, ne.Chambers)

	sessions := ne.Sessions("2011-2012")
	require.Len(t, sessions, 2)
	assert.Equal(t, "102", sessions[0].ID)
	require.NotNil(t, sessions[0].StartDate)
	assert.Equal(t, time.Date(2011, 1, 5, 0, 0, 0, 0, time.UTC), *sessions[0].StartDate)
	assert.Nil(t, table.Jurisdictions["de"].SessionDetails["146"].StartDate)
}

func TestValidateTerm(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	t.Run("Should accept a known term", func(t *testing.T) {
		assert.NoError(t, table.ValidateTerm("de", "2011-2012", false))
		assert.NoError(t, table.ValidateTerm("de", "2013-2014", true))
	})
	t.Run("Should reject an older term when only the latest is allowed", func(t *testing.T) {
		err := table.ValidateTerm("de", "2011-2012", true)
		var cfgErr *core.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Contains(t, cfgErr.Msg, "2013-2014")
	})
	t.Run("Should reject unknown terms and jurisdictions", func(t *testing.T) {
		var cfgErr *core.ConfigError
		assert.True(t, errors.As(table.ValidateTerm("nd", "61", false), &cfgErr))
		assert.True(t, errors.As(table.ValidateTerm("zz", "61", false), &cfgErr))
		assert.Equal(t, "zz", cfgErr.Jurisdiction)
	})
}

func TestUnknownSessions(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)
	nd := table.Jurisdictions["nd"]

	unknown := nd.UnknownSessions([]string{
		"63rd Legislative Assembly (2013-14)",
		"64th Legislative Assembly (2015-16)",
		"49th Legislative Assembly (1985-86)",
		" ",
	})
	assert.Equal(t, []string{"64th Legislative Assembly (2015-16)"}, unknown)
}

func TestLoad(t *testing.T) {
	t.Run("Should reject a term naming an undefined session", func(t *testing.T) {
		_, err := Load([]byte(`
jurisdictions:
  xx:
    name: Nowhere
    chambers: [upper]
    terms:
      - {name: "1", sessions: ["1", "2"], start_year: 2001, end_year: 2002}
    session_details:
      "1": {display_name: First}
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), `session "2" has no details`)
	})
	t.Run("Should reject invalid chambers and year ranges", func(t *testing.T) {
		_, err := Load([]byte(`
jurisdictions:
  xx:
    name: Nowhere
    chambers: [senate]
    terms:
      - {name: "1", sessions: ["1"], start_year: 2002, end_year: 2001}
`))
		assert.Error(t, err)
	})
	t.Run("Should reject malformed YAML", func(t *testing.T) {
		_, err := Load([]byte("jurisdictions: [unclosed"))
		assert.Error(t, err)
	})
	t.Run("Should load a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "meta.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
jurisdictions:
  xx:
    name: Nowhere
    chambers: [upper, lower]
    terms:
      - {name: "1", sessions: ["1"], start_year: 2001, end_year: 2002}
    session_details:
      "1": {display_name: First, scraped_name: "Session 1"}
`), 0o644))
		table, err := LoadFile(path)
		require.NoError(t, err)
		assert.NoError(t, table.ValidateTerm("xx", "1", true))
		assert.Empty(t, table.Jurisdictions["xx"].UnknownSessions([]string{"Session 1"}))
	})
}
