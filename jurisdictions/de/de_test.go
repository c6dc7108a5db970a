package de

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/extract"
	"github.com/gaurav-prasanna/legispipe/core/fetch"
)

func TestSessions(t *testing.T) {
	env := extract.NewEnv(fetch.NewStatic(map[string]string{
		homeURL: `<select name="gSession">
			<option> Session </option>
			<option>GA 147</option>
			<option> GA 146</option>
		</select>`,
	}), zerolog.Nop())

	sessions, err := New().Sessions(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, []string{"GA 147", "GA 146"}, sessions)
}

func TestText(t *testing.T) {
	page := []byte(`<html><body>
		<p class="MsoNormal">SPONSOR: Sen. Blevins</p>
		<p class="MsoNormal">AN ACT TO AMEND TITLE 11</p>
	</body></html>`)

	t.Run("Should convert HTML bills", func(t *testing.T) {
		out, err := New().Text(core.Document{URL: "http://legis.delaware.gov/sb1.htm", MimeType: "text/html"}, page)
		require.NoError(t, err)
		assert.Equal(t, "SPONSOR: Sen. Blevins\n\nAN ACT TO AMEND TITLE 11", out)
	})
	t.Run("Should not handle other document kinds", func(t *testing.T) {
		_, err := New().Text(core.Document{MimeType: "application/pdf"}, []byte("%PDF-1.4"))
		assert.ErrorIs(t, err, core.ErrUnsupported)
	})
}
