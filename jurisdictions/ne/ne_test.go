package ne

import (
	"bytes"
	"context"
	"testing"

	"github.com/jung-kurt/gofpdf"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/extract"
	"github.com/gaurav-prasanna/legispipe/core/fetch"
)

func TestSessions(t *testing.T) {
	env := extract.NewEnv(fetch.NewStatic(map[string]string{
		billsURL: `<form><select name="Legislature">
			<option>102nd Legislature 1st and Second Sessions</option>
			<option>102nd Legislature 1st Special Session</option>
			<option>All Legislatures</option>
		</select></form>`,
	}), zerolog.Nop())

	sessions, err := New().Sessions(context.Background(), env)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"102nd Legislature 1st and Second Sessions",
		"102nd Legislature 1st Special Session",
	}, sessions)
}

func TestText(t *testing.T) {
	doc := gofpdf.New("P", "mm", "A4", "")
	doc.SetCompression(false)
	doc.SetFont("Helvetica", "", 12)
	doc.AddPage()
	for _, line := range []string{"ONE HUNDRED SECOND LEGISLATURE", "LEGISLATIVE RESOLUTION 5", "WHEREAS the", "-1-", "people"} {
		doc.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}
	var buf bytes.Buffer
	require.NoError(t, doc.Output(&buf))

	out, err := New().Text(core.Document{URL: "http://nebraskalegislature.gov/LR5.pdf", MimeType: "application/pdf"}, buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, "LEGISLATIVE RESOLUTION 5 WHEREAS the people", out)
}
