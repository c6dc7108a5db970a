package ny

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/build"
	"github.com/gaurav-prasanna/legispipe/core/extract"
	"github.com/gaurav-prasanna/legispipe/core/fetch"
)

const senatorsPage = `<html><body>
<div class="senator">
	<div class="photo"><span><a href="/senator/diane-savino"><img src="/files/savino.jpg"></a></span></div>
	<div class="name"><span class="wrap"><a href="/senator/diane-savino">Diane J.&nbsp;Savino</a>
		<span class="contact"><a href="/senator/diane-savino/contact">Contact</a></span></span></div>
	<div class="district"><span>District 23</span></div>
</div>
<div class="senator">
	<div class="photo"><span><a href="/senator/john-flanagan"><img src="/files/flanagan.jpg"></a></span></div>
	<div class="name"><span class="wrap"><a href="/senator/john-flanagan">John J. Flanagan</a>
		<span class="contact"><a href="/senator/john-flanagan/contact">Contact</a></span></span></div>
	<div class="district"><span>District 2</span></div>
</div>
<div class="senator">
	<div class="photo"></div>
	<div class="name"><span class="wrap"><a href="/senator/vacant">Vacant Seat</a></span></div>
	<div class="district"><span>Unknown</span></div>
</div>
</body></html>`

const savinoContact = `<html><body>
	<span class="spamspan">dsavino [at] senate [dot] state [dot] ny [dot] us</span>
	<div class="district">23rd Senate District (D, IP, WF)</div>
	<div class="office">
		<span>Albany Office</span>
		<div>Room 315<br>Capitol Building</div>
		<div class="tel"><span class="value">(518) 455-2437</span></div>
	</div>
	<div class="office">
		<span>District Office</span>
		<div>36 Richmond Terrace</div>
		<span class="locality">Staten Island</span>
		<span class="region">NY</span>
		<span class="postal-code">10301</span>
		<div class="tel"><span class="value">(718) 727-9406</span></div>
	</div>
</body></html>`

const assemblyPage = `<html><body>
<a href="/mem/">Assembly Members</a>
<div class="memrow"><div class="name"><a href="/mem/Andrew-Garbarino">Andrew Garbarino</a></div>
	<div class="email2">7th</div><div class="email"><a href="mailto:garbarinoa@nyassembly.gov">garbarinoa@nyassembly.gov</a></div></div>
<div class="memrow"><div class="name"><a href="/mem/vacant">7 Assembly District</a></div>
	<div class="email2">8th</div><div class="email"><a href="mailto:vacant@nyassembly.gov">vacant@nyassembly.gov</a></div></div>
<div class="memrow"><div class="name"><a href="/mem/Fred-Thiele">Fred W. Thiele, Jr.</a></div>
	<div class="email2">1st</div></div>
<div class="memrow"><div class="name"><a href="/mem/Michael-Benedetto">Michael Benedetto</a></div>
	<div class="email2">82nd</div><div class="email"><a href="mailto:BenedettoM@nyassembly.gov">BenedettoM@nyassembly.gov</a></div></div>
</body></html>`

const garbarinoPage = `<html><body><div id="addrinfo">
	<div class="addrcol1">
		<div class="officehdg">District Office</div>
		<div class="officeaddr">4 Udall Road<br>West Islip, NY 11795<br>631-957-2087</div>
	</div>
	<div class="addrcol2">
		<div class="officehdg">Albany Office</div>
		<div class="officeaddr">LOB 722<br>Albany, NY 12248<br>518-455-4611</div>
	</div>
</div></body></html>`

func newEnv(docs map[string]string) *extract.Env {
	return extract.NewEnv(fetch.NewStatic(docs), zerolog.Nop())
}

func buildAll(t *testing.T, raws []core.RawLegislator) []*core.Legislator {
	t.Helper()
	out := make([]*core.Legislator, 0, len(raws))
	for _, raw := range raws {
		l, _, err := build.Legislator(raw)
		require.NoError(t, err)
		out = append(out, l)
	}
	return out
}

func TestSenators(t *testing.T) {
	ctx := context.Background()
	env := newEnv(map[string]string{
		senateURL: senatorsPage,
		"http://www.nysenate.gov/senator/diane-savino/contact": savinoContact,
	})

	raws, err := New().Legislators(ctx, env, "2011-2012", core.Upper)
	require.NoError(t, err)
	legs := buildAll(t, raws)
	require.Len(t, legs, 2)

	t.Run("Should read the contact page", func(t *testing.T) {
		savino := legs[0]
		assert.Equal(t, "Diane J. Savino", savino.Name)
		assert.Equal(t, "23", savino.District)
		assert.Equal(t, "Democratic", savino.Party)
		assert.Equal(t, []string{"Independence", "Working Families"}, savino.OtherParties)
		assert.Equal(t, "dsavino@senate.state.ny.us", savino.Email)
		assert.Equal(t, "http://www.nysenate.gov/senator/diane-savino", savino.URL)
		assert.Equal(t, "http://www.nysenate.gov/files/savino.jpg", savino.PhotoURL)
		assert.Equal(t, []string{senateURL, "http://www.nysenate.gov/senator/diane-savino/contact"}, savino.Sources)

		require.Len(t, savino.Offices, 2)
		assert.Equal(t, "Capitol Office", savino.Offices[0].Name)
		assert.Equal(t, "Room 315\nCapitol Building\nAlbany, NY 12247", savino.Offices[0].Address)
		assert.Equal(t, "(518) 455-2437", savino.Offices[0].Phone)
		assert.Equal(t, core.DistrictOffice, savino.Offices[1].Type)
		assert.Equal(t, "36 Richmond Terrace\nStaten Island, NY 10301", savino.Offices[1].Address)
		assert.Equal(t, "(718) 727-9406", savino.Offices[1].Phone)
	})

	t.Run("Should keep a senator whose contact page fails", func(t *testing.T) {
		flanagan := legs[1]
		assert.Equal(t, "2", flanagan.District)
		assert.Equal(t, core.UnknownParty, flanagan.Party)
		assert.Empty(t, flanagan.Offices)
		assert.Empty(t, flanagan.Email)
		assert.Equal(t, []string{senateURL}, flanagan.Sources)
	})

	t.Run("Should warn about every skipped part", func(t *testing.T) {
		warnings := env.Warnings()
		require.Len(t, warnings, 2)
		var statusErr *fetch.StatusError
		assert.True(t, errors.As(warnings[0], &statusErr))
		var missing *core.MissingSectionError
		require.True(t, errors.As(warnings[1], &missing))
		assert.Equal(t, "district", missing.Section)
	})
}

func TestAssemblyMembers(t *testing.T) {
	ctx := context.Background()
	env := newEnv(map[string]string{
		assemblyURL: assemblyPage,
		"http://assembly.state.ny.us/mem/Andrew-Garbarino":  garbarinoPage,
		"http://assembly.state.ny.us/mem/Fred-Thiele":       `<html><body><p>No contact info</p></body></html>`,
		"http://assembly.state.ny.us/mem/Michael-Benedetto": `<html><body></body></html>`,
	})

	raws, err := New().Legislators(ctx, env, "2011-2012", core.Lower)
	require.NoError(t, err)
	legs := buildAll(t, raws)
	require.Len(t, legs, 3)

	t.Run("Should pair members with the following mailto link", func(t *testing.T) {
		assert.Equal(t, "Andrew Garbarino", legs[0].Name)
		assert.Equal(t, "7", legs[0].District)
		assert.Equal(t, "garbarinoa@nyassembly.gov", legs[0].Email)

		assert.Equal(t, "Fred W. Thiele, Jr.", legs[1].Name)
		assert.Equal(t, "1", legs[1].District)
		assert.Empty(t, legs[1].Email)

		assert.Equal(t, "82", legs[2].District)
		assert.Equal(t, "BenedettoM@nyassembly.gov", legs[2].Email)
	})

	t.Run("Should split the phone off the address", func(t *testing.T) {
		offices := legs[0].Offices
		require.Len(t, offices, 2)
		assert.Equal(t, core.Office{
			Name:    "District Office",
			Type:    core.DistrictOffice,
			Phone:   "631-957-2087",
			Address: "4 Udall Road\nWest Islip, NY 11795",
		}, offices[0])
		assert.Equal(t, core.CapitolOffice, offices[1].Type)
		assert.Equal(t, "518-455-4611", offices[1].Phone)
	})

	t.Run("Should build members without an office section", func(t *testing.T) {
		assert.Empty(t, legs[1].Offices)
		assert.Equal(t, core.UnknownParty, legs[1].Party)
		assert.Empty(t, env.Warnings())
	})
}

func TestUnsupportedChamber(t *testing.T) {
	_, err := New().Legislators(context.Background(), newEnv(nil), "2011-2012", core.Joint)
	assert.ErrorIs(t, err, core.ErrUnsupported)
}
