package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/build"
	"github.com/gaurav-prasanna/legispipe/core/fetch"
	"github.com/gaurav-prasanna/legispipe/core/parse"
)

func mustTree(t *testing.T, html string) *parse.Tree {
	t.Helper()
	tree, err := parse.ParseHTML([]byte(html))
	require.NoError(t, err)
	return tree
}

func TestSelectSchema(t *testing.T) {
	t.Run("Should pick the schema by fragment count", func(t *testing.T) {
		s, err := SelectSchema(0, []string{"a", "b", "c", "d", "e"}, DescribedRow, PlainRow)
		require.NoError(t, err)
		assert.Equal(t, "described", s.Name)

		s, err = SelectSchema(1, []string{"a", "b", "c", "d"}, DescribedRow, PlainRow)
		require.NoError(t, err)
		assert.Equal(t, "plain", s.Name)
	})
	t.Run("Should reject unknown counts", func(t *testing.T) {
		for _, frags := range [][]string{nil, {"a", "b", "c"}, {"a", "b", "c", "d", "e", "f"}} {
			_, err := SelectSchema(7, frags, DescribedRow, PlainRow)
			var rowErr *core.MalformedRowError
			require.True(t, errors.As(err, &rowErr))
			assert.Equal(t, 7, rowErr.Row)
		}
	})
}

func TestCommitteeRows(t *testing.T) {
	const page = `<table>
	<tr>
		<td><a href="/fin">Finance</a><br>Budget and revenue<br>8-5<br>Jo Smith<br>332-1000</td>
		<td><strong>Chairman</strong> Cameron<br><strong>Vice Chairman</strong>&nbsp;Keough<br>Bair<br>Bair</td>
	</tr>
	<tr>
		<td>Education<br>9-4<br>Al Jones<br>332-2000</td>
		<td>Goedde<br><strong>Secretary</strong></td>
	</tr>
	<tr><td>Broken<br>only two</td><td>Nobody</td></tr>
	<tr>
		<td>Health<br>Gov<br>8-5<br>Kim Lee<br>332-3000</td>
	</tr>
</table>`
	const src = "https://legislature.idaho.gov/senate/committees.cfm"

	tree := mustTree(t, page)
	raws, errs := CommitteeRows(tree.Find("tr"), core.Upper, src, DescribedRow, PlainRow)

	t.Run("Should keep good rows around a malformed one", func(t *testing.T) {
		require.Len(t, raws, 3)
		require.Len(t, errs, 1)
		var rowErr *core.MalformedRowError
		require.True(t, errors.As(errs[0], &rowErr))
		assert.Equal(t, 2, rowErr.Row)
	})

	t.Run("Should build both schemas without crossing fields", func(t *testing.T) {
		a, err := build.Committee(raws[0])
		require.NoError(t, err)
		b, err := build.Committee(raws[1])
		require.NoError(t, err)

		assert.Equal(t, "Finance", a.Name)
		assert.Equal(t, "Budget and revenue", a.Description)
		assert.Equal(t, "8-5", a.OfficeHours)
		assert.Equal(t, "Jo Smith", a.Secretary)
		assert.Equal(t, "332-1000", a.OfficePhone)

		assert.Equal(t, "Education", b.Name)
		assert.Empty(t, b.Description)
		assert.Equal(t, "9-4", b.OfficeHours)
		assert.Equal(t, "Al Jones", b.Secretary)
		assert.Equal(t, "332-2000", b.OfficePhone)
		assert.Equal(t, []string{src}, b.Sources)
	})

	t.Run("Should pair roles with names and dedupe members", func(t *testing.T) {
		c, err := build.Committee(raws[0])
		require.NoError(t, err)
		assert.Equal(t, []core.Membership{
			{Name: "Cameron", Role: "Chairman"},
			{Name: "Keough", Role: "Vice Chairman"},
			{Name: "Bair"},
		}, c.Members)
	})

	t.Run("Should drop a trailing label with no name", func(t *testing.T) {
		assert.Equal(t, []core.RawMember{{Name: "Goedde"}}, raws[1].Members)
	})

	t.Run("Should leave members empty without a membership cell", func(t *testing.T) {
		assert.Empty(t, raws[2].Members)
	})
}

func TestPairMembers(t *testing.T) {
	tokens := []parse.Token{
		{Kind: parse.ValueToken, Text: "Lead"},
		{Kind: parse.LabelToken, Text: "Chair"},
		{Kind: parse.ValueToken, Text: "Smith"},
		{Kind: parse.LabelToken, Text: "Vice"},
		{Kind: parse.LabelToken, Text: "Co-Chair"},
		{Kind: parse.ValueToken, Text: "Doe"},
		{Kind: parse.LabelToken, Text: "Orphan"},
	}
	assert.Equal(t, []core.RawMember{
		{Name: "Lead"},
		{Name: "Smith", Role: "Chair"},
		{Name: "Doe", Role: "Co-Chair"},
	}, PairMembers(tokens))
	assert.Empty(t, PairMembers(nil))
}

func TestSplitNameRole(t *testing.T) {
	cases := []struct{ in, name, role string }{
		{"Cameron, Chairman", "Cameron", "Chairman"},
		{"Bell, Vice Chair", "Bell", "Vice Chair"},
		{"Smith, John", "Smith, John", ""},
		{"Doe  Jane", "Doe Jane", ""},
	}
	for _, c := range cases {
		name, role := SplitNameRole(c.in)
		assert.Equal(t, c.name, name, c.in)
		assert.Equal(t, c.role, role, c.in)
	}
}

func TestColumnMembers(t *testing.T) {
	tree := mustTree(t, `<table>
		<tr><th>Senate</th><th>House</th></tr>
		<tr><td><strong>Smith, John</strong></td><td><strong>Doe, Jane</strong></td></tr>
		<tr><td><strong>Cameron,&nbsp;Chairman</strong></td><td><strong>Bell, Vice Chairman</strong></td></tr>
		<tr><td><strong>Lonely</strong></td><td>no strong here</td></tr>
	</table>`)

	members, errs := ColumnMembers(tree.Find("tr").Slice(1, 4), "td strong", core.Upper, core.Lower)
	assert.Equal(t, []core.RawMember{
		{Name: "Smith, John", Chamber: core.Upper},
		{Name: "Doe, Jane", Chamber: core.Lower},
		{Name: "Cameron", Role: "Chairman", Chamber: core.Upper},
		{Name: "Bell", Role: "Vice Chairman", Chamber: core.Lower},
	}, members)
	require.Len(t, errs, 1)

	t.Run("Should merge into one joint committee with chamber tags", func(t *testing.T) {
		c, err := build.Committee(core.RawCommittee{
			Chamber: core.Joint,
			Fields:  []core.Field{{Key: core.FieldCommittee, Value: "Joint Finance-Appropriations Committee"}},
			Members: members[:2],
			Sources: []string{"https://legislature.idaho.gov/about/jfac.htm"},
		})
		require.NoError(t, err)
		require.Len(t, c.Members, 2)
		assert.Equal(t, core.Upper, c.Members[0].Chamber)
		assert.Equal(t, core.Lower, c.Members[1].Chamber)
	})
}

func TestHeadingMembers(t *testing.T) {
	sections := []ChamberLabel{{Label: "Senate", Chamber: core.Upper}, {Label: "House", Chamber: core.Lower}}

	t.Run("Should read the paragraph after each heading", func(t *testing.T) {
		tree := mustTree(t, `<body>
			<h3>Senate Members</h3><p>Cameron, Co-chair<br>Broadsword&nbsp;</p><p>ignored</p>
			<h3>House Members</h3>
			<div>between</div>
			<p>Ringo, Co-chair
Smith</p>
		</body>`)
		members, err := HeadingMembers(tree, "JLOC", "h3", sections...)
		require.NoError(t, err)
		assert.Equal(t, []core.RawMember{
			{Name: "Cameron", Role: "Co-chair", Chamber: core.Upper},
			{Name: "Broadsword", Chamber: core.Upper},
			{Name: "Ringo", Role: "Co-chair", Chamber: core.Lower},
			{Name: "Smith", Chamber: core.Lower},
		}, members)
	})

	t.Run("Should report a missing heading", func(t *testing.T) {
		tree := mustTree(t, `<h3>Senate</h3><p>Cameron</p>`)
		_, err := HeadingMembers(tree, "JLOC", "h3", sections...)
		var missing *core.MissingSectionError
		require.True(t, errors.As(err, &missing))
		assert.Equal(t, "JLOC", missing.Entity)
		assert.Equal(t, "House h3", missing.Section)
	})
}

func TestTitledMembers(t *testing.T) {
	tree := mustTree(t, `<table><tbody>
		<tr><td>Sen. Dean&nbsp;Cameron</td><td>Rep. Maxine Bell</td><td> </td></tr>
		<tr><td>Sen.
 Joe Stegner</td><td>Ken Andrus</td><td>Rep. Smith, Chairman</td></tr>
	</tbody></table>`)

	members := TitledMembers(tree.Find("td"),
		ChamberLabel{Label: "Sen.", Chamber: core.Upper},
		ChamberLabel{Label: "Rep.", Chamber: core.Lower})
	assert.Equal(t, []core.RawMember{
		{Name: "Dean Cameron", Chamber: core.Upper},
		{Name: "Maxine Bell", Chamber: core.Lower},
		{Name: "Joe Stegner", Chamber: core.Upper},
		{Name: "Ken Andrus"},
		{Name: "Smith", Role: "Chairman", Chamber: core.Lower},
	}, members)
}

type fakeAdapter struct{ id string }

func (f fakeAdapter) ID() string   { return f.id }
func (f fakeAdapter) Name() string { return "Fake " + f.id }

func TestRegistry(t *testing.T) {
	r := NewRegistry(fakeAdapter{"ny"}, fakeAdapter{"id"})

	t.Run("Should look adapters up case-insensitively", func(t *testing.T) {
		a, err := r.Lookup(" NY ")
		require.NoError(t, err)
		assert.Equal(t, "ny", a.ID())
	})
	t.Run("Should report unknown IDs as config errors", func(t *testing.T) {
		_, err := r.Lookup("zz")
		var cfgErr *core.ConfigError
		require.True(t, errors.As(err, &cfgErr))
		assert.Contains(t, cfgErr.Msg, "id, ny")
	})
	t.Run("Should reject duplicates", func(t *testing.T) {
		assert.Error(t, r.Register(fakeAdapter{"id"}))
		assert.Panics(t, func() { NewRegistry(fakeAdapter{"a"}, fakeAdapter{"A"}) })
	})
	t.Run("Should list IDs sorted", func(t *testing.T) {
		assert.Equal(t, []string{"id", "ny"}, r.IDs())
	})
}

func TestEnv(t *testing.T) {
	static := fetch.NewStatic(map[string]string{
		"https://example.gov/dir/page.html": `<a href="../other.html">x</a>`,
	})
	env := NewEnv(static, zerolog.Nop())

	t.Run("Should parse and resolve links", func(t *testing.T) {
		tree, err := env.HTML(context.Background(), "https://example.gov/dir/page.html")
		require.NoError(t, err)
		href, _ := tree.Find("a").Attr("href")
		assert.Equal(t, "https://example.gov/other.html", href)
	})
	t.Run("Should wrap fetch failures", func(t *testing.T) {
		_, err := env.HTML(context.Background(), "https://example.gov/nope")
		var statusErr *fetch.StatusError
		require.True(t, errors.As(err, &statusErr))
		_, err = env.PDFText(context.Background(), "https://example.gov/dir/page.html")
		var parseErr *core.ParseError
		require.True(t, errors.As(err, &parseErr))
	})
	t.Run("Should collect warnings in order", func(t *testing.T) {
		env.Warn(errors.New("first"))
		env.Warn(nil)
		env.Warn(errors.New("second"))
		w := env.Warnings()
		require.Len(t, w, 2)
		assert.EqualError(t, w[0], "first")
		assert.EqualError(t, w[1], "second")
	})
}
