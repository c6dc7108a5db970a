package extract

import (
	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/parse"
)

// RowSchema is one known layout of a listing-table row: the field keys
// its text fragments map onto, in order.
type RowSchema struct {
	Name   string
	Fields []string
}

var (
	// DescribedRow is a committee row that carries a description.
	DescribedRow = RowSchema{
		Name:   "described",
		Fields: []string{core.FieldCommittee, core.FieldDescription, core.FieldOfficeHours, core.FieldSecretary, core.FieldOfficePhone},
	}
	// PlainRow is a committee row without a description.
	PlainRow = RowSchema{
		Name:   "plain",
		Fields: []string{core.FieldCommittee, core.FieldOfficeHours, core.FieldSecretary, core.FieldOfficePhone},
	}
)

// SelectSchema picks the schema whose field count equals the number of
// fragments. A count no schema has is a *core.MalformedRowError.
func SelectSchema(row int, fragments []string, schemas ...RowSchema) (RowSchema, error) {
	for _, s := range schemas {
		if len(s.Fields) == len(fragments) {
			return s, nil
		}
	}
	return RowSchema{}, &core.MalformedRowError{Row: row, Fragments: fragments}
}

// MapRow maps a row's fragments onto the matching schema's field keys.
func MapRow(row int, fragments []string, schemas ...RowSchema) ([]core.Field, error) {
	schema, err := SelectSchema(row, fragments, schemas...)
	if err != nil {
		return nil, err
	}
	fields := make([]core.Field, len(fragments))
	for i, v := range fragments {
		fields[i] = core.Field{Key: schema.Fields[i], Value: v}
	}
	return fields, nil
}

// CommitteeRows extracts one committee per listing row. The first cell's
// text fragments are mapped with schemas; every later cell is a
// membership cell read with PairMembers. Malformed rows are returned as
// errors and do not affect the other rows.
func CommitteeRows(rows *goquery.Selection, chamber core.Chamber, source string, schemas ...RowSchema) ([]core.RawCommittee, []error) {
	var (
		committees []core.RawCommittee
		errs       []error
	)
	rows.Each(func(i int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td")
		fields, err := MapRow(i, parse.Fragments(cells.First()), schemas...)
		if err != nil {
			errs = append(errs, err)
			return
		}
		raw := core.RawCommittee{Chamber: chamber, Fields: fields, Sources: []string{source}}
		cells.Slice(1, goquery.ToEnd).Each(func(_ int, cell *goquery.Selection) {
			raw.Members = append(raw.Members, PairMembers(parse.Flatten(cell))...)
		})
		committees = append(committees, raw)
	})
	return committees, errs
}
