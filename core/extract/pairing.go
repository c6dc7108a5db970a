package extract

import (
	"github.com/gaurav-prasanna/legispipe/core"
	"github.com/gaurav-prasanna/legispipe/core/parse"
)

// PairMembers walks a flattened cell with two pointers and pairs each
// label with the value right after it. A value with no label in front is
// an unlabeled member; a label with no value after it is dropped.
func PairMembers(tokens []parse.Token) []core.RawMember {
	var members []core.RawMember
	for i := 0; i < len(tokens); {
		tok := tokens[i]
		if tok.Kind == parse.ValueToken {
			members = append(members, core.RawMember{Name: tok.Text})
			i++
			continue
		}

		j := i + 1
		if j < len(tokens) && tokens[j].Kind == parse.ValueToken {
			members = append(members, core.RawMember{Name: tokens[j].Text, Role: tok.Text})
			j++
		}
		i = j
	}
	return members
}
