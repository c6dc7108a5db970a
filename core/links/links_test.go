package links

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	assert.Equal(t, "http://www.nysenate.gov/senators", NormalizeURL(" http://www.nysenate.gov/senators#top "))
	assert.Equal(t, "http://assembly.state.ny.us/mem/", NormalizeURL("http://assembly.state.ny.us/mem/"))
}

func TestIsPDF(t *testing.T) {
	assert.True(t, IsPDF("http://nebraskalegislature.gov/FloorDocs/102/PDF/Intro/LR1.PDF"))
	assert.False(t, IsPDF("http://legis.delaware.gov/LIS/lis146.nsf/vwLegislation/HB+1"))
}

func TestIsAbsolute(t *testing.T) {
	assert.True(t, IsAbsolute("http://legislature.idaho.gov/house/committees.cfm"))
	assert.False(t, IsAbsolute("/house/committees.cfm"))
}

func TestTrimSuffixPath(t *testing.T) {
	assert.Equal(t, "http://www.nysenate.gov/senator/jane-doe",
		TrimSuffixPath("http://www.nysenate.gov/senator/jane-doe/contact", "/contact"))
}

func TestSet(t *testing.T) {
	t.Run("Should keep insertion order and drop repeats", func(t *testing.T) {
		s := NewSet("http://a.example/1", "http://a.example/2")
		assert.False(t, s.Add("http://a.example/1#frag"))
		assert.False(t, s.Add(""))
		assert.True(t, s.Add("http://a.example/3"))
		assert.Equal(t, 3, s.Len())
		assert.Equal(t, []string{"http://a.example/1", "http://a.example/2", "http://a.example/3"}, s.All())
	})
	t.Run("Should hand out a copy", func(t *testing.T) {
		s := NewSet("http://a.example/1")
		all := s.All()
		all[0] = "mutated"
		assert.Equal(t, []string{"http://a.example/1"}, s.All())
	})
}
