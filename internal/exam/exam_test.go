package exam

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDate_Compare(t *testing.T) {
	assert.Equal(t, -1, Date("2024-01-01").Compare("2024-03-01"))
	assert.Equal(t, 1, Date("2024-03-01").Compare("2024-01-01"))
	assert.Equal(t, 0, Date("2024-03-01").Compare("2024-03-01T10:00:00Z"))
	assert.Equal(t, -1, Date("garbage").Compare("1990-01-01"), "invalid dates sort first")
	assert.Equal(t, 0, Date("x").Compare("y"))
}

func TestDateOf(t *testing.T) {
	assert.Equal(t, Date("2024-02-29"), DateOf(time.Date(2024, 2, 29, 23, 0, 0, 0, time.UTC)))
}

func TestReport_Find(t *testing.T) {
	r := Report{Exams: []Entry{
		{Param: "Glucosio", Value: "90"},
		{Param: "GLUCOSIO", Value: "95"},
		{Param: "colesterolo_hdl", Value: "50"},
	}}

	e, ok := r.Find("glucosio")
	assert.True(t, ok)
	assert.Equal(t, Value("90"), e.Value, "first match wins")

	e, ok = r.Find("COLESTEROLO HDL")
	assert.True(t, ok)
	assert.Equal(t, Value("50"), e.Value)

	_, ok = r.Find("")
	assert.False(t, ok)
}

func TestEntryList_SetReplacesDuplicates(t *testing.T) {
	var l EntryList
	l = l.Set("GLUCOSIO", "90")
	l = l.Set("emoglobina", "14")
	l = l.Set("glucosio", "101")

	assert.Len(t, l, 2)
	assert.Equal(t, "GLUCOSIO", l[0].Param, "original spelling kept")
	assert.Equal(t, Value("101"), l[0].Value)
}

func TestEntryList_Remove(t *testing.T) {
	l := EntryList{{Param: "A"}, {Param: "B"}, {Param: "C"}}
	l = l.Remove(1)
	assert.Equal(t, EntryList{{Param: "A"}, {Param: "C"}}, l)
	assert.Len(t, l.Remove(9), 2)
}

func TestEntryList_Usable(t *testing.T) {
	l := EntryList{{Param: "A", Value: "1"}, {Param: " ", Value: "2"}, {Param: "B", Value: "nope"}}
	assert.Equal(t, []Entry{{Param: "A", Value: "1"}}, l.Usable())
}

func TestEntryList_Find(t *testing.T) {
	l := EntryList{{Param: "GLUCOSIO"}, {Param: "Vitamina_D"}}
	assert.Equal(t, 1, l.Find("vitamina d"))
	assert.Equal(t, -1, l.Find("FERRITINA"))
	assert.Equal(t, -1, l.Find("  "))
}
