package tokens

import (
	"strings"
	"testing"
)

func TestCounterFunc(t *testing.T) {
	var c Counter = CounterFunc(func(text string) int {
		return len(strings.Fields(text))
	})
	if got := c.Count("one two  three"); got != 3 {
		t.Errorf("Count = %d; want 3", got)
	}
}

func TestNilTiktokenCountsZero(t *testing.T) {
	var tk *Tiktoken
	if got := tk.Count("anything"); got != 0 {
		t.Errorf("Count on nil counter = %d; want 0", got)
	}
	if got := (&Tiktoken{}).Count("anything"); got != 0 {
		t.Errorf("Count without encoding = %d; want 0", got)
	}
}
