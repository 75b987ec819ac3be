package parse

import (
	"strconv"
	"testing"
)

func BenchmarkRegistry_Construct(b *testing.B) {
	r := NewRegistry()

	b.ReportAllocs()

	for b.Loop() {
		digitPairs(r)
	}
}

func BenchmarkTask_Drive(b *testing.B) {
	r := NewRegistry()
	p := digitPairs(r)

	b.ReportAllocs()

	i := 0
	for b.Loop() {
		// Fresh input per iteration so nothing is answered from the task table.
		t := p.Task("34" + strconv.Itoa(i))
		for !t.Step() {
		}

		i++
	}
}

func BenchmarkTask_WideChoice(b *testing.B) {
	r := NewRegistry()

	alts := make([]*Parser, 64)
	for i := range alts {
		alts[i] = r.Sequence(r.Str(strconv.Itoa(i)), r.MustPattern("[a-z]+"))
	}

	p := r.Choice(alts...)

	b.ReportAllocs()

	i := 0
	for b.Loop() {
		t := p.Task("63abc" + strconv.Itoa(i))
		for !t.Step() {
		}

		i++
	}
}
