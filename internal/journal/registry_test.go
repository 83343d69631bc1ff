package journal

import "testing"

func lines(numbers ...int) []*LineView {
	out := make([]*LineView, 0, len(numbers))
	for _, n := range numbers {
		out = append(out, &LineView{LineNumber: n})
	}
	return out
}

func numbersOf(list []*LineView) []int {
	out := make([]int, 0, len(list))
	for _, l := range list {
		out = append(out, l.LineNumber)
	}
	return out
}

func TestMaxLineNumber(t *testing.T) {
	if got := MaxLineNumber(); got != 0 {
		t.Errorf("no lists: got %d, want 0", got)
	}
	if got := MaxLineNumber(lines(0, 0)); got != 0 {
		t.Errorf("unassigned only: got %d, want 0", got)
	}
	if got := MaxLineNumber(lines(2, 7), lines(4)); got != 7 {
		t.Errorf("got %d, want 7", got)
	}
}

func TestAssignLineNumbersFillsAfterMaxOfBothLists(t *testing.T) {
	// An invoice-derived line already holds 5; fresh manual lines must start
	// at 6 even though the manual list itself is unnumbered.
	manual := lines(0, 0)
	paid := lines(5)

	combined := AssignLineNumbers(manual, paid)

	want := []int{5, 6, 7}
	got := numbersOf(combined)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestAssignLineNumbersNeverRenumbers(t *testing.T) {
	manual := []*LineView{
		{LineNumber: 3, Name: "a"},
		{LineNumber: 0, Name: "b"},
	}
	paid := []*LineView{
		{LineNumber: 1, Name: "c"},
	}

	AssignLineNumbers(manual, paid)

	if manual[0].LineNumber != 3 {
		t.Errorf("assigned number changed: got %d, want 3", manual[0].LineNumber)
	}
	if paid[0].LineNumber != 1 {
		t.Errorf("assigned number changed: got %d, want 1", paid[0].LineNumber)
	}
	if manual[1].LineNumber != 4 {
		t.Errorf("fresh line: got %d, want 4", manual[1].LineNumber)
	}
}

func TestAssignLineNumbersIdempotent(t *testing.T) {
	manual := lines(0, 2, 0)
	paid := lines(0, 7)

	first := AssignLineNumbers(manual, paid)
	before := numbersOf(first)

	second := AssignLineNumbers(first, nil)
	after := numbersOf(second)

	if len(before) != len(after) {
		t.Fatalf("length changed: %v vs %v", before, after)
	}
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("second pass changed numbers: %v vs %v", before, after)
		}
	}
}

func TestAssignLineNumbersDistinct(t *testing.T) {
	manual := lines(0, 0, 4)
	paid := lines(0, 4) // duplicate 4 from a retired slot is the caller's bug,
	// but fresh assignments must still be distinct from everything present
	combined := AssignLineNumbers(manual, paid)

	seenFresh := map[int]bool{}
	for _, l := range combined {
		if l.LineNumber <= 4 {
			continue
		}
		if seenFresh[l.LineNumber] {
			t.Fatalf("fresh number %d assigned twice: %v", l.LineNumber, numbersOf(combined))
		}
		seenFresh[l.LineNumber] = true
	}
	if len(seenFresh) != 3 {
		t.Fatalf("want 3 fresh numbers above 4, got %v", numbersOf(combined))
	}
}

func TestAssignLineNumbersOrdersByNumber(t *testing.T) {
	manual := lines(9)
	paid := lines(2)

	combined := AssignLineNumbers(manual, paid)
	got := numbersOf(combined)
	if got[0] != 2 || got[1] != 9 {
		t.Errorf("not ordered by line number: %v", got)
	}
}

func TestFillLineNumbers(t *testing.T) {
	list := lines(0, 6, 0)
	FillLineNumbers(list)

	want := []int{7, 6, 8}
	for i := range want {
		if list[i].LineNumber != want[i] {
			t.Fatalf("got %v, want %v", numbersOf(list), want)
		}
	}

	// second run is a no-op
	FillLineNumbers(list)
	for i := range want {
		if list[i].LineNumber != want[i] {
			t.Fatalf("refill changed numbers: %v", numbersOf(list))
		}
	}
}
