package automaton

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"testing"
)

// aPlusC recognises a+c
func aPlusC() *Automaton {
	return New(
		[]State{"S", "A", Final},
		map[Key]State{
			{"S", 'a'}: "A",
			{"A", 'a'}: "A",
			{"A", 'c'}: Final,
		},
		"S",
		[]State{Final},
	)
}

type walk struct {
	input    string
	accepted bool
	path     []State
}

func TestAcceptsWithPath(t *testing.T) {
	a := aPlusC()
	walks := []walk{
		{"aac", true, []State{"S", "A", "A", Final}},
		{"ac", true, []State{"S", "A", Final}},
		{"aab", false, []State{"S", "A", "A", Rejected}},
		{"aaa", false, []State{"S", "A", "A", "A"}},
		{"", false, []State{"S"}},
		{"xyz", false, []State{"S", Rejected}},
		{"acc", false, []State{"S", "A", Final, Rejected}},
		{"acac", false, []State{"S", "A", Final, Rejected}},
	}

	for i, w := range walks {
		accepted, path := a.AcceptsWithPath(w.input)
		if accepted != w.accepted {
			t.Fatalf("walk #%d (%q): expected accepted=%v, got %v", i, w.input, w.accepted, accepted)
		}
		if !reflect.DeepEqual(path, w.path) {
			t.Fatalf("walk #%d (%q): expected path %v, got %v", i, w.input, w.path, path)
		}
		if a.Accepts(w.input) != accepted {
			t.Fatalf("walk #%d (%q): Accepts disagrees with AcceptsWithPath", i, w.input)
		}
	}
}

func TestAcceptedPathLength(t *testing.T) {
	a := aPlusC()
	for _, input := range []string{"ac", "aac", "aaaaaaac"} {
		accepted, path := a.AcceptsWithPath(input)
		if !accepted {
			t.Fatalf("%q: expected acceptance", input)
		}
		if len(path) != len(input)+1 {
			t.Fatalf("%q: expected %d states, got %v", input, len(input)+1, path)
		}
	}
}

func TestNewCopiesInput(t *testing.T) {
	transitions := map[Key]State{{"S", 'a'}: Final}
	a := New([]State{"S", Final}, transitions, "S", []State{Final})
	transitions[Key{"S", 'b'}] = Final
	delete(transitions, Key{"S", 'a'})

	if !a.Accepts("a") || a.Accepts("b") {
		t.Fatal("automaton changed after its input map was modified")
	}
}

func TestViews(t *testing.T) {
	a := aPlusC()

	if got := a.States(); !reflect.DeepEqual(got, []State{"A", "S", Final}) {
		t.Fatalf("unexpected states %v", got)
	}
	if got := a.Accepting(); !reflect.DeepEqual(got, []State{Final}) {
		t.Fatalf("unexpected accepting states %v", got)
	}
	if got := a.Alphabet(); !reflect.DeepEqual(got, []rune{'a', 'c'}) {
		t.Fatalf("unexpected alphabet %q", got)
	}
	expected := []Transition{
		{"A", 'a', "A"},
		{"A", 'c', Final},
		{"S", 'a', "A"},
	}
	if got := a.Transitions(); !reflect.DeepEqual(got, expected) {
		t.Fatalf("unexpected transitions %v", got)
	}
	if to, ok := a.Next("S", 'a'); !ok || to != "A" {
		t.Fatalf("unexpected Next result %q %v", to, ok)
	}
	if _, ok := a.Next(Final, 'a'); ok {
		t.Fatal("final state must have no outgoing transitions")
	}
	if a.IsAccepting("A") || !a.IsAccepting(Final) {
		t.Fatal("only the final state may accept")
	}
}

func TestEqual(t *testing.T) {
	a, b := aPlusC(), aPlusC()
	if !a.Equal(b) || !b.Equal(a) {
		t.Fatal("identical automata must be equal")
	}

	c := New(
		[]State{"S", "A", Final},
		map[Key]State{{"S", 'a'}: "A", {"A", 'a'}: "A", {"A", 'b'}: Final},
		"S",
		[]State{Final},
	)
	if a.Equal(c) {
		t.Fatal("automata with different transitions must differ")
	}
	if a.Equal(nil) {
		t.Fatal("automaton must not equal nil")
	}
}

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	if err := Export(&buf, aPlusC()); err != nil {
		t.Fatal(err)
	}

	var doc struct {
		States      []string `json:"states"`
		Alphabet    []string `json:"alphabet"`
		Start       string   `json:"start"`
		Accepting   []string `json:"accepting"`
		Transitions []struct {
			From   string `json:"from"`
			Symbol string `json:"symbol"`
			To     string `json:"to"`
		} `json:"transitions"`
	}
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("export is not valid JSON: %v\n%s", err, buf.String())
	}

	if doc.Start != "S" || !reflect.DeepEqual(doc.Accepting, []string{"Ω"}) {
		t.Fatalf("unexpected start/accepting: %+v", doc)
	}
	if !reflect.DeepEqual(doc.States, []string{"A", "S", "Ω"}) {
		t.Fatalf("unexpected states %v", doc.States)
	}
	if !reflect.DeepEqual(doc.Alphabet, []string{"a", "c"}) {
		t.Fatalf("unexpected alphabet %v", doc.Alphabet)
	}
	if len(doc.Transitions) != 3 || doc.Transitions[1].Symbol != "c" || doc.Transitions[1].To != "Ω" {
		t.Fatalf("unexpected transitions %+v", doc.Transitions)
	}
}

func ExampleAutomaton_AcceptsWithPath() {
	a := aPlusC()
	for _, input := range []string{"aac", "aab"} {
		accepted, path := a.AcceptsWithPath(input)
		fmt.Println(input, accepted, path)
	}
	// Output:
	// aac true [S A A Ω]
	// aab false [S A A REJECTED]
}
