package automaton

import (
	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jwriter"
)

var (
	_ easyjson.Marshaler = Transition{}
	_ easyjson.Marshaler = (*Automaton)(nil)
)

func encodeTransition(out *jwriter.Writer, in Transition) {
	out.RawByte('{')
	{
		const prefix string = ",\"from\":"
		out.RawString(prefix[1:])
		out.String(string(in.From))
	}
	{
		const prefix string = ",\"symbol\":"
		out.RawString(prefix)
		out.String(string(in.Symbol))
	}
	{
		const prefix string = ",\"to\":"
		out.RawString(prefix)
		out.String(string(in.To))
	}
	out.RawByte('}')
}

// MarshalJSON supports json.Marshaler interface
func (v Transition) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	encodeTransition(&w, v)
	return w.Buffer.BuildBytes(), w.Error
}

// MarshalEasyJSON supports easyjson.Marshaler interface
func (v Transition) MarshalEasyJSON(w *jwriter.Writer) {
	encodeTransition(w, v)
}

func encodeStates(out *jwriter.Writer, in []State) {
	out.RawByte('[')
	for i, v := range in {
		if i > 0 {
			out.RawByte(',')
		}
		out.String(string(v))
	}
	out.RawByte(']')
}

func encodeAutomaton(out *jwriter.Writer, in *Automaton) {
	out.RawByte('{')
	{
		const prefix string = ",\"states\":"
		out.RawString(prefix[1:])
		encodeStates(out, in.States())
	}
	{
		const prefix string = ",\"alphabet\":"
		out.RawString(prefix)
		out.RawByte('[')
		for i, v := range in.Alphabet() {
			if i > 0 {
				out.RawByte(',')
			}
			out.String(string(v))
		}
		out.RawByte(']')
	}
	{
		const prefix string = ",\"start\":"
		out.RawString(prefix)
		out.String(string(in.start))
	}
	{
		const prefix string = ",\"accepting\":"
		out.RawString(prefix)
		encodeStates(out, in.Accepting())
	}
	{
		const prefix string = ",\"transitions\":"
		out.RawString(prefix)
		out.RawByte('[')
		for i, v := range in.Transitions() {
			if i > 0 {
				out.RawByte(',')
			}
			encodeTransition(out, v)
		}
		out.RawByte(']')
	}
	out.RawByte('}')
}

// MarshalJSON supports json.Marshaler interface
func (v *Automaton) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	encodeAutomaton(&w, v)
	return w.Buffer.BuildBytes(), w.Error
}

// MarshalEasyJSON supports easyjson.Marshaler interface
func (v *Automaton) MarshalEasyJSON(w *jwriter.Writer) {
	encodeAutomaton(w, v)
}
