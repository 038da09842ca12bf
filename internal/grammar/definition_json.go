package grammar

import (
	"github.com/mailru/easyjson"
	"github.com/mailru/easyjson/jlexer"
	"github.com/mailru/easyjson/jwriter"
)

var (
	_ easyjson.Marshaler   = (*Definition)(nil)
	_ easyjson.Unmarshaler = (*Definition)(nil)
	_ easyjson.Marshaler   = (*RuleDefinition)(nil)
	_ easyjson.Unmarshaler = (*RuleDefinition)(nil)
)

func decodeStrings(in *jlexer.Lexer, out *[]string) {
	if in.IsNull() {
		in.Skip()
		*out = nil
		return
	}
	in.Delim('[')
	if *out == nil {
		if !in.IsDelim(']') {
			*out = make([]string, 0, 4)
		} else {
			*out = []string{}
		}
	} else {
		*out = (*out)[:0]
	}
	for !in.IsDelim(']') {
		var v1 string
		v1 = string(in.String())
		*out = append(*out, v1)
		in.WantComma()
	}
	in.Delim(']')
}

func encodeStrings(out *jwriter.Writer, in []string) {
	if in == nil && (out.Flags&jwriter.NilSliceAsEmpty) == 0 {
		out.RawString("null")
		return
	}
	out.RawByte('[')
	for i, v := range in {
		if i > 0 {
			out.RawByte(',')
		}
		out.String(string(v))
	}
	out.RawByte(']')
}

func decodeRuleDefinition(in *jlexer.Lexer, out *RuleDefinition) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "from":
			out.From = string(in.String())
		case "to":
			out.To = string(in.String())
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func encodeRuleDefinition(out *jwriter.Writer, in RuleDefinition) {
	out.RawByte('{')
	{
		const prefix string = ",\"from\":"
		out.RawString(prefix[1:])
		out.String(string(in.From))
	}
	{
		const prefix string = ",\"to\":"
		out.RawString(prefix)
		out.String(string(in.To))
	}
	out.RawByte('}')
}

// MarshalJSON supports json.Marshaler interface
func (v RuleDefinition) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	encodeRuleDefinition(&w, v)
	return w.Buffer.BuildBytes(), w.Error
}

// MarshalEasyJSON supports easyjson.Marshaler interface
func (v RuleDefinition) MarshalEasyJSON(w *jwriter.Writer) {
	encodeRuleDefinition(w, v)
}

// UnmarshalJSON supports json.Unmarshaler interface
func (v *RuleDefinition) UnmarshalJSON(data []byte) error {
	r := jlexer.Lexer{Data: data}
	decodeRuleDefinition(&r, v)
	return r.Error()
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler interface
func (v *RuleDefinition) UnmarshalEasyJSON(l *jlexer.Lexer) {
	decodeRuleDefinition(l, v)
}

func decodeDefinition(in *jlexer.Lexer, out *Definition) {
	isTopLevel := in.IsStart()
	if in.IsNull() {
		if isTopLevel {
			in.Consumed()
		}
		in.Skip()
		return
	}
	in.Delim('{')
	for !in.IsDelim('}') {
		key := in.UnsafeFieldName(false)
		in.WantColon()
		if in.IsNull() {
			in.Skip()
			in.WantComma()
			continue
		}
		switch key {
		case "non_terminals":
			decodeStrings(in, &out.NonTerminals)
		case "terminals":
			decodeStrings(in, &out.Terminals)
		case "start":
			out.Start = string(in.String())
		case "rules":
			if in.IsNull() {
				in.Skip()
				out.Rules = nil
			} else {
				in.Delim('[')
				if out.Rules == nil {
					if !in.IsDelim(']') {
						out.Rules = make([]RuleDefinition, 0, 2)
					} else {
						out.Rules = []RuleDefinition{}
					}
				} else {
					out.Rules = (out.Rules)[:0]
				}
				for !in.IsDelim(']') {
					var v2 RuleDefinition
					(v2).UnmarshalEasyJSON(in)
					out.Rules = append(out.Rules, v2)
					in.WantComma()
				}
				in.Delim(']')
			}
		default:
			in.SkipRecursive()
		}
		in.WantComma()
	}
	in.Delim('}')
	if isTopLevel {
		in.Consumed()
	}
}

func encodeDefinition(out *jwriter.Writer, in Definition) {
	out.RawByte('{')
	{
		const prefix string = ",\"non_terminals\":"
		out.RawString(prefix[1:])
		encodeStrings(out, in.NonTerminals)
	}
	{
		const prefix string = ",\"terminals\":"
		out.RawString(prefix)
		encodeStrings(out, in.Terminals)
	}
	{
		const prefix string = ",\"start\":"
		out.RawString(prefix)
		out.String(string(in.Start))
	}
	{
		const prefix string = ",\"rules\":"
		out.RawString(prefix)
		if in.Rules == nil && (out.Flags&jwriter.NilSliceAsEmpty) == 0 {
			out.RawString("null")
		} else {
			out.RawByte('[')
			for i, v := range in.Rules {
				if i > 0 {
					out.RawByte(',')
				}
				(v).MarshalEasyJSON(out)
			}
			out.RawByte(']')
		}
	}
	out.RawByte('}')
}

// MarshalJSON supports json.Marshaler interface
func (v Definition) MarshalJSON() ([]byte, error) {
	w := jwriter.Writer{}
	encodeDefinition(&w, v)
	return w.Buffer.BuildBytes(), w.Error
}

// MarshalEasyJSON supports easyjson.Marshaler interface
func (v Definition) MarshalEasyJSON(w *jwriter.Writer) {
	encodeDefinition(w, v)
}

// UnmarshalJSON supports json.Unmarshaler interface
func (v *Definition) UnmarshalJSON(data []byte) error {
	r := jlexer.Lexer{Data: data}
	decodeDefinition(&r, v)
	return r.Error()
}

// UnmarshalEasyJSON supports easyjson.Unmarshaler interface
func (v *Definition) UnmarshalEasyJSON(l *jlexer.Lexer) {
	decodeDefinition(l, v)
}
