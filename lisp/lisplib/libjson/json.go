package libjson

import (
	"bytes"
	"encoding/json"
	"sort"
	"strings"

	"github.com/bmatsuo/rkt/lisp"
)

// LoadPackage registers the JSON natives with in.
func LoadPackage(in *lisp.Interpreter) error {
	in.AddNatives(Builtins(DefaultSerializer)...)
	return nil
}

// Builtins returns the natives which convert between JSON text and values
// according to s.
func Builtins(s *Serializer) []lisp.NativeDef {
	return []lisp.NativeDef{
		lisp.StrictNative("jsexpr->string", s.DumpStringBuiltin),
		lisp.StrictNative("string->jsexpr", s.LoadStringBuiltin),
	}
}

// DefaultSerializer is the Serializer used by exported functions Load and
// Dump.
var DefaultSerializer = &Serializer{Null: lisp.Symbol("null")}

// Dump serializes the structure of v as JSON.
func Dump(v lisp.Value) ([]byte, error) {
	return DefaultSerializer.Dump(v)
}

// Load parses b as JSON and returns an equivalent value.
func Load(b []byte) (lisp.Value, error) {
	return DefaultSerializer.Load(b)
}

// Serializer defines JSON serialization rules for values.  JSON objects are
// association lists of (key . value) pairs with symbol keys, sorted by key.
type Serializer struct {
	// Null is the value standing for the JSON null.
	Null lisp.Value
}

// Load parses b and returns a value representing its structure.
func (s *Serializer) Load(b []byte) (lisp.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var x interface{}
	err := dec.Decode(&x)
	if err != nil {
		return nil, lisp.Errorf("string->jsexpr: %v", err)
	}
	return s.loadInterface(x)
}

func (s *Serializer) loadInterface(x interface{}) (lisp.Value, error) {
	if x == nil {
		return s.Null, nil
	}
	switch x := x.(type) {
	case bool:
		return lisp.Bool(x), nil
	case string:
		return lisp.String(x), nil
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return lisp.Int(n), nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, lisp.Errorf("string->jsexpr: %v", err)
		}
		return lisp.Float(f), nil
	case map[string]interface{}:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lis := make(lisp.List, len(keys))
		for i, k := range keys {
			v, err := s.loadInterface(x[k])
			if err != nil {
				return nil, err
			}
			lis[i] = &lisp.Pair{Left: lisp.Symbol(k), Right: v}
		}
		return lis, nil
	case []interface{}:
		lis := make(lisp.List, len(x))
		for i, v := range x {
			val, err := s.loadInterface(v)
			if err != nil {
				return nil, err
			}
			lis[i] = val
		}
		return lis, nil
	default:
		return nil, lisp.Errorf("unable to load json type: %T", x)
	}
}

// Dump serializes the structure of v as JSON.
func (s *Serializer) Dump(v lisp.Value) ([]byte, error) {
	var buf bytes.Buffer
	err := s.dump(&buf, v)
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Serializer) dump(buf *bytes.Buffer, v lisp.Value) error {
	if lisp.Equal(v, s.Null) {
		buf.WriteString("null")
		return nil
	}
	if lis, ok := lisp.AsList(v); ok {
		if obj, ok := objectPairs(lis); ok && len(obj) > 0 {
			return s.dumpObject(buf, obj)
		}
		buf.WriteString("[")
		for i, elem := range lis {
			if i > 0 {
				buf.WriteString(",")
			}
			err := s.dump(buf, elem)
			if err != nil {
				return err
			}
		}
		buf.WriteString("]")
		return nil
	}
	lit, ok := v.(lisp.Literal)
	if !ok {
		return lisp.Errorf("jsexpr->string: value cannot be serialized: %v", v)
	}
	var x interface{}
	switch {
	case lit.Type == lisp.LString:
		x = lit.Str
	case lit.Type == lisp.LBoolean:
		x = lit.Bool
	case lit.IsInteger():
		x = lit.Int
	case lit.Type == lisp.LFloat:
		x = lit.Float
	default:
		return lisp.Errorf("jsexpr->string: %s value cannot be serialized", lit.Type)
	}
	b, err := json.Marshal(x)
	if err != nil {
		return lisp.Errorf("jsexpr->string: %v", err)
	}
	buf.Write(b)
	return nil
}

// objectPairs returns the elements of lis as pairs if every element is a
// pair with a symbol or string key.
func objectPairs(lis lisp.List) ([]*lisp.Pair, bool) {
	pairs := make([]*lisp.Pair, len(lis))
	for i, v := range lis {
		p, ok := v.(*lisp.Pair)
		if !ok || pairKey(p) == "" {
			return nil, false
		}
		pairs[i] = p
	}
	return pairs, true
}

func pairKey(p *lisp.Pair) string {
	switch k := p.Left.(type) {
	case lisp.Symbol:
		return string(k)
	case lisp.Literal:
		if k.Type == lisp.LString {
			return k.Str
		}
	}
	return ""
}

func (s *Serializer) dumpObject(buf *bytes.Buffer, pairs []*lisp.Pair) error {
	buf.WriteString("{")
	for i, p := range pairs {
		if i > 0 {
			buf.WriteString(",")
		}
		key, _ := json.Marshal(pairKey(p))
		buf.Write(key)
		buf.WriteString(":")
		err := s.dump(buf, p.Right)
		if err != nil {
			return err
		}
	}
	buf.WriteString("}")
	return nil
}

// DumpStringBuiltin serializes its argument as a JSON string.
func (s *Serializer) DumpStringBuiltin(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	if err := lisp.RequireArity("jsexpr->string", args, 1); err != nil {
		return nil, err
	}
	b, err := s.Dump(args[0])
	if err != nil {
		return nil, err
	}
	return lisp.String(string(b)), nil
}

// LoadStringBuiltin parses its JSON string argument.
func (s *Serializer) LoadStringBuiltin(cx *lisp.Context, args []lisp.Value) (lisp.Value, error) {
	if err := lisp.RequireArity("string->jsexpr", args, 1); err != nil {
		return nil, err
	}
	text, err := lisp.StringArg("string->jsexpr", 1, args[0])
	if err != nil {
		return nil, err
	}
	return s.Load([]byte(strings.TrimSpace(text)))
}
