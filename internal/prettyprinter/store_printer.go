package prettyprinter

import (
	"bytes"
	"encoding/json"

	"gopkg.in/yaml.v3"

	"github.com/slate-lang/slate/internal/store"
)

// --- Store Printer (hand-off/debugging renderings of the flattened store) ---

// Text renders the store flat, one reference per line, in first-bind order.
func Text(st *store.Store) string {
	var out bytes.Buffer
	for _, r := range st.Refs() {
		v, _ := st.Find(r)
		out.WriteString(r.String())
		out.WriteString(" = ")
		out.WriteString(v.Inspect())
		out.WriteString("\n")
	}
	return out.String()
}

// Tree rebuilds the nested object structure from the flattened store,
// rendering values as plain Go data suitable for JSON/YAML encoding.
func Tree(st *store.Store) map[string]interface{} {
	root := make(map[string]interface{})
	for _, r := range st.Refs() {
		v, _ := st.Find(r)
		node := root
		for _, seg := range r.Parent() {
			child, ok := node[seg].(map[string]interface{})
			if !ok {
				child = make(map[string]interface{})
				node[seg] = child
			}
			node = child
		}
		last := r.Last()
		if v.Kind() == store.STORE_VAL {
			if _, ok := node[last].(map[string]interface{}); !ok {
				node[last] = make(map[string]interface{})
			}
			continue
		}
		node[last] = renderValue(v)
	}
	return root
}

func renderValue(v store.Value) interface{} {
	switch val := v.(type) {
	case *store.Bool:
		return val.Value
	case *store.Int:
		return val.Value
	case *store.Float:
		return val.Value
	case *store.Str:
		return val.Value
	case *store.Null:
		return nil
	case *store.Vec:
		out := make([]interface{}, len(val.Elems))
		for i, e := range val.Elems {
			out[i] = renderValue(e)
		}
		return out
	case *store.RefVal:
		return val.Target.String()
	case *store.Enum:
		return val.Symbols
	case *store.Global:
		return val.Formula.String()
	case *store.Action:
		return renderAction(val)
	default:
		// Lazy, Link, TBD, Unknown, None: surface the tag for debugging
		return v.Inspect()
	}
}

func renderAction(a *store.Action) map[string]interface{} {
	params := make([]map[string]string, len(a.Params))
	for i, p := range a.Params {
		params[i] = map[string]string{"name": p.Name, "type": p.Type}
	}
	effects := make([]map[string]interface{}, len(a.Effects))
	for i, e := range a.Effects {
		effects[i] = map[string]interface{}{
			"ref":   e.Ref.String(),
			"value": renderValue(e.Val),
		}
	}
	return map[string]interface{}{
		"params":    params,
		"cost":      a.Cost,
		"condition": a.Precondition.String(),
		"effects":   effects,
	}
}

// JSON encodes the nested rendering; map keys come out sorted, which keeps
// the output deterministic.
func JSON(st *store.Store) ([]byte, error) {
	return json.MarshalIndent(Tree(st), "", "  ")
}

// YAML encodes the nested rendering with yaml.v3.
func YAML(st *store.Store) ([]byte, error) {
	return yaml.Marshal(Tree(st))
}
