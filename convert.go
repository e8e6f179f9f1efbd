package mini

import "github.com/KimNorgaard/go-mini/ast"

// ToMap returns a plain Go view of doc: sections become map[string]any and
// values become string, int64, bool, float64 or []any. Comments and integer
// styles are dropped. A child section hides a value of the same name.
func ToMap(doc *ast.Document) map[string]any {
	if doc == nil || doc.Root == nil {
		return map[string]any{}
	}
	return sectionMap(doc.Root)
}

func sectionMap(s *ast.Section) map[string]any {
	m := make(map[string]any, len(s.Keys())+len(s.Names()))
	for k, v := range s.Values() {
		m[k] = plainValue(v)
	}
	for name, child := range s.SubSections() {
		m[name] = sectionMap(child)
	}
	return m
}

func plainValue(v ast.Value) any {
	switch v := v.(type) {
	case *ast.StringValue:
		return v.Value
	case *ast.IntValue:
		return v.Value
	case *ast.BoolValue:
		return v.Value
	case *ast.FloatValue:
		return v.Value
	case *ast.ArrayValue:
		out := make([]any, len(v.Elements))
		for i, elem := range v.Elements {
			out[i] = plainValue(elem)
		}
		return out
	default:
		return nil
	}
}
