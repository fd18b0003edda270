package materialize

// Example builds a placeholder value for s: nil for every nullable position, the zero
// value of non-null scalars, an empty list for non-null lists, the first value of an
// enum and the first member of a union. Objects become maps keyed by field name.
// A non-null Ref becomes {"$ref": name}.
func Example(s *Shape) interface{} {
	if s == nil || s.Nullable {
		return nil
	}
	switch s.Kind {
	case ShapeScalar:
		switch s.Name {
		case "Int":
			return 0
		case "Float":
			return 0.0
		case "Boolean":
			return false
		default:
			return ""
		}
	case ShapeEnum:
		if len(s.Values) == 0 {
			return ""
		}
		return s.Values[0]
	case ShapeList:
		return []interface{}{}
	case ShapeUnion:
		if len(s.Members) == 0 {
			return nil
		}
		return Example(s.Members[0])
	case ShapeRef:
		return map[string]interface{}{"$ref": s.Name}
	default:
		obj := make(map[string]interface{}, len(s.Fields))
		for _, f := range s.Fields {
			obj[f.Name] = Example(f.Shape)
		}
		return obj
	}
}
