package ast

// ResolverSignature is the call signature of one Query field. Arguments keep
// declaration order, which is authoritative for positional binding.
type ResolverSignature struct {
	FieldName  string       `json:"field"`
	Arguments  ArgumentList `json:"arguments"`
	ReturnType *Type        `json:"returns"`
}

// ArgumentTypes returns the argument types in declaration order.
func (s *ResolverSignature) ArgumentTypes() []*Type {
	types := make([]*Type, len(s.Arguments))
	for i, a := range s.Arguments {
		types[i] = a.Type
	}
	return types
}
