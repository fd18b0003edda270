package introspection

// Snapshot is the result of the standard introspection query over a schema, restricted
// to what the model records. It marshals to the same JSON layout tools like Relay read.
type Snapshot struct {
	QueryType *TypeRef    `json:"queryType"`
	Types     []*FullType `json:"types"`
}

type TypeRef struct {
	Kind   string   `json:"kind"`
	Name   *string  `json:"name"`
	OfType *TypeRef `json:"ofType"`
}

type FullType struct {
	Kind          string            `json:"kind"`
	Name          string            `json:"name"`
	Fields        *[]*FieldSnapshot `json:"fields"`
	Interfaces    *[]*TypeRef       `json:"interfaces"`
	PossibleTypes *[]*TypeRef       `json:"possibleTypes"`
	EnumValues    *[]string         `json:"enumValues"`
}

type FieldSnapshot struct {
	Name string                `json:"name"`
	Args []*InputValueSnapshot `json:"args"`
	Type *TypeRef              `json:"type"`
}

type InputValueSnapshot struct {
	Name         string   `json:"name"`
	Type         *TypeRef `json:"type"`
	DefaultValue *string  `json:"defaultValue"`
}

// Snapshot evaluates the schema into plain values.
func (r *Schema) Snapshot() *Snapshot {
	s := &Snapshot{Types: []*FullType{}}
	if q := r.QueryType(); q != nil {
		s.QueryType = typeRef(q)
	}
	for _, t := range r.Types() {
		s.Types = append(s.Types, fullType(t))
	}
	return s
}

func typeRef(t *Type) *TypeRef {
	if t == nil {
		return nil
	}
	return &TypeRef{Kind: t.Kind(), Name: t.Name(), OfType: typeRef(t.OfType())}
}

func typeRefs(l *[]*Type) *[]*TypeRef {
	if l == nil {
		return nil
	}
	refs := make([]*TypeRef, len(*l))
	for i, t := range *l {
		refs[i] = typeRef(t)
	}
	return &refs
}

func fullType(t *Type) *FullType {
	ft := &FullType{
		Kind:          t.Kind(),
		Name:          *t.Name(),
		Interfaces:    typeRefs(t.Interfaces()),
		PossibleTypes: typeRefs(t.PossibleTypes()),
	}
	if fields := t.Fields(); fields != nil {
		l := make([]*FieldSnapshot, len(*fields))
		for i, f := range *fields {
			fs := &FieldSnapshot{Name: f.Name(), Args: []*InputValueSnapshot{}, Type: typeRef(f.Type())}
			for _, a := range f.Args() {
				fs.Args = append(fs.Args, &InputValueSnapshot{Name: a.Name(), Type: typeRef(a.Type()), DefaultValue: a.DefaultValue()})
			}
			l[i] = fs
		}
		ft.Fields = &l
	}
	if values := t.EnumValues(); values != nil {
		l := make([]string, len(*values))
		for i, v := range *values {
			l[i] = v.Name()
		}
		ft.EnumValues = &l
	}
	return ft
}
