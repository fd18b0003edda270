package gqltesting

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"

	"github.com/goccy/go-yaml"
	"github.com/nsf/jsondiff"
	"github.com/pmezard/go-difflib/difflib"

	sdl "github.com/graph-gophers/graphql-sdl"
	"github.com/graph-gophers/graphql-sdl/errors"
)

// Test is a compile test case to be used with RunTest(s).
type Test struct {
	Name    string
	Context context.Context
	Schema  string
	Opts    []sdl.SchemaOpt

	// ExpectedModel and ExpectedResolvers are JSON documents compared against the JSON
	// encoding of the linked model and the resolver signatures. Empty means unchecked.
	ExpectedModel     string
	ExpectedResolvers string
	// ExpectedSDL is compared against the printed schema.
	ExpectedSDL   string
	ExpectedError *errors.SchemaError
}

// RunTests runs the given compile test cases as subtests.
func RunTests(t *testing.T, tests []*Test) {
	t.Helper()
	if len(tests) == 1 {
		RunTest(t, tests[0])
		return
	}

	for i, test := range tests {
		name := test.Name
		if name == "" {
			name = strconv.Itoa(i + 1)
		}
		t.Run(name, func(t *testing.T) {
			t.Helper()
			RunTest(t, test)
		})
	}
}

// RunTest runs a single compile test case.
func RunTest(t *testing.T, test *Test) {
	t.Helper()
	if test.Context == nil {
		test.Context = context.Background()
	}
	s, err := sdl.Compile(test.Context, test.Schema, test.Opts...)

	checkError(t, test.ExpectedError, err)
	if err != nil {
		return
	}

	if test.ExpectedModel != "" {
		got, err := json.Marshal(s.Model())
		if err != nil {
			t.Fatal(err)
		}
		CheckJSON(t, test.ExpectedModel, got)
	}

	if test.ExpectedResolvers != "" {
		sigs, err := s.Resolvers()
		if err != nil {
			t.Fatal(err)
		}
		got, err := json.Marshal(sigs)
		if err != nil {
			t.Fatal(err)
		}
		CheckJSON(t, test.ExpectedResolvers, got)
	}

	if test.ExpectedSDL != "" {
		CheckText(t, test.ExpectedSDL, s.SDL())
	}
}

// CheckJSON fails the test unless got is semantically equal to want.
func CheckJSON(t *testing.T, want string, got []byte) {
	t.Helper()
	opts := jsondiff.Options{
		Added:   jsondiff.Tag{Begin: "+++", End: "+++"},
		Removed: jsondiff.Tag{Begin: "---", End: "---"},
		Changed: jsondiff.Tag{Begin: "|||", End: "|||"},
		Indent:  "    ",
	}
	diff, output := jsondiff.Compare([]byte(want), got, &opts)
	if diff != jsondiff.FullMatch {
		t.Log("Did not get expected result:\n", output)
		t.Log("Got:", string(got))
		t.Fail()
	}
}

// CheckText fails the test with a unified diff unless got equals want.
func CheckText(t *testing.T, want, got string) {
	t.Helper()
	if want == got {
		return
	}
	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(want),
		B:        difflib.SplitLines(got),
		FromFile: "want",
		ToFile:   "got",
		Context:  5,
	}
	d, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		t.Fatal(err)
	}
	t.Error(d)
}

// CheckGolden compares got with the golden file at path. A missing golden file is written
// from got.
func CheckGolden(t *testing.T, got []byte, path string) {
	t.Helper()
	want, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, got, 0644); err != nil {
			t.Fatal(err)
		}
		return
	} else if err != nil {
		t.Fatal(err)
	}
	CheckText(t, string(want), string(got))
}

func checkError(t *testing.T, want *errors.SchemaError, got error) {
	t.Helper()
	if want == nil {
		if got != nil {
			t.Fatalf("unexpected error: %v", got)
		}
		return
	}
	if got == nil {
		t.Fatalf("expected error %q, got none", want.Message)
	}

	var serr *errors.SchemaError
	if !stderrors.As(got, &serr) {
		t.Fatalf("expected a *errors.SchemaError, got %T: %v", got, got)
	}
	if want.Kind != nil && !stderrors.Is(serr, want.Kind) {
		t.Errorf("wrong kind:\n  got: %v\n want: %v", serr.Kind, want.Kind)
	}
	if want.Message != "" && serr.Message != want.Message {
		t.Errorf("wrong message:\n  got: %s\n want: %s", serr.Message, want.Message)
	}
	if want.Rule != "" && serr.Rule != want.Rule {
		t.Errorf("wrong rule:\n  got: %s\n want: %s", serr.Rule, want.Rule)
	}
	if want.Locations != nil && !reflect.DeepEqual(serr.Locations, want.Locations) {
		t.Errorf("wrong locations:\n  got: %v\n want: %v", serr.Locations, want.Locations)
	}
}

// Fixture is the YAML form of a Test. Model and Resolvers are written as YAML and compared
// as JSON.
type Fixture struct {
	Name      string      `yaml:"name"`
	Schema    string      `yaml:"schema"`
	Model     interface{} `yaml:"model"`
	Resolvers interface{} `yaml:"resolvers"`
	SDL       string      `yaml:"sdl"`
	Error     *struct {
		Kind      string            `yaml:"kind"`
		Message   string            `yaml:"message"`
		Rule      string            `yaml:"rule"`
		Locations []errors.Location `yaml:"locations"`
	} `yaml:"error"`
}

var kinds = map[string]error{}

func init() {
	for _, k := range []error{
		errors.ErrSyntax,
		errors.ErrMalformedField,
		errors.ErrUnknownType,
		errors.ErrDuplicateDeclaration,
		errors.ErrDuplicateEnumValue,
		errors.ErrCyclicInheritance,
		errors.ErrNotAnInterface,
		errors.ErrMissingInterfaceField,
		errors.ErrFieldTypeMismatch,
		errors.ErrInvalidUnionMember,
		errors.ErrMissingQueryType,
	} {
		kinds[k.Error()] = k
	}
}

// LoadFixtures reads a YAML list of fixtures from path and converts them to tests.
func LoadFixtures(path string) ([]*Test, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var fixtures []*Fixture
	if err := yaml.UnmarshalWithOptions(b, &fixtures, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	tests := make([]*Test, len(fixtures))
	for i, f := range fixtures {
		test := &Test{Name: f.Name, Schema: f.Schema, ExpectedSDL: f.SDL}
		if test.ExpectedModel, err = toJSON(f.Model); err != nil {
			return nil, fmt.Errorf("%s: fixture %q: %w", path, f.Name, err)
		}
		if test.ExpectedResolvers, err = toJSON(f.Resolvers); err != nil {
			return nil, fmt.Errorf("%s: fixture %q: %w", path, f.Name, err)
		}
		if f.Error != nil {
			kind, ok := kinds[f.Error.Kind]
			if f.Error.Kind != "" && !ok {
				return nil, fmt.Errorf("%s: fixture %q: unknown error kind %q", path, f.Name, f.Error.Kind)
			}
			test.ExpectedError = &errors.SchemaError{
				Kind:      kind,
				Message:   f.Error.Message,
				Rule:      f.Error.Rule,
				Locations: f.Error.Locations,
			}
		}
		tests[i] = test
	}
	return tests, nil
}

func toJSON(v interface{}) (string, error) {
	if v == nil {
		return "", nil
	}
	b, err := json.Marshal(normalizeYAML(v))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// normalizeYAML turns the map[interface{}]interface{} values a generic YAML decode may
// produce into string-keyed maps encoding/json accepts.
func normalizeYAML(v interface{}) interface{} {
	switch v := v.(type) {
	case map[interface{}]interface{}:
		m := make(map[string]interface{}, len(v))
		for k, e := range v {
			m[fmt.Sprint(k)] = normalizeYAML(e)
		}
		return m
	case map[string]interface{}:
		for k, e := range v {
			v[k] = normalizeYAML(e)
		}
		return v
	case []interface{}:
		for i, e := range v {
			v[i] = normalizeYAML(e)
		}
		return v
	default:
		return v
	}
}
