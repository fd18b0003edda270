package cli

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	sdl "github.com/graph-gophers/graphql-sdl"
	"github.com/graph-gophers/graphql-sdl/ast"
	"github.com/graph-gophers/graphql-sdl/materialize"
)

func (a *app) compileCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "compile [file...]",
		Short: "Print the linked schema model",
		Long: `Print the linked schema model of one document. Several files are compiled
concurrently and printed as a map from path to model.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) <= 1 {
				s, err := a.compile(args)
				if err != nil {
					return err
				}
				return a.write(s.Model())
			}

			schemas, err := a.compileAll(args)
			if err != nil {
				return err
			}
			models := make(map[string]*ast.Schema, len(schemas))
			for path, s := range schemas {
				models[path] = s.Model()
			}
			return a.write(models)
		},
	}
}

func (a *app) resolversCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resolvers [file]",
		Short: "Print the resolver signature of every Query field",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.compile(args)
			if err != nil {
				return err
			}
			sigs, err := s.Resolvers()
			if err != nil {
				return err
			}
			return a.write(sigs)
		},
	}
}

func (a *app) materializeCommand() *cobra.Command {
	var (
		depth   int
		example bool
	)
	cmd := &cobra.Command{
		Use:   "materialize file [type...]",
		Short: "Expand types into value shapes",
		Long: `Expand the named types, or every object type except Query, into value
shapes. Expansion stops at cycles and at --depth; both are reported as
references instead of being cut silently.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("depth") {
				a.cfg.MaterializeDepth = depth
			}
			s, err := a.compile(args[:1])
			if err != nil {
				return err
			}

			shapes := make(map[string]*materialize.Shape)
			if len(args) == 1 {
				shapes = s.MaterializeAll()
			}
			for _, name := range args[1:] {
				if shapes[name], err = s.Materialize(a.ctx, name); err != nil {
					return err
				}
			}

			if !example {
				return a.write(shapes)
			}
			examples := make(map[string]interface{}, len(shapes))
			for name, shape := range shapes {
				examples[name] = materialize.Example(shape)
			}
			return a.write(examples)
		},
	}
	cmd.Flags().IntVar(&depth, "depth", 0, "maximum expansion depth, 0 for cycles only")
	cmd.Flags().BoolVar(&example, "example", false, "print example values instead of shapes")
	return cmd
}

func (a *app) printCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "print [file]",
		Short: "Print the schema as canonical SDL",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.compile(args)
			if err != nil {
				return err
			}
			_, err = io.WriteString(a.out, s.SDL())
			return err
		},
	}
}

func (a *app) normalizeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "normalize [file]",
		Short: "Strip descriptions, comments and directives",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := a.read(args)
			if err != nil {
				return err
			}
			_, err = io.WriteString(a.out, sdl.Normalize(text))
			return err
		},
	}
}

func (a *app) introspectCommand() *cobra.Command {
	var names bool
	cmd := &cobra.Command{
		Use:   "introspect [file]",
		Short: "Print the introspection view of the schema",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.compile(args)
			if err != nil {
				return err
			}
			if names {
				kinds := make(map[string]string)
				for _, t := range s.Inspect().Types() {
					kinds[*t.Name()] = t.Kind()
				}
				l := make([]string, 0, len(kinds))
				for name := range kinds {
					l = append(l, name)
				}
				sort.Strings(l)
				for _, name := range l {
					if _, err := fmt.Fprintf(a.out, "%s\t%s\n", kinds[name], name); err != nil {
						return err
					}
				}
				return nil
			}
			return a.write(map[string]interface{}{"__schema": s.Inspect().Snapshot()})
		},
	}
	cmd.Flags().BoolVar(&names, "types", false, "only list type kinds and names")
	return cmd
}
