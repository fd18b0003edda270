// Package cli implements the sdlc command.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	stdlog "log"
	"os"

	"github.com/go-logr/stdr"
	opentracing "github.com/opentracing/opentracing-go"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
	jaegercfg "github.com/uber/jaeger-client-go/config"
	jaegerlog "github.com/uber/jaeger-client-go/log"
	"gopkg.in/yaml.v3"

	sdl "github.com/graph-gophers/graphql-sdl"
	"github.com/graph-gophers/graphql-sdl/config"
	"github.com/graph-gophers/graphql-sdl/log"
	"github.com/graph-gophers/graphql-sdl/trace/noop"
	sdlopentracing "github.com/graph-gophers/graphql-sdl/trace/opentracing"
	otelsdl "github.com/graph-gophers/graphql-sdl/trace/otel"
	"github.com/graph-gophers/graphql-sdl/trace/tracer"
)

type app struct {
	in       io.Reader
	out, err io.Writer

	configPath string
	cfg        *config.Config
	ctx        context.Context
	tracer     tracer.Tracer
	closer     io.Closer
}

// NewRootCommand builds the sdlc command tree reading documents from in and writing
// results to out. Logs go to errOut.
func NewRootCommand(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, err: errOut, ctx: context.Background()}

	var (
		format    string
		tracerOpt string
		verbosity int
	)

	root := &cobra.Command{
		Use:   "sdlc",
		Short: "Compile GraphQL schema definition documents",
		Long: `sdlc compiles a GraphQL SDL document into a linked schema model and
derives the resolver signature of every Query field.

Documents are read from the file named by the first argument, or from stdin
when the argument is "-" or missing. Settings are read from .sdlc.yaml in the
working directory when present; flags override them.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			flags := cmd.Flags()
			if flags.Changed("format") {
				cfg.Format = format
			}
			if flags.Changed("tracer") {
				cfg.Tracer = tracerOpt
			}
			if flags.Changed("verbose") {
				cfg.Verbosity = verbosity
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			a.cfg = cfg

			stdr.SetVerbosity(cfg.Verbosity)
			logger := stdr.New(stdlog.New(a.err, "", stdlog.LstdFlags))
			a.ctx = log.WithLogger(cmd.Context(), logger)

			return a.setupTracer()
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if a.closer != nil {
				return a.closer.Close()
			}
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", config.File, "configuration file")
	flags.StringVarP(&format, "format", "f", "json", `output format, "json" or "yaml"`)
	flags.StringVar(&tracerOpt, "tracer", "none", `compile tracer: "none", "opentracing", "otel" or "jaeger"`)
	flags.IntVarP(&verbosity, "verbose", "v", 0, "log verbosity")

	root.AddCommand(
		a.compileCommand(),
		a.resolversCommand(),
		a.materializeCommand(),
		a.printCommand(),
		a.normalizeCommand(),
		a.introspectCommand(),
	)
	return root
}

func (a *app) setupTracer() error {
	switch a.cfg.Tracer {
	case "opentracing":
		a.tracer = sdlopentracing.Tracer{}
	case "otel":
		a.tracer = otelsdl.DefaultTracer()
	case "jaeger":
		cfg, err := jaegercfg.FromEnv()
		if err != nil {
			return fmt.Errorf("configuring jaeger: %w", err)
		}
		if cfg.ServiceName == "" {
			cfg.ServiceName = "sdlc"
		}
		t, closer, err := cfg.NewTracer(jaegercfg.Logger(jaegerlog.StdLogger))
		if err != nil {
			return fmt.Errorf("configuring jaeger: %w", err)
		}
		opentracing.SetGlobalTracer(t)
		a.tracer = sdlopentracing.Tracer{}
		a.closer = closer
	default:
		a.tracer = noop.Tracer{}
	}
	return nil
}

// read returns the document named by args[0], or stdin.
func (a *app) read(args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		b, err := io.ReadAll(a.in)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(b), nil
	}
	b, err := os.ReadFile(args[0])
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (a *app) compile(args []string) (*sdl.Schema, error) {
	text, err := a.read(args)
	if err != nil {
		return nil, err
	}
	return sdl.Compile(a.ctx, text, a.opts()...)
}

// compileAll compiles every named file concurrently, keyed by path.
func (a *app) compileAll(paths []string) (map[string]*sdl.Schema, error) {
	docs := make(map[string]string, len(paths))
	for _, path := range paths {
		text, err := a.read([]string{path})
		if err != nil {
			return nil, err
		}
		docs[path] = text
	}
	return sdl.CompileAll(a.ctx, docs, a.opts()...)
}

func (a *app) opts() []sdl.SchemaOpt {
	return []sdl.SchemaOpt{
		sdl.Tracer(a.tracer),
		sdl.MaxMaterializeDepth(a.cfg.MaterializeDepth),
	}
}

// write encodes v in the configured format.
func (a *app) write(v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if a.cfg.Format == "yaml" {
		if b, err = toYAML(b, len(a.cfg.Indent)); err != nil {
			return err
		}
	} else {
		b = pretty.PrettyOptions(b, &pretty.Options{Width: 80, Indent: a.cfg.Indent})
	}
	_, err = a.out.Write(b)
	return err
}

// toYAML re-encodes a JSON document as block-style YAML, keeping key order.
func toYAML(data []byte, indent int) ([]byte, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	resetStyle(&node)

	if indent < 2 {
		indent = 2
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(indent)
	if err := enc.Encode(&node); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func resetStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		resetStyle(c)
	}
}
