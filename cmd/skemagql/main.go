package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/graphql-go/graphql"

	skemagql "github.com/reoring/skemagql"
	"github.com/reoring/skemagql/hclschema"
	"github.com/reoring/skemagql/internal/sdl"
	"github.com/reoring/skemagql/jsonschema"
	"github.com/reoring/skemagql/openapi"
)

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "skemagql CLI\n\nUsage:\n  skemagql sdl    -in FILE [-format json|yaml|hcl|openapi] [-root Query] [-discriminator type] [-strict] [-v]\n  skemagql check  -in FILE [flags]\n  skemagql fields -in FILE [flags]\n\nThe format is guessed from the file extension when -format is omitted.\n-strict fails on importer warnings for json, yaml and openapi input; hcl\ninput rejects unknown attributes and blocks regardless.")
}

// run executes one sub-command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		usage(stderr)
		return 2
	}
	var cmd func(*config, graphql.Fields) error
	switch args[0] {
	case "sdl":
		cmd = sdlCmd
	case "check":
		cmd = checkCmd
	case "fields":
		cmd = fieldsCmd
	default:
		usage(stderr)
		return 2
	}

	cfg, err := parseFlags(args[0], args[1:], stderr)
	if err != nil {
		return 2
	}
	cfg.out = stdout
	cfg.log = newLogger(stderr, cfg.verbose)

	fields, err := cfg.translate(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", args[0], err)
		return 1
	}
	if err := cmd(cfg, fields); err != nil {
		fmt.Fprintf(stderr, "%s: %v\n", args[0], err)
		return 1
	}
	return 0
}

type config struct {
	in            string
	format        string
	root          string
	discriminator string
	strict        bool
	verbose       bool

	out io.Writer
	log *slog.Logger
}

func parseFlags(name string, args []string, stderr io.Writer) (*config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	cfg := &config{}
	fs.StringVar(&cfg.in, "in", "", "descriptor source file")
	fs.StringVar(&cfg.format, "format", "", "input format: json, yaml, hcl or openapi")
	fs.StringVar(&cfg.root, "root", openapi.DefaultRoot, "root type name (and OpenAPI component to import)")
	fs.StringVar(&cfg.discriminator, "discriminator", skemagql.DefaultDiscriminator, "field used to resolve union members")
	fs.BoolVar(&cfg.strict, "strict", false, "treat importer warnings as errors (json, yaml, openapi)")
	fs.BoolVar(&cfg.verbose, "v", false, "enable verbose logs")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if cfg.in == "" {
		fs.Usage()
		return nil, errors.New("missing -in")
	}
	if cfg.format == "" {
		cfg.format = formatFromExt(cfg.in)
	}
	return cfg, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func formatFromExt(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	case ".hcl":
		return "hcl"
	default:
		return "json"
	}
}

// load reads cfg.in and converts it into descriptors.
func (cfg *config) load(ctx context.Context) (map[string]skemagql.Descriptor, error) {
	if cfg.format == "hcl" {
		return hclschema.DecodeFile(cfg.in)
	}
	data, err := os.ReadFile(cfg.in)
	if err != nil {
		return nil, err
	}
	var (
		descs map[string]skemagql.Descriptor
		warns []string
	)
	switch cfg.format {
	case "json", "yaml":
		opts := jsonschema.Options{Strict: cfg.strict}
		var diag jsonschema.Diag
		if cfg.format == "json" {
			descs, diag, err = jsonschema.Import(data, opts)
		} else {
			descs, diag, err = jsonschema.ImportYAML(data, opts)
		}
		if diag != nil {
			warns = diag.Warnings()
		}
	case "openapi":
		var diag openapi.Diag
		descs, diag, err = openapi.Import(ctx, data, openapi.Options{Root: cfg.root, Strict: cfg.strict})
		if diag != nil {
			warns = diag.Warnings()
		}
	default:
		return nil, fmt.Errorf("unknown format %q", cfg.format)
	}
	for _, w := range warns {
		cfg.log.Warn("import warning", "file", cfg.in, "warning", w)
	}
	return descs, err
}

func (cfg *config) translate(ctx context.Context) (graphql.Fields, error) {
	descs, err := cfg.load(ctx)
	if err != nil {
		return nil, err
	}
	cfg.log.Debug("descriptors loaded", "file", cfg.in, "format", cfg.format, "count", len(descs))
	return skemagql.New(skemagql.Options{
		Discriminator: cfg.discriminator,
		Logger:        cfg.log,
	}).Translate(descs)
}

func (cfg *config) rootObject(fields graphql.Fields) *graphql.Object {
	return graphql.NewObject(graphql.ObjectConfig{Name: cfg.root, Fields: fields})
}

func sdlCmd(cfg *config, fields graphql.Fields) error {
	root := cfg.rootObject(fields)
	if err := root.Error(); err != nil {
		return err
	}
	_, err := io.WriteString(cfg.out, sdl.Print(root))
	return err
}

func checkCmd(cfg *config, fields graphql.Fields) error {
	if _, err := graphql.NewSchema(graphql.SchemaConfig{Query: cfg.rootObject(fields)}); err != nil {
		return err
	}
	fmt.Fprintf(cfg.out, "ok: %d fields\n", len(fields))
	return nil
}

type fieldSummary struct {
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Args        []string `json:"args,omitempty"`
}

func fieldsCmd(cfg *config, fields graphql.Fields) error {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]fieldSummary, 0, len(names))
	for _, name := range names {
		f := fields[name]
		s := fieldSummary{Name: name, Type: f.Type.String(), Description: f.Description}
		for _, arg := range sortedArgs(f.Args) {
			s.Args = append(s.Args, arg+": "+f.Args[arg].Type.String())
		}
		out = append(out, s)
	}
	enc := json.NewEncoder(cfg.out)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func sortedArgs(args graphql.FieldConfigArgument) []string {
	names := make([]string, 0, len(args))
	for name := range args {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
