package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/mattn/go-isatty"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/collection"
	"github.com/reoring/formskema/i18n"
	"github.com/reoring/formskema/internal/config"
	"github.com/reoring/formskema/internal/jsonio"
	"github.com/reoring/formskema/session"
	"github.com/reoring/formskema/tui"
	"github.com/reoring/formskema/yamlschema"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "export":
		exportCmd(os.Args[2:])
	case "validate":
		validateCmd(os.Args[2:])
	case "edit":
		editCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "formskema CLI\n\nUsage:\n  formskema export -schema s.yaml [-o out.json]\n  formskema validate -schema s.yaml -object objs.json [-ignore-missing] [-ignore-unknown]\n  formskema edit -schema s.yaml [-in objs.json] [-o out.json] [-single] [-config c.yaml] [-v]\n\nNotes:\n  - Object files hold one JSON object or an array of objects.\n  - edit needs an interactive terminal.")
}

// exportCmd writes the JSON Schema of a YAML schema file.
func exportCmd(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	var schemaPath, out string
	fs.StringVar(&schemaPath, "schema", "", "YAML schema file")
	fs.StringVar(&out, "o", "", "output filename (default stdout)")
	_ = fs.Parse(args)
	if schemaPath == "" {
		fs.Usage()
		os.Exit(2)
	}
	s, err := yamlschema.LoadFile(schemaPath)
	if err != nil {
		fatalf("schema: %v", err)
	}
	if err := writeOutput(out, func(w io.Writer) error { return jsonio.Encode(w, s.JSONSchema()) }); err != nil {
		fatalf("export: %v", err)
	}
}

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var schemaPath, objPath string
	var opt formskema.ValidateOpt
	fs.StringVar(&schemaPath, "schema", "", "YAML schema file")
	fs.StringVar(&objPath, "object", "", "JSON object file")
	fs.BoolVar(&opt.IgnoreMissing, "ignore-missing", false, "do not report missing keys")
	fs.BoolVar(&opt.IgnoreUnknown, "ignore-unknown", false, "do not report unknown keys")
	_ = fs.Parse(args)
	if schemaPath == "" || objPath == "" {
		fs.Usage()
		os.Exit(2)
	}
	s, err := yamlschema.LoadFile(schemaPath)
	if err != nil {
		fatalf("schema: %v", err)
	}
	objs, err := readObjects(objPath, s)
	if err != nil {
		fatalf("objects: %v", err)
	}
	if bad := report(os.Stdout, s, objs, opt); bad > 0 {
		os.Exit(1)
	}
}

// report prints one line per object plus its issues and returns how many
// objects were not valid.
func report(w io.Writer, s *formskema.Schema, objs []formskema.Object, opt formskema.ValidateOpt) int {
	bad := 0
	for i, obj := range objs {
		r := formskema.ValidateObject(s, obj, opt)
		fmt.Fprintf(w, "#%d: %s\n", i, r)
		if r.OK() {
			continue
		}
		bad++
		for _, is := range r.Issues() {
			line := fmt.Sprintf("  %s %s: %s", is.Path, is.Code, is.Message)
			if is.Hint != "" {
				line += " (" + is.Hint + ")"
			}
			fmt.Fprintln(w, line)
		}
	}
	return bad
}

func editCmd(args []string) {
	fs := flag.NewFlagSet("edit", flag.ExitOnError)
	var schemaPath, in, out, cfgPath string
	var single, verbose bool
	fs.StringVar(&schemaPath, "schema", "", "YAML schema file")
	fs.StringVar(&in, "in", "", "JSON object file to start from")
	fs.StringVar(&out, "o", "", "output filename (default stdout)")
	fs.StringVar(&cfgPath, "config", "", "config file (default $FORMSKEMA_CONFIG or formskema.yaml)")
	fs.BoolVar(&single, "single", false, "edit one object instead of a collection")
	fs.BoolVar(&verbose, "v", false, "enable verbose logs")
	_ = fs.Parse(args)
	if schemaPath == "" {
		fs.Usage()
		os.Exit(2)
	}
	if !isTerminal(os.Stdin) {
		fatalf("edit: stdin is not a terminal")
	}

	logger := log.New(io.Discard, "formskema: ", log.LstdFlags)
	if verbose {
		logger.SetOutput(os.Stderr)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		fatalf("config: %v", err)
	}
	i18n.SetLanguage(cfg.Language)

	s, err := yamlschema.LoadFile(schemaPath)
	if err != nil {
		fatalf("schema: %v", err)
	}
	var objs []formskema.Object
	if in != "" {
		if objs, err = readObjects(in, s); err != nil {
			fatalf("objects: %v", err)
		}
	}
	logger.Printf("edit: schema=%s keys=%d objects=%d", schemaPath, s.Len(), len(objs))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	styles := tui.PlainStyles()
	if isTerminal(os.Stderr) {
		styles = tui.DefaultStyles()
	}
	driver := tui.NewSurveyDriver(os.Stdin, os.Stderr)
	prompts := tui.Prompts{Driver: driver, Styles: styles}

	var (
		encode   func(io.Writer) error
		accepted bool
	)
	if single {
		var initial formskema.Object
		if len(objs) > 0 {
			initial = objs[0]
		}
		hooks := session.ObjectHooks{
			Accept: func(o *session.ObjectSession, _ formskema.Object) bool {
				logger.Printf("object session %s accepted", o.ID())
				return true
			},
		}
		var obj formskema.Object
		obj, accepted, err = session.RunObjectSession(ctx, s, initial, hooks, prompts, &tui.Editor{Driver: driver, Styles: styles})
		encode = func(w io.Writer) error { return jsonio.EncodeObject(w, s, obj) }
	} else {
		m := collection.New(s, cfg.Options())
		if err := m.Load(objs); err != nil {
			fatalf("load: %v", err)
		}
		var result []formskema.Object
		result, accepted, err = session.RunCollectionSession(ctx, m, collectionHooks(logger), prompts, tui.NewCollectionDriver(driver, styles), cfg.SessionOptions())
		encode = func(w io.Writer) error { return jsonio.EncodeObjects(w, s, result) }
	}
	if err != nil {
		fatalf("edit: %v", err)
	}
	if !accepted {
		logger.Printf("edit: cancelled, nothing written")
		os.Exit(1)
	}
	if err := writeOutput(out, encode); err != nil {
		fatalf("write: %v", err)
	}
}

func collectionHooks(logger *log.Logger) session.CollectionHooks {
	return session.CollectionHooks{
		Accept: func(c *session.CollectionSession, objs []formskema.Object) bool {
			logger.Printf("collection session %s accepted with %d objects", c.ID(), len(objs))
			return true
		},
		Reject: func(c *session.CollectionSession) bool {
			logger.Printf("collection session %s rejected", c.ID())
			return true
		},
		ItemAccept: func(c *session.CollectionSession, item *session.ObjectSession, _ formskema.Object) bool {
			logger.Printf("collection session %s: item %s accepted", c.ID(), item.ID())
			return true
		},
	}
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// readObjects reads a JSON object file written by edit or by hand.
func readObjects(path string, s *formskema.Schema) ([]formskema.Object, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return jsonio.DecodeObjectsFor(f, s)
}

// writeOutput runs encode against path, or against stdout when path is empty.
func writeOutput(path string, encode func(io.Writer) error) error {
	if path == "" {
		return encode(os.Stdout)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, "formskema: "+format+"\n", a...)
	os.Exit(1)
}
