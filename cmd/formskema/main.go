package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"regexp"
	"sort"

	gojson "github.com/goccy/go-json"
	g "github.com/reoring/goskema/dsl"
	"gopkg.in/yaml.v3"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/reactive"
	"github.com/reoring/formskema/skema"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "check":
		checkCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "formskema CLI\n\nUsage:\n  formskema check -form form.yaml -values values.json [-sanitized]\n\nNotes:\n  - form.yaml declares fields (type, required, minLen/maxLen/pattern, min/max).\n  - values.json is the raw form data; exit code 1 when validation fails.")
}

type formDef struct {
	Fields map[string]fieldDef `yaml:"fields"`
}

type fieldDef struct {
	Type     string   `yaml:"type"`
	Required bool     `yaml:"required"`
	MinLen   *int     `yaml:"minLen"`
	MaxLen   *int     `yaml:"maxLen"`
	Pattern  string   `yaml:"pattern"`
	Min      *float64 `yaml:"min"`
	Max      *float64 `yaml:"max"`
	Coerce   bool     `yaml:"coerce"`
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var formPath, valuesPath string
	var sanitized bool
	fs.StringVar(&formPath, "form", "", "YAML form definition")
	fs.StringVar(&valuesPath, "values", "", "JSON values document")
	fs.BoolVar(&sanitized, "sanitized", false, "print the sanitized values on success")
	_ = fs.Parse(args)
	if formPath == "" || valuesPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	schema, err := loadForm(formPath)
	if err != nil {
		fatalf("form: %v", err)
	}
	raw, err := os.ReadFile(valuesPath)
	if err != nil {
		fatalf("values: %v", err)
	}
	vals, err := formskema.ValuesFromJSON(raw)
	if err != nil {
		fatalf("values: %v", err)
	}

	eng, err := formskema.New(reactive.NewState(vals), schema)
	if err != nil {
		fatalf("engine: %v", err)
	}
	res := eng.Validate(context.Background())
	if !res.Valid {
		errs := eng.Errors().Get()
		keys := make([]string, 0, len(errs))
		for k := range errs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if st := errs[k]; st.Failed() {
				fmt.Fprintf(os.Stderr, "%s: %s\n", k, st.Message)
			}
		}
		os.Exit(1)
	}
	if sanitized {
		out, err := gojson.MarshalIndent(res.Sanitized, "", "  ")
		if err != nil {
			fatalf("encode: %v", err)
		}
		fmt.Println(string(out))
		return
	}
	fmt.Println("ok")
}

func loadForm(path string) (formskema.ObjectSchema, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var def formDef
	if err := yaml.Unmarshal(raw, &def); err != nil {
		return nil, err
	}
	if len(def.Fields) == 0 {
		return nil, fmt.Errorf("%s: no fields declared", path)
	}

	b := skema.Object()
	for name, fd := range def.Fields {
		ad, err := adapterFor(fd)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		b.Field(name, ad)
		if fd.Required {
			b.Require(name)
		}
	}
	return b.Build()
}

func adapterFor(fd fieldDef) (g.AnyAdapter, error) {
	switch fd.Type {
	case "string":
		s := skema.String()
		if fd.MinLen != nil {
			s.MinLen(*fd.MinLen)
		}
		if fd.MaxLen != nil {
			s.MaxLen(*fd.MaxLen)
		}
		if fd.Pattern != "" {
			re, err := regexp.Compile(fd.Pattern)
			if err != nil {
				return g.AnyAdapter{}, err
			}
			s.Pattern(re)
		}
		return g.SchemaOf[string](s), nil
	case "number":
		n := g.NumberJSON()
		if fd.Coerce {
			n = n.CoerceFromString()
		}
		ad := g.SchemaOf[json.Number](n)
		if fd.Min != nil {
			ad = ad.Min(*fd.Min)
		}
		if fd.Max != nil {
			ad = ad.Max(*fd.Max)
		}
		return ad, nil
	case "bool":
		return g.BoolOf[bool](), nil
	default:
		return g.AnyAdapter{}, fmt.Errorf("unsupported type %q", fd.Type)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
