package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-inputprops/pkg/formspec"
	"github.com/goliatone/go-inputprops/pkg/openapi"
	"github.com/goliatone/go-inputprops/pkg/pipeline"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint form documents and OpenAPI %s extensions.\n", openapi.ExtensionKey); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx := context.Background()
	registry := pipeline.NewRegistry()

	var violations []violation
	for _, path := range paths {
		linted, err := lintFile(ctx, registry, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sort.Slice(violations, func(i, j int) bool {
			if violations[i].file == violations[j].file {
				if violations[i].location == violations[j].location {
					return violations[i].message < violations[j].message
				}
				return violations[i].location < violations[j].location
			}
			return violations[i].file < violations[j].file
		})
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

func lintFile(ctx context.Context, registry *pipeline.Registry, path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	if !isOpenAPI(raw) {
		form, err := formspec.Load(raw)
		if err != nil {
			return []violation{{file: path, location: "form", message: err.Error()}}, nil
		}
		return lintForm(path, []string{"form", form.ID}, form, registry), nil
	}

	doc, err := openapi.Parse(ctx, openapi.SourceFromFile(path), raw)
	if err != nil {
		return nil, err
	}

	var result []violation
	refs := doc.SchemaNames()
	for _, op := range doc.Operations() {
		refs = append(refs, op.ID)
	}
	for _, ref := range refs {
		base := []string{"form", ref}
		form, err := doc.Form(ref)
		if err != nil {
			result = append(result, violation{file: path, location: formatLocation(base), message: err.Error()})
			continue
		}
		result = append(result, lintForm(path, base, form, registry)...)
	}
	return result, nil
}

func lintForm(file string, base []string, form formspec.Form, registry *pipeline.Registry) []violation {
	var result []violation
	for _, field := range form.Fields {
		if _, err := field.BindConfig(registry); err != nil {
			result = append(result, violation{
				file:     file,
				location: formatLocation(appendPath(base, field.Name)),
				message:  err.Error(),
			})
		}
	}
	return result
}

// isOpenAPI looks for a top-level openapi version key in JSON or YAML.
func isOpenAPI(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return bytes.Contains(trimmed, []byte(`"openapi"`)) || bytes.HasPrefix(trimmed, []byte("openapi:")) || bytes.Contains(trimmed, []byte("\nopenapi:"))
}

func appendPath(path []string, segment string) []string {
	next := append([]string(nil), path...)
	next = append(next, segment)
	return next
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
