package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"os/signal"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-inputprops/pkg/elements/tui"
	"github.com/goliatone/go-inputprops/pkg/openapi"
	"github.com/goliatone/go-inputprops/pkg/orchestrator"
)

func main() {
	formPath := flag.String("form", "", "form document (JSON or YAML)")
	source := flag.String("openapi", "", "OpenAPI document path or URL")
	ref := flag.String("ref", "", "component schema or operation id in the OpenAPI document")
	mode := flag.String("mode", "html", "html renders the form, tui prompts for every field")
	submit := flag.String("submit", "", "url-encoded values applied before rendering (html mode)")
	output := flag.String("output", "", "output file (stdout if empty)")
	templates := flag.String("templates", "", "directory overriding the built-in templates")
	tokens := flag.String("theme-tokens", "", "YAML or JSON file mapping theme tokens to CSS classes")
	themeVariant := flag.String("theme-variant", "", "variant selected from the theme tokens file")
	verbose := flag.Bool("verbose", false, "log rejected values to stderr")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var opts []orchestrator.Option
	if *verbose {
		opts = append(opts, orchestrator.WithLogger(log.New(os.Stderr, "inputprops: ", 0)))
	}
	if *templates != "" {
		opts = append(opts, orchestrator.WithTemplateDir(*templates))
	}
	if *tokens != "" {
		selector, err := loadTokens(*tokens)
		if err != nil {
			log.Fatalf("Failed to load theme tokens: %v", err)
		}
		opts = append(opts, orchestrator.WithThemeSelector(selector, selector.name, *themeVariant))
	}
	if strings.HasPrefix(*source, "http://") || strings.HasPrefix(*source, "https://") {
		opts = append(opts, orchestrator.WithLoader(openapi.NewLoader(openapi.WithHTTPFallback(0))))
	}

	req, err := buildRequest(*formPath, *source, *ref)
	if err != nil {
		log.Fatalf("Invalid arguments: %v", err)
	}

	session, err := orchestrator.New(opts...).Session(ctx, req, nil)
	if err != nil {
		log.Fatalf("Failed to open form: %v", err)
	}

	var out []byte
	switch *mode {
	case "html":
		if *submit != "" {
			values, err := url.ParseQuery(*submit)
			if err != nil {
				log.Fatalf("Invalid -submit values: %v", err)
			}
			if _, err := session.Submit(ctx, values); err != nil {
				log.Fatalf("Failed to apply submission: %v", err)
			}
		}
		rendered, err := session.RenderHTML()
		if err != nil {
			log.Fatalf("Failed to render form: %v", err)
		}
		out = []byte(rendered)
	case "tui":
		complete, err := session.Prompt(ctx, promptDriver())
		if err != nil {
			log.Fatalf("Prompt failed: %v", err)
		}
		if !complete {
			for _, entry := range session.Errors().Entries() {
				fmt.Fprintf(os.Stderr, "%s: %s\n", entry.Field, entry.Message)
			}
		}
		out, err = json.MarshalIndent(session.Values(), "", "  ")
		if err != nil {
			log.Fatalf("Failed to encode values: %v", err)
		}
	default:
		log.Fatalf("unknown mode %q (want html or tui)", *mode)
	}

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Fprintf(os.Stderr, "Written to %s\n", *output)
		return
	}
	fmt.Println(string(out))
}

func buildRequest(formPath, source, ref string) (orchestrator.Request, error) {
	switch {
	case formPath != "" && source != "":
		return orchestrator.Request{}, fmt.Errorf("use either -form or -openapi")
	case formPath != "":
		return orchestrator.Request{FormPath: formPath}, nil
	case source == "":
		return orchestrator.Request{}, fmt.Errorf("-form or -openapi is required")
	}

	var src openapi.Source
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		parsed, err := openapi.SourceFromURL(source)
		if err != nil {
			return orchestrator.Request{}, err
		}
		src = parsed
	} else {
		src = openapi.SourceFromFile(source)
	}
	return orchestrator.Request{Source: src, Ref: ref}, nil
}

// promptDriver uses survey on a terminal and plain line prompts otherwise.
func promptDriver() tui.PromptDriver {
	fd := os.Stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return tui.NewSurveyDriver()
	}
	return tui.NewLineDriver(os.Stdin, os.Stderr)
}

type tokenSelector struct {
	name     string
	manifest *theme.Manifest
}

func (s tokenSelector) Select(_, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	return &theme.Selection{Theme: s.name, Variant: variant, Manifest: s.manifest}, nil
}

type tokenFile struct {
	Name     string                       `yaml:"name"`
	Tokens   map[string]string            `yaml:"tokens"`
	Variants map[string]map[string]string `yaml:"variants"`
}

func loadTokens(path string) (tokenSelector, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return tokenSelector{}, err
	}
	var file tokenFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return tokenSelector{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if file.Name == "" {
		file.Name = "cli"
	}
	manifest := &theme.Manifest{Name: file.Name, Tokens: file.Tokens}
	if len(file.Variants) > 0 {
		manifest.Variants = make(map[string]theme.Variant, len(file.Variants))
		for name, tokens := range file.Variants {
			manifest.Variants[name] = theme.Variant{Tokens: tokens}
		}
	}
	return tokenSelector{name: file.Name, manifest: manifest}, nil
}
