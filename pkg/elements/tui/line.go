package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// LineDriver prompts on plain line-oriented streams, for piped input or
// terminals survey cannot drive. Password input is not masked.
type LineDriver struct {
	in  *bufio.Reader
	out io.Writer
}

// NewLineDriver reads answers from in and writes prompts to out.
func NewLineDriver(in io.Reader, out io.Writer) *LineDriver {
	if out == nil {
		out = io.Discard
	}
	return &LineDriver{in: bufio.NewReader(in), out: out}
}

var _ PromptDriver = (*LineDriver)(nil)

func (d *LineDriver) Input(ctx context.Context, cfg InputConfig) (string, error) {
	for {
		suffix := ""
		if cfg.Default != "" {
			suffix = fmt.Sprintf(" [%s]", cfg.Default)
		}
		answer, err := d.ask(ctx, cfg.Message+suffix)
		if err != nil {
			return "", err
		}
		if answer == "" {
			answer = cfg.Default
		}
		if cfg.Validator != nil {
			if err := cfg.Validator(answer); err != nil {
				fmt.Fprintf(d.out, "  %v\n", err)
				continue
			}
		}
		return answer, nil
	}
}

func (d *LineDriver) Password(ctx context.Context, cfg InputConfig) (string, error) {
	cfg.Default = ""
	return d.Input(ctx, cfg)
}

func (d *LineDriver) Confirm(ctx context.Context, cfg ConfirmConfig) (bool, error) {
	hint := " [y/N]"
	if cfg.Default {
		hint = " [Y/n]"
	}
	for {
		answer, err := d.ask(ctx, cfg.Message+hint)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(answer) {
		case "":
			return cfg.Default, nil
		case "y", "yes", "true", "1":
			return true, nil
		case "n", "no", "false", "0":
			return false, nil
		}
		fmt.Fprintln(d.out, "  please answer yes or no")
	}
}

func (d *LineDriver) Info(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := fmt.Fprintln(d.out, msg)
	return err
}

func (d *LineDriver) ask(ctx context.Context, message string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if _, err := fmt.Fprintf(d.out, "%s: ", message); err != nil {
		return "", err
	}
	line, err := d.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrAborted
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}
