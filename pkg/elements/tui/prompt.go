package tui

import (
	"context"

	"github.com/goliatone/go-inputprops/pkg/bind"
	"github.com/goliatone/go-inputprops/pkg/inputprops"
	"github.com/goliatone/go-inputprops/pkg/pipeline"
)

// Prompt is a terminal element. Checkbox props are asked with a confirm
// prompt, anything else with an input prompt defaulting to the displayed
// value.
type Prompt struct {
	Name   string
	Label  string
	Help   string
	Secret bool

	props inputprops.Props
	bound bool
}

var _ inputprops.Element = (*Prompt)(nil)

// SetProps stores the props computed by a binding wrapper.
func (p *Prompt) SetProps(props inputprops.Props) {
	p.props = props
	p.bound = true
}

func (p *Prompt) validator() func(string) error {
	accepts := p.props.Accepts
	if accepts == nil {
		return nil
	}
	return func(answer string) error {
		if p.Secret && answer == "" {
			return nil
		}
		if !accepts(bind.TargetValue(answer)) {
			return ErrRejected
		}
		return nil
	}
}

// Ask prompts once through driver and hands the answer to the binding.
// A pending error message is shown before the prompt. Answers the binding
// would reject fail the driver's validation. An empty secret answer keeps
// the stored value.
func (p *Prompt) Ask(ctx context.Context, driver PromptDriver) error {
	if !p.bound || p.props.OnChange == nil {
		return ErrUnbound
	}
	if p.props.Error && p.props.HelperText != "" {
		if err := driver.Info(ctx, "! "+p.props.HelperText); err != nil {
			return err
		}
	}

	label := p.Label
	if label == "" {
		label = p.Name
	}

	if p.props.Checkbox {
		answer, err := driver.Confirm(ctx, ConfirmConfig{
			Message: label,
			Default: p.props.Checked,
			Help:    p.Help,
		})
		if err != nil {
			return err
		}
		return p.props.OnChange(ctx, bind.TargetChecked(answer))
	}

	cfg := InputConfig{Message: label, Help: p.Help, Validator: p.validator()}
	var (
		answer string
		err    error
	)
	if p.Secret {
		answer, err = driver.Password(ctx, cfg)
	} else {
		cfg.Default = pipeline.Stringify(p.props.Value)
		answer, err = driver.Input(ctx, cfg)
	}
	if err != nil {
		return err
	}
	if p.Secret && answer == "" {
		return nil
	}
	return p.props.OnChange(ctx, bind.TargetValue(answer))
}
