// Package functions provides the built-in resolver functions and assembles
// the default registry.
package functions

import (
	"context"
	"strings"

	"github.com/Ramsey-B/fern/pkg/errors"
	"github.com/Ramsey-B/fern/pkg/functions/registry"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/utils"
)

const (
	NumberRangeFunction    = "number_range"
	TextSplitFunction      = "text_split"
	ContextOptionsFunction = "context_options"
)

// Defaults returns a registry with all built-in functions registered.
// Hosts register their own functions on top.
func Defaults() *registry.Registry {
	r := registry.New()

	// Registration only fails on duplicate names, which would be a bug in
	// this package.
	_ = r.Register(NumberRangeFunction, NumberRange)
	_ = r.Register(TextSplitFunction, TextSplit)
	_ = r.Register(ContextOptionsFunction, ContextOptions)

	return r
}

type numberRangeArgs struct {
	From float64 `json:"from"`
	To   float64 `json:"to" validate:"required"`
	Step float64 `json:"step" validate:"omitempty,gt=0"`
}

// NumberRange produces numeric options from 'from' to 'to' inclusive,
// stepping by 'step' (default 1).
func NumberRange(_ context.Context, args map[string]any, _ models.Context) (any, error) {
	parsed, err := utils.ValidateArguments[numberRangeArgs](args)
	if err != nil {
		return nil, errors.NewResolverErrorf("invalid %s args: %v", NumberRangeFunction, err)
	}

	step := parsed.Step
	if step == 0 {
		step = 1
	}
	if parsed.From > parsed.To {
		return []any{}, nil
	}

	options := []any{}
	for n := parsed.From; n <= parsed.To; n += step {
		label := utils.Stringify(n)
		options = append(options, models.Option{"value": n, "label": label})
	}
	return options, nil
}

type textSplitArgs struct {
	Value     string `json:"value" validate:"required"`
	Separator string `json:"separator"`
}

// TextSplit splits a delimited string (default separator ",") into trimmed
// options.
func TextSplit(_ context.Context, args map[string]any, _ models.Context) (any, error) {
	parsed, err := utils.ValidateArguments[textSplitArgs](args)
	if err != nil {
		return nil, errors.NewResolverErrorf("invalid %s args: %v", TextSplitFunction, err)
	}

	separator := parsed.Separator
	if separator == "" {
		separator = ","
	}

	options := []any{}
	for _, part := range strings.Split(parsed.Value, separator) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		options = append(options, models.NewOption(part, part))
	}
	return options, nil
}

type contextOptionsArgs struct {
	Fields []string `json:"fields" validate:"required,min=1"`
}

// ContextOptions builds options from the current values of the named
// context fields, skipping fields that are absent or nil.
func ContextOptions(_ context.Context, args map[string]any, rctx models.Context) (any, error) {
	parsed, err := utils.ValidateArguments[contextOptionsArgs](args)
	if err != nil {
		return nil, errors.NewResolverErrorf("invalid %s args: %v", ContextOptionsFunction, err)
	}

	options := []any{}
	for _, fieldID := range parsed.Fields {
		value, ok := rctx.Get(fieldID)
		if !ok || value == nil {
			continue
		}
		s := utils.Stringify(value)
		options = append(options, models.NewOption(s, s))
	}
	return options, nil
}
