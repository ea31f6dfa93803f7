// Package prompt lets a CLI user pick stored values from the items a data
// source offers.
package prompt

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"

	"github.com/goliatone/go-datalist/pkg/datasource"
)

// ErrAborted is returned when the user interrupts a prompt.
var ErrAborted = errors.New("prompt: aborted")

// ErrNoItems is returned when the data source offers nothing selectable.
var ErrNoItems = errors.New("prompt: no selectable items")

// SelectConfig configures a single or multi-select prompt.
type SelectConfig struct {
	Message  string
	Options  []string
	Help     string
	PageSize int
}

// Driver abstracts the terminal so picking can be tested without one.
type Driver interface {
	Select(ctx context.Context, cfg SelectConfig) (int, error)
	MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error)
}

// Survey returns a Driver backed by survey/v2.
func Survey() Driver {
	return surveyDriver{}
}

type surveyDriver struct{}

func (surveyDriver) Select(ctx context.Context, cfg SelectConfig) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	var out string
	prompt := &survey.Select{
		Message: cfg.Message,
		Options: cfg.Options,
		Help:    cfg.Help,
	}
	if cfg.PageSize > 0 {
		prompt.PageSize = cfg.PageSize
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return 0, translateSurveyErr(err)
	}
	return indexOf(cfg.Options, out), nil
}

func (surveyDriver) MultiSelect(ctx context.Context, cfg SelectConfig) ([]int, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []string
	prompt := &survey.MultiSelect{
		Message: cfg.Message,
		Options: cfg.Options,
		Help:    cfg.Help,
	}
	if cfg.PageSize > 0 {
		prompt.PageSize = cfg.PageSize
	}
	if err := survey.AskOne(prompt, &out); err != nil {
		return nil, translateSurveyErr(err)
	}
	return indicesOf(cfg.Options, out), nil
}

// Pick asks the driver for one or more items and returns their stored
// values in list order. Disabled items are not offered.
func Pick(ctx context.Context, driver Driver, message string, items []datasource.Item, multiple bool) ([]string, error) {
	offered := make([]datasource.Item, 0, len(items))
	labels := make([]string, 0, len(items))
	for _, item := range items {
		if item.Disabled {
			continue
		}
		offered = append(offered, item)
		labels = append(labels, label(item))
	}
	if len(offered) == 0 {
		return nil, ErrNoItems
	}

	cfg := SelectConfig{Message: message, Options: labels, PageSize: 10}
	var picked []int
	if multiple {
		indices, err := driver.MultiSelect(ctx, cfg)
		if err != nil {
			return nil, err
		}
		picked = indices
	} else {
		idx, err := driver.Select(ctx, cfg)
		if err != nil {
			return nil, err
		}
		picked = []int{idx}
	}

	values := make([]string, 0, len(picked))
	for _, idx := range picked {
		if idx < 0 || idx >= len(offered) {
			continue
		}
		values = append(values, offered[idx].Value)
	}
	return values, nil
}

func label(item datasource.Item) string {
	if item.Name == "" {
		return item.Value
	}
	if item.Description != "" {
		return item.Name + " (" + item.Description + ")"
	}
	return item.Name
}

func translateSurveyErr(err error) error {
	if errors.Is(err, terminal.InterruptErr) {
		return ErrAborted
	}
	return err
}

func indexOf(options []string, value string) int {
	for i, option := range options {
		if option == value {
			return i
		}
	}
	return -1
}

func indicesOf(options, values []string) []int {
	seen := make(map[string]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	var out []int
	for i, option := range options {
		if _, ok := seen[option]; ok {
			out = append(out, i)
		}
	}
	return out
}
