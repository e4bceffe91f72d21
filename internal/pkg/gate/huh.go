/*
 * Copyright 2019 The Sugarkube Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package gate

import (
	"os"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/errors"
	"github.com/sugarkube/clusterctl/internal/pkg/step"
	"golang.org/x/term"
)

var ErrNotInteractive = errors.New("stdin is not a terminal")

// HuhPrompter prompts on the operator's terminal
type HuhPrompter struct {
	theme *huh.Theme
}

func NewHuhPrompter() *HuhPrompter {
	return &HuhPrompter{
		theme: yellowTheme(),
	}
}

func (h *HuhPrompter) Choose(prompt string, choices []string) (int, error) {
	if err := checkInteractive(); err != nil {
		return -1, err
	}

	options := make([]huh.Option[int], len(choices))
	for i, choice := range choices {
		options[i] = huh.NewOption(choice, i)
	}

	var selected int

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title(prompt).
				Options(options...).
				Value(&selected),
		),
	).
		WithShowHelp(false).
		WithTheme(h.theme)

	err := form.Run()
	if err != nil {
		return -1, mapFormError(err)
	}

	return selected, nil
}

func (h *HuhPrompter) Input(title string, description string) (string, error) {
	if err := checkInteractive(); err != nil {
		return "", err
	}

	var value string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewText().
				Title(title).
				Description(description).
				Value(&value),
		),
	).
		WithShowHelp(true).
		WithTheme(h.theme)

	err := form.Run()
	if err != nil {
		return "", mapFormError(err)
	}

	return value, nil
}

func checkInteractive() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.WithStack(ErrNotInteractive)
	}
	return nil
}

// ctrl+c is treated the same as choosing 'exit'
func mapFormError(err error) error {
	if errors.Cause(err) == huh.ErrUserAborted {
		return errors.WithStack(step.ErrUserAbort)
	}
	return errors.Wrap(err, "Error prompting the operator")
}

func yellowTheme() *huh.Theme {
	yellow := lipgloss.Color("3")

	t := huh.ThemeBase()
	t.Focused.Title = t.Focused.Title.Foreground(yellow).Bold(true)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(yellow).Bold(true)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(yellow)
	t.Focused.Description = t.Focused.Description.Foreground(yellow).Faint(true)
	t.Blurred = t.Focused
	t.Blurred.Base = t.Focused.Base.BorderStyle(lipgloss.HiddenBorder())

	return t
}
