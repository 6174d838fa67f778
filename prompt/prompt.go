// Package prompt collects the answers that drive a generation run.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/goaux/iter/bufioscanner"
	"github.com/mattn/go-isatty"

	"github.com/OniCoders/microservice-script-ts/naming"
)

// ErrNoInput is returned when the input ends before every question is answered.
var ErrNoInput = fmt.Errorf("prompt: input closed: %w", io.ErrUnexpectedEOF)

// Answers is what the user told us.
type Answers struct {
	ModelName      string
	IncludeGateway bool
}

// Prompter asks the questions of a run. It blocks until both answers are
// given.
type Prompter interface {
	Ask(ctx context.Context) (Answers, error)
}

// Line asks questions one per line on a text stream.
type Line struct {
	in    *bufio.Scanner
	out   io.Writer
	label *color.Color
}

// NewLine returns a Line prompter reading r and writing questions to w.
// Question labels are bold when w is a terminal.
func NewLine(r io.Reader, w io.Writer) *Line {
	label := color.New(color.Bold)
	if !isTTY(w) {
		label.DisableColor()
	}
	return &Line{in: bufio.NewScanner(r), out: w, label: label}
}

func (p *Line) Ask(ctx context.Context) (Answers, error) {
	var a Answers
	name, err := p.ask(ctx, "Model name", "", func(s string) (string, error) {
		s = strings.TrimSpace(s)
		if s == "" {
			return "", errors.New("Model name is required")
		}
		if !naming.Valid(s) {
			return "", errors.New("Model name must be a single word without path separators")
		}
		return s, nil
	})
	if err != nil {
		return a, err
	}
	a.ModelName = name

	yes, err := p.ask(ctx, "Include API gateway?", "(y/N)", parseYesNo)
	if err != nil {
		return a, err
	}
	a.IncludeGateway = yes == "y"
	return a, nil
}

// ask repeats question until validate accepts the answer.
func (p *Line) ask(ctx context.Context, question, hint string, validate func(string) (string, error)) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		p.label.Fprint(p.out, "? "+question)
		if hint != "" {
			fmt.Fprint(p.out, " "+hint)
		}
		fmt.Fprint(p.out, " ")

		line, ok, err := p.next()
		if err != nil {
			return "", err
		}
		if !ok {
			fmt.Fprintln(p.out)
			return "", ErrNoInput
		}
		v, err := validate(line)
		if err == nil {
			return v, nil
		}
		fmt.Fprintf(p.out, ">> %v\n", err)
	}
}

func (p *Line) next() (string, bool, error) {
	for _, line := range bufioscanner.New(p.in).Text() {
		return line, true, nil
	}
	return "", false, p.in.Err()
}

func parseYesNo(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "n", "no":
		return "n", nil
	case "y", "yes":
		return "y", nil
	}
	return "", errors.New("Please answer y or n")
}

func isTTY(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd())
	}
	return false
}

// Static is a Prompter that returns fixed answers.
type Static Answers

func (s Static) Ask(ctx context.Context) (Answers, error) {
	if err := ctx.Err(); err != nil {
		return Answers{}, err
	}
	return Answers(s), nil
}
