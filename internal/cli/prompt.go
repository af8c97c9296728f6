package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	apperrors "bikeshare/internal/errors"
	"bikeshare/pkg/contracts/domain"
)

// Questions asked by the shell
const (
	CityQuestion    = "Please choose one of the following cities (Chicago, New York City or Washington):"
	MonthQuestion   = "Please choose a month from January to June or \"all\" if you don't want a month filter:"
	DayQuestion     = "Please choose a day of the week (e.g. \"monday\") or \"all\" if you don't want a day filter:"
	DetailsQuestion = "Do you want to see trip details, please enter \"y\"?"
	ContinueNotice  = "Continue with \"y\"."
	RestartQuestion = "Would you like to restart? Enter yes or no."
)

// Prompter asks questions on out and reads the answers line by line from in
type Prompter struct {
	in      *bufio.Scanner
	out     io.Writer
	printer *Printer
}

// NewPrompter creates a prompter; rejected answers are reported through printer
func NewPrompter(in io.Reader, out io.Writer, printer *Printer) *Prompter {
	return &Prompter{in: bufio.NewScanner(in), out: out, printer: printer}
}

// Ask prints the question and returns the trimmed, lower-cased answer.
// It returns an INPUT error once the input has ended.
func (p *Prompter) Ask(question string) (string, error) {
	fmt.Fprintf(p.out, "\n%s\n", question)
	if !p.in.Scan() {
		err := p.in.Err()
		if err == nil {
			err = io.EOF
		}
		return "", apperrors.NewInputError("input ended", err).WithContext("question", question)
	}
	return strings.ToLower(strings.TrimSpace(p.in.Text())), nil
}

// AskCity asks until a supported city is entered
func (p *Prompter) AskCity() (domain.City, error) {
	return askUntil(p, CityQuestion, "city", domain.ParseCity)
}

// AskMonth asks until "all" or a month from january to june is entered
func (p *Prompter) AskMonth() (string, error) {
	return askUntil(p, MonthQuestion, "month", domain.ParseMonth)
}

// AskDay asks until "all" or a weekday is entered
func (p *Prompter) AskDay() (string, error) {
	return askUntil(p, DayQuestion, "day", domain.ParseDay)
}

// Confirm asks question and reports whether the answer equals yes
func (p *Prompter) Confirm(question, yes string) (bool, error) {
	answer, err := p.Ask(question)
	if err != nil {
		return false, err
	}
	return answer == yes, nil
}

func askUntil[T any](p *Prompter, question, kind string, parse func(string) (T, bool)) (T, error) {
	for {
		answer, err := p.Ask(question)
		if err != nil {
			var zero T
			return zero, err
		}
		if v, ok := parse(answer); ok {
			return v, nil
		}
		p.printer.Invalid(answer, kind)
	}
}
