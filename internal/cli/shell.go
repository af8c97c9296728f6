package cli

import (
	"context"
	"io"
	"log/slog"

	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/infrastructure"
	"bikeshare/internal/services"
	"bikeshare/pkg/contracts/domain"
)

// Analyzer runs queries and reports; *services.AnalysisService implements it
type Analyzer interface {
	Query(ctx context.Context, req services.QueryRequest) (*services.Query, error)
	Report(ctx context.Context, q *services.Query) *services.Report
}

// Shell is the interactive question and answer session
type Shell struct {
	analyzer Analyzer
	prompter *Prompter
	printer  *Printer
	logger   *slog.Logger
}

// NewShell creates a shell reading answers from in and writing to out
func NewShell(analyzer Analyzer, in io.Reader, out io.Writer, logger *slog.Logger) *Shell {
	printer := NewPrinter(out)
	return &Shell{
		analyzer: analyzer,
		prompter: NewPrompter(in, out, printer),
		printer:  printer,
		logger:   infrastructure.WithComponent(logger, "shell"),
	}
}

// Run repeats the session until the user declines to restart, the input
// ends or ctx is cancelled. The end of input is a normal exit.
func (s *Shell) Run(ctx context.Context) error {
	for round := 1; ; round++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := s.session(ctx)
		if err == nil {
			var restart bool
			restart, err = s.prompter.Confirm(RestartQuestion, "yes")
			if err == nil && !restart {
				s.logger.InfoContext(ctx, "Session finished", slog.Int("rounds", round))
				return nil
			}
		}

		if apperrors.IsType(err, apperrors.ErrTypeInput) {
			s.logger.InfoContext(ctx, "Input ended", slog.Int("rounds", round))
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// session runs one collect, query, report and browse cycle. A query that
// fails to load is reported and ends the cycle without an error.
func (s *Shell) session(ctx context.Context) error {
	s.printer.Greeting()

	city, err := s.prompter.AskCity()
	if err != nil {
		return err
	}
	month, err := s.prompter.AskMonth()
	if err != nil {
		return err
	}
	day, err := s.prompter.AskDay()
	if err != nil {
		return err
	}
	s.printer.Separator()

	if sel, err := domain.NewSelection(month, day); err == nil {
		s.printer.Loading(city, sel)
	}

	ctx = infrastructure.EnsureQueryID(ctx)
	req := services.QueryRequest{City: string(city), Month: month, Day: day}

	q, err := s.analyzer.Query(ctx, req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		s.logger.ErrorContext(ctx, "Query failed",
			slog.String("city", req.City),
			slog.String("error", err.Error()))
		s.printer.Error("Could not load data for "+city.DisplayName()+":", err)
		return nil
	}

	s.printer.Report(s.analyzer.Report(ctx, q))

	return s.browse(q)
}

// browse shows raw records one at a time while the user answers "y"
func (s *Shell) browse(q *services.Query) error {
	p := q.Paginator()

	begin, err := s.prompter.Confirm(DetailsQuestion, "y")
	if err != nil {
		return err
	}
	p.Begin(begin)

	for {
		step, err := p.Next()
		if err != nil {
			return err
		}
		if step.Halted {
			if step.Notice != "" {
				s.printer.Notice(step.Notice)
			}
			return nil
		}
		s.printer.Record(step)

		if p.Remaining() == 0 {
			continue
		}
		more, err := s.prompter.Confirm(ContinueNotice, "y")
		if err != nil {
			return err
		}
		if !more {
			p.Stop()
		}
	}
}
