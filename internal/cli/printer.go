package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	apperrors "bikeshare/internal/errors"
	"bikeshare/internal/rawdata"
	"bikeshare/internal/services"
	"bikeshare/internal/tripstats"
	"bikeshare/pkg/contracts/domain"
)

// Separator closes every section
var Separator = strings.Repeat("-", 40)

// NothingToReport is printed for a statistic over an empty selection
const NothingToReport = "- No trips match your selection, nothing to report."

// styles are bound to the renderer of the output so that non-terminal
// writers get plain text
type styles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	value   lipgloss.Style
	muted   lipgloss.Style
	warn    lipgloss.Style
	err     lipgloss.Style
	cell    lipgloss.Style
	header  lipgloss.Style
	border  lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	return styles{
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF")),
		heading: r.NewStyle().Bold(true),
		value:   r.NewStyle().Foreground(lipgloss.Color("#00FF00")),
		muted:   r.NewStyle().Foreground(lipgloss.Color("#666666")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("#FFFF00")),
		err:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF0000")),
		cell:    r.NewStyle().Padding(0, 1),
		header:  r.NewStyle().Bold(true).Padding(0, 1),
		border:  r.NewStyle().Foreground(lipgloss.Color("#444444")),
	}
}

// Printer renders the dialogue and the statistics of a report
type Printer struct {
	out    io.Writer
	styles styles
}

// NewPrinter creates a printer writing to out
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out, styles: newStyles(lipgloss.NewRenderer(out))}
}

func (p *Printer) println(a ...any) {
	fmt.Fprintln(p.out, a...)
}

func (p *Printer) printf(format string, a ...any) {
	fmt.Fprintf(p.out, format, a...)
}

// Greeting opens a session
func (p *Printer) Greeting() {
	p.println(p.styles.title.Render("Hello! Let's explore some US bikeshare data!"))
}

// Separator prints the section separator
func (p *Printer) Separator() {
	p.println(p.styles.muted.Render(Separator))
}

// Invalid reports a rejected answer, e.g. "boston" is not a valid city!
func (p *Printer) Invalid(input, kind string) {
	p.printf("\n%s\n", p.styles.warn.Render(fmt.Sprintf("%q is not a valid %s!", input, kind)))
}

// Loading announces the query being loaded
func (p *Printer) Loading(city domain.City, sel domain.Selection) {
	p.println(p.styles.muted.Render(fmt.Sprintf(">>> Loading chosen data...city: %s, month: %s, day: %s <<<",
		city.DisplayName(), sel.Month(), sel.Day())))
}

// Error reports a failure that ended the current query
func (p *Printer) Error(message string, err error) {
	p.printf("\n%s %v\n", p.styles.err.Render(message), err)
}

// Report prints the four statistic sections in order
func (p *Printer) Report(r *services.Report) {
	p.TimeStats(r.Time)
	p.StationStats(r.Station)
	p.DurationStats(r.Duration)
	p.UserStats(r.City, r.User)
}

// TimeStats prints the most frequent times of travel
func (p *Printer) TimeStats(s services.Section[domain.TimeStats]) {
	p.section("Calculating The Most Frequent Times of Travel...", s.Err, s.Elapsed, func() {
		p.printf("- The most common month by number of trips is %s, with a total of %d.\n",
			p.styles.value.Render(domain.MonthName(s.Stats.Month.Value)), s.Stats.Month.Count)
		p.printf("- The most common day of the week by number of trips is %s, with a total of %d.\n",
			p.styles.value.Render(s.Stats.Weekday.Value), s.Stats.Weekday.Count)
		p.printf("- The most common start hour for trips is %s, with a total of %d.\n",
			p.styles.value.Render(strconv.Itoa(s.Stats.Hour.Value)), s.Stats.Hour.Count)
	})
}

// StationStats prints the most popular stations and trip
func (p *Printer) StationStats(s services.Section[domain.StationStats]) {
	p.section("Calculating The Most Popular Stations and Trip...", s.Err, s.Elapsed, func() {
		p.printf("- The most commonly used start station is %s, with a total of %d.\n",
			p.styles.value.Render(s.Stats.Start.Value), s.Stats.Start.Count)
		p.printf("- The most commonly used end station is %s, with a total of %d.\n",
			p.styles.value.Render(s.Stats.End.Value), s.Stats.End.Count)
		p.printf("- With %d trips, the most frequent combination is to start at %s and to finish at %s.\n",
			s.Stats.Pair.Count, p.styles.value.Render(s.Stats.Pair.Value.Start), p.styles.value.Render(s.Stats.Pair.Value.End))
	})
}

// DurationStats prints the total and mean trip duration
func (p *Printer) DurationStats(s services.Section[domain.DurationStats]) {
	p.section("Calculating Trip Duration...", s.Err, s.Elapsed, func() {
		p.printf("- The total travel time for your chosen selection is: %s\n",
			p.styles.value.Render(tripstats.FormatDuration(s.Stats.Total)))
		p.printf("- The mean travel time for your chosen selection is: %s\n",
			p.styles.value.Render(tripstats.FormatDuration(s.Stats.Mean)))
	})
}

// UserStats prints user type counts and, where published, gender counts
// and birth years
func (p *Printer) UserStats(city domain.City, s services.Section[domain.UserStats]) {
	p.section("Calculating User Stats...", s.Err, s.Elapsed, func() {
		p.println(p.countTable(domain.ColumnUserType, s.Stats.UserTypes))
		p.println()

		if !s.Stats.Demographics {
			p.println(p.styles.warn.Render(fmt.Sprintf(tripstats.NoDemographicsMessage, city.DisplayName())))
			return
		}

		p.println(p.countTable(domain.ColumnGender, s.Stats.Genders))
		p.println()

		b := s.Stats.BirthYear
		if b == nil {
			p.println("- No birth year data available for your chosen selection.")
			return
		}
		p.printf("- The earliest birth year is %s.\n", p.styles.value.Render(strconv.Itoa(b.Earliest)))
		p.printf("- The youngest person is born in %s.\n", p.styles.value.Render(strconv.Itoa(b.MostRecent)))
		p.printf("- The most common birth year is %s.\n", p.styles.value.Render(strconv.Itoa(b.MostCommon)))
	})
}

func (p *Printer) countTable(column string, counts []domain.Count) string {
	rows := make([][]string, len(counts))
	for i, c := range counts {
		rows[i] = []string{c.Value, strconv.Itoa(c.Count)}
	}

	st := p.styles
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(st.border).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return st.header
			}
			return st.cell
		}).
		Headers(column, "Count").
		Rows(rows...).
		String()
}

// section prints the heading, the body or the reason it is missing, the
// elapsed time and the separator
func (p *Printer) section(heading string, err error, elapsed time.Duration, body func()) {
	p.printf("\n%s\n\n", p.styles.heading.Render(heading))

	switch {
	case apperrors.IsEmptyResult(err):
		p.println(NothingToReport)
	case err != nil:
		p.println(p.styles.err.Render("- Could not compute this statistic: " + err.Error()))
	default:
		body()
	}

	p.printf("\nThis took %s seconds.\n", strconv.FormatFloat(elapsed.Seconds(), 'f', -1, 64))
	p.Separator()
}

// Record prints one raw trip as "Field: value" lines
func (p *Printer) Record(step rawdata.Step) {
	p.printf("\n%s\n", p.styles.heading.Render(fmt.Sprintf("Record %d", step.Number)))
	for _, f := range step.Fields {
		p.printf("%s: %s\n", p.styles.muted.Render(f.Name), f.Value)
	}
}

// Notice prints a paginator notice
func (p *Printer) Notice(notice string) {
	p.printf("\n%s\n", p.styles.warn.Render(notice))
}
