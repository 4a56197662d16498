package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/pflag"

	"github.com/go-drift/vdom/pkg/host"
)

var (
	stepStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	createStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	removeStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	moveStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	mutateStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
	summaryStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("8")).
			Padding(0, 1)
)

func init() {
	RegisterCommand(&Command{
		Name:  "trace",
		Short: "Show the host operations each step issues",
		Long: `Trace applies every step of a markup document and lists the host
operations (create, insert, move, remove, attribute and style changes) the
reconciler issued for it, followed by a per-kind summary.

Flags:
  --step NAME        Only list operations of the named step
  --summary          Only print the summary
  --container ID     Container element id (default from config, "root")`,
		Usage: "vdom trace <file> [--step NAME] [--summary]",
		Run:   runTrace,
	})
}

func runTrace(args []string) error {
	flags := pflag.NewFlagSet("trace", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	only := flags.String("step", "", "only list operations of this step")
	summaryOnly := flags.Bool("summary", false, "only print the summary")
	container := flags.String("container", "", "container element id")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("trace requires exactly one document path")
	}

	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	s, err := openSession(env, flags.Arg(0), *container)
	if err != nil {
		return err
	}

	found := *only == ""
	var counts [host.OpQuery + 1]int
	for i := range s.trees {
		ops, err := s.apply(i)
		if err != nil {
			return err
		}
		name := s.doc.StepName(i)
		if *only != "" && name != *only {
			continue
		}
		found = true
		for _, op := range ops {
			counts[op.Kind]++
		}
		if *summaryOnly {
			continue
		}
		fmt.Fprintln(stdout, stepStyle.Render(fmt.Sprintf("%s (%d ops)", name, len(ops))))
		if len(ops) == 0 {
			fmt.Fprintln(stdout, faintStyle.Render("  no changes"))
		}
		for _, op := range ops {
			fmt.Fprintf(stdout, "  %s\n", opStyle(op.Kind).Render(op.Format(s.host)))
		}
	}
	if !found {
		return fmt.Errorf("no step named %q", *only)
	}

	fmt.Fprintln(stdout, summaryStyle.Render(summary(counts[:])))
	return nil
}

func opStyle(kind host.OpKind) lipgloss.Style {
	switch kind {
	case host.OpCreateElement, host.OpCreateText, host.OpInsert:
		return createStyle
	case host.OpRemove:
		return removeStyle
	case host.OpMove:
		return moveStyle
	case host.OpQuery:
		return faintStyle
	default:
		return mutateStyle
	}
}

// summary lists the non-zero op counts in OpKind order.
func summary(counts []int) string {
	var lines []string
	total := 0
	for kind, n := range counts {
		if n == 0 {
			continue
		}
		total += n
		lines = append(lines, fmt.Sprintf("%-18s %4d", host.OpKind(kind), n))
	}
	lines = append(lines, fmt.Sprintf("%-18s %4d", "total", total))
	return strings.Join(lines, "\n")
}
