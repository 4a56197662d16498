package cmd

import (
	"fmt"

	"github.com/spf13/pflag"
)

func init() {
	RegisterCommand(&Command{
		Name:  "render",
		Short: "Render a markup document to HTML",
		Long: `Render applies every step of a markup document (YAML or TOML) and prints
the container's HTML after the last step.

Flags:
  --steps            Print the HTML after every step
  --container ID     Container element id (default from config, "root")
  --pretty           Print an indented host tree instead of HTML`,
		Usage: "vdom render <file> [--steps] [--container ID] [--pretty]",
		Run:   runRender,
	})
}

func runRender(args []string) error {
	flags := pflag.NewFlagSet("render", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	everyStep := flags.Bool("steps", false, "print the HTML after every step")
	container := flags.String("container", "", "container element id")
	pretty := flags.Bool("pretty", false, "print an indented host tree")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() != 1 {
		return fmt.Errorf("render requires exactly one document path")
	}

	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	s, err := openSession(env, flags.Arg(0), *container)
	if err != nil {
		return err
	}

	usePretty := *pretty || env.cfg.Pretty
	last := len(s.trees) - 1
	for i := range s.trees {
		if _, err := s.apply(i); err != nil {
			return err
		}
		if !*everyStep && i != last {
			continue
		}
		if *everyStep {
			fmt.Fprintf(stdout, "# %s\n", s.doc.StepName(i))
		}
		fmt.Fprintln(stdout, s.output(usePretty))
	}
	return nil
}
