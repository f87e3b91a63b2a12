package main

import (
	"context"
	"fmt"
	"os"

	"github.com/slowlang/rewrite/ir"
	"github.com/slowlang/rewrite/match"
	"github.com/slowlang/rewrite/simplify"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

func main() {
	applyCmd := &cli.Command{
		Name:        "apply",
		Description: "parse an expression file and run the default rule table over it",
		Action:      applyAct,
		Args:        cli.Args{},
	}

	showCmd := &cli.Command{
		Name:        "show",
		Description: "print the default rule table",
		Action:      showAct,
		Args:        cli.Args{},
	}

	app := &cli.Command{
		Name:        "rewrite",
		Description: "rewrite is a tool for exercising the expression pattern matcher and simplifier",
		Commands: []*cli.Command{
			applyCmd,
			showCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

// applyAct parses each file argument as a tiny expression, runs the
// default rule table to a fixed point and prints the result. A leading
// "-v" argument switches the rule table to simplify.NewTraced, which
// logs the input and output expression of every Mutate call to the
// root logger.
func applyAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	args := c.Args
	verbose := false

	if len(args) > 0 && args[0] == "-v" {
		verbose = true
		args = args[1:]
	}

	var s match.Prover = simplify.New()
	if verbose {
		s = simplify.NewTraced()
	}

	for _, a := range args {
		e, err := parseExprFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "apply %v", a)
		}

		out := s.Mutate(e)

		fmt.Printf("%s => %s\n", ir.String(e), ir.String(out))
	}

	return nil
}

// showAct pretty-prints the default rule table, one before/after/
// predicate line per rule, so a caller can see what apply will try
// without reading simplify/simplify.go.
func showAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())
	tr := tlog.SpanFromContext(ctx)

	s := simplify.New()

	tr.Printw("show rules", "count", len(s.Rules))

	for _, ru := range s.Rules {
		if len(ru.Pred) == 0 {
			fmt.Printf("%-16s %v => %v\n", ru.Name, ru.Before, ru.After)
			continue
		}

		fmt.Printf("%-16s %v => %v  if", ru.Name, ru.Before, ru.After)
		for _, p := range ru.Pred {
			fmt.Printf(" %v", p)
		}
		fmt.Println()
	}

	return nil
}
