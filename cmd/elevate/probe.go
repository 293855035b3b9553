package main

import (
	"context"
	"fmt"
	"io"

	cli "github.com/urfave/cli/v3"

	"github.com/go-drift/elevation/pkg/graphics"
	"github.com/go-drift/elevation/pkg/resolve"
)

func runProbe(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)

	dir, name, err := resourceArgs(cmd)
	if err != nil {
		return err
	}
	q, err := parseQuery(cmd.String("query"))
	if err != nil {
		return err
	}
	cfg, err := env.settings(dir)
	if err != nil {
		return err
	}
	table := loadTable(env, cfg, dir)

	id, ok := table.Lookup(name)
	if !ok {
		return fmt.Errorf("resource %q not found", name)
	}
	r := resolve.New(table, resolve.WithMaxDepth(cfg.MaxDepth), resolve.WithLogger(env.Log))
	res := r.ResolveID(id, q)

	out := cmd.Root().Writer
	fmt.Fprintf(out, "resource: %s\n", table.Name(id))
	if res.Name != "" {
		fmt.Fprintf(out, "element:  %s\n", res.Name)
	}
	if q == resolve.QueryName {
		return nil
	}
	printResult(out, "", res)
	if len(res.States) > 0 {
		fmt.Fprintln(out, "states:")
		for _, sr := range res.States {
			fmt.Fprintf(out, "  [%s]\n", sr.States)
			printResult(out, "    ", sr.Result)
		}
	}
	return nil
}

func printResult(out io.Writer, indent string, res resolve.Result) {
	if !res.Resolved {
		fmt.Fprintf(out, "%sresolved: false\n", indent)
		return
	}
	fmt.Fprintf(out, "%scolor:    %s\n", indent, res.Color)
	fmt.Fprintf(out, "%salpha:    %d\n", indent, res.Alpha())
	fmt.Fprintf(out, "%sopaque:   %t\n", indent, res.Opaque())
	if !res.Insets.IsZero() {
		fmt.Fprintf(out, "%sinsets:   %s\n", indent, formatInsets(res.Insets))
	}
}

func formatInsets(in graphics.Insets) string {
	return fmt.Sprintf("%g,%g,%g,%g", in.Left, in.Top, in.Right, in.Bottom)
}

func parseQuery(s string) (resolve.Query, error) {
	for _, q := range []resolve.Query{resolve.QueryName, resolve.QueryAlpha, resolve.QueryOpacityGate} {
		if q.String() == s {
			return q, nil
		}
	}
	return 0, fmt.Errorf("unknown query %q, must be one of name, alpha, opacity", s)
}
