package emit

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"colcss/layout"
	"colcss/state"
)

// List prints layouts described by a layout file.
func List(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() == 0 {
		return errors.New("no layout source has been specified")
	}
	src := cmd.Args().Get(0)

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("unable to read layout source: %w", err)
	}
	file, err := layout.ParseBytes(src, data)
	if err != nil {
		return fmt.Errorf("unable to parse layout: %w", err)
	}

	if cmd.Bool("tree") {
		_, err = io.WriteString(os.Stdout, layout.Dump(file))
		return err
	}
	if cmd.Bool("containers") {
		for _, c := range layout.Containers(file) {
			fmt.Fprintln(os.Stdout, orRoot(c))
		}
		return nil
	}
	env.Log.Debug("Listing layouts", zap.String("source", src))
	return WriteLayouts(os.Stdout, layout.Layouts(file))
}

// WriteLayouts prints layouts as an aligned table.
func WriteLayouts(w io.Writer, list []layout.Layout) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CONTAINER\tMEDIA\tCOLUMNS\tWIDTHS")
	for _, l := range list {
		media := l.Media
		if media == "" {
			media = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", orRoot(l.Container), media, len(l.Widths), strings.Join(l.Widths, " "))
	}
	return tw.Flush()
}

func orRoot(container string) string {
	if container == "" {
		return "(any)"
	}
	return container
}
