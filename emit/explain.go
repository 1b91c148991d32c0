package emit

import (
	"context"
	"errors"
	"fmt"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"colcss/css"
	"colcss/preview"
	"colcss/state"
)

// Explain prints column assignment of every element of an HTML document
// styled by a stylesheet.
func Explain(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() < 2 {
		return errors.New("both stylesheet and html document have to be specified")
	}
	styles, page := cmd.Args().Get(0), cmd.Args().Get(1)

	data, err := os.ReadFile(styles)
	if err != nil {
		return fmt.Errorf("unable to read stylesheet: %w", err)
	}
	sheet := css.NewParser(env.Log).Parse(data, styles)
	for _, w := range sheet.Warnings {
		env.Log.Warn("Stylesheet", zap.String("warning", w))
	}

	f, err := os.Open(page)
	if err != nil {
		return fmt.Errorf("unable to open html document: %w", err)
	}
	defer f.Close()

	doc, err := preview.Load(f)
	if err != nil {
		return err
	}
	explainer, err := preview.NewExplainer(env.Log, sheet, cmd.StringSlice("media")...)
	if err != nil {
		return err
	}

	report := explainer.Explain(doc)
	env.Log.Debug("Explained", zap.String("stylesheet", styles), zap.String("html", page), zap.Int("elements", len(report.Elements)))
	_, err = report.WriteTo(os.Stdout)
	return err
}
