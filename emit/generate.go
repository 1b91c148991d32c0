// Package emit implements program subcommands.
package emit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"colcss/css"
	"colcss/layout"
	"colcss/state"
)

var ErrVerify = errors.New("generated stylesheet does not parse back")

// Generate runs layout file and writes resulting stylesheet.
func Generate(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	if cmd.Args().Len() == 0 {
		return errors.New("no layout source has been specified")
	}
	if cmd.Args().Len() > 2 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[2:]))
	}
	src, dst := cmd.Args().Get(0), cmd.Args().Get(1)

	env.Overwrite = cmd.Bool("overwrite")
	env.Verify = cmd.Bool("verify") || (env.Cfg != nil && env.Cfg.Output.Verify)

	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("unable to read layout source: %w", err)
	}
	env.Rpt.Store(filepath.ToSlash(filepath.Join("source", reportName(src))), src)

	out, err := Stylesheet(ctx, env, src, data)
	if err != nil {
		return err
	}
	env.Rpt.StoreData(filepath.ToSlash(filepath.Join("output", reportName(src)+".css")), out)

	if len(dst) == 0 {
		env.Log.Debug("Writing stylesheet", zap.String("file", "STDOUT"))
		_, err = os.Stdout.Write(out)
		return err
	}
	if !env.Overwrite {
		if _, err := os.Stat(dst); err == nil {
			return fmt.Errorf("output file already exists: %s", dst)
		}
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return fmt.Errorf("unable to create output directory: %w", err)
	}
	if err := os.WriteFile(dst, out, 0644); err != nil {
		return fmt.Errorf("unable to write stylesheet: %w", err)
	}
	env.Log.Info("Stylesheet generated", zap.String("from", src), zap.String("to", dst), zap.Int("bytes", len(out)))
	return nil
}

// Stylesheet runs layout source held in data and renders the stylesheet,
// prefixed with configured banner. name is used in error positions and in
// the banner.
func Stylesheet(ctx context.Context, env *state.LocalEnv, name string, data []byte) ([]byte, error) {
	log := env.Log
	if log == nil {
		log = zap.NewNop()
	}

	file, err := layout.ParseBytes(name, data)
	if err != nil {
		return nil, fmt.Errorf("unable to parse layout: %w", err)
	}
	if env.Rpt != nil {
		env.Rpt.StoreData(filepath.ToSlash(filepath.Join("source", reportName(name)+".tree")), []byte(layout.Dump(file)))
	}
	gen, err := env.NewGenerator()
	if err != nil {
		return nil, err
	}
	sheet, err := layout.NewRunner(log, gen).Run(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("unable to run layout %s: %w", name, err)
	}

	out := &css.Stylesheet{}
	if env.Cfg != nil {
		banner, err := ExpandBanner(env.Cfg.Output.Banner, newBannerValues(filepath.Base(name)))
		if err != nil {
			return nil, err
		}
		if banner != "" {
			out.AddComment(banner)
		}
	}
	out.Items = append(out.Items, sheet.Items...)

	var buf bytes.Buffer
	if _, err := out.WriteTo(&buf); err != nil {
		return nil, err
	}

	if env.Verify {
		if err := verify(log, sheet, buf.Bytes()); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func verify(log *zap.Logger, want *css.Stylesheet, data []byte) error {
	got := css.NewParser(log).Parse(data)
	for _, w := range got.Warnings {
		log.Warn("Generated stylesheet", zap.String("warning", w))
	}
	if got.CountRules() != want.CountRules() {
		return fmt.Errorf("%w: %d rules generated, %d parsed", ErrVerify, want.CountRules(), got.CountRules())
	}
	if len(got.MediaBlocks()) != len(want.MediaBlocks()) {
		return fmt.Errorf("%w: %d media blocks generated, %d parsed", ErrVerify, len(want.MediaBlocks()), len(got.MediaBlocks()))
	}
	log.Debug("Stylesheet verified", zap.Int("rules", got.CountRules()))
	return nil
}

func reportName(path string) string {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	return slug.Make(base[:len(base)-len(ext)]) + ext
}
