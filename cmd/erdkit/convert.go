package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/erdkit/erdkit"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Convert command errors.
var (
	ErrNoSchemaFiles   = errors.New("no schema files found")
	ErrUnknownEncoding = errors.New("unknown output encoding")
)

func convertCommand() *cli.Command {
	return &cli.Command{
		Name:      "convert",
		Usage:     "Convert schema files into the canonical ER model",
		ArgsUsage: "[files or directories...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "output encoding: json, yaml, or summary",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "indent JSON output",
			},
			&cli.StringFlag{
				Name:  "filter",
				Usage: "keep only models matching an expression (e.g. 'FieldCount > 3')",
			},
			&cli.BoolFlag{
				Name:  "json-errors",
				Usage: "report failures as JSON envelopes",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "verbose output",
			},
		},
		Action: runConvert,
	}
}

func formatsCommand() *cli.Command {
	return &cli.Command{
		Name:  "formats",
		Usage: "List supported file extensions",
		Action: func(_ context.Context, _ *cli.Command) error {
			for _, ext := range erdkit.SupportedExtensions() {
				fmt.Println("." + ext)
			}

			return nil
		},
	}
}

// errorEnvelope mirrors the discriminated result shape consumers of the
// library see, for --json-errors.
type errorEnvelope struct {
	Success   bool   `json:"success"`
	File      string `json:"file,omitempty"`
	ErrorKind string `json:"errorKind"`
	Message   string `json:"message"`
}

func runConvert(_ context.Context, cmd *cli.Command) error {
	args := cmd.Args().Slice()
	if len(args) == 0 {
		args = []string{"."}
	}

	log := zap.NewNop()
	if cmd.Bool("verbose") {
		dev, err := zap.NewDevelopment()
		if err == nil {
			log = dev
		}
	}
	defer func() { _ = log.Sync() }()

	// Config is optional; a missing file just means defaults.
	cfg, err := erdkit.LoadConfig(".")
	if err != nil {
		if !errors.Is(err, erdkit.ErrConfigNotFound) {
			return err
		}

		cfg = &erdkit.Config{}
	}

	files, err := collectSchemaFiles(args, cfg)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return ErrNoSchemaFiles
	}

	log.Debug("collected schema files", zap.Int("count", len(files)))

	filter, err := compileFilter(cmd.String("filter"))
	if err != nil {
		return fmt.Errorf("invalid filter: %w", err)
	}

	encoding := cmd.String("output")
	if encoding == "" {
		encoding = cfg.Output
	}

	if encoding == "" {
		encoding = "json"
	}

	pretty := cmd.Bool("pretty") || cfg.Pretty

	var failures int

	for _, path := range files {
		schema, err := convertFile(path, cfg)
		if err != nil {
			failures++

			reportFailure(cmd, path, err)

			continue
		}

		if filter != nil {
			schema = applyFilter(schema, filter)
		}

		log.Debug("converted",
			zap.String("file", path),
			zap.Int("models", len(schema.Models)),
			zap.Int("enums", len(schema.Enums)),
			zap.Int("relationships", len(schema.Relationships)))

		if err := emit(os.Stdout, path, schema, encoding, pretty, len(files) > 1); err != nil {
			return err
		}
	}

	if failures > 0 {
		return fmt.Errorf("%d of %d files failed to convert", failures, len(files))
	}

	return nil
}

func convertFile(path string, cfg *erdkit.Config) (*erdkit.Schema, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, err
	}

	// Config pattern overrides take precedence over the extension table.
	if format, ok := cfg.FormatFor(path); ok {
		return erdkit.ConvertWithFormat(string(data), format)
	}

	return erdkit.Convert(string(data), path)
}

func reportFailure(cmd *cli.Command, path string, err error) {
	if cmd.Bool("json-errors") {
		env := errorEnvelope{
			File:      path,
			ErrorKind: string(erdkit.KindOf(err)),
			Message:   err.Error(),
		}

		data, merr := json.Marshal(env)
		if merr == nil {
			fmt.Fprintln(os.Stderr, string(data))

			return
		}
	}

	fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
}

func emit(w *os.File, path string, schema *erdkit.Schema, encoding string, pretty, multi bool) error {
	switch encoding {
	case "json":
		enc := json.NewEncoder(w)
		if pretty {
			enc.SetIndent("", "  ")
		}

		if multi {
			return enc.Encode(struct {
				File   string         `json:"file"`
				Schema *erdkit.Schema `json:"schema"`
			}{File: path, Schema: schema})
		}

		return enc.Encode(schema)

	case "yaml":
		if multi {
			fmt.Fprintf(w, "# %s\n", path)
		}

		data, err := yaml.Marshal(schema)
		if err != nil {
			return err
		}

		_, err = w.Write(data)

		return err

	case "summary":
		if multi {
			fmt.Fprintf(w, "%s\n", path)
		}

		_, err := w.WriteString(renderSummary(w, schema))

		return err

	default:
		return fmt.Errorf("%w: %q", ErrUnknownEncoding, encoding)
	}
}

