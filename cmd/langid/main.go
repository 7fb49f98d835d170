package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "langid",
		Usage: "Prepare character-frequency features for language identification",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file (defaults are used when omitted)",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "clean",
				Usage:  "Strip markup and normalize whitespace",
				Action: cleanCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Text file to clean, - for stdin",
						Required: true,
					},
				},
			},
			{
				Name:   "alphabet",
				Usage:  "Print the character sets that define vector positions",
				Action: alphabetCommand,
			},
			{
				Name:   "vector",
				Usage:  "Sample a text at an offset and print its feature vector",
				Action: vectorCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "Text file to sample, - for stdin",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "offset",
						Usage: "Start offset in characters",
					},
					&cli.IntFlag{
						Name:  "size",
						Usage: "Sample size in characters (config sample_size when 0)",
					},
					&cli.BoolFlag{
						Name:  "raw",
						Usage: "Sample the text as is, without cleaning it first",
					},
				},
			},
			{
				Name:   "prep",
				Usage:  "Build a labelled dataset from a corpus",
				Action: prepCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "corpus",
						Usage:    "Directory of <language>.txt/.xml/.html files, or a JSONL file",
						Required: true,
					},
					dbFlag(),
					&cli.BoolFlag{
						Name:  "replace",
						Usage: "Delete existing rows for the corpus languages first",
					},
				},
			},
			{
				Name:   "split",
				Usage:  "Split the dataset into train and test sets",
				Action: splitCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:  "out-dir",
						Usage: "Write train.csv and test.csv to this directory",
					},
				},
			},
			{
				Name:   "export",
				Usage:  "Write the dataset as CSV",
				Action: exportCommand,
				Flags: []cli.Flag{
					dbFlag(),
					&cli.StringFlag{
						Name:    "out",
						Aliases: []string{"o"},
						Usage:   "Output file (stdout when omitted)",
					},
				},
			},
			{
				Name:   "matrix",
				Usage:  "Render a confusion matrix heatmap",
				Action: matrixCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "input",
						Aliases:  []string{"i"},
						Usage:    "JSON file with labels+matrix or a predictions list",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "color",
						Usage: "Shade cells: auto, always or never",
						Value: "auto",
					},
					&cli.IntFlag{
						Name:  "cell-width",
						Usage: "Minimum width of each count column",
						Value: 6,
					},
				},
			},
		},
	}
}

func dbFlag() cli.Flag {
	return &cli.StringFlag{
		Name:     "db",
		Aliases:  []string{"d"},
		Usage:    "Path to the SQLite dataset",
		Required: true,
	}
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
