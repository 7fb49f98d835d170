package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/cognicore/langid/internal/corpus"
	"github.com/cognicore/langid/pkg/langid/alphabet"
	"github.com/cognicore/langid/pkg/langid/clean"
	"github.com/cognicore/langid/pkg/langid/config"
	"github.com/cognicore/langid/pkg/langid/dataset"
	"github.com/cognicore/langid/pkg/langid/evaluate"
	"github.com/cognicore/langid/pkg/langid/internalerr"
	"github.com/cognicore/langid/pkg/langid/plot"
	"github.com/cognicore/langid/pkg/langid/sampling"
	"github.com/cognicore/langid/pkg/langid/store"
	"github.com/cognicore/langid/pkg/langid/store/sqlite"
)

func loadComponents(c *cli.Context) (*config.Components, error) {
	loader := config.Loader{ConfigPath: c.String("config")}
	return loader.Load()
}

func readInput(c *cli.Context, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(c.App.Reader)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

func cleanCommand(c *cli.Context) error {
	text, err := readInput(c, c.String("input"))
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(c.App.Writer, clean.Text(text))
	return err
}

func alphabetCommand(c *cli.Context) error {
	comps, err := loadComponents(c)
	if err != nil {
		return err
	}
	a := comps.Alphabet

	w := c.App.Writer
	fmt.Fprintf(w, "lowercase (%d): %q\n", a.LowerLen(), string(a.Lower()))
	fmt.Fprintf(w, "uppercase (%d): %q\n", a.UpperLen(), string(a.Upper()))
	fmt.Fprintf(w, "display: %s\n", a.Display())
	fmt.Fprintf(w, "vector length: %d\n", a.Len())
	return nil
}

type vectorOutput struct {
	Offset int    `json:"offset"`
	Size   int    `json:"size"`
	Sample string `json:"sample"`
	Vector []int  `json:"vector"`
}

func vectorCommand(c *cli.Context) error {
	comps, err := loadComponents(c)
	if err != nil {
		return err
	}

	text, err := readInput(c, c.String("input"))
	if err != nil {
		return err
	}
	if !c.Bool("raw") {
		text = clean.Text(text)
	}

	size := c.Int("size")
	if size == 0 {
		size = comps.Config.Sampling.SampleSize
	}
	offset := c.Int("offset")

	sample, err := sampling.Text(text, offset, size)
	if err != nil {
		return err
	}
	vec, err := sampling.InputRow(text, offset, size, comps.Alphabet)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(c.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(vectorOutput{
		Offset: offset,
		Size:   size,
		Sample: sample,
		Vector: vec,
	})
}

func prepCommand(c *cli.Context) error {
	ctx := c.Context
	comps, err := loadComponents(c)
	if err != nil {
		return err
	}

	docs, err := corpus.Load(c.String("corpus"))
	if err != nil {
		return fmt.Errorf("load corpus: %w", err)
	}

	builder, err := dataset.NewBuilder(comps.Alphabet, comps.Config.Sampling)
	if err != nil {
		return err
	}
	rows, stats, err := builder.Build(ctx, toDatasetDocs(docs))
	if err != nil {
		return fmt.Errorf("build dataset: %w", err)
	}

	st, err := sqlite.OpenSQLite(ctx, c.String("db"))
	if err != nil {
		return err
	}
	defer st.Close()

	if err := checkAlphabet(c, st, comps.Alphabet); err != nil {
		return err
	}

	if c.Bool("replace") {
		for _, lang := range docLanguages(docs) {
			n, err := st.DeleteLanguage(ctx, lang)
			if err != nil {
				return fmt.Errorf("delete %s rows: %w", lang, err)
			}
			slog.Info("replaced rows", "language", lang, "deleted", n)
		}
	}

	if err := st.PutRows(ctx, rows); err != nil {
		return fmt.Errorf("store rows: %w", err)
	}
	if err := st.PutMeta(ctx, store.MetaAlphabet, comps.Alphabet.Display()); err != nil {
		return err
	}
	if err := st.PutMeta(ctx, store.MetaSampleSize, strconv.Itoa(comps.Config.Sampling.SampleSize)); err != nil {
		return err
	}

	w := c.App.Writer
	fmt.Fprintf(w, "docs: %d, rows: %d, skipped docs: %d, skipped samples: %d\n",
		stats.Docs, stats.Rows, stats.SkippedDocs, stats.SkippedSamples)
	fmt.Fprintln(w, summaryTable(dataset.Summarize(rows, comps.Alphabet, 5)))
	return nil
}

// checkAlphabet refuses to mix rows built against different alphabets.
func checkAlphabet(c *cli.Context, st store.Store, a *alphabet.Alphabet) error {
	stored, err := st.Meta(c.Context, store.MetaAlphabet)
	if errors.Is(err, internalerr.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if stored != a.Display() {
		return fmt.Errorf("dataset was built with alphabet %q, config gives %q: %w",
			stored, a.Display(), internalerr.ErrInvalidConfig)
	}
	return nil
}

func toDatasetDocs(docs []corpus.Doc) []dataset.Doc {
	out := make([]dataset.Doc, len(docs))
	for i, d := range docs {
		out[i] = dataset.Doc{Language: d.Language, Source: d.Source, Text: d.Text}
	}
	return out
}

func docLanguages(docs []corpus.Doc) []string {
	seen := make(map[string]struct{})
	var langs []string
	for _, d := range docs {
		if _, ok := seen[d.Language]; !ok {
			seen[d.Language] = struct{}{}
			langs = append(langs, d.Language)
		}
	}
	sort.Strings(langs)
	return langs
}

func openDataset(c *cli.Context) (store.Store, *config.Components, []store.Row, error) {
	comps, err := loadComponents(c)
	if err != nil {
		return nil, nil, nil, err
	}
	st, err := sqlite.OpenSQLite(c.Context, c.String("db"))
	if err != nil {
		return nil, nil, nil, err
	}
	if err := checkAlphabet(c, st, comps.Alphabet); err != nil {
		st.Close()
		return nil, nil, nil, err
	}
	rows, err := st.Rows(c.Context, "")
	if err != nil {
		st.Close()
		return nil, nil, nil, err
	}
	return st, comps, rows, nil
}

func splitCommand(c *cli.Context) error {
	st, comps, rows, err := openDataset(c)
	if err != nil {
		return err
	}
	defer st.Close()

	s := comps.Config.Sampling
	train, test, err := dataset.Split(rows, s.TestFraction, s.Seed)
	if err != nil {
		return err
	}

	fmt.Fprintln(c.App.Writer, splitTable(train, test))

	dir := c.String("out-dir")
	if dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	if err := writeCSVFile(filepath.Join(dir, "train.csv"), train, comps.Alphabet); err != nil {
		return err
	}
	return writeCSVFile(filepath.Join(dir, "test.csv"), test, comps.Alphabet)
}

func exportCommand(c *cli.Context) error {
	st, comps, rows, err := openDataset(c)
	if err != nil {
		return err
	}
	defer st.Close()

	if out := c.String("out"); out != "" {
		return writeCSVFile(out, rows, comps.Alphabet)
	}
	return dataset.WriteCSV(c.App.Writer, rows, comps.Alphabet)
}

func writeCSVFile(path string, rows []store.Row, a *alphabet.Alphabet) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := dataset.WriteCSV(f, rows, a); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

type matrixInput struct {
	Labels      []string     `json:"labels"`
	Matrix      [][]float64  `json:"matrix"`
	Predictions []prediction `json:"predictions"`
}

type prediction struct {
	True      string `json:"true"`
	Predicted string `json:"predicted"`
}

func matrixCommand(c *cli.Context) error {
	data, err := readInput(c, c.String("input"))
	if err != nil {
		return err
	}
	var in matrixInput
	if err := json.Unmarshal([]byte(data), &in); err != nil {
		return fmt.Errorf("parse %s: %w", c.String("input"), err)
	}

	opts := plot.DefaultOptions()
	opts.CellWidth = c.Int("cell-width")
	switch c.String("color") {
	case "always":
		opts.Color = true
	case "never":
	case "auto":
		fd := os.Stdout.Fd()
		opts.Color = isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	default:
		return fmt.Errorf("invalid color mode %q: must be one of auto, always, never", c.String("color"))
	}

	labels, cells := in.Labels, in.Matrix
	var m *evaluate.Matrix
	if len(in.Predictions) > 0 {
		if len(labels) == 0 {
			labels = predictionLabels(in.Predictions)
		}
		m, err = evaluate.NewMatrix(labels)
		if err != nil {
			return err
		}
		for _, p := range in.Predictions {
			if err := m.Add(p.True, p.Predicted); err != nil {
				return err
			}
		}
		cells = m.Cells()
	}

	out, err := plot.ConfusionMatrix(cells, labels, opts)
	if err != nil {
		return err
	}
	fmt.Fprintln(c.App.Writer, out)
	if m != nil {
		fmt.Fprintf(c.App.Writer, "accuracy: %.4f (%d samples)\n", m.Accuracy(), m.Total())
	}
	return nil
}

func predictionLabels(preds []prediction) []string {
	seen := make(map[string]struct{})
	for _, p := range preds {
		seen[p.True] = struct{}{}
		seen[p.Predicted] = struct{}{}
	}
	labels := make([]string, 0, len(seen))
	for l := range seen {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}
