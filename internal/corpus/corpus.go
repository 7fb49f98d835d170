package corpus

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// Doc is one labelled chunk of raw text.
type Doc struct {
	Language string `json:"language"`
	Source   string `json:"source,omitempty"`
	Text     string `json:"text"`
}

// Load reads a JSONL file or a directory of per-language files.
func Load(path string) ([]Doc, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return LoadDir(path)
	}
	return LoadJSONL(path)
}

// LoadJSONL loads docs from a JSONL file, one {"language","text"} object per line.
// Malformed lines are skipped with a warning.
func LoadJSONL(path string) ([]Doc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file %s: %w", path, err)
	}

	var docs []Doc
	lines := strings.Split(string(data), "\n")

	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var doc Doc
		if err := json.Unmarshal([]byte(line), &doc); err != nil {
			slog.Warn("skipping malformed JSON", "line", i+1, "path", path, "error", err)
			continue
		}
		if doc.Language == "" || doc.Text == "" {
			slog.Warn("skipping doc without language or text", "line", i+1, "path", path)
			continue
		}
		if doc.Source == "" {
			doc.Source = fmt.Sprintf("%s:%d", filepath.Base(path), i+1)
		}
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no valid docs found in %s", path)
	}

	return docs, nil
}

// LoadDir loads every *.txt, *.xml and *.html file in dir. The file's base
// name is the language label, so german.txt holds German text. Text and XML
// files are passed through untouched (Wikipedia Extractor <doc> tags are left
// for the cleaner); HTML files are reduced to their text nodes.
func LoadDir(dir string) ([]Doc, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read dir %s: %w", dir, err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var docs []Doc
	for _, name := range names {
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ".txt" && ext != ".xml" && ext != ".html" && ext != ".htm" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}

		text := string(data)
		if ext == ".html" || ext == ".htm" {
			text = ExtractHTMLText(data)
		}

		docs = append(docs, Doc{
			Language: strings.TrimSuffix(name, filepath.Ext(name)),
			Source:   name,
			Text:     text,
		})
	}

	if len(docs) == 0 {
		return nil, fmt.Errorf("no corpus files found in %s", dir)
	}
	return docs, nil
}

// ExtractHTMLText returns the text nodes of an HTML document separated by
// spaces, skipping script and style content.
func ExtractHTMLText(data []byte) string {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		// Fallback to raw text if parsing fails
		return string(data)
	}

	var buf strings.Builder
	var extractText func(*html.Node)
	extractText = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteByte(' ')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extractText(c)
		}
	}
	extractText(doc)

	return strings.TrimSpace(buf.String())
}
