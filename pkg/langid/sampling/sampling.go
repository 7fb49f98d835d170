// Package sampling extracts whole-word windows from cleaned text and turns
// them into character-count feature vectors.
//
// Offsets and sizes count characters (runes), not bytes. The input is
// expected to be the output of clean.Text; on uncleaned text a sample may
// still carry internal whitespace runs.
package sampling

import (
	"fmt"
	"unicode"

	"github.com/cognicore/langid/pkg/langid/internalerr"
)

// cursor gives bounds-checked access to a rune slice.
type cursor struct {
	text []rune
}

func (c cursor) at(i int) (rune, error) {
	if i < 0 || i >= len(c.text) {
		return 0, fmt.Errorf("cursor %d outside text of length %d: %w", i, len(c.text), internalerr.ErrOutOfBounds)
	}
	return c.text[i], nil
}

// Text returns a sample of roughly size characters that holds whole words only.
//
// The window starts at the first word that begins after the whitespace
// following start, so start itself need not sit on a word boundary. The
// window end is start+size moved backward to the nearest whitespace, which
// trims a partial trailing word. The result is never longer than size.
//
// The caller must leave room after start: a cursor that would leave the text
// fails with ErrOutOfBounds, and a window too short to hold one complete word
// fails with ErrNoWholeWord.
func Text(text string, start, size int) (string, error) {
	if text == "" {
		return "", fmt.Errorf("sample of empty text: %w", internalerr.ErrInvalidInput)
	}
	if start < 0 || size < 0 {
		return "", fmt.Errorf("sample start %d size %d: %w", start, size, internalerr.ErrInvalidInput)
	}

	c := cursor{text: []rune(text)}

	// Skip the rest of the word under start.
	i := start
	for {
		r, err := c.at(i)
		if err != nil {
			return "", fmt.Errorf("seek word end: %w", err)
		}
		if unicode.IsSpace(r) {
			break
		}
		i++
	}

	// Skip the whitespace to the first letter of the next word.
	for {
		r, err := c.at(i)
		if err != nil {
			return "", fmt.Errorf("seek word start: %w", err)
		}
		if !unicode.IsSpace(r) {
			break
		}
		i++
	}
	begin := i

	end := begin + size
	for {
		r, err := c.at(end)
		if err != nil {
			return "", fmt.Errorf("seek sample end: %w", err)
		}
		if unicode.IsSpace(r) {
			break
		}
		end--
		if end <= begin {
			return "", fmt.Errorf("window of %d at %d: %w", size, begin, internalerr.ErrNoWholeWord)
		}
	}

	return string(c.text[begin:end]), nil
}
