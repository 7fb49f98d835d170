package evaluate

import (
	"errors"
	"testing"

	"github.com/cognicore/langid/pkg/langid/internalerr"
)

func TestMatrixAddAndAccuracy(t *testing.T) {
	m, err := NewMatrix([]string{"czech", "slovak"})
	if err != nil {
		t.Fatalf("NewMatrix: %v", err)
	}

	pairs := [][2]string{
		{"czech", "czech"}, {"czech", "czech"}, {"czech", "slovak"},
		{"slovak", "slovak"},
	}
	for _, p := range pairs {
		if err := m.Add(p[0], p[1]); err != nil {
			t.Fatalf("Add(%v): %v", p, err)
		}
	}

	if m.Counts[0][0] != 2 || m.Counts[0][1] != 1 || m.Counts[1][1] != 1 {
		t.Errorf("Unexpected counts %v", m.Counts)
	}
	if m.Total() != 4 {
		t.Errorf("Expected total 4, got %d", m.Total())
	}
	if got := m.Accuracy(); got != 0.75 {
		t.Errorf("Expected accuracy 0.75, got %f", got)
	}

	recall := m.Recall()
	if recall["czech"] < 0.666 || recall["czech"] > 0.667 {
		t.Errorf("Unexpected czech recall %f", recall["czech"])
	}
	if recall["slovak"] != 1 {
		t.Errorf("Unexpected slovak recall %f", recall["slovak"])
	}

	cells := m.Cells()
	if cells[0][1] != 1 {
		t.Errorf("Cells mismatch: %v", cells)
	}
}

func TestMatrixEmpty(t *testing.T) {
	m, err := NewMatrix([]string{"a"})
	if err != nil {
		t.Fatal(err)
	}
	if m.Accuracy() != 0 {
		t.Error("Empty matrix accuracy should be 0")
	}
}

func TestMatrixErrors(t *testing.T) {
	if _, err := NewMatrix(nil); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for no labels, got %v", err)
	}
	if _, err := NewMatrix([]string{"a", "a"}); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for duplicate labels, got %v", err)
	}

	m, _ := NewMatrix([]string{"a", "b"})
	if err := m.Add("a", "zz"); !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for unknown label, got %v", err)
	}
}
