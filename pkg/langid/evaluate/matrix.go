package evaluate

import (
	"fmt"

	"github.com/cognicore/langid/pkg/langid/internalerr"
)

// Matrix is a confusion matrix: Counts[i][j] is the number of samples whose
// true label is Labels[i] and predicted label is Labels[j].
type Matrix struct {
	Labels []string
	Counts [][]int
	index  map[string]int
}

// NewMatrix creates an empty matrix over the given labels, in order.
func NewMatrix(labels []string) (*Matrix, error) {
	if len(labels) == 0 {
		return nil, fmt.Errorf("no labels: %w", internalerr.ErrInvalidInput)
	}
	m := &Matrix{
		Labels: append([]string(nil), labels...),
		Counts: make([][]int, len(labels)),
		index:  make(map[string]int, len(labels)),
	}
	for i, l := range labels {
		if _, dup := m.index[l]; dup {
			return nil, fmt.Errorf("duplicate label %q: %w", l, internalerr.ErrInvalidInput)
		}
		m.index[l] = i
		m.Counts[i] = make([]int, len(labels))
	}
	return m, nil
}

// Add records one prediction.
func (m *Matrix) Add(actual, predicted string) error {
	i, ok := m.index[actual]
	if !ok {
		return fmt.Errorf("unknown label %q: %w", actual, internalerr.ErrInvalidInput)
	}
	j, ok := m.index[predicted]
	if !ok {
		return fmt.Errorf("unknown label %q: %w", predicted, internalerr.ErrInvalidInput)
	}
	m.Counts[i][j]++
	return nil
}

// Total is the number of recorded predictions.
func (m *Matrix) Total() int {
	n := 0
	for _, row := range m.Counts {
		for _, c := range row {
			n += c
		}
	}
	return n
}

// Accuracy is the share of predictions on the diagonal; 0 when empty.
func (m *Matrix) Accuracy() float64 {
	total := m.Total()
	if total == 0 {
		return 0
	}
	correct := 0
	for i := range m.Counts {
		correct += m.Counts[i][i]
	}
	return float64(correct) / float64(total)
}

// Recall returns per-label recall (diagonal over row total); labels with no
// samples get 0.
func (m *Matrix) Recall() map[string]float64 {
	out := make(map[string]float64, len(m.Labels))
	for i, l := range m.Labels {
		rowTotal := 0
		for _, c := range m.Counts[i] {
			rowTotal += c
		}
		if rowTotal > 0 {
			out[l] = float64(m.Counts[i][i]) / float64(rowTotal)
		} else {
			out[l] = 0
		}
	}
	return out
}

// Cells converts the counts to the float form the plot package accepts.
func (m *Matrix) Cells() [][]float64 {
	cells := make([][]float64, len(m.Counts))
	for i, row := range m.Counts {
		cells[i] = make([]float64, len(row))
		for j, c := range row {
			cells[i][j] = float64(c)
		}
	}
	return cells
}
