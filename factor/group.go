package factor

import (
	"github.com/lgbp/lgbp/core"
	"github.com/lgbp/lgbp/tensor"
)

// Group is the interface every factor family implements, and the
// interface the engine wires edges and runs message passing against.
type Group interface {
	Name() string
	CreateNodes(k int) ([]int, error)
	Finalize() error
	ComputeMessages() (map[string]*tensor.Dense3, error)
	RoleChunk(role string) (*core.MessageChunk, error)
}

func normalizePair(a, b float64) (float64, float64) {
	total := a + b
	if total == 0 {
		return a, b
	}
	return a / total, b / total
}

func normalizeRow(row []float64) []float64 {
	total := 0.0
	for _, v := range row {
		total += v
	}
	if total == 0 {
		return row
	}
	for i := range row {
		row[i] /= total
	}
	return row
}

func checkDegreeExactly(chunk *core.MessageChunk, want int, err error) error {
	for i := 0; i < chunk.NumNodes(); i++ {
		deg, dErr := chunk.Degree(i)
		if dErr != nil {
			return dErr
		}
		if deg != want {
			return err
		}
	}
	return nil
}
