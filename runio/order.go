package runio

import (
	"bufio"
	"fmt"
	"os"

	"github.com/katalvlaran/refmatrix/core"
)

// SaveOrder writes the reorder permutation as a plain-text record:
// one line per new position, numbered from 1, naming the label that moved
// there. labels are the ORIGINAL matrix labels; order is the permutation
// returned by reorder.Reorder.
func SaveOrder(path string, labels []string, order []int) error {
	if len(labels) != len(order) {
		return core.ErrBadPermutation
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for newIdx, origIdx := range order {
		if origIdx < 0 || origIdx >= len(labels) {
			return core.ErrBadPermutation
		}
		fmt.Fprintf(w, "%3d. %s\n", newIdx+1, labels[origIdx])
	}

	return w.Flush()
}
