package pca_test

import (
	"fmt"

	"github.com/katalvlaran/crnstat/matrix"
	"github.com/katalvlaran/crnstat/pca"
)

// ExampleNewFromCounts builds a PCA from a multiplicity table and keeps
// only the dominant component.
func ExampleNewFromCounts() {
	c := &pca.Counts{}
	_ = c.Add([]float64{1, 2}, 50)
	_ = c.Add([]float64{3, 4}, 50)
	p, err := pca.NewFromCounts(c)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(p.Means(), p.Deviations())

	x, _ := matrix.NewFromRows([][]float64{{1, 2}, {3, 4}})
	y, _ := p.Transform(x, 1)
	fmt.Printf("%.4f %.4f\n", y.Elem(0, 0), y.Elem(1, 0))
	// Output:
	// [2 3] [1 1]
	// -1.4142 1.4142
}
