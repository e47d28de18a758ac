package roots_test

import (
	"fmt"

	"github.com/cwbudde/algo-arima/polynomial"
	"github.com/cwbudde/algo-arima/polynomial/roots"
)

func ExampleMullerNewton_Solve() {
	// 1 - 1.5B + 0.5B^2 = (1 - B)(1 - 0.5B)
	p := polynomial.New(1, -1.5, 0.5)

	res, err := roots.NewMullerNewton().Solve(p)
	if err != nil {
		panic(err)
	}

	for _, r := range res.Roots {
		fmt.Printf("%.4f\n", real(r))
	}
	// Output:
	// 1.0000
	// 2.0000
}
