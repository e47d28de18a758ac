package arima_test

import (
	"fmt"

	"github.com/cwbudde/algo-arima/arima"
)

func ExampleModel_AutoCovariance() {
	// (1 - 0.5B) x_t = (1 + 0.8B) e_t, Var(e_t) = 4
	m, err := arima.New([]float64{1, -0.5}, []float64{1, 0.8}, 4)
	if err != nil {
		fmt.Println(err)
		return
	}

	for lag := 0; lag < 3; lag++ {
		g, _ := m.AutoCovariance(lag)
		fmt.Printf("%.4f\n", g)
	}
	// Output:
	// 13.0133
	// 9.7067
	// 4.8533
}

func ExampleModel_MinSpectrum() {
	m, _ := arima.New([]float64{1, -0.5}, nil, 1)

	freq, value, _ := m.MinSpectrum()
	fmt.Printf("%.4f %.4f\n", freq, value)
	// Output: 3.1416 0.4444
}
