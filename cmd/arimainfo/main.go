// Command arimainfo prints roots, autocovariances, spectrum and stationarity
// properties of an ARMA model ar(B) x_t = ma(B) e_t.
//
// Usage:
//
//	arimainfo <command> [flags]
//
// Examples:
//
//	arimainfo roots --ar "1,-1.2,0.35" --ma "1,0.4"
//	arimainfo acf --ar "1,-0.5" --ma "1,0.8" --variance 4 --lags 24
//	arimainfo spectrum --ma "1,0,0,0,-0.6" --points 49 --format csv
//	arimainfo stationary --ar "1,-1.5,0.5"
//	arimainfo solvers
//
// Every flag can also be set in arimainfo.yaml or through ARIMAINFO_*
// environment variables.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
