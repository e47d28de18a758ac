package testutil

import (
	"math"
	"math/rand"
)

// DeterministicRoots returns nReal real roots and nPairs conjugate pairs with
// moduli drawn uniformly from [minMod, maxMod] using a fixed seed. Real roots
// get a random sign.
func DeterministicRoots(seed int64, nReal, nPairs int, minMod, maxMod float64) []complex128 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]complex128, 0, nReal+2*nPairs)

	for range nReal {
		r := minMod + rng.Float64()*(maxMod-minMod)
		if rng.Intn(2) == 0 {
			r = -r
		}
		out = append(out, complex(r, 0))
	}

	for range nPairs {
		r := minMod + rng.Float64()*(maxMod-minMod)
		// Keep the angle away from 0 and pi so pairs stay well separated.
		theta := 0.2 + rng.Float64()*(math.Pi-0.4)
		z := complex(r*math.Cos(theta), r*math.Sin(theta))
		out = append(out, z, complex(real(z), -imag(z)))
	}

	return out
}

