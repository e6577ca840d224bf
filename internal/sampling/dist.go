package sampling

import (
	"math"
	"math/rand"

	"crisiscast/internal/priors"
)

// pertLambda is the standard PERT shape parameter: higher values concentrate
// more mass near the mode.
const pertLambda = 4.0

// Draw samples one realized probability from a resolved descriptor. The set
// of distribution kinds is closed, so dispatch is a plain switch.
func Draw(d priors.Descriptor, rng *rand.Rand) float64 {
	switch d.Dist {
	case priors.DistFixed:
		return clamp01(d.Mode)
	case priors.DistTriangular:
		return clamp01(drawTriangular(d.Low, d.Mode, d.High, rng))
	default: // beta_pert
		return clamp01(drawBetaPert(d.Low, d.Mode, d.High, rng))
	}
}

// drawTriangular samples a triangular distribution by inverse transform.
func drawTriangular(low, mode, high float64, rng *rand.Rand) float64 {
	if high <= low {
		return mode
	}
	u := rng.Float64()
	fc := (mode - low) / (high - low)
	if u < fc {
		return low + math.Sqrt(u*(high-low)*(mode-low))
	}
	return high - math.Sqrt((1-u)*(high-low)*(high-mode))
}

// drawBetaPert samples the PERT-shaped Beta distribution parameterized from
// low/mode/high. Mass concentrates near the mode while respecting the stated
// bounds, which is why it is the default for expert-elicited priors.
func drawBetaPert(low, mode, high float64, rng *rand.Rand) float64 {
	if high <= low {
		return mode
	}
	alpha := 1 + pertLambda*(mode-low)/(high-low)
	beta := 1 + pertLambda*(high-mode)/(high-low)
	return low + (high-low)*drawBeta(alpha, beta, rng)
}

func drawBeta(alpha, beta float64, rng *rand.Rand) float64 {
	ga := drawGamma(alpha, rng)
	gb := drawGamma(beta, rng)
	if ga+gb == 0 {
		return 0.5
	}
	return ga / (ga + gb)
}

// drawGamma samples Gamma(shape, 1) using the Marsaglia-Tsang squeeze
// method. Shapes below 1 use the standard boosting transform.
func drawGamma(shape float64, rng *rand.Rand) float64 {
	if shape < 1 {
		u := rng.Float64()
		for u == 0 {
			u = rng.Float64()
		}
		return drawGamma(shape+1, rng) * math.Pow(u, 1/shape)
	}

	d := shape - 1.0/3.0
	c := 1 / math.Sqrt(9*d)
	for {
		x := rng.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v
		}
		if u > 0 && math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
}
