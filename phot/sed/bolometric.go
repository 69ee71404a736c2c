package sed

import (
	"math"

	"gonum.org/v1/gonum/integrate/quad"

	"github.com/cwbudde/algo-photometry/phot/core"
)

// planckIntegralNodes is the Gauss-Legendre node count for the cumulative
// Planck integral.
const planckIntegralNodes = 256

// piFourthOver15 is the value of the complete Planck integral
// Int_0^inf x^3/(e^x - 1) dx = pi^4/15.
var piFourthOver15 = math.Pow(math.Pi, 4) / 15

// planckCumulative evaluates Int_0^xc x^3 / (e^x - 1) dx by fixed
// Gauss-Legendre quadrature. The integrand tends to x^2 near zero and
// decays like x^3 e^-x, so the tail beyond x ~ 60 is negligible.
func planckCumulative(xc float64) float64 {
	if xc <= 0 {
		return 0
	}

	if xc > 60 {
		return piFourthOver15
	}

	f := func(x float64) float64 {
		if x == 0 {
			return 0
		}

		return x * x * x / math.Expm1(x)
	}

	return quad.Fixed(f, 0, xc, planckIntegralNodes, nil, 0)
}

// BoostedLuminosity returns the bolometric luminosity corrected for flux
// missing blue-ward of the cutoff wavelength, together with the bare
// blackbody luminosity, both in erg/s.
//
// The total surface flux of a blackbody is sigma_SB T^4, while the flux
// red-ward of lambda_cut is Int_{lambda_cut}^inf pi B_lambda dlambda.
// With the substitution x = h c / (lambda k T) the red-ward flux becomes
// proportional to the cumulative Planck integral, giving the boost
//
//	Boost = (pi^4/15) / Int_0^{x_cut} x^3/(e^x - 1) dx
//
// applied multiplicatively to 4 pi R^2 sigma_SB T^4. A non-positive
// cutoff means no flux is lost and the boost is unity.
func BoostedLuminosity(temperatureK, radiusCm, lambdaCutCm float64) (boosted, bare float64) {
	bare = Luminosity(temperatureK, radiusCm)

	if lambdaCutCm <= 0 {
		return bare, bare
	}

	xc := core.PlanckErgS * core.SpeedOfLightCmPerS /
		(lambdaCutCm * core.BoltzmannErgPerK * temperatureK)

	redward := planckCumulative(xc)
	if redward <= 0 {
		// Cutoff excludes the entire spectrum; no finite boost exists.
		return math.Inf(1), bare
	}

	boost := piFourthOver15 / redward

	return boost * bare, bare
}
