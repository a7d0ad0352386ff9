package okcolor

// https://bottosson.github.io/posts/gamutclipping/

import "math"

const eps = 0.00001

// DefaultClipAlpha weighs how far out-of-gamut colours are pulled toward
// mid lightness rather than toward their own lightness.
const DefaultClipAlpha = 0.05

// Clip maps lc into the sRGB gamut along a line toward an adaptive lightness
// anchor, keeping hue. Colours already inside are returned unchanged.
func Clip(lc Lab, alpha float64) Lab {
	if lc.InGamut() {
		return lc
	}

	c := max(eps, math.Hypot(lc.A, lc.B))
	a, b := lc.A/c, lc.B/c

	ld := lc.L - 0.5
	e1 := 0.5 + math.Abs(ld) + alpha*c
	l0 := 0.5 * (1 + sign(ld)*(e1-math.Sqrt(e1*e1-2*math.Abs(ld))))

	t := intersect(a, b, lc.L, c, l0)
	return Lab{
		L: l0*(1-t) + t*lc.L,
		A: t * c * a,
		B: t * c * b,
	}
}

func sign(x float64) float64 {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

// hueAxes projects a normalized hue direction onto the LMS axes.
func hueAxes(a, b float64) [3]float64 {
	return [3]float64{
		+0.3963377774*a + 0.2158037573*b,
		-0.1055613458*a - 0.0638541728*b,
		-0.0894841775*a - 1.2914855480*b,
	}
}

// maxSaturation approximates the largest C/L that stays in sRGB for the
// normalized hue (a, b), refined with one Halley step.
func maxSaturation(a, b float64) float64 {
	var k [5]float64
	var w [3]float64
	switch {
	case -1.88170328*a-0.80936493*b > 1:
		k = [5]float64{+1.19086277, +1.76576728, +0.59662641, +0.75515197, +0.56771245}
		w = lmsToRGB[0]
	case 1.81444104*a-1.19445276*b > 1:
		k = [5]float64{+0.73956515, -0.45954404, +0.08285427, +0.12541070, +0.14503204}
		w = lmsToRGB[1]
	default:
		k = [5]float64{+1.35733652, -0.00915799, -1.15130210, -0.50559606, +0.00692167}
		w = lmsToRGB[2]
	}

	sat := k[0] + k[1]*a + k[2]*b + k[3]*a*a + k[4]*a*b

	var f, f1, f2 float64
	for i, kx := range hueAxes(a, b) {
		x := 1 + sat*kx
		f += w[i] * x * x * x
		f1 += w[i] * 3 * kx * x * x
		f2 += w[i] * 6 * kx * kx * x
	}
	return sat - f*f1/(f1*f1-0.5*f*f2)
}

// cusp returns the lightness and chroma of the most saturated in-gamut
// colour of the hue.
func cusp(a, b float64) (float64, float64) {
	s := maxSaturation(a, b)
	rgb := Lab{L: 1, A: s * a, B: s * b}.linear()
	l := math.Cbrt(1 / max(rgb[0], rgb[1], rgb[2]))
	return l, l * s
}

// intersect finds t where the line L = l0*(1-t) + t*l1, C = t*c1 leaves the
// gamut. (a, b) must be normalized.
func intersect(a, b, l1, c1, l0 float64) float64 {
	lc, cc := cusp(a, b)

	if (l1-l0)*cc-(lc-l0)*c1 <= 0 {
		return cc * l0 / (c1*lc + cc*(l0-l1))
	}

	t := cc * (l0 - 1) / (c1*(lc-1) + cc*(l0-l1))

	dl := l1 - l0
	L := l0*(1-t) + t*l1
	C := t * c1
	var lms, d1, d2 [3]float64
	for i, k := range hueAxes(a, b) {
		x := L + C*k
		dt := dl + c1*k
		lms[i] = x * x * x
		d1[i] = 3 * dt * x * x
		d2[i] = 6 * dt * dt * x
	}

	step := math.MaxFloat64
	for _, row := range lmsToRGB {
		f := dot(row, lms) - 1
		f1 := dot(row, d1)
		f2 := dot(row, d2)
		if u := f1 / (f1*f1 - 0.5*f*f2); u >= 0 {
			step = min(step, -f*u)
		}
	}
	if step == math.MaxFloat64 {
		return t
	}
	return t + step
}
