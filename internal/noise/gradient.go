package noise

import "math"

// vec2 is a 2D gradient direction.
type vec2 struct {
	X, Y float64
}

func (g vec2) dot(x, y float64) float64 {
	return g.X*x + g.Y*y
}

const diag = 1 / math.Sqrt2

var gradients1D = [2]float64{1, -1}

// gradients2D holds the 4 axis directions followed by the 4 diagonals.
var gradients2D = [8]vec2{
	{1, 0},
	{-1, 0},
	{0, 1},
	{0, -1},
	{diag, diag},
	{diag, -diag},
	{-diag, diag},
	{-diag, -diag},
}

// fade is the quintic 6t^5 - 15t^4 + 10t^3; zero first and second
// derivatives at 0 and 1.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(a, b, alpha float64) float64 {
	return (1-alpha)*a + alpha*b
}
