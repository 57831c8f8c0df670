package service

import "math"

const taxRate = 0.10

type Quote struct {
	Subtotal int64
	Tax      int64
	Total    int64
}

// PriceOrder prices a print job. The multiplications run in a fixed order and round half up so
// totals are reproducible across implementations.
func PriceOrder(copies int, paperSize, printSide, color string) Quote {
	base := 1.0
	if color == "color" {
		base = 2
	}
	sizeMultiplier := 1.0
	if paperSize == "A3" {
		sizeMultiplier = 1.5
	}
	sideMultiplier := 1.0
	if printSide == "double-sided" {
		sideMultiplier = 1.8
	}

	subtotal := roundHalfUp(base * sizeMultiplier * sideMultiplier * float64(copies))
	tax := roundHalfUp(float64(subtotal) * taxRate)

	return Quote{Subtotal: subtotal, Tax: tax, Total: subtotal + tax}
}

func roundHalfUp(x float64) int64 {
	return int64(math.Floor(x + 0.5))
}
