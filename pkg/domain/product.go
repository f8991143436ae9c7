package domain

// Product identifies what a transition dispensed, if anything.
type Product string

const (
	// ProductNone means the transition dispensed nothing.
	ProductNone Product = ""

	ProductEyeDrop Product = "Eye Drop"
	ProductVitamin Product = "Vitamin"
)

// Dispensed reports whether p names an actual product.
func (p Product) Dispensed() bool {
	return p != ProductNone
}
