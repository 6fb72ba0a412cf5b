package return_challan

import "platedepot/pkg/numerator"

const (
	// NumberPrefix is the display prefix for jama challans.
	NumberPrefix = "JC"

	// NumeratorStrategy defines the numbering strategy for this document type.
	NumeratorStrategy = numerator.StrategyCached
)
