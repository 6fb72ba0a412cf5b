package issue_challan

import "platedepot/pkg/numerator"

const (
	// NumberPrefix is the display prefix for udhar challans.
	NumberPrefix = "UC"

	// NumeratorStrategy defines the numbering strategy for this document type.
	// Challans are produced at the loading dock in bursts, so gaps are
	// acceptable in exchange for speed.
	NumeratorStrategy = numerator.StrategyCached
)
