package billing

import (
	"platedepot/internal/core/apperror"
	"platedepot/internal/core/types"
)

// ServiceChargeMode selects how the service charge is derived.
type ServiceChargeMode string

const (
	// ServicePerPlate charges ServiceChargeRate per plate ever issued.
	ServicePerPlate ServiceChargeMode = "per_plate"
	// ServicePercentage charges ServiceChargePercent percent of total rent.
	ServicePercentage ServiceChargeMode = "percentage"
	// ServiceFixed charges the flat ServiceChargeFixed amount once per bill.
	ServiceFixed ServiceChargeMode = "fixed"
	// ServiceDisabled charges no service charge.
	ServiceDisabled ServiceChargeMode = "disabled"
)

// ReturnDayPolicy selects when a return stops accruing rent.
type ReturnDayPolicy string

const (
	// ReturnSameDay bills the post-return balance from the return date itself.
	// This is the default and matches the depot's printed bills.
	ReturnSameDay ReturnDayPolicy = "same_day"
	// ReturnNextDay shortens a return entry's day count by one: the issue is
	// billable the day it happens, the return stops billing the next day.
	ReturnNextDay ReturnDayPolicy = "next_day"
)

// RateConfig parameterizes one billing run. The historical calculators each
// hard-coded one combination of these knobs; the engine takes them as data.
type RateConfig struct {
	// DailyRate is the rent per plate per day.
	DailyRate types.Money `json:"dailyRate"`

	ServiceChargeMode    ServiceChargeMode `json:"serviceChargeMode"`
	ServiceChargeRate    types.Money       `json:"serviceChargeRate"`    // per plate, PerPlate mode
	ServiceChargePercent types.Money       `json:"serviceChargePercent"` // percent of rent, Percentage mode
	ServiceChargeFixed   types.Money       `json:"serviceChargeFixed"`   // flat, Fixed mode

	// WorkerCharge is a flat loading/unloading fee applied once per bill.
	WorkerCharge types.Money `json:"workerCharge"`

	// LostPlatePenalty is charged per plate never returned by bill date.
	LostPlatePenalty types.Money `json:"lostPlatePenalty"`

	ReturnDayPolicy ReturnDayPolicy `json:"returnDayPolicy"`
}

// DefaultRateConfig returns a config with every charge disabled except rent.
func DefaultRateConfig(dailyRate types.Money) RateConfig {
	return RateConfig{
		DailyRate:         dailyRate,
		ServiceChargeMode: ServiceDisabled,
		ReturnDayPolicy:   ReturnSameDay,
	}
}

// normalized fills zero-value enum fields with their defaults.
func (c RateConfig) normalized() RateConfig {
	if c.ServiceChargeMode == "" {
		c.ServiceChargeMode = ServiceDisabled
	}
	if c.ReturnDayPolicy == "" {
		c.ReturnDayPolicy = ReturnSameDay
	}
	return c
}

// Validate rejects negative rates before any aggregation begins.
func (c RateConfig) Validate() error {
	checks := []struct {
		field string
		value types.Money
	}{
		{"dailyRate", c.DailyRate},
		{"serviceChargeRate", c.ServiceChargeRate},
		{"serviceChargePercent", c.ServiceChargePercent},
		{"serviceChargeFixed", c.ServiceChargeFixed},
		{"workerCharge", c.WorkerCharge},
		{"lostPlatePenalty", c.LostPlatePenalty},
	}
	for _, ch := range checks {
		if ch.value.IsNegative() {
			return apperror.NewInvalidRateConfig(ch.field, ch.value.String())
		}
	}

	switch c.ServiceChargeMode {
	case "", ServicePerPlate, ServicePercentage, ServiceFixed, ServiceDisabled:
	default:
		return apperror.NewValidation("unknown service charge mode").
			WithDetail("field", "serviceChargeMode").
			WithDetail("value", string(c.ServiceChargeMode))
	}

	switch c.ReturnDayPolicy {
	case "", ReturnSameDay, ReturnNextDay:
	default:
		return apperror.NewValidation("unknown return day policy").
			WithDetail("field", "returnDayPolicy").
			WithDetail("value", string(c.ReturnDayPolicy))
	}

	return nil
}
