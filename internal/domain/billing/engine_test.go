package billing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"platedepot/internal/core/apperror"
	"platedepot/internal/core/id"
	"platedepot/internal/core/types"
)

func calcInput() CalculateInput {
	return CalculateInput{
		ClientID: id.MustParse("018f3b1e-0000-7000-8000-000000000001"),
		Issues:   []RawTransaction{issue("UC-1", 1, 100)},
		Returns:  []RawTransaction{ret("JC-1", 11, 40)},
		BillDate: day(20),
		Rates:    rateOne(),
	}
}

func TestCalculateBill_EndToEnd(t *testing.T) {
	res, err := CalculateBill(calcInput())
	require.NoError(t, err)

	assert.Equal(t, 2, len(res.Ledger))
	assert.Equal(t, 2, len(res.DateRanges))
	assert.True(t, res.TotalRent.Equal(types.NewMoneyFromInt(1600)),
		"totalRent = %s", res.TotalRent)
	assert.True(t, res.FinalDue.Equal(types.NewMoneyFromInt(1600)))
	assert.False(t, res.BalanceClamped)
	assert.Empty(t, res.Warnings)
	assert.Equal(t, 100, res.TotalIssued)
	assert.Equal(t, 40, res.TotalReturned)
}

func TestCalculateBill_RejectsNegativeRates(t *testing.T) {
	in := calcInput()
	in.Rates.WorkerCharge = types.NewMoneyFromInt(-10)

	_, err := CalculateBill(in)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeInvalidRateConfig, appErr.Code)
}

func TestCalculateBill_PropagatesNormalizerError(t *testing.T) {
	in := calcInput()
	in.Issues = append(in.Issues, RawTransaction{DocumentNumber: "UC-2", Lines: []RawLine{{Quantity: 3}}})

	_, err := CalculateBill(in)
	assert.True(t, apperror.IsInvalidTransactionData(err))
}

func TestCalculateBill_ClampWarning(t *testing.T) {
	in := calcInput()
	in.Issues = []RawTransaction{issue("UC-1", 1, 10)}
	in.Returns = []RawTransaction{ret("JC-1", 5, 15)}

	res, err := CalculateBill(in)
	require.NoError(t, err)
	assert.True(t, res.BalanceClamped)
	assert.NotEmpty(t, res.Warnings)
}

// The engine is a pure function: identical inputs yield identical output.
func TestCalculateBill_Idempotent(t *testing.T) {
	a, err := CalculateBill(calcInput())
	require.NoError(t, err)
	b, err := CalculateBill(calcInput())
	require.NoError(t, err)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, string(ja), string(jb))
}

func TestCalculateBill_NoEvents(t *testing.T) {
	in := calcInput()
	in.Issues = nil
	in.Returns = nil

	res, err := CalculateBill(in)
	require.NoError(t, err)
	assert.Empty(t, res.Ledger)
	assert.True(t, res.TotalRent.IsZero())
	assert.True(t, res.FinalDue.IsZero())
}
