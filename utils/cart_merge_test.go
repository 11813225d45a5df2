package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeCartLinesSumsMatchingQuantities(t *testing.T) {
	existing := []CartLine{
		{ProductID: 1, VariantID: 0, Quantity: 1},
		{ProductID: 2, VariantID: 0, Quantity: 3},
	}
	incoming := []CartLine{
		{ProductID: 1, VariantID: 0, Quantity: 2},
	}

	merged := MergeCartLines(existing, incoming)

	assert.Equal(t, []CartLine{
		{ProductID: 1, VariantID: 0, Quantity: 3},
		{ProductID: 2, VariantID: 0, Quantity: 3},
	}, merged)
}

func TestMergeCartLinesAppendsNewLines(t *testing.T) {
	existing := []CartLine{
		{ProductID: 1, VariantID: 0, Quantity: 1},
	}
	incoming := []CartLine{
		{ProductID: 3, VariantID: 0, Quantity: 4},
		{ProductID: 4, VariantID: 7, Quantity: 1},
	}

	merged := MergeCartLines(existing, incoming)

	assert.Equal(t, []CartLine{
		{ProductID: 1, VariantID: 0, Quantity: 1},
		{ProductID: 3, VariantID: 0, Quantity: 4},
		{ProductID: 4, VariantID: 7, Quantity: 1},
	}, merged)
}

func TestMergeCartLinesVariantsAreDistinctKeys(t *testing.T) {
	existing := []CartLine{
		{ProductID: 1, VariantID: 0, Quantity: 1},
		{ProductID: 1, VariantID: 5, Quantity: 2},
	}
	incoming := []CartLine{
		{ProductID: 1, VariantID: 5, Quantity: 1},
		{ProductID: 1, VariantID: 6, Quantity: 2},
	}

	merged := MergeCartLines(existing, incoming)

	assert.Equal(t, []CartLine{
		{ProductID: 1, VariantID: 0, Quantity: 1},
		{ProductID: 1, VariantID: 5, Quantity: 3},
		{ProductID: 1, VariantID: 6, Quantity: 2},
	}, merged)
}

func TestMergeCartLinesSkipsNonPositiveQuantities(t *testing.T) {
	existing := []CartLine{
		{ProductID: 1, VariantID: 0, Quantity: 2},
	}
	incoming := []CartLine{
		{ProductID: 1, VariantID: 0, Quantity: 0},
		{ProductID: 2, VariantID: 0, Quantity: -3},
	}

	merged := MergeCartLines(existing, incoming)

	assert.Equal(t, existing, merged)
}

func TestMergeCartLinesEmptyInputs(t *testing.T) {
	incoming := []CartLine{{ProductID: 1, VariantID: 0, Quantity: 2}}

	assert.Equal(t, incoming, MergeCartLines(nil, incoming))
	assert.Equal(t, []CartLine{{ProductID: 1, VariantID: 0, Quantity: 2}}, MergeCartLines(incoming, nil))
	assert.Empty(t, MergeCartLines(nil, nil))
}

func TestMergeCartLinesDoesNotMutateInputs(t *testing.T) {
	existing := []CartLine{{ProductID: 1, VariantID: 0, Quantity: 1}}
	incoming := []CartLine{{ProductID: 1, VariantID: 0, Quantity: 2}}

	_ = MergeCartLines(existing, incoming)

	assert.Equal(t, 1, existing[0].Quantity)
	assert.Equal(t, 2, incoming[0].Quantity)
}

func TestMergeCartLinesDeterministicRepeatedIncoming(t *testing.T) {
	incoming := []CartLine{
		{ProductID: 9, VariantID: 0, Quantity: 1},
		{ProductID: 9, VariantID: 0, Quantity: 2},
	}

	merged := MergeCartLines(nil, incoming)

	assert.Equal(t, []CartLine{{ProductID: 9, VariantID: 0, Quantity: 3}}, merged)
}
