package utils

// CartLine is the cart shape the merge reconciler works on, detached
// from the persisted model so the merge stays a pure function.
type CartLine struct {
	ProductID uint `json:"product_id"`
	VariantID uint `json:"variant_id"`
	Quantity  int  `json:"quantity"`
}

type cartKey struct {
	productID uint
	variantID uint
}

// MergeCartLines merges an incoming set of cart lines (typically a
// guest cart carried over at login) into the existing set. Lines match
// on (product, variant); a zero VariantID is its own key, distinct from
// every real variant. Matching lines have their quantities summed, not
// replaced: merging a guest cart into an account adds stock. Unmatched
// incoming lines are appended.
//
// Output order is deterministic: existing lines first in their original
// order, then new lines in incoming order.
func MergeCartLines(existing, incoming []CartLine) []CartLine {
	merged := make([]CartLine, len(existing))
	copy(merged, existing)

	index := make(map[cartKey]int, len(merged))
	for i, line := range merged {
		index[cartKey{line.ProductID, line.VariantID}] = i
	}

	for _, line := range incoming {
		if line.Quantity <= 0 {
			continue
		}
		key := cartKey{line.ProductID, line.VariantID}
		if i, ok := index[key]; ok {
			merged[i].Quantity += line.Quantity
			continue
		}
		index[key] = len(merged)
		merged = append(merged, line)
	}

	return merged
}
