// =============================================================================
// Invoice Report Generator - Line-Item Classifier
// =============================================================================
//
// Classification of free-text line descriptions is heuristic by nature, so
// the rules live here in one place instead of being scattered through the
// rendering code. Rules are first-match-wins:
//
//   1. Discount : description contains "discount", or quantity is negative
//   2. Shipping : description matches the shipping keyword pattern
//   3. Normal   : everything else
//
// =============================================================================

package report

import (
	"regexp"
	"strings"
)

// shippingPattern matches carriage-related descriptions. Evaluated only for
// items not already classified as discounts.
var shippingPattern = regexp.MustCompile(`(?i)\b(ship|shipping|post|postage|delivery|freight)\b`)

// Classify returns the category for a line item.
func Classify(item LineItem) Category {
	if strings.Contains(strings.ToLower(item.Description), "discount") || item.Quantity.IsNegative() {
		return CategoryDiscount
	}
	if shippingPattern.MatchString(item.Description) {
		return CategoryShipping
	}
	return CategoryNormal
}

// SortGroup fixes the emission order within one order group: discounts
// first, then normal items, then shipping, each sublist preserving the
// original relative order.
func SortGroup(group *OrderGroup) {
	var discounts, normals, shipping []LineItem
	for _, item := range group.Items {
		switch item.Category {
		case CategoryDiscount:
			discounts = append(discounts, item)
		case CategoryShipping:
			shipping = append(shipping, item)
		default:
			normals = append(normals, item)
		}
	}

	ordered := make([]LineItem, 0, len(group.Items))
	ordered = append(ordered, discounts...)
	ordered = append(ordered, normals...)
	ordered = append(ordered, shipping...)
	group.Items = ordered
}
