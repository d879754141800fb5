package metadomain

import "strings"

// purchaseActionTypes são os action_types contados como compra.
var purchaseActionTypes = map[string]bool{
	"purchase":                    true,
	"omni_purchase":               true,
	"offsite_conversion.purchase": true,
	"web_in_store_purchase":       true,
	"onsite_conversion.purchase":  true,
}

// IsPurchaseAction indica se o action_type conta como compra. Além da
// lista conhecida, qualquer sufixo ".purchase" também conta.
func IsPurchaseAction(actionType string) bool {
	if purchaseActionTypes[actionType] {
		return true
	}

	return strings.HasSuffix(actionType, ".purchase")
}
