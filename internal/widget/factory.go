package widget

// AvailableKinds returns every widget kind the selector can hand out,
// whether or not an integration backs it in this deployment.
func AvailableKinds() []Kind {
	return []Kind{
		KindPPSDK,
		KindCreditCard,
		KindHosted,
		KindAmazonPay,
		KindAffirm,
		KindBarclaycard,
		KindBlueSnapV2,
		KindBolt,
		KindKlarna,
		KindMasterpass,
		KindOpy,
		KindPaypalCommerce,
		KindSquareV2,
		KindStripeV3,
		KindWorldpayAccess,
		KindMoneris,
	}
}

// IsKnownKind checks if a kind is one the selector can produce
func IsKnownKind(kind Kind) bool {
	for _, k := range AvailableKinds() {
		if k == kind {
			return true
		}
	}
	return false
}
