package selector

import (
	"checkroute/internal/domain/method"
	"checkroute/internal/widget"
)

// dedicatedWidgets maps method ids that always get their own widget,
// regardless of gateway, modality or provider type. Checked right after
// the PPSDK rule, in this order.
var dedicatedWidgets = []struct {
	id   string
	kind widget.Kind
}{
	{"amazonpay", widget.KindAmazonPay},
	{"affirm", widget.KindAffirm},
	{"barclaycard", widget.KindBarclaycard},
	{"bluesnapv2", widget.KindBlueSnapV2},
	{"bolt", widget.KindBolt},
	{"klarna", widget.KindKlarna},
	{"masterpass", widget.KindMasterpass},
	{"opy", widget.KindOpy},
	{"paypalcommerce", widget.KindPaypalCommerce},
	{"squarev2", widget.KindSquareV2},
	{"stripev3", widget.KindStripeV3},
	{"worldpayaccess", widget.KindWorldpayAccess},
}

// DefaultRules builds the production rule chain. The chain is a total
// priority order: the credit-card fallback sits last because several
// gateways report a credit-card modality while needing a hosted or
// dedicated widget, so every more specific rule must win first. Keep it
// that way when adding rules.
func DefaultRules() []Rule {
	rules := []Rule{
		{
			Name:   "ppsdk",
			Match:  func(d method.Descriptor) bool { return d.Type == method.TypePPSDK },
			Widget: widget.KindPPSDK,
		},
	}

	for _, dw := range dedicatedWidgets {
		id := dw.id
		rules = append(rules, Rule{
			Name:   "id:" + id,
			Match:  func(d method.Descriptor) bool { return d.ID == id },
			Widget: dw.kind,
		})
	}

	rules = append(rules,
		// checkoutcom carries its own card sub-methods; anything else
		// under that gateway is a hosted redirect.
		Rule{
			Name: "checkoutcom-card",
			Match: func(d method.Descriptor) bool {
				return d.Gateway == "checkoutcom" && (d.ID == "credit_card" || d.ID == "card")
			},
			Widget: widget.KindCreditCard,
		},
		Rule{
			Name:   "checkoutcom-hosted",
			Match:  func(d method.Descriptor) bool { return d.Gateway == "checkoutcom" },
			Widget: widget.KindHosted,
		},
		Rule{
			Name:   "hosted",
			Match:  matchesHosted,
			Widget: widget.KindHosted,
		},
		Rule{
			Name:   "id:moneris",
			Match:  func(d method.Descriptor) bool { return d.ID == "moneris" },
			Widget: widget.KindMoneris,
		},
		Rule{
			Name: "credit-card",
			Match: func(d method.Descriptor) bool {
				return d.Method == method.ModalityCreditCard || d.Type == method.TypeAPI
			},
			Widget: widget.KindCreditCard,
		},
	)

	return rules
}

func matchesHosted(d method.Descriptor) bool {
	return d.Gateway == "afterpay" ||
		d.Gateway == "clearpay" ||
		d.ID == "humm" ||
		d.ID == "laybuy" ||
		d.ID == "sezzle" ||
		d.ID == "zip" ||
		d.Method == method.ModalityPaypal ||
		d.Method == method.ModalityPaypalCredit ||
		d.Type == method.TypeHosted
}
