package method

import "testing"

func TestNewDescriptor(t *testing.T) {
	d, err := NewDescriptor("  SquareV2 ", "CheckoutCom", "HOSTED", "Credit-Card")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if d.ID != "squarev2" {
		t.Fatalf("ID = %q, want squarev2", d.ID)
	}
	if d.Gateway != "checkoutcom" {
		t.Fatalf("Gateway = %q, want checkoutcom", d.Gateway)
	}
	if d.Type != TypeHosted {
		t.Fatalf("Type = %q, want %q", d.Type, TypeHosted)
	}
	if d.Method != ModalityCreditCard {
		t.Fatalf("Method = %q, want %q", d.Method, ModalityCreditCard)
	}
}

func TestNewDescriptor_RequiresID(t *testing.T) {
	if _, err := NewDescriptor("", "gw", "hosted", ""); err == nil {
		t.Fatal("expected error for empty id")
	}
	if _, err := NewDescriptor("   ", "gw", "hosted", ""); err == nil {
		t.Fatal("expected error for blank id")
	}
}

func TestNewDescriptor_OptionalFieldsMayBeEmpty(t *testing.T) {
	d, err := NewDescriptor("bolt", "", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Gateway != "" || d.Type != "" || d.Method != "" {
		t.Fatalf("expected empty optional fields, got %+v", d)
	}
}

func TestUniqueKey(t *testing.T) {
	a, _ := NewDescriptor("bolt", "gw", "hosted", "credit-card")
	b, _ := NewDescriptor("BOLT", " gw ", "Hosted", "Credit-Card")
	c, _ := NewDescriptor("bolt", "gw2", "hosted", "credit-card")

	if a.UniqueKey() != b.UniqueKey() {
		t.Fatalf("normalized descriptors should share a key: %q vs %q", a.UniqueKey(), b.UniqueKey())
	}
	if a.UniqueKey() == c.UniqueKey() {
		t.Fatalf("different gateways must not share a key: %q", a.UniqueKey())
	}
}
