package gate

import (
	"net/url"
	"testing"
)

func TestSanitizeNextTarget(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"", FallbackTarget},
		{"shop.html", "shop.html"},
		{"product.html?id=p01", "product.html?id=p01"},
		{"cart.html#top", "cart.html#top"},
		{"/shop.html", "shop.html"},
		{"///shop.html", "shop.html"},
		{"http://evil.example/shop.html", FallbackTarget},
		{"HTTPS://evil.example", FallbackTarget},
		{"javascript:alert(1)", FallbackTarget},
		{"JavaScript:alert(1)", FallbackTarget},
		{"data:text/html,hi", FallbackTarget},
		{"//evil.example/shop.html", FallbackTarget},
		{"unknown.html", FallbackTarget},
		{"admin.html", FallbackTarget},
		{"gate.html", FallbackTarget},
	}

	for _, tt := range tests {
		if got := SanitizeNextTarget(tt.raw); got != tt.want {
			t.Errorf("SanitizeNextTarget(%q) = %q; want %q", tt.raw, got, tt.want)
		}
	}
}

func TestIsProtected(t *testing.T) {
	if !IsProtected("index.html") {
		t.Errorf("IsProtected(index.html) = false; want true")
	}
	if IsProtected("gate.html") {
		t.Errorf("IsProtected(gate.html) = true; want false")
	}
	if IsProtected("admin.html") {
		t.Errorf("IsProtected(admin.html) = true; want false")
	}
}

func TestDecide_ProtectedPageRedirectsToGate(t *testing.T) {
	d := Decide("shop.html", url.Values{}, false)

	if d.SetGatePassed {
		t.Errorf("SetGatePassed = true; want false")
	}
	if want := "gate.html?next=shop.html"; d.RedirectTo != want {
		t.Errorf("RedirectTo = %q; want %q", d.RedirectTo, want)
	}
}

func TestDecide_PreservesQueryInNext(t *testing.T) {
	q := url.Values{"id": {"p01"}}
	d := Decide("product.html", q, false)

	if want := "gate.html?next=" + url.QueryEscape("product.html?id=p01"); d.RedirectTo != want {
		t.Errorf("RedirectTo = %q; want %q", d.RedirectTo, want)
	}
}

func TestDecide_PassedStays(t *testing.T) {
	d := Decide("shop.html", url.Values{}, true)

	if d.RedirectTo != "" {
		t.Errorf("RedirectTo = %q; want empty (stay)", d.RedirectTo)
	}
}

func TestDecide_AdminBypass(t *testing.T) {
	q := url.Values{"key": {AdminBypassKey}}
	d := Decide("shop.html", q, false)

	if !d.SetGatePassed {
		t.Errorf("SetGatePassed = false; want true for admin key")
	}
	if d.RedirectTo != "" {
		t.Errorf("RedirectTo = %q; want empty", d.RedirectTo)
	}
}

func TestDecide_WrongKeyStillGated(t *testing.T) {
	q := url.Values{"key": {"nope"}}
	d := Decide("shop.html", q, false)

	if d.SetGatePassed {
		t.Errorf("SetGatePassed = true; want false")
	}
	if d.RedirectTo == "" {
		t.Errorf("RedirectTo empty; want a gate redirect")
	}
}

func TestDecide_GatePageForwardsWhenPassed(t *testing.T) {
	q := url.Values{"next": {"cart.html"}}
	d := Decide(Page, q, true)

	if d.RedirectTo != "cart.html" {
		t.Errorf("RedirectTo = %q; want %q", d.RedirectTo, "cart.html")
	}
}

func TestDecide_GatePageSanitizesNext(t *testing.T) {
	q := url.Values{"next": {"javascript:alert(1)"}}
	d := Decide(Page, q, true)

	if d.RedirectTo != FallbackTarget {
		t.Errorf("RedirectTo = %q; want fallback %q", d.RedirectTo, FallbackTarget)
	}
}

func TestDecide_GatePageNotPassedStays(t *testing.T) {
	d := Decide(Page, url.Values{"next": {"shop.html"}}, false)

	if d.RedirectTo != "" {
		t.Errorf("RedirectTo = %q; want empty (show the gate)", d.RedirectTo)
	}
}

func TestDecide_EmptyPageDefaultsToLanding(t *testing.T) {
	d := Decide("", url.Values{}, false)

	if want := "gate.html?next=index.html"; d.RedirectTo != want {
		t.Errorf("RedirectTo = %q; want %q", d.RedirectTo, want)
	}
}

func TestDecide_UnprotectedPageIgnored(t *testing.T) {
	d := Decide("privacy.html", url.Values{}, false)

	if d.RedirectTo != "" {
		t.Errorf("RedirectTo = %q; want empty for unlisted page", d.RedirectTo)
	}
}
