package phone

import "testing"

func TestFormatAppliesFullMask(t *testing.T) {
	if got := Format("11987654321"); got != "(11) 98765-4321" {
		t.Fatalf("expected (11) 98765-4321, got %q", got)
	}
}

func TestFormatPartialInput(t *testing.T) {
	cases := map[string]string{
		"":         "",
		"1":        "1",
		"11":       "11",
		"119":      "(11) 9",
		"119876":   "(11) 9876",
		"11987654": "(11) 98765-4",
	}
	for input, want := range cases {
		if got := Format(input); got != want {
			t.Fatalf("Format(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestFormatStripsNonDigits(t *testing.T) {
	if got := Format("11 98765-4321"); got != "(11) 98765-4321" {
		t.Fatalf("expected stripped remask, got %q", got)
	}
}

func TestFormatIsIdempotentOverMaskedValues(t *testing.T) {
	once := Format("11987654321")
	if got := Format(once); got != once {
		t.Fatalf("expected %q to be stable, got %q", once, got)
	}
}

func TestFormatLeavesOverlongInputAlone(t *testing.T) {
	if got := Format("5511987654321"); got != "5511987654321" {
		t.Fatalf("expected untouched value, got %q", got)
	}
}
