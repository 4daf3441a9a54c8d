package model

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestParseGameFamily(t *testing.T) {
	tests := []struct {
		in      string
		want    GameFamily
		wantErr bool
	}{
		{in: "genshin", want: Genshin},
		{in: "hsr", want: StarRail},
		{in: " hsr ", want: StarRail},
		{in: "Genshin", wantErr: true},
		{in: "zzz", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseGameFamily(tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrUnknownGameFamily) {
					t.Fatalf("expected ErrUnknownGameFamily, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestRawModulePayload(t *testing.T) {
	if got := (RawModule{Name: "Story"}).Payload(); got != "" {
		t.Errorf("expected empty payload for module without components, got %q", got)
	}
	m := RawModule{Name: "Story", Components: []Component{{Data: `{"data":"x"}`}, {Data: "ignored"}}}
	if got := m.Payload(); got != `{"data":"x"}` {
		t.Errorf("expected first component data, got %q", got)
	}
}

func TestPageIDAcceptsStringAndNumber(t *testing.T) {
	var p struct {
		ID PageID `json:"id"`
	}
	for _, in := range []string{`{"id":"1234"}`, `{"id":1234}`} {
		if err := json.Unmarshal([]byte(in), &p); err != nil {
			t.Fatalf("unmarshal %s: %v", in, err)
		}
		if p.ID != "1234" {
			t.Errorf("unmarshal %s: got %q", in, p.ID)
		}
	}
}

func TestEntryURL(t *testing.T) {
	if got, want := EntryURL(StarRail, 1001), "https://wiki.hoyolab.com/pc/hsr/entry/1001"; got != want {
		t.Errorf("EntryURL = %q, want %q", got, want)
	}
	if got, want := EntryURL(Genshin, 2), "https://wiki.hoyolab.com/pc/genshin/entry/2"; got != want {
		t.Errorf("EntryURL = %q, want %q", got, want)
	}
}
