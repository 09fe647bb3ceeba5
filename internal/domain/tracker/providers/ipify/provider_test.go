package ipify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/honeycarbs/filtrip/internal/domain/tracker"
	"github.com/honeycarbs/filtrip/pkg/ipify"
)

type stubClient struct {
	got ipify.Params
	res ipify.Result
	err error
}

func (s *stubClient) Lookup(_ context.Context, p ipify.Params) (ipify.Result, error) {
	s.got = p
	return s.res, s.err
}

func TestNewProviderRequiresClient(t *testing.T) {
	if _, err := NewProvider(nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestLocateMapsResponse(t *testing.T) {
	client := &stubClient{res: ipify.Result{
		IP:  "8.8.8.8",
		ISP: "Google LLC",
		Location: ipify.Location{
			Country: "US", Region: "California", City: "Mountain View",
			Lat: 37.4, Lng: -122.07, Timezone: "-07:00", PostalCode: "94043", GeonameID: 5375481,
		},
		Domains: []string{"dns.google"},
		AS:      &ipify.AS{ASN: 15169, Name: "Google LLC", Route: "8.8.8.0/24"},
	}}
	p, err := NewProvider(client)
	if err != nil {
		t.Fatal(err)
	}
	fixed := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	p.clock = func() time.Time { return fixed }

	res, err := p.Locate(context.Background(), tracker.Query{IPAddress: "8.8.8.8"})
	if err != nil {
		t.Fatalf("Locate: %v", err)
	}

	if client.got.IPAddress != "8.8.8.8" || client.got.Domain != "" {
		t.Errorf("params = %+v", client.got)
	}
	if res.Place() != "Mountain View, California, US" || res.Location.Timezone != "-07:00" {
		t.Errorf("location = %+v", res.Location)
	}
	if res.AS == nil || res.AS.ASN != 15169 {
		t.Errorf("as = %+v", res.AS)
	}
	if !res.FetchedAt.Equal(fixed) {
		t.Errorf("FetchedAt = %v", res.FetchedAt)
	}
}

func TestLocateDomainAndErrors(t *testing.T) {
	boom := errors.New("ipify: request failed")
	client := &stubClient{err: boom}
	p, _ := NewProvider(client)

	_, err := p.Locate(context.Background(), tracker.Query{Domain: "example.com"})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if client.got.Domain != "example.com" || client.got.IPAddress != "" {
		t.Errorf("params = %+v", client.got)
	}
}
