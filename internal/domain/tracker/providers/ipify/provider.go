package ipify

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycarbs/filtrip/internal/domain"
	"github.com/honeycarbs/filtrip/internal/domain/tracker"
	"github.com/honeycarbs/filtrip/pkg/ipify"
)

// lookupClient describes the subset of the ipify client used by the provider.
type lookupClient interface {
	Lookup(ctx context.Context, params ipify.Params) (ipify.Result, error)
}

// Provider implements tracker.Locator using the geo.ipify.org API
type Provider struct {
	client lookupClient
	clock  func() time.Time
}

// NewProvider builds an ipify-backed locator
func NewProvider(client lookupClient) (*Provider, error) {
	if client == nil {
		return nil, fmt.Errorf("ipify provider: client is required")
	}
	return &Provider{client: client, clock: time.Now}, nil
}

// Locate resolves q and normalizes the response
func (p *Provider) Locate(ctx context.Context, q tracker.Query) (domain.LookupResult, error) {
	if p == nil || p.client == nil {
		return domain.LookupResult{}, fmt.Errorf("ipify provider: client is nil")
	}

	res, err := p.client.Lookup(ctx, ipify.Params{
		IPAddress: q.IPAddress,
		Domain:    q.Domain,
	})
	if err != nil {
		return domain.LookupResult{}, err
	}

	out := domain.LookupResult{
		IP:  res.IP,
		ISP: res.ISP,
		Location: domain.Location{
			Country:    res.Location.Country,
			Region:     res.Location.Region,
			City:       res.Location.City,
			Lat:        res.Location.Lat,
			Lng:        res.Location.Lng,
			PostalCode: res.Location.PostalCode,
			Timezone:   res.Location.Timezone,
			GeonameID:  res.Location.GeonameID,
		},
		Domains:   res.Domains,
		FetchedAt: p.clock().UTC(),
	}

	if res.AS != nil {
		out.AS = &domain.AutonomousSystem{
			ASN:    res.AS.ASN,
			Name:   res.AS.Name,
			Route:  res.AS.Route,
			Domain: res.AS.Domain,
			Type:   res.AS.Type,
		}
	}

	return out, nil
}

var _ tracker.Locator = (*Provider)(nil)
