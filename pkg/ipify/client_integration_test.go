package ipify

import (
	"context"
	"os"
	"testing"
	"time"
)

func TestLookupIntegration(t *testing.T) {
	apiKey := os.Getenv("IPIFY_API_KEY")
	if apiKey == "" {
		t.Skip("IPIFY_API_KEY must be set to run this test")
	}

	client, err := NewClient(Config{APIKey: apiKey})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := client.Lookup(ctx, Params{IPAddress: "8.8.8.8"})
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}

	t.Logf("8.8.8.8 -> %s, %s, %s (%f, %f) tz=%s isp=%s",
		res.Location.City, res.Location.Region, res.Location.Country,
		res.Location.Lat, res.Location.Lng, res.Location.Timezone, res.ISP)
}
