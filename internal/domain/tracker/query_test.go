package tracker

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		input string
		ok    bool
		want  Query
	}{
		{input: "192.168.1.1", ok: true, want: Query{IPAddress: "192.168.1.1"}},
		{input: "8.8.8.8", ok: true, want: Query{IPAddress: "8.8.8.8"}},
		{input: "255.255.255.255", ok: true, want: Query{IPAddress: "255.255.255.255"}},
		{input: "0.0.0.0", ok: true, want: Query{IPAddress: "0.0.0.0"}},
		{input: "  1.1.1.1\t", ok: true, want: Query{IPAddress: "1.1.1.1"}},
		{input: "256.1.1.1", ok: true, want: Query{Domain: "256.1.1.1"}},
		{input: "01.2.3.4", ok: true, want: Query{Domain: "01.2.3.4"}},
		{input: "1.2.3", ok: true, want: Query{Domain: "1.2.3"}},
		{input: "1.2.3.4.5", ok: true, want: Query{Domain: "1.2.3.4.5"}},
		{input: "2001:db8::1", ok: true, want: Query{Domain: "2001:db8::1"}},
		{input: "example.com", ok: true, want: Query{Domain: "example.com"}},
		{input: "", ok: false},
		{input: "   ", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			got, ok := Classify(tc.input)
			if ok != tc.ok {
				t.Fatalf("Classify(%q) ok = %v, want %v", tc.input, ok, tc.ok)
			}
			if got != tc.want {
				t.Errorf("Classify(%q) = %+v, want %+v", tc.input, got, tc.want)
			}
		})
	}
}

func TestQueryString(t *testing.T) {
	if (Query{}).String() != "self" || !(Query{}).IsSelf() {
		t.Error("zero query should be self")
	}
	if (Query{IPAddress: "8.8.8.8"}).String() != "ip:8.8.8.8" {
		t.Error("ip query string")
	}
	if (Query{Domain: "example.com"}).String() != "domain:example.com" {
		t.Error("domain query string")
	}
}
