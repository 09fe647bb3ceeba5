package tracker

import (
	"regexp"
	"strings"
)

// each octet is 0-255 without leading zeros
var ipv4Pattern = regexp.MustCompile(
	`^(25[0-5]|2[0-4][0-9]|1[0-9]{2}|[1-9]?[0-9])\.(25[0-5]|2[0-4][0-9]|1[0-9]{2}|[1-9]?[0-9])\.(25[0-5]|2[0-4][0-9]|1[0-9]{2}|[1-9]?[0-9])\.(25[0-5]|2[0-4][0-9]|1[0-9]{2}|[1-9]?[0-9])$`,
)

// Query selects what a lookup resolves. The zero Query asks for the caller's
// own address.
type Query struct {
	IPAddress string `json:"ip_address,omitempty"`
	Domain    string `json:"domain,omitempty"`
}

// IsSelf reports whether q leaves the address to the remote service.
func (q Query) IsSelf() bool {
	return q.IPAddress == "" && q.Domain == ""
}

func (q Query) String() string {
	switch {
	case q.IPAddress != "":
		return "ip:" + q.IPAddress
	case q.Domain != "":
		return "domain:" + q.Domain
	default:
		return "self"
	}
}

// IsIPv4 reports whether value is a dotted-decimal IPv4 literal.
func IsIPv4(value string) bool {
	return ipv4Pattern.MatchString(value)
}

// Classify turns user input into a Query. Blank input reports false and
// must not produce a request.
func Classify(input string) (Query, bool) {
	v := strings.TrimSpace(input)
	if v == "" {
		return Query{}, false
	}
	if IsIPv4(v) {
		return Query{IPAddress: v}, true
	}
	return Query{Domain: v}, true
}
