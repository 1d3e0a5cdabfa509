package probe

import (
	"context"
	"errors"
	"net"
	"net/url"
	"strings"
	"time"
)

// DNSClass is the outcome of resolving a probe or query target host.
type DNSClass string

const (
	DNSResolves    DNSClass = "RESOLVES"
	DNSNoARecord   DNSClass = "NO_A_RECORD"
	DNSNXDomain    DNSClass = "NXDOMAIN"
	DNSUnreachable DNSClass = "SERVFAIL_or_TIMEOUT"
	DNSInvalidName DNSClass = "INVALID_NAME"
)

type DNSStatus struct {
	Host          string
	IPs           []net.IP
	Class         DNSClass
	ResolverError string
}

var dnsTimeout = 3 * time.Second

// Resolver is swapped in tests.
var Resolver interface {
	LookupIP(ctx context.Context, network, host string) ([]net.IP, error)
	LookupNS(ctx context.Context, name string) ([]*net.NS, error)
} = net.DefaultResolver

// CheckTargetDNS resolves the host part of a base URL such as
// "http://oncall:8080". IP literals always resolve.
func CheckTargetDNS(ctx context.Context, rawURL string) DNSStatus {
	host := HostOf(rawURL)
	s := DNSStatus{Host: host}
	if host == "" || strings.Contains(host, "/") {
		s.Class = DNSInvalidName
		return s
	}
	if ip := net.ParseIP(host); ip != nil {
		s.IPs = []net.IP{ip}
		s.Class = DNSResolves
		return s
	}

	ctx, cancel := context.WithTimeout(ctx, dnsTimeout)
	defer cancel()

	ips, err := Resolver.LookupIP(ctx, "ip", host)
	if err == nil && len(ips) > 0 {
		s.IPs = ips
		s.Class = DNSResolves
		return s
	}
	if err != nil {
		s.ResolverError = err.Error()
		var de *net.DNSError
		if errors.As(err, &de) && !de.IsNotFound {
			s.Class = DNSUnreachable
			return s
		}
	}

	// The name exists as a zone but has no address records.
	if ns, err := Resolver.LookupNS(ctx, host); err == nil && len(ns) > 0 {
		s.Class = DNSNoARecord
		return s
	}
	s.Class = DNSNXDomain
	return s
}

// HostOf returns the hostname of raw, or raw itself when it is not a URL.
func HostOf(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	return u.Hostname()
}
