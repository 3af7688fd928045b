package enrich

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
	"syscall"
	"time"

	"github.com/gocolly/colly/v2"
)

const (
	defaultTimeout   = 8 * time.Second
	maxDescription   = 600
	enricherAgent    = "JobboardEnricher/1.0"
	paragraphMinimum = 40
)

var (
	ErrInvalidWebsite = errors.New("invalid company website")
	ErrBlockedHost    = errors.New("company website resolves to a non-public address")
)

// carrier-grade NAT, not covered by netip.Addr.IsPrivate
var sharedAddressSpace = netip.MustParsePrefix("100.64.0.0/10")

// CompanyEnricher reads a short company blurb from the company's homepage.
// It looks at meta description, then og:description, then the first long
// paragraph.
type CompanyEnricher struct {
	timeout time.Duration
	logger  *log.Logger

	// allowPrivate lifts the public-address restriction; tests only.
	allowPrivate bool
}

func NewCompanyEnricher(timeout time.Duration, logger *log.Logger) *CompanyEnricher {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &CompanyEnricher{timeout: timeout, logger: logger}
}

func (e *CompanyEnricher) Describe(ctx context.Context, website string) (string, error) {
	if e == nil {
		return "", nil
	}
	target, host, err := parseWebsite(website)
	if err != nil {
		return "", err
	}
	if ip, err := netip.ParseAddr(host); err == nil && !e.allowPrivate && !isPublic(ip) {
		return "", ErrBlockedHost
	}

	c := colly.NewCollector(colly.AllowedDomains(host), colly.UserAgent(enricherAgent), colly.MaxDepth(1))
	c.WithTransport(e.transport())
	c.SetRequestTimeout(e.timeout)
	_ = c.Limit(&colly.LimitRule{DomainGlob: "*", Parallelism: 1, Delay: 200 * time.Millisecond})

	var meta, og, para string
	c.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		r.Headers.Set("Accept-Language", "en-US,en;q=0.9")
	})
	c.OnHTML(`meta[name="description"]`, func(el *colly.HTMLElement) {
		if meta == "" {
			meta = strings.TrimSpace(el.Attr("content"))
		}
	})
	c.OnHTML(`meta[property="og:description"]`, func(el *colly.HTMLElement) {
		if og == "" {
			og = strings.TrimSpace(el.Attr("content"))
		}
	})
	c.OnHTML("p", func(el *colly.HTMLElement) {
		if para != "" {
			return
		}
		if t := collapse(el.Text); len(t) >= paragraphMinimum {
			para = t
		}
	})

	var reqErr error
	c.OnError(func(_ *colly.Response, err error) {
		reqErr = err
	})

	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := c.Visit(target); err != nil {
		return "", err
	}
	c.Wait()
	if reqErr != nil {
		if e.logger != nil {
			e.logger.Printf("[Enrich] company site=%s error=%v", target, reqErr)
		}
		return "", reqErr
	}

	return truncate(pick(meta, og, para), maxDescription), nil
}

// transport checks every dialed address, so names resolving to internal
// hosts and redirects towards them are refused as well.
func (e *CompanyEnricher) transport() *http.Transport {
	dialer := &net.Dialer{Timeout: e.timeout}
	if !e.allowPrivate {
		dialer.Control = publicOnly
	}
	return &http.Transport{
		DialContext:           dialer.DialContext,
		TLSHandshakeTimeout:   e.timeout,
		ResponseHeaderTimeout: e.timeout,
		MaxIdleConns:          4,
		IdleConnTimeout:       30 * time.Second,
	}
}

func publicOnly(_, address string, _ syscall.RawConn) error {
	ap, err := netip.ParseAddrPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedHost, address)
	}
	if !isPublic(ap.Addr()) {
		return fmt.Errorf("%w: %s", ErrBlockedHost, address)
	}
	return nil
}

func isPublic(ip netip.Addr) bool {
	ip = ip.Unmap()
	switch {
	case !ip.IsValid(),
		ip.IsLoopback(),
		ip.IsPrivate(),
		ip.IsLinkLocalUnicast(),
		ip.IsLinkLocalMulticast(),
		ip.IsInterfaceLocalMulticast(),
		ip.IsMulticast(),
		ip.IsUnspecified(),
		sharedAddressSpace.Contains(ip):
		return false
	}
	return true
}

func parseWebsite(raw string) (string, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", ErrInvalidWebsite
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", "", ErrInvalidWebsite
	}
	return u.String(), u.Hostname(), nil
}

func pick(vals ...string) string {
	for _, v := range vals {
		if v = collapse(v); v != "" {
			return v
		}
	}
	return ""
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return strings.TrimSpace(string(r[:n])) + "..."
}
