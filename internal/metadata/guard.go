package metadata

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"syscall"
	"time"
)

const maxRedirects = 10

var (
	// ErrForbiddenAddress адрес страницы ведёт во внутреннюю сеть.
	ErrForbiddenAddress = errors.New("address is not publicly routable")
	// ErrUnsupportedScheme разрешены только http и https.
	ErrUnsupportedScheme = errors.New("only http and https are allowed")
)

// carrierNAT 100.64.0.0/10, net.IP.IsPrivate её не покрывает.
var carrierNAT = netip.MustParsePrefix("100.64.0.0/10")

// checkScheme пропускает только http и https.
func checkScheme(u *url.URL) error {
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: %q", ErrUnsupportedScheme, u.Scheme)
	}
	return nil
}

// publicAddr сообщает, можно ли ходить на адрес "ip:port", полученный после разрешения DNS.
func publicAddr(address string) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrForbiddenAddress, address)
	}
	ip, err := netip.ParseAddr(host)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrForbiddenAddress, address)
	}
	ip = ip.Unmap()
	if ip.IsLoopback() || ip.IsPrivate() || ip.IsUnspecified() ||
		ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() || ip.IsMulticast() ||
		carrierNAT.Contains(ip) {
		return fmt.Errorf("%w: %s", ErrForbiddenAddress, ip)
	}
	return nil
}

// newTransport проверяет каждый адрес прямо перед соединением, поэтому
// проверка действует и на редиректы, и на повторное разрешение имени.
// Прокси из окружения не используется: иначе проверялся бы адрес прокси.
func (f *Fetcher) newTransport(timeout time.Duration) *http.Transport {
	dialer := &net.Dialer{
		Timeout: timeout,
		Control: func(network, address string, _ syscall.RawConn) error {
			if f.AllowPrivateNetworks {
				return nil
			}
			return publicAddr(address)
		},
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.Proxy = nil
	transport.DialContext = dialer.DialContext
	return transport
}

func checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	return checkScheme(req.URL)
}
