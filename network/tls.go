// Browser-fingerprint transport for the storefront landing page.
//
// The landing page sits behind bot mitigation that is unfriendly to the stock
// Go ClientHello, so the page fetch mimics Chrome's TLS signature via
// refraction-networking/utls (HelloChrome_120). Protocol negotiation follows
// the same shape as the rest of the transport stack: HTTP/2 preferred, with a
// transparent HTTP/1.1 fallback when the server does not negotiate h2.
package network

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

const handshakeTimeout = 30 * time.Second

var (
	browserH2     *http2.Transport
	browserH2Once sync.Once
)

// browserTransport returns the shared HTTP/2 transport backed by the spoofed ClientHello.
func browserTransport() *http2.Transport {
	browserH2Once.Do(func() {
		browserH2 = &http2.Transport{
			DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
				return dialBrowserTLS(ctx, network, addr, false)
			},
		}
	})
	return browserH2
}

// browserH1Transport serves hosts that refuse to negotiate h2.
var browserH1Transport = &http.Transport{
	DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
		return dialBrowserTLS(ctx, network, addr, true)
	},
}

// dialBrowserTLS establishes a TLS connection mimicking Chrome 120's fingerprint.
// h1Only forces http/1.1 in ALPN for the fallback transport.
func dialBrowserTLS(ctx context.Context, network, addr string, h1Only bool) (net.Conn, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: handshakeTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, err
	}

	cfg := &utls.Config{
		ServerName: host,
		MinVersion: tls.VersionTLS12,
	}
	if h1Only {
		cfg.NextProtos = []string{"http/1.1"}
	}

	tlsConn := utls.UClient(conn, cfg, utls.HelloChrome_120)
	if err := tlsConn.Handshake(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, nil
}

// browserClients returns the ordered client chain for a landing-page fetch:
// fingerprinted h2, fingerprinted h1, plain verified transport.
func browserClients() []*http.Client {
	return []*http.Client{
		{Timeout: time.Minute, Transport: browserTransport()},
		{Timeout: time.Minute, Transport: browserH1Transport},
		Client,
	}
}
