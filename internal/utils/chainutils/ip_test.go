package chainutils

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDiscoverExternalIP_Success(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("203.0.113.7\n"))
	}))
	defer ts.Close()

	ip, err := discoverExternalIP(context.Background(), ts.Client(), []string{ts.URL})
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if ip.String() != "203.0.113.7" {
		t.Fatalf("unexpected ip: %s", ip)
	}
}

func TestDiscoverExternalIP_MalformedResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>not an ip</html>"))
	}))
	defer ts.Close()

	_, err := discoverExternalIP(context.Background(), ts.Client(), []string{ts.URL})
	if err == nil {
		t.Fatal("expected error for malformed response")
	}
}

func TestDiscoverExternalIP_NonIPv4(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("2001:db8::1"))
	}))
	defer ts.Close()

	_, err := discoverExternalIP(context.Background(), ts.Client(), []string{ts.URL})
	if err == nil {
		t.Fatal("expected error for non-ipv4 response")
	}
}

func TestDiscoverExternalIP_FallsBackToNextEndpoint(t *testing.T) {
	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()
	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("198.51.100.2"))
	}))
	defer good.Close()

	ip, err := discoverExternalIP(context.Background(), good.Client(), []string{bad.URL, good.URL})
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if ip.String() != "198.51.100.2" {
		t.Fatalf("unexpected ip: %s", ip)
	}
}

func TestDiscoverExternalIP_AllEndpointsDown(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := discoverExternalIP(context.Background(), ts.Client(), []string{ts.URL, ts.URL})
	if err == nil {
		t.Fatal("expected error when every endpoint fails")
	}
}

func TestIPv4ToInt(t *testing.T) {
	ip := net.ParseIP("1.2.3.4")
	v, err := IPv4ToInt(ip)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if v != 0x01020304 {
		t.Fatalf("expected 0x01020304, got %#x", v)
	}

	if _, err := IPv4ToInt(net.ParseIP("2001:db8::1")); err == nil {
		t.Fatal("expected error for ipv6 address")
	}
}
