package statsd

import (
	"net"
	"strings"
	"testing"
	"time"
)

func listen(t *testing.T) net.PacketConn {
	t.Helper()
	pc, err := net.ListenPacket("udp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { _ = pc.Close() })
	return pc
}

func readLine(t *testing.T, pc net.PacketConn) string {
	t.Helper()
	buf := make([]byte, 1024)
	if err := pc.SetReadDeadline(time.Now().Add(2 * time.Second)); err != nil {
		t.Fatalf("set deadline: %v", err)
	}
	n, _, err := pc.ReadFrom(buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	return string(buf[:n])
}

func TestRecordRequestAndLogin(t *testing.T) {
	pc := listen(t)
	client, err := NewClient(Config{
		Enabled:    true,
		Address:    pc.LocalAddr().String(),
		Prefix:     ".timetracker.",
		GlobalTags: map[string]string{"env": " test ", " ": "dropped"},
	})
	if err != nil {
		t.Fatalf("NewClient error: %v", err)
	}
	defer client.Close()

	client.RecordRequest("POST", 302, 1500*time.Microsecond)
	if got, want := readLine(t, pc), "timetracker.http.request:1.5|ms|#env:test,method:POST,status:3xx"; got != want {
		t.Fatalf("timing line = %q, want %q", got, want)
	}
	if got, want := readLine(t, pc), "timetracker.http.requests:1|c|#env:test,method:POST,status:3xx"; got != want {
		t.Fatalf("count line = %q, want %q", got, want)
	}

	client.RecordLogin("throttled")
	if got, want := readLine(t, pc), "timetracker.auth.login:1|c|#env:test,outcome:throttled"; got != want {
		t.Fatalf("login line = %q, want %q", got, want)
	}
}

func TestStatusClass(t *testing.T) {
	cases := map[int]string{200: "2xx", 404: "4xx", 503: "5xx", 0: "unknown", 700: "unknown"}
	for status, want := range cases {
		if got := statusClass(status); got != want {
			t.Errorf("statusClass(%d) = %q, want %q", status, got, want)
		}
	}
}

func TestFormatTags(t *testing.T) {
	got := formatTags(map[string]string{"env": "prod", "method": "GET"}, map[string]string{"method": "POST"})
	if want := "|#env:prod,method:POST"; got != want {
		t.Fatalf("formatTags = %q, want %q", got, want)
	}
	if got := formatTags(nil, map[string]string{" ": "x"}); got != "" {
		t.Fatalf("expected empty tags, got %q", got)
	}
}

func TestClientEnabledAndClose(t *testing.T) {
	clientConn, peerConn := net.Pipe()
	defer peerConn.Close()

	client := &Client{conn: clientConn}
	if !client.Enabled() {
		t.Fatal("expected client.Enabled to report true with active connection")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if client.Enabled() {
		t.Fatal("expected client.Enabled to report false after Close")
	}
	if err := client.Close(); err != nil {
		t.Fatalf("Close (second call) error: %v", err)
	}

	var nilClient *Client
	if nilClient.Enabled() {
		t.Fatal("nil client should report disabled")
	}
	nilClient.RecordLogin("success")
	nilClient.RecordRequest("GET", 200, time.Millisecond)
	if err := nilClient.Close(); err != nil {
		t.Fatalf("nil client Close error: %v", err)
	}
}

func TestNewClientDisabled(t *testing.T) {
	for _, cfg := range []Config{{Enabled: true, Address: "   "}, {Enabled: false, Address: "127.0.0.1:8125"}} {
		client, err := NewClient(cfg)
		if err != nil {
			t.Fatalf("NewClient error: %v", err)
		}
		if client.Enabled() {
			t.Fatalf("expected client to stay disabled for %+v", cfg)
		}
		client.RecordLogin("success")
	}
}

func TestNewClientDialError(t *testing.T) {
	_, err := NewClient(Config{Enabled: true, Address: "bad address"})
	if err == nil {
		t.Fatal("expected NewClient to error for invalid address")
	}
	if !strings.Contains(err.Error(), "statsd dial") {
		t.Fatalf("unexpected error: %v", err)
	}
}
