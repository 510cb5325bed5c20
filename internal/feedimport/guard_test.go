package feedimport

import "testing"

// TestValidateURL_AllowsPublicHTTPURLs は公開ホストのhttp/https URLが
// 許可されることを検証する。
func TestValidateURL_AllowsPublicHTTPURLs(t *testing.T) {
	g := NewSourceGuard()

	for _, u := range []string{
		"https://example.com/feed.xml",
		"http://blog.example.org/rss",
		"https://93.184.216.34/feed",
	} {
		if err := g.ValidateURL(u); err != nil {
			t.Errorf("ValidateURL(%q) = %v, want nil", u, err)
		}
	}
}

// TestValidateURL_BlocksDangerousURLs は危険なURLが拒否されることを検証する。
func TestValidateURL_BlocksDangerousURLs(t *testing.T) {
	g := NewSourceGuard()

	tests := []struct {
		name string
		url  string
	}{
		{"empty", ""},
		{"file scheme", "file:///etc/passwd"},
		{"ftp scheme", "ftp://example.com/feed"},
		{"localhost", "http://localhost/feed"},
		{"loopback IP", "http://127.0.0.1/feed"},
		{"private IP 10.x", "http://10.0.0.5/feed"},
		{"private IP 192.168.x", "http://192.168.1.1/feed"},
		{"link local", "http://169.254.169.254/latest/meta-data"},
		{"metadata hostname", "http://metadata.google.internal/feed"},
		{"IPv6 loopback", "http://[::1]/feed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := g.ValidateURL(tt.url); err == nil {
				t.Errorf("ValidateURL(%q) = nil, want error", tt.url)
			}
		})
	}
}
