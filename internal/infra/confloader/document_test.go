package confloader

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseDocument_KeyOrder(t *testing.T) {
	raw := []byte(`
bind-addr: 127.0.0.1:8080
auth: password
password: hunter2
cert: false
`)

	doc, err := ParseDocument(raw)
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}

	want := []string{"bind-addr", "auth", "password", "cert"}
	if !reflect.DeepEqual(doc.Keys(), want) {
		t.Errorf("Keys() = %v, want %v", doc.Keys(), want)
	}
	if doc.Len() != 4 {
		t.Errorf("Len() = %d, want 4", doc.Len())
	}
}

func TestParseDocument_ValueTypes(t *testing.T) {
	raw := []byte(`
auth: none
port: 3000
verbose: true
proxy-domain:
  - one.example.com
  - two.example.com
`)

	doc, err := ParseDocument(raw)
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}

	if got := doc.Get("auth"); got != "none" {
		t.Errorf("Get(auth) = %v (%T), want \"none\"", got, got)
	}
	if got := doc.Get("port"); got != 3000 {
		t.Errorf("Get(port) = %v (%T), want 3000", got, got)
	}
	if got := doc.Get("verbose"); got != true {
		t.Errorf("Get(verbose) = %v (%T), want true", got, got)
	}

	domains, ok := doc.Get("proxy-domain").([]any)
	if !ok {
		t.Fatalf("Get(proxy-domain) = %T, want []any", doc.Get("proxy-domain"))
	}
	if len(domains) != 2 || domains[0] != "one.example.com" {
		t.Errorf("Get(proxy-domain) = %v", domains)
	}
}

func TestParseDocument_NotAMapping(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"bare string", "just a string"},
		{"null", "null"},
		{"sequence", "- a\n- b\n"},
		{"whitespace only", "\n\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDocument([]byte(tt.raw))
			if err == nil {
				t.Fatal("ParseDocument() should fail for non-mapping document")
			}
			var docErr *DocumentError
			if !errors.As(err, &docErr) {
				t.Errorf("ParseDocument() error = %T, want *DocumentError", err)
			}
		})
	}
}

func TestParseDocument_ErrorMessage(t *testing.T) {
	_, err := ParseDocument([]byte("just a string"))
	if err == nil {
		t.Fatal("ParseDocument() should fail")
	}
	if got := err.Error(); got != "invalid config: just a string" {
		t.Errorf("Error() = %q, want %q", got, "invalid config: just a string")
	}
}

func TestParseDocument_InvalidYAML(t *testing.T) {
	_, err := ParseDocument([]byte("key: [unclosed"))
	if err == nil {
		t.Fatal("ParseDocument() should fail for invalid yaml")
	}
	var docErr *DocumentError
	if errors.As(err, &docErr) {
		t.Error("syntax errors should not be reported as DocumentError")
	}
}

func TestParseDocument_DuplicateKeys(t *testing.T) {
	raw := []byte("port: 1\nport: 2\n")

	doc, err := ParseDocument(raw)
	if err != nil {
		t.Fatalf("ParseDocument() error = %v", err)
	}

	// Last value wins, key is listed once.
	if doc.Len() != 1 {
		t.Errorf("Len() = %d, want 1", doc.Len())
	}
	if got := doc.Get("port"); got != 2 {
		t.Errorf("Get(port) = %v, want 2", got)
	}
}
