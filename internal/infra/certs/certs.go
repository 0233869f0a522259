package certs

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"fmt"
	"math/big"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	certValidity = 365 * 24 * time.Hour
	rsaKeyBits   = 2048
)

// Generate returns a self-signed certificate and key for hostname,
// stored under dir. An existing pair for the same hostname is reused,
// so repeated starts keep serving the certificate browsers have
// already accepted.
func Generate(hostname, dir string) (certPath, keyPath string, err error) {
	base := sanitizeHostname(hostname)
	certPath = filepath.Join(dir, base+".crt")
	keyPath = filepath.Join(dir, base+".key")

	_, certErr := os.Stat(certPath)
	_, keyErr := os.Stat(keyPath)
	if certErr == nil && keyErr == nil {
		return certPath, keyPath, nil
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", "", fmt.Errorf("certs: create dir %s: %w", dir, err)
	}

	certPEM, keyPEM, err := selfSigned(hostname)
	if err != nil {
		return "", "", err
	}

	if err := os.WriteFile(certPath, certPEM, 0o644); err != nil {
		return "", "", fmt.Errorf("certs: write certificate: %w", err)
	}
	if err := os.WriteFile(keyPath, keyPEM, 0o600); err != nil {
		os.Remove(certPath)
		return "", "", fmt.Errorf("certs: write key: %w", err)
	}

	return certPath, keyPath, nil
}

// selfSigned builds a PEM-encoded self-signed server certificate for
// hostname, valid for one year.
func selfSigned(hostname string) (certPEM, keyPEM []byte, err error) {
	key, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, nil, fmt.Errorf("certs: generate key: %w", err)
	}

	serial, err := rand.Int(rand.Reader, new(big.Int).Lsh(big.NewInt(1), 128))
	if err != nil {
		return nil, nil, fmt.Errorf("certs: generate serial: %w", err)
	}

	template := &x509.Certificate{
		SerialNumber: serial,
		Subject: pkix.Name{
			CommonName:   hostname,
			Organization: []string{"Atelier"},
		},
		NotBefore:             time.Now().Add(-1 * time.Hour),
		NotAfter:              time.Now().Add(certValidity),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageKeyEncipherment,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
	}
	if ip := net.ParseIP(hostname); ip != nil {
		template.IPAddresses = []net.IP{ip}
	} else {
		template.DNSNames = []string{hostname}
	}

	certDER, err := x509.CreateCertificate(rand.Reader, template, template, &key.PublicKey, key)
	if err != nil {
		return nil, nil, fmt.Errorf("certs: create certificate: %w", err)
	}

	keyDER, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		return nil, nil, fmt.Errorf("certs: marshal key: %w", err)
	}

	certPEM = pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER})
	keyPEM = pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: keyDER})
	return certPEM, keyPEM, nil
}

// sanitizeHostname maps a hostname to a filesystem-safe file stem.
// Wildcards and dots both become underscores, so "*.dev.example.com"
// and "localhost" each get stable file names.
func sanitizeHostname(hostname string) string {
	replacer := strings.NewReplacer(".", "_", "*", "_", string(filepath.Separator), "_")
	return replacer.Replace(hostname)
}
