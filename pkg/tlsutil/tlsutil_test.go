package tlsutil_test

import (
	"crypto/tls"
	"crypto/x509"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Hec-S/Supplement-Guard-sub003/pkg/tlsutil"
)

func TestServerConfig(t *testing.T) {
	certFile, keyFile, err := tlsutil.WriteSelfSigned(t.TempDir(), []string{"localhost", "127.0.0.1"}, time.Hour)
	require.NoError(t, err)

	cfg, err := tlsutil.ServerConfig(certFile, keyFile)
	require.NoError(t, err)
	assert.Equal(t, uint16(tls.VersionTLS12), cfg.MinVersion)
	require.Len(t, cfg.Certificates, 1)

	leaf, err := x509.ParseCertificate(cfg.Certificates[0].Certificate[0])
	require.NoError(t, err)
	assert.Contains(t, leaf.DNSNames, "localhost")
	require.Len(t, leaf.IPAddresses, 1)
	assert.Equal(t, "127.0.0.1", leaf.IPAddresses[0].String())

	creds, err := tlsutil.ServerCredentials(certFile, keyFile)
	require.NoError(t, err)
	assert.Equal(t, "tls", creds.Info().SecurityProtocol)
}

func TestServerConfig_MissingFiles(t *testing.T) {
	_, err := tlsutil.ServerConfig("/nonexistent/cert.pem", "/nonexistent/key.pem")
	assert.Error(t, err)

	_, err = tlsutil.ServerCredentials("/nonexistent/cert.pem", "/nonexistent/key.pem")
	assert.Error(t, err)
}
