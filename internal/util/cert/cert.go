package cert

import (
	"bytes"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"io/ioutil"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/bokysan/uucodec/internal/args"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/youmark/pkcs8"
)

// ServerConfig describes the certificate the HTTP server presents. When neither the
// certificate nor the private key is set, the server runs plain HTTP.
type ServerConfig struct {
	CaCertificate             string  `json:"caCertificate"             long:"ca-certificate"               env:"UU_CA_CERTIFICATE"               description:"CA certificate(s) used to verify client certificates"`
	CaCertificateFile         string  `json:"caCertificateFile"         long:"ca-certificate-file"          env:"UU_CA_CERTIFICATE_FILE"          description:"File with CA certificate(s)"`
	Certificate               string  `json:"certificate"               long:"certificate"                  env:"UU_CERTIFICATE"                  description:"Server certificate"`
	CertificateFile           string  `json:"certificateFile"           long:"certificate-file"             env:"UU_CERTIFICATE_FILE"             description:"File with the server certificate"`
	PrivateKey                string  `json:"privateKey"                long:"private-key"                  env:"UU_PRIVATE_KEY"                  description:"Server private key"`
	PrivateKeyFile            string  `json:"privateKeyFile"            long:"private-key-file"             env:"UU_PRIVATE_KEY_FILE"             description:"File with the server private key"`
	PrivateKeyPassword        *string `json:"privateKeyPassword"        long:"private-key-password"         env:"UU_PRIVATE_KEY_PASSWORD"         description:"Decryption password"`
	PrivateKeyPasswordProgram string  `json:"privateKeyPasswordProgram" long:"private-key-password-program" env:"UU_PRIVATE_KEY_PASSWORD_PROGRAM" description:"Program to run to get the decryption key"`
	RequireClientCert         bool    `json:"requireClientCert"         long:"require-client-cert"          env:"UU_REQUIRE_CLIENT_CERT"          description:"If set, the client must authenticate with its certificate."`
}

// Enabled reports whether any certificate material was configured
func (m *ServerConfig) Enabled() bool {
	return m.Certificate != "" || m.CertificateFile != "" || m.PrivateKey != "" || m.PrivateKeyFile != ""
}

func (m *ServerConfig) GetCertificate() ([]byte, error) {
	return readPem(m.CertificateFile, m.Certificate, "certificate")
}

func (m *ServerConfig) GetCaCertificates() ([]byte, error) {
	return readPem(m.CaCertificateFile, m.CaCertificate, "ca certificate")
}

// GetPrivateKey returns the PEM encoded private key, decrypted if needed
func (m *ServerConfig) GetPrivateKey() ([]byte, error) {
	privateKeyPemBlock, err := readPem(m.PrivateKeyFile, m.PrivateKey, "private key")
	if err != nil || len(privateKeyPemBlock) == 0 {
		return privateKeyPemBlock, err
	}

	block, _ := pem.Decode(privateKeyPemBlock)
	if block == nil {
		return nil, errors.Errorf("Private key is not PEM encoded")
	}

	if block.Type == "ENCRYPTED PRIVATE KEY" {
		password, err := m.GetPrivateKeyPassword()
		if err != nil {
			return nil, errors.Wrapf(err, "Failed getting the key password")
		}

		key, err := pkcs8.ParsePKCS8PrivateKey(block.Bytes, password)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not decrypt private key!")
		}

		der, err := x509.MarshalPKCS8PrivateKey(key)
		if err != nil {
			return nil, errors.Wrapf(err, "Don't know how to handle %T", key)
		}
		return pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}), nil

	} else if x509.IsEncryptedPEMBlock(block) {
		password, err := m.GetPrivateKeyPassword()
		if err != nil {
			return nil, errors.Wrapf(err, "Failed getting the key password")
		}

		der, err := x509.DecryptPEMBlock(block, password)
		if err != nil {
			return nil, errors.Wrapf(err, "Could not decrypt private key!")
		}
		return pem.EncodeToMemory(&pem.Block{Type: block.Type, Bytes: der}), nil
	}

	return privateKeyPemBlock, nil
}

func (m *ServerConfig) GetPrivateKeyPassword() ([]byte, error) {
	if m.PrivateKeyPassword != nil {
		return []byte(*m.PrivateKeyPassword), nil
	} else if m.PrivateKeyPasswordProgram != "" {
		cmd := exec.Command("sh", "-c", m.PrivateKeyPasswordProgram)
		out := &bytes.Buffer{}
		cmd.Stdout = out
		if err := cmd.Run(); err != nil {
			return nil, errors.Wrapf(err, "Failed executing %s", m.PrivateKeyPasswordProgram)
		}
		return bytes.TrimRight(out.Bytes(), "\r\n"), nil
	}
	return nil, errors.Errorf("Private key is encrypted and no password or password program defined!")
}

// GetTlsConfig builds the server TLS configuration. It returns nil when TLS is not enabled.
func (m *ServerConfig) GetTlsConfig() (*tls.Config, error) {
	if !m.Enabled() {
		return nil, nil
	}
	log.Debug("ServerConfig.GetTlsConfig()")

	certPemBlock, err := m.GetCertificate()
	if err != nil {
		return nil, err
	}
	privateKeyPemBlock, err := m.GetPrivateKey()
	if err != nil {
		return nil, err
	}

	crt, err := tls.X509KeyPair(certPemBlock, privateKeyPemBlock)
	if err != nil {
		return nil, errors.Wrapf(err, "Could not create a X509 key pair from given data!")
	}

	conf := &tls.Config{
		Certificates: []tls.Certificate{crt},
		MinVersion:   tls.VersionTLS12,
	}

	caCert, err := m.GetCaCertificates()
	if err != nil {
		return nil, errors.Wrapf(err, "Could not load CA certificates")
	}
	if caCert != nil {
		caCertPool := x509.NewCertPool()
		if ok := caCertPool.AppendCertsFromPEM(caCert); !ok {
			return nil, errors.Errorf("Could not parse CA certificates")
		}
		conf.ClientCAs = caCertPool
	}

	if m.RequireClientCert {
		conf.ClientAuth = tls.RequireAndVerifyClientCert
	}

	return conf, nil
}

func readPem(file, inline, what string) ([]byte, error) {
	if file != "" {
		data, err := ioutil.ReadFile(findFile(file))
		if err != nil {
			return nil, errors.Wrapf(err, "Could not read %s file: %s", what, file)
		}
		return data, nil
	} else if inline != "" {
		return []byte(strings.TrimSpace(inline)), nil
	}
	return nil, nil
}

// findFile resolves name relative to the configuration file location and, failing that,
// returns it as is
func findFile(name string) string {
	if args.General.ConfigurationFilePath != "" && !filepath.IsAbs(name) {
		file := filepath.Join(filepath.Dir(args.General.ConfigurationFilePath), name)
		if _, err := os.Stat(file); !os.IsNotExist(err) {
			return file
		}
	}
	return name
}
