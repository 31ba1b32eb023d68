package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func Test_parseFlags_OverridesDefaults(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{
		"testbin",
		"-a", ":9090",
		"-d", "postgres://x",
		"-s", "flag_secret",
		"-t", "30",
		"-r", "60",
		"-u", "key",
		"-p", "pass",
		"-b", "media",
		"-g", "eu-west-1",
		"-e", "http://minio:9000/",
		"-o",
		"-l", "120",
	}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":9090", cfg.EndpointAddr)
	assert.Equal(t, "postgres://x", cfg.DatabaseDSN)
	assert.Equal(t, "flag_secret", cfg.SecretKey)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 60*time.Minute, cfg.RefreshTokenValidityDuration)
	assert.Equal(t, "key", cfg.S3AccessKey)
	assert.Equal(t, "pass", cfg.S3SecretKey)
	assert.Equal(t, "media", cfg.S3Bucket)
	assert.Equal(t, "eu-west-1", cfg.S3Region)
	assert.Equal(t, "http://minio:9000/", cfg.S3BaseEndpoint)
	assert.True(t, cfg.S3PublicBucket)
	assert.Equal(t, 2*time.Hour, cfg.SignedURLTTL)
}

func Test_parseFlags_UnknownFlagsIgnored(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	os.Args = []string{"testbin", "-zzz", "noise", "-a", ":7070"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	assert.Equal(t, ":7070", cfg.EndpointAddr)
}
