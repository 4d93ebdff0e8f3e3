package cmd

import (
	"testing"

	internalApp "github.com/labnote/labnote-service/internal/app"
)

// 签名密钥为空或默认值时拒绝启动
func TestCheckSecurityConfig(t *testing.T) {
	for _, key := range defaultSecretKeys {
		cfg := &internalApp.AppConfig{}
		cfg.Security.AuthTokenKey = key
		if err := checkSecurityConfigWithConfig(cfg, nil); err == nil {
			t.Errorf("key %q must be rejected", key)
		}
	}

	cfg := &internalApp.AppConfig{}
	cfg.Security.AuthTokenKey = "k8Jf2mPz0qLxW3vN7tRb5cYdA1eGhSuV"
	if err := checkSecurityConfigWithConfig(cfg, nil); err != nil {
		t.Errorf("strong key rejected: %v", err)
	}
}
