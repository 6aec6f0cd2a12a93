package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/workhive")

	cfg, err := NewAppConfig()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "pollinations", cfg.SkillServiceProvider)
	assert.Equal(t, DefaultSkillServiceURL, cfg.SkillServiceURL)
	assert.Equal(t, DefaultSkillServiceTimeout, cfg.SkillServiceTimeout)
	assert.Equal(t, DefaultSkillServiceRetries, cfg.SkillServiceRetries)
	assert.Equal(t, DefaultMatchThreshold, cfg.MatchThreshold)
	assert.Equal(t, DefaultMatchPageSize, cfg.MatchPageSize)
}

func TestNewAppConfig_RequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := NewAppConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestNewAppConfig_Overrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/workhive")
	t.Setenv("PORT", "9000")
	t.Setenv("SKILL_SERVICE_TIMEOUT", "20s")
	t.Setenv("MATCH_SCORE_THRESHOLD", "25")

	cfg, err := NewAppConfig()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, 20*time.Second, cfg.SkillServiceTimeout)
	assert.Equal(t, 25.0, cfg.MatchThreshold)
}

func TestNewAppConfig_GeminiRequiresKey(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/workhive")
	t.Setenv("SKILL_SERVICE_PROVIDER", "gemini")
	t.Setenv("GEMINI_API_KEY", "")

	_, err := NewAppConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")
}

func TestNewAppConfig_RejectsUnknownProvider(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/workhive")
	t.Setenv("SKILL_SERVICE_PROVIDER", "carrier-pigeon")

	_, err := NewAppConfig()
	require.Error(t, err)
}

func TestNewJWTConfig_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := NewJWTConfig()
	require.Error(t, err)
}

func TestNewJWTConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("JWT_EXPIRATION_HOURS", "")

	cfg, err := NewJWTConfig()
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.ExpirationHours)
}

func TestPasswordConfig_HashAndVerify(t *testing.T) {
	cfg := &PasswordConfig{BcryptCost: 10}

	hash, err := cfg.HashPassword("hunter2-but-longer")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2-but-longer", hash)

	assert.True(t, cfg.VerifyPassword("hunter2-but-longer", hash))
	assert.False(t, cfg.VerifyPassword("wrong", hash))
}

func TestNewPasswordConfig_RejectsOutOfRangeCost(t *testing.T) {
	t.Setenv("BCRYPT_COST", "4")

	_, err := NewPasswordConfig()
	require.Error(t, err)
}
