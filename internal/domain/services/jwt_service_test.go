package services

import (
	"testing"

	"renda-http-service/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginPerRole(t *testing.T) {
	env := newTestEnv(t)
	svc := NewJWTService(testConfig(), env.db)

	admin := &models.Admin{Username: "root", Password: "Admin@123"}
	require.NoError(t, env.db.Create(admin).Error)

	cases := []struct {
		username string
		password string
		role     string
	}{
		{"root", "Admin@123", RoleAdmin},
		{env.manager.Username, "Manager@123", RoleManager},
		{env.tenant.Username, "Tenant@123", RoleTenant},
	}

	for _, tc := range cases {
		result, err := svc.Login(tc.username, tc.password)
		require.NoError(t, err, tc.username)
		assert.Equal(t, tc.role, result.Role)
		assert.NotEmpty(t, result.Token)

		// 令牌可以解出同样的身份
		claims, err := svc.ExtractClaims(result.Token)
		require.NoError(t, err)
		assert.Equal(t, result.UserID, claims.UserID)
		assert.Equal(t, tc.role, claims.Role)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	svc := NewJWTService(testConfig(), env.db)

	_, err := svc.Login(env.manager.Username, "wrong-password")
	assert.Error(t, err)

	_, err = svc.Login("nobody", "whatever")
	assert.Error(t, err)
}

func TestExtractClaimsRejectsForgedToken(t *testing.T) {
	env := newTestEnv(t)
	svc := NewJWTService(testConfig(), env.db)

	otherCfg := testConfig()
	otherCfg.JWTSecretKey = "another-secret"
	forger := NewJWTService(otherCfg, env.db)

	token, err := forger.GenerateToken(1, RoleAdmin)
	require.NoError(t, err)

	_, err = svc.ExtractClaims(token)
	assert.Error(t, err)
}
