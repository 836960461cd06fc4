package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "secret-de-pruebas"

func TestGenerateYParse(t *testing.T) {
	token, err := Generate(testSecret, "user-1", "almacenista", "fieldops-test", 60)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
	assert.Equal(t, "almacenista", role)
}

func TestParse_FirmaIncorrecta(t *testing.T) {
	token, err := Generate(testSecret, "user-1", "admin", "fieldops-test", 60)
	require.NoError(t, err)

	_, _, err = Parse("otro-secret", token)
	assert.Error(t, err)
}

func TestParse_Expirado(t *testing.T) {
	token, err := Generate(testSecret, "user-1", "admin", "fieldops-test", -1)
	require.NoError(t, err)

	time.Sleep(10 * time.Millisecond)
	_, _, err = Parse(testSecret, token)
	assert.Error(t, err, "un token vencido debe rechazarse")
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := Generate("", "user-1", "admin", "fieldops-test", 60)
	assert.Error(t, err)
}
