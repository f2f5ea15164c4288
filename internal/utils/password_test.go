package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashEtVerify(t *testing.T) {
	hash, err := HashPassword("motdepasse-admin")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$"))

	ok, err := VerifyPassword("motdepasse-admin", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyMauvaisMotDePasse(t *testing.T) {
	hash, err := HashPassword("correct")
	require.NoError(t, err)

	ok, err := VerifyPassword("incorrect", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyHashInvalide(t *testing.T) {
	_, err := VerifyPassword("peu importe", "pas-un-hash")
	assert.Error(t, err)
}

func TestDeuxHashsDuMemeMotDePasseDifferent(t *testing.T) {
	// salt aléatoire : deux hashs du même mot de passe ne coïncident pas
	h1, err := HashPassword("identique")
	require.NoError(t, err)
	h2, err := HashPassword("identique")
	require.NoError(t, err)
	assert.NotEqual(t, h1, h2)

	for _, h := range []string{h1, h2} {
		ok, err := VerifyPassword("identique", h)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestGenerateUpiQR(t *testing.T) {
	qr, err := GenerateUpiQR("shop@upi", "Vroom Visions", "receipt_42", 15700)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(qr, "data:image/png;base64,"))
}
