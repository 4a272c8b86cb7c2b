package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	require.NoError(t, VerifyPassword("correct horse battery", hash))
	require.ErrorIs(t, VerifyPassword("wrong horse", hash), ErrPasswordMismatch)
}

func TestHashPasswordUniqueSalts(t *testing.T) {
	a, err := HashPassword("same input")
	require.NoError(t, err)
	b, err := HashPassword("same input")
	require.NoError(t, err)
	require.NotEqual(t, a, b)

	require.NoError(t, VerifyPassword("same input", a))
	require.NoError(t, VerifyPassword("same input", b))
}

func TestVerifyPasswordRejectsGarbage(t *testing.T) {
	require.Error(t, VerifyPassword("anything", "not-a-phc-string"))
	require.Error(t, VerifyPassword("anything", "$bcrypt$v=19$m=1,t=1,p=1$AAAA$BBBB"))
}
