package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewBcryptHasher(t *testing.T) {
	t.Parallel()

	t.Run("accepts in-range cost", func(t *testing.T) {
		t.Parallel()

		hasher, err := NewBcryptHasher(bcrypt.MinCost)
		require.NoError(t, err)
		assert.NotNil(t, hasher)
	})

	t.Run("rejects out-of-range cost", func(t *testing.T) {
		t.Parallel()

		testCases := []struct {
			name string
			cost int
		}{
			{name: "below minimum", cost: bcrypt.MinCost - 1},
			{name: "above maximum", cost: bcrypt.MaxCost + 1},
			{name: "zero", cost: 0},
			{name: "negative", cost: -1},
		}

		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				hasher, err := NewBcryptHasher(tc.cost)
				assert.Error(t, err)
				assert.Nil(t, hasher)
			})
		}
	})
}

func TestBcryptHasher_HashAndCompare(t *testing.T) {
	t.Parallel()

	// MinCost keeps the test fast; the cost does not change behavior.
	hasher, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := hasher.Hash("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.NoError(t, hasher.Compare(hash, "correct horse battery staple"))
	assert.Error(t, hasher.Compare(hash, "wrong password"))
	assert.Error(t, hasher.Compare("not-a-bcrypt-hash", "anything"))
}

func TestBcryptHasher_HashesDiffer(t *testing.T) {
	t.Parallel()

	hasher, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	first, err := hasher.Hash("same password")
	require.NoError(t, err)
	second, err := hasher.Hash("same password")
	require.NoError(t, err)

	// bcrypt salts every hash
	assert.NotEqual(t, first, second)
}
