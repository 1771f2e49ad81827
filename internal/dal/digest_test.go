package dal_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"olgwatch/internal/dal"
)

func TestDigest(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		assert.Equal(t, dal.Digest("abc"), dal.Digest("abc"))
		assert.NotEqual(t, dal.Digest("abc"), dal.Digest("abd"))
	})

	t.Run("empty_string_sentinel", func(t *testing.T) {
		// SHA-256 of the empty string; an absent section must hash to this.
		assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", dal.Digest(""))
	})

	t.Run("hex_encoded", func(t *testing.T) {
		assert.Len(t, dal.Digest("whatever"), 64)
		assert.Regexp(t, "^[0-9a-f]+$", dal.Digest("whatever"))
	})
}
