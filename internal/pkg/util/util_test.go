package util

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestParseObjectID(t *testing.T) {
	id := primitive.NewObjectID()

	got, ok := ParseObjectID(" " + id.Hex() + " ")
	assert.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = ParseObjectID("not-an-id")
	assert.False(t, ok)
}

func TestNormalizePage(t *testing.T) {
	page, limit := NormalizePage(0, 0, 20, 100)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)

	page, limit = NormalizePage(3, 500, 20, 100)
	assert.Equal(t, 3, page)
	assert.Equal(t, 100, limit)
}

func TestGetMidnight(t *testing.T) {
	in := time.Date(2026, 10, 18, 15, 4, 5, 6, time.UTC)
	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), GetMidnight(in))
}

func TestValidateDTO(t *testing.T) {
	type req struct {
		Email string `validate:"email"`
	}

	err := ValidateDTO(&req{Email: "nope"})
	var ve validator.ValidationErrors
	assert.ErrorAs(t, err, &ve)

	assert.NoError(t, ValidateDTO(&req{Email: "a@b.co"}))
}

func TestIDsToHex(t *testing.T) {
	assert.Equal(t, []string{}, IDsToHex(nil))
}
