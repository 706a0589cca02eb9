package apierror

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestFromDBTranslation(t *testing.T) {
	assert.Nil(t, FromDB(nil))

	e := FromDB(gorm.ErrRecordNotFound)
	assert.Equal(t, NotFound, e.Kind)

	e = FromDB(gorm.ErrDuplicatedKey)
	assert.Equal(t, Conflict, e.Kind)

	e = FromDB(errors.New(`duplicate key value violates unique constraint "uni_users_username_visible" (SQLSTATE 23505)`))
	assert.Equal(t, Conflict, e.Kind)

	e = FromDB(errors.New("UNIQUE constraint failed: users.username"))
	assert.Equal(t, Conflict, e.Kind)

	e = FromDB(errors.New("connection refused"))
	assert.Equal(t, ServerError, e.Kind)
}

func TestKindOfUnclassified(t *testing.T) {
	assert.Equal(t, ServerError, KindOf(errors.New("boom")))
	assert.Equal(t, NotFound, KindOf(E(NotFound, "", nil)))
}

func TestKindOfWrapped(t *testing.T) {
	inner := E(Conflict, "username already taken", nil)
	wrapped := E(UnprocessableEntity, "outer", inner)
	// The outermost classification wins.
	assert.Equal(t, UnprocessableEntity, KindOf(wrapped))
}

func TestEnvelopeDetailGating(t *testing.T) {
	err := E(NotFound, "place not found", errors.New("record not found"))

	prod := Envelope(err, false)
	assert.Equal(t, "place not found", prod.Message)
	assert.Equal(t, http.StatusNotFound, prod.Code)
	assert.Empty(t, prod.Detail)

	dev := Envelope(err, true)
	assert.Equal(t, "record not found", dev.Detail)
}

func TestEnvelopeUnclassified(t *testing.T) {
	resp := Envelope(errors.New("sql: connection reset"), false)
	assert.Equal(t, http.StatusInternalServerError, resp.Code)
	// Raw driver text never reaches the client message.
	assert.Equal(t, ServerError.String(), resp.Message)
	assert.Empty(t, resp.Detail)
}

func TestEmptyMessageFallsBackToKind(t *testing.T) {
	e := E(Forbidden, "", nil)
	assert.Equal(t, "Forbidden", e.Message)
}
