package postgres

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstraintClassifiers(t *testing.T) {
	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueConstraintViolation(errors.New("UNIQUE constraint failed: users.username")))
	assert.True(t, isUniqueConstraintViolation(errors.New("ERROR: duplicate key value (SQLSTATE 23505)")))
	assert.False(t, isUniqueConstraintViolation(errors.New("connection refused")))
	assert.False(t, isUniqueConstraintViolation(nil))

	assert.True(t, isForeignKeyConstraintViolation(gorm.ErrForeignKeyViolated))
	assert.True(t, isForeignKeyConstraintViolation(errors.New("FOREIGN KEY constraint failed")))
	assert.False(t, isForeignKeyConstraintViolation(errors.New("syntax error")))

	assert.True(t, isNotNullConstraintViolation(errors.New(`null value in column "title" violates not-null constraint`)))
	assert.True(t, isNotNullConstraintViolation(errors.New("NOT NULL constraint failed: posts.title")))
	assert.False(t, isNotNullConstraintViolation(errors.New("timeout")))
}
