package postgres

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// Helper functions for constraint error checking. GORM translates driver errors when
// TranslateError is on; the message checks cover drivers that do not.
func isUniqueConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	return errorMessageContains(err,
		"duplicate key",
		"unique constraint", // sqlite: "UNIQUE constraint failed"
		"23505",             // PostgreSQL unique_violation
	)
}

func isForeignKeyConstraintViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}

	return errorMessageContains(err,
		"foreign key constraint",
		"23503", // PostgreSQL foreign_key_violation
	)
}

func isNotNullConstraintViolation(err error) bool {
	return errorMessageContains(err,
		"null value",
		"not null constraint",
		"23502", // PostgreSQL not_null_violation
	)
}

func errorMessageContains(err error, patterns ...string) bool {
	if err == nil {
		return false
	}

	errMsg := strings.ToLower(err.Error())
	for _, pattern := range patterns {
		if strings.Contains(errMsg, pattern) {
			return true
		}
	}

	return false
}
