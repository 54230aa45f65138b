package jsonfeed

import (
	"errors"
	"fmt"
	"strings"
)

// validator accumulates violations for one Validate call. It never stops
// at the first problem.
type validator struct {
	entity string
	errs   []string
}

func newValidator(entity string) *validator {
	return &validator{entity: entity}
}

func (v *validator) require(present bool, key string) {
	if present {
		return
	}
	v.errs = append(v.errs, fmt.Sprintf("[%s] key '%s' must not be null", v.entity, key))
}

func (v *validator) requireOneOf(present bool, keys ...string) {
	if present {
		return
	}
	v.errs = append(v.errs, fmt.Sprintf("[%s] one of %s must not be null", v.entity, quoteKeys(keys)))
}

// child merges every error reported by a child entity's Validate.
func (v *validator) child(err error) {
	if err == nil {
		return
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		v.errs = append(v.errs, ve.Errors...)
		return
	}
	v.errs = append(v.errs, err.Error())
}

// result stores the collected errors on st and reports failure iff there
// are any.
func (v *validator) result(st *state) error {
	st.validationErrors = v.errs
	if len(v.errs) == 0 {
		return nil
	}
	return &ValidationError{Entity: v.entity, Errors: append([]string(nil), v.errs...)}
}

func quoteKeys(keys []string) string {
	quoted := make([]string, len(keys))
	for i, k := range keys {
		quoted[i] = "'" + k + "'"
	}
	if len(quoted) < 2 {
		return strings.Join(quoted, "")
	}
	return strings.Join(quoted[:len(quoted)-1], ", ") + " or " + quoted[len(quoted)-1]
}
