package apperr

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus_MapsEveryKind(t *testing.T) {
	cases := map[Kind]int{
		KindValidation:    http.StatusBadRequest,
		KindAuthorization: http.StatusUnauthorized,
		KindQuota:         http.StatusTooManyRequests,
		KindDependency:    http.StatusServiceUnavailable,
		KindProgramming:   http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, HTTPStatus(New(kind, "detail")))
	}
}

func TestHTTPStatus_UntypedErrorIsInternal(t *testing.T) {
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(fmt.Errorf("plain")))
}

func TestWrap_PreservesOriginalKind(t *testing.T) {
	original := New(KindQuota, "queue full")
	wrapped := Wrap(KindDependency, original)
	assert.Equal(t, KindQuota, wrapped.Kind)
}

func TestPublicDetail_HidesProgrammingInternals(t *testing.T) {
	err := New(KindProgramming, "nil pointer at line 42")
	assert.Equal(t, "internal error", PublicDetail(err))
}

func TestPublicDetail_PassesThroughOtherKinds(t *testing.T) {
	err := New(KindValidation, "missing field")
	assert.Equal(t, "missing field", PublicDetail(err))
}
