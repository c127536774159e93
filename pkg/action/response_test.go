package action

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"

	dErrors "guild/pkg/domain-errors"
)

func TestResponse_SuccessImpliesOK(t *testing.T) {
	resp := Success(42)
	assert.True(t, resp.Successful)
	assert.Equal(t, CodeOK, resp.Code)
	assert.Equal(t, 42, resp.Result)

	msg := SuccessMessage("payload", "saved")
	assert.True(t, msg.Successful)
	assert.Equal(t, CodeOK, msg.Code)
	assert.Equal(t, "saved", msg.Message)

	ok := OK("done")
	assert.True(t, ok.Successful)
	assert.Equal(t, CodeOK, ok.Code)
}

func TestResponse_FailureConstructors(t *testing.T) {
	t.Run("failure defaults to database error", func(t *testing.T) {
		resp := Failure[string]("storage unavailable")
		assert.False(t, resp.Successful)
		assert.Equal(t, CodeDatabaseError, resp.Code)
		assert.Equal(t, "storage unavailable", resp.Message)
	})

	t.Run("invalid carries field errors", func(t *testing.T) {
		resp := Invalid[string]("validation failed", []string{"email is required", "username too short"})
		assert.False(t, resp.Successful)
		assert.Equal(t, CodeInputError, resp.Code)
		assert.Len(t, resp.Errors, 2)
	})

	t.Run("not found uses default message when empty", func(t *testing.T) {
		resp := NotFound[int]("")
		assert.Equal(t, CodeNotFound, resp.Code)
		assert.Equal(t, "Record not found.", resp.Message)

		custom := NotFound[int]("member not found")
		assert.Equal(t, "member not found", custom.Message)
	})

	t.Run("conflict forbidden unauthorized", func(t *testing.T) {
		assert.Equal(t, CodeConflict, Conflict[int]("taken").Code)
		assert.Equal(t, CodeForbidden, Forbidden[int]("not yours").Code)
		assert.Equal(t, CodeUnauthorized, Unauthorized[int]("who are you").Code)
	})
}

func TestResponse_FromError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want Code
	}{
		{"validation maps to input error", dErrors.New(dErrors.CodeValidation, "bad date"), CodeInputError},
		{"not found", dErrors.New(dErrors.CodeNotFound, "gone"), CodeNotFound},
		{"conflict", dErrors.New(dErrors.CodeConflict, "taken"), CodeConflict},
		{"forbidden", dErrors.New(dErrors.CodeForbidden, "no"), CodeForbidden},
		{"unknown error maps to database error", assert.AnError, CodeDatabaseError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp := FromError[string](tc.err)
			assert.False(t, resp.Successful)
			assert.Equal(t, tc.want, resp.Code)
			assert.Equal(t, tc.err.Error(), resp.Message)
		})
	}

	t.Run("field detail survives translation", func(t *testing.T) {
		err := dErrors.NewWithFields(dErrors.CodeValidation, "invalid input", []string{"year out of range"})
		resp := FromError[string](err)
		assert.Equal(t, []string{"year out of range"}, resp.Errors)
	})
}

func TestResponse_MarshalKeepsEmptyResult(t *testing.T) {
	raw, err := json.Marshal(Success([]string{}))
	assert.NoError(t, err)
	assert.Contains(t, string(raw), `"result":[]`)

	var decoded Response[[]string]
	assert.NoError(t, json.Unmarshal(raw, &decoded))
	assert.True(t, decoded.Successful)
	assert.NotNil(t, decoded.Result)
	assert.Empty(t, decoded.Result)
}

func TestResponse_ChangeType(t *testing.T) {
	lower := Invalid[int]("validation failed", []string{"email is required"})
	retyped := ChangeType[string](lower)

	assert.False(t, retyped.Successful)
	assert.Equal(t, lower.Code, retyped.Code)
	assert.Equal(t, lower.Message, retyped.Message)
	assert.Equal(t, lower.Errors, retyped.Errors)
	assert.Zero(t, retyped.Result)
}
