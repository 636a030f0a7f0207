package api

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessResponse(t *testing.T) {
	resp := SuccessResponse(map[string]string{"id": "abc"})

	assert.True(t, resp.Success)
	assert.Empty(t, resp.Errors)
	assert.NotNil(t, resp.Result)
}

func TestErrorResponse(t *testing.T) {
	resp := ErrorResponse(4400, "bad input", "reason one", "reason two")

	assert.False(t, resp.Success)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, 4400, resp.Errors[0].Code)
	assert.Equal(t, []string{"reason one", "reason two"}, resp.Errors[0].Reasons)
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteJSON(rec, 201, SuccessResponse("ok"))

	assert.Equal(t, 201, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "ok", resp.Result)
}

func TestPaginatedResponse(t *testing.T) {
	out := PaginatedResponse([]string{"a"}, ResultInfo{Page: 2, PerPage: 10, Count: 1, TotalCount: 11})

	assert.Equal(t, true, out["success"])
	info := out["result_info"].(ResultInfo)
	assert.Equal(t, 2, info.Page)
	assert.Equal(t, 11, info.TotalCount)
}
