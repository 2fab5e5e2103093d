package dto_test

import (
	"encoding/json"
	"testing"
	"todoApi/internal/handlers/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUpdateTaskRequest_UnmarshalJSON проверяет различение
// «поле не прислали» и «поле прислали пустым/null»
func TestUpdateTaskRequest_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name               string
		body               string
		wantTitleSet       bool
		wantDescriptionSet bool
		wantTitle          *string
		wantDescription    *string
	}{
		{
			name:         "only title",
			body:         `{"title": "New title"}`,
			wantTitleSet: true,
			wantTitle:    strPtr("New title"),
		},
		{
			name:               "only description",
			body:               `{"description": "New description"}`,
			wantDescriptionSet: true,
			wantDescription:    strPtr("New description"),
		},
		{
			name:               "explicit null description",
			body:               `{"description": null}`,
			wantDescriptionSet: true,
			wantDescription:    nil,
		},
		{
			name:         "explicit null title",
			body:         `{"title": null}`,
			wantTitleSet: true,
			wantTitle:    nil,
		},
		{
			name: "empty body",
			body: `{}`,
		},
		{
			name: "unrecognized fields ignored",
			body: `{"completed": true, "id": 7}`,
		},
		{
			name:               "both fields",
			body:               `{"title": "T", "description": ""}`,
			wantTitleSet:       true,
			wantDescriptionSet: true,
			wantTitle:          strPtr("T"),
			wantDescription:    strPtr(""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var request dto.UpdateTaskRequest
			err := json.Unmarshal([]byte(tt.body), &request)
			require.NoError(t, err)

			assert.Equal(t, tt.wantTitleSet, request.TitleSet)
			assert.Equal(t, tt.wantDescriptionSet, request.DescriptionSet)
			assert.Equal(t, tt.wantTitle, request.Title)
			assert.Equal(t, tt.wantDescription, request.Description)
			assert.Equal(t, tt.wantTitleSet || tt.wantDescriptionSet, request.HasFields())
		})
	}

	t.Run("error - not an object", func(t *testing.T) {
		var request dto.UpdateTaskRequest
		err := json.Unmarshal([]byte(`[1, 2, 3]`), &request)
		assert.Error(t, err)
	})
}

func TestFromTask_DescriptionNull(t *testing.T) {
	resp := dto.TaskResponse{}
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"description":null`)
}

func strPtr(s string) *string {
	return &s
}
