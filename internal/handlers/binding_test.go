package handlers

import (
	"bytes"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type bindTarget struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

func TestBindNestedOrFlat(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name        string
		key         string
		body        string
		expected    bindTarget
		expectError bool
	}{
		{
			name:     "nested structure",
			key:      "expense",
			body:     `{"expense": {"name": "Navajas", "amount": 10}}`,
			expected: bindTarget{Name: "Navajas", Amount: 10},
		},
		{
			name:     "flat structure",
			key:      "expense",
			body:     `{"name": "Toallas", "amount": 5}`,
			expected: bindTarget{Name: "Toallas", Amount: 5},
		},
		{
			name:     "missing key falls back to flat",
			key:      "expense",
			body:     `{"other": "value", "name": "Cera", "amount": 8}`,
			expected: bindTarget{Name: "Cera", Amount: 8},
		},
		{
			name:        "nested with invalid content",
			key:         "expense",
			body:        `{"expense": {"name": "Gel", "amount": "mucho"}}`,
			expectError: true,
		},
		{
			name:        "flat with invalid content",
			key:         "expense",
			body:        `{"name": "Gel", "amount": "mucho"}`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest("POST", "/", bytes.NewBufferString(tt.body))
			c.Request.Header.Set("Content-Type", "application/json")

			var target bindTarget
			err := BindNestedOrFlat(c, tt.key, &target)

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, target)
		})
	}
}
