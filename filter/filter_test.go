package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name       string
		expression string
		wantErr    bool
	}{
		{
			name:       "valid expression",
			expression: `shortName startsWith "orders"`,
			wantErr:    false,
		},
		{
			name:       "empty expression",
			expression: "   ",
			wantErr:    true,
		},
		{
			name:       "syntax error",
			expression: `name contains`,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestMatch(t *testing.T) {
	entry := Entry{
		Name:      "projects/acme/topics/orders-dev",
		ShortName: "orders-dev",
		Project:   "acme",
	}

	tests := []struct {
		expression string
		want       bool
	}{
		{`shortName endsWith "-dev"`, true},
		{`shortName == "orders"`, false},
		{`name contains "topics"`, true},
		{`project == "acme" && shortName startsWith "orders"`, true},
	}

	for _, tt := range tests {
		t.Run(tt.expression, func(t *testing.T) {
			f, err := Compile(tt.expression)
			require.NoError(t, err)

			got, err := f.Match(entry)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "orders", ShortName("projects/acme/topics/orders"))
	assert.Equal(t, "orders", ShortName("orders"))
}
