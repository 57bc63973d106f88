package restful_test

import (
	"net/url"
	"testing"

	"github.com/charlee/dash-restful/pkg/restful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:funlen // Test functions can be longer for detailed testing
func TestParams_Encode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		params   restful.Params
		expected string
	}{
		{
			name:     "nil params",
			params:   nil,
			expected: "",
		},
		{
			name:     "empty params",
			params:   restful.Params{},
			expected: "",
		},
		{
			name:     "scalar values",
			params:   restful.Params{"page": 2, "q": "widget"},
			expected: "page=2&q=widget",
		},
		{
			name:     "integer slice joined with comma",
			params:   restful.Params{"ids": []int{3, 4, 5}},
			expected: "ids=3%2C4%2C5",
		},
		{
			name:     "string slice joined with comma",
			params:   restful.Params{"tags": []string{"a", "b", "c"}},
			expected: "tags=a%2Cb%2Cc",
		},
		{
			name:     "nil and empty values dropped",
			params:   restful.Params{"a": 1, "b": nil, "c": ""},
			expected: "a=1",
		},
		{
			name:     "all values dropped yields empty string",
			params:   restful.Params{"a": nil, "b": ""},
			expected: "",
		},
		{
			name:     "special characters escaped in key and value",
			params:   restful.Params{"h+i": "h+i"},
			expected: "h%2Bi=h%2Bi",
		},
		{
			name:     "space encoded as percent-20",
			params:   restful.Params{"q": "hello world"},
			expected: "q=hello%20world",
		},
		{
			name:     "ampersand and equals escaped",
			params:   restful.Params{"expr": "a=b&c"},
			expected: "expr=a%3Db%26c",
		},
		{
			name:     "float value stringified",
			params:   restful.Params{"ratio": 1.5},
			expected: "ratio=1.5",
		},
		{
			name:     "boolean value stringified",
			params:   restful.Params{"active": true},
			expected: "active=true",
		},
		{
			name: "mixed values with drops",
			params: restful.Params{
				"a":   1,
				"b":   "2",
				"c":   []int{3, 4, 5},
				"d":   []string{"a", "b", "c"},
				"e":   nil,
				"g":   "",
				"h+i": "h+i",
			},
			expected: "a=1&b=2&c=3%2C4%2C5&d=a%2Cb%2Cc&h%2Bi=h%2Bi",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.expected, tt.params.Encode())
		})
	}
}

func TestParams_Encode_RoundTrip(t *testing.T) {
	t.Parallel()

	params := restful.Params{
		"name":    "hello world",
		"ids":     []int{1, 2, 3},
		"skip":    nil,
		"empty":   "",
		"literal": "a+b&c=d",
	}

	values, err := url.ParseQuery(params.Encode())
	require.NoError(t, err)

	assert.Equal(t, url.Values{
		"name":    []string{"hello world"},
		"ids":     []string{"1,2,3"},
		"literal": []string{"a+b&c=d"},
	}, values)
}

func TestParams_Encode_Deterministic(t *testing.T) {
	t.Parallel()

	params := restful.Params{"z": 1, "a": 2, "m": 3}

	first := params.Encode()
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, params.Encode())
	}

	assert.Equal(t, "a=2&m=3&z=1", first)
}

func TestParams_Merge(t *testing.T) {
	t.Parallel()

	t.Run("caller keys win on collision", func(t *testing.T) {
		t.Parallel()

		defaults := restful.Params{"type": "internal", "page": 1}
		merged := defaults.Merge(restful.Params{"type": "external"})

		assert.Equal(t, restful.Params{"type": "external", "page": 1}, merged)
		// The receiver is left untouched.
		assert.Equal(t, restful.Params{"type": "internal", "page": 1}, defaults)
	})

	t.Run("nil receiver", func(t *testing.T) {
		t.Parallel()

		var defaults restful.Params

		assert.Equal(t, restful.Params{"a": 1}, defaults.Merge(restful.Params{"a": 1}))
	})

	t.Run("both nil", func(t *testing.T) {
		t.Parallel()

		var defaults restful.Params

		assert.Nil(t, defaults.Merge(nil))
	})
}
