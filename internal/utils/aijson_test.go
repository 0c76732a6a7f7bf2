package utils

import (
	"reflect"
	"testing"
)

func TestParseAIJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    map[string]interface{}
		wantErr bool
	}{
		{
			name:  "pure JSON",
			input: `{"asset_type": "multifamily", "units": 40}`,
			want: map[string]interface{}{
				"asset_type": "multifamily",
				"units":      float64(40),
			},
		},
		{
			name: "markdown code block",
			input: "```json\n" +
				`{"intent": "acquisition", "coverage": 75}` + "\n```",
			want: map[string]interface{}{
				"intent":   "acquisition",
				"coverage": float64(75),
			},
		},
		{
			name:  "surrounding prose",
			input: `Here is the parsed mandate: {"city": "Charlotte", "state": "NC"} as requested.`,
			want: map[string]interface{}{
				"city":  "Charlotte",
				"state": "NC",
			},
		},
		{
			name:  "trailing comma",
			input: `{"budget_max": 20000000,}`,
			want: map[string]interface{}{
				"budget_max": float64(20000000),
			},
		},
		{
			name:  "unquoted keys",
			input: `{intent: "disposition", cap_rate_min: 6.5}`,
			want: map[string]interface{}{
				"intent":       "disposition",
				"cap_rate_min": 6.5,
			},
		},
		{
			name:    "empty string",
			input:   "",
			wantErr: true,
		},
		{
			name:    "no JSON at all",
			input:   "sorry, I could not parse that",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got map[string]interface{}
			err := ParseAIJSON(tt.input, &got)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseAIJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseAIJSON() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractBalanced_NestedAndStrings(t *testing.T) {
	input := `noise {"a": {"b": "has } brace"}, "c": [1, 2]} trailing`
	got := extractJSONFromText(input)
	want := `{"a": {"b": "has } brace"}, "c": [1, 2]}`
	if got != want {
		t.Errorf("extractJSONFromText() = %q, want %q", got, want)
	}
}
