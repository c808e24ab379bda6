package syntax

import (
	"reflect"
	"testing"
)

func TestParseIDList(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		separator string
		expected  []uint32
		wantErr   bool
	}{
		{
			name:      "decimal list",
			input:     "1,2,6",
			separator: ",",
			expected:  []uint32{1, 2, 6},
		},
		{
			name:      "hex list",
			input:     "0x01,0x02,0x03",
			separator: ",",
			expected:  []uint32{1, 2, 3},
		},
		{
			name:      "inline comment",
			input:     "1, #2, 6",
			separator: ",",
			expected:  []uint32{1, 6},
		},
		{
			name:      "whole line comment",
			input:     "1,# comment,6",
			separator: ",",
			expected:  []uint32{1, 6},
		},
		{
			name:      "duplicates collapse",
			input:     "1,1,2",
			separator: ",",
			expected:  []uint32{1, 2},
		},
		{
			name:      "unsorted input is sorted",
			input:     "6,1,3",
			separator: ",",
			expected:  []uint32{1, 3, 6},
		},
		{
			name:      "whitespace trimmed",
			input:     " 1 , 2 ",
			separator: ",",
			expected:  []uint32{1, 2},
		},
		{
			name:      "default separator on empty string",
			input:     "1,2",
			separator: "",
			expected:  []uint32{1, 2},
		},
		{
			name:      "invalid entry",
			input:     "1,nope,2",
			separator: ",",
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseIDList(tt.input, tt.separator)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseIDList() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("ParseIDList() = %v, want %v", result, tt.expected)
			}
		})
	}
}
