package parser

import (
	"reflect"
	"testing"
)

func TestColumnSpan(t *testing.T) {
	tests := []struct {
		input    string
		expected []string
		wantErr  bool
	}{
		{"A:K", []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K"}, false},
		{"$B:$D", []string{"B", "C", "D"}, false},
		{"c", []string{"C"}, false},
		{"K:A", nil, true},
		{"", nil, true},
		{"A:B:C", nil, true},
		{"1:3", nil, true},
	}

	for _, tt := range tests {
		got, err := ColumnSpan(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ColumnSpan(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !reflect.DeepEqual(got, tt.expected) {
			t.Errorf("ColumnSpan(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}
