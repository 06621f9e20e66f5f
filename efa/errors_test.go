package efa

import "testing"

func TestFormatMessages(t *testing.T) {
	tests := []struct {
		name     string
		messages []SystemMessage
		want     string
	}{
		{"empty", nil, ""},
		{
			"text preferred",
			[]SystemMessage{{Type: MessageError, Module: "BROKER", Code: -4050, Text: "origin invalid"}},
			"origin invalid",
		},
		{
			"module code fallback",
			[]SystemMessage{{Type: MessageError, Module: "BROKER", Code: -4050}},
			"BROKER:-4050",
		},
		{
			"module fallback without name",
			[]SystemMessage{{Type: MessageError, Code: 7}},
			"EFA:7",
		},
		{
			"joined",
			[]SystemMessage{{Text: "first"}, {Module: "DM", Code: 2}},
			"first; DM:2",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatMessages(tt.messages); got != tt.want {
				t.Errorf("FormatMessages = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHasErrorMessage(t *testing.T) {
	if hasErrorMessage([]SystemMessage{{Type: MessageWarning}, {Type: MessageInfo}}) {
		t.Errorf("warnings and infos must not count as errors")
	}
	if !hasErrorMessage([]SystemMessage{{Type: MessageWarning}, {Type: MessageError}}) {
		t.Errorf("an error-category message must be detected")
	}
}
