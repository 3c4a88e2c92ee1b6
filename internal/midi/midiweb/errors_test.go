package midiweb

import (
	"errors"
	"testing"

	"github.com/leandrodaf/midibridge/sdk/contracts"
)

func TestClassifyRejection(t *testing.T) {
	tests := []struct {
		name string
		want error
	}{
		{"NotAllowedError", contracts.ErrAccessDenied},
		{"SecurityError", contracts.ErrAccessDenied},
		{"AbortError", contracts.ErrAccessDenied},
		{"", contracts.ErrAccessDenied},
		{"NotSupportedError", contracts.ErrUnsupported},
		{"InvalidStateError", contracts.ErrUnsupported},
	}

	for _, tt := range tests {
		if got := classifyRejection(tt.name); !errors.Is(got, tt.want) {
			t.Errorf("classifyRejection(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
