//go:build !windows

package midiwindows

import (
	"context"
	"errors"
	"testing"

	"github.com/leandrodaf/midibridge/internal/logger"
	"github.com/leandrodaf/midibridge/sdk/contracts"
	"go.uber.org/zap"
)

func TestDummyProviderIsUnsupported(t *testing.T) {
	p := NewAccessProvider(&contracts.BridgeOptions{Logger: logger.New(zap.NewNop())})

	access, err := p.RequestAccess(context.Background(), contracts.AccessRequest{})
	if access != nil {
		t.Errorf("access = %v, want nil", access)
	}
	if !errors.Is(err, contracts.ErrUnsupported) {
		t.Errorf("err = %v, want ErrUnsupported", err)
	}
}
