package mididarwin

import (
	"sync/atomic"

	"github.com/leandrodaf/midibridge/sdk/contracts"
)

// handlerSlot routes the packets of one long-lived input port to the
// handler of the current Listen call. The port outlives listeners, so a
// close and reopen swaps the handler instead of creating another port.
type handlerSlot struct {
	handler atomic.Pointer[func(data []byte)]
}

func (s *handlerSlot) set(handler func(data []byte)) {
	s.handler.Store(&handler)
}

func (s *handlerSlot) clear() {
	s.handler.Store(nil)
}

// deliver splits a packet and hands each message to the current handler.
// Packets that arrive while no handler is set are dropped.
func (s *handlerSlot) deliver(packet []byte) {
	h := s.handler.Load()
	if h == nil {
		return
	}
	for _, msg := range contracts.SplitMessages(packet) {
		(*h)(msg)
	}
}
