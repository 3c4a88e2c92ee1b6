package mididarwin

import (
	"fmt"
	"testing"
)

func TestHandlerSlotRoutesToCurrentHandler(t *testing.T) {
	var slot handlerSlot
	var got []string
	record := func(tag string) func([]byte) {
		return func(data []byte) { got = append(got, fmt.Sprintf("%s %x", tag, data)) }
	}

	slot.deliver([]byte{0x90, 60, 100})
	if len(got) != 0 {
		t.Fatalf("delivered without a handler: %v", got)
	}

	slot.set(record("first"))
	slot.deliver([]byte{0x90, 60, 100, 0x80, 60, 0})
	slot.clear()
	slot.deliver([]byte{0xF8})
	slot.set(record("second"))
	slot.deliver([]byte{0xC0, 5})

	want := []string{"first 903c64", "first 803c00", "second c005"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d = %q, want %q", i, got[i], want[i])
		}
	}
}
