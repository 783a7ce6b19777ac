package registry_test

import (
	"testing"

	"github.com/deepankarm/pbjson/pkg/registry"
	"github.com/deepankarm/pbjson/pkg/samples"
)

func TestLookupMissingFails(t *testing.T) {
	r := registry.New()
	if _, ok := r.Lookup("nope.Nothing"); ok {
		t.Fatal("Lookup on an empty registry should report false")
	}
	if _, err := r.NewMessage("nope.Nothing"); err == nil {
		t.Fatal("NewMessage for an unregistered name should error")
	}
	if _, err := r.Descriptor("nope.Nothing"); err == nil {
		t.Fatal("Descriptor for an unregistered name should error")
	}
}

func TestRegisterSamplesAndLookup(t *testing.T) {
	r := registry.New()
	if err := r.RegisterSamples(); err != nil {
		t.Fatalf("RegisterSamples: %v", err)
	}
	if _, ok := r.Lookup(samples.FullNameOrder); !ok {
		t.Fatalf("Lookup(%q) should succeed after RegisterSamples", samples.FullNameOrder)
	}
	if _, ok := r.Lookup(samples.FullNameAddress); !ok {
		t.Fatalf("Lookup(%q) should succeed after RegisterSamples", samples.FullNameAddress)
	}

	msg, err := r.NewMessage(samples.FullNameOrder)
	if err != nil {
		t.Fatalf("NewMessage: %v", err)
	}
	if msg == nil {
		t.Fatal("NewMessage returned a nil message")
	}
	if string(msg.Descriptor().FullName()) != samples.FullNameOrder {
		t.Errorf("NewMessage descriptor full name = %q, want %q", msg.Descriptor().FullName(), samples.FullNameOrder)
	}

	desc, err := r.Descriptor(samples.FullNameOrder)
	if err != nil {
		t.Fatalf("Descriptor: %v", err)
	}
	if desc.FullName() != samples.FullNameOrder {
		t.Errorf("Descriptor().FullName() = %q, want %q", desc.FullName(), samples.FullNameOrder)
	}
}

func TestNamesIsSortedAndComplete(t *testing.T) {
	r := registry.New()
	if err := r.RegisterSamples(); err != nil {
		t.Fatalf("RegisterSamples: %v", err)
	}
	r.RegisterWellKnown()

	names := r.Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("Names() not sorted: %q before %q", names[i-1], names[i])
		}
	}

	want := map[string]bool{
		samples.FullNameOrder:          true,
		samples.FullNameAddress:        true,
		"google.protobuf.Duration":     true,
		"google.protobuf.Timestamp":    true,
		"google.protobuf.Struct":       true,
		"google.protobuf.Value":        true,
		"google.protobuf.ListValue":    true,
		"google.protobuf.StringValue":  true,
	}
	got := make(map[string]bool, len(names))
	for _, n := range names {
		got[n] = true
	}
	for n := range want {
		if !got[n] {
			t.Errorf("Names() missing %q", n)
		}
	}
}

func TestRegisterOverwritesSameFullName(t *testing.T) {
	r := registry.New()
	if err := r.RegisterSamples(); err != nil {
		t.Fatalf("RegisterSamples: %v", err)
	}
	before := len(r.Names())
	if err := r.RegisterSamples(); err != nil {
		t.Fatalf("RegisterSamples (again): %v", err)
	}
	if after := len(r.Names()); after != before {
		t.Errorf("Names() length changed from %d to %d after re-registering the same messages", before, after)
	}
}
