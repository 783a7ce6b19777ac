package registry

import "github.com/deepankarm/pbjson/pkg/samples"

// RegisterSamples adds the runtime-built sample application messages
// (pkg/samples) the CLI and HTTP layer use for smoke-testing, alongside
// whatever well-known types and real application messages the caller
// registers.
func (r *Registry) RegisterSamples() error {
	order, address, err := samples.Messages()
	if err != nil {
		return err
	}
	r.Register(order)
	r.Register(address)
	return nil
}
