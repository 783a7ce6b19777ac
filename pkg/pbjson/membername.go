package pbjson

// completeMemberName is called when an ordinary object frame's member
// name string closes. It resolves the name against the frame's message
// descriptor and binds the frame to the resolved field (or to
// unknownFieldSentinel if the name doesn't resolve and
// Options.IgnoreJSONUnknown permits carrying on -- spec §4.9).
func (d *Driver) completeMemberName(name string) error {
	top := d.frames.top()
	if top.Msg == nil {
		// Already inside a suppressed subtree: every member here is
		// unknown by construction.
		top.Field = unknownFieldSentinel
		top.container = csObjectAwaitingColon
		return nil
	}
	f, ok := top.Msg.FieldByJSONName(name)
	if !ok {
		if !d.opts.IgnoreJSONUnknown {
			return d.fail(d.unknownFieldError(name))
		}
		top.Field = unknownFieldSentinel
	} else {
		top.Field = f
	}
	top.container = csObjectAwaitingColon
	return nil
}
