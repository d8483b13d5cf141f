package chip8

// tickTimers decrements both countdown timers once and reports whether
// the tone was active in this cycle.
func (m *Machine) tickTimers() bool {
	if m.state.DelayTimer > 0 {
		m.state.DelayTimer--
	}
	if m.state.SoundTimer > 0 {
		m.state.SoundTimer--
		return true
	}
	return false
}
