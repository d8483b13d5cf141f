package chip8

func (m *Machine) readMemory(address int) (byte, error) {
	if err := checkRange(address, 1, "read"); err != nil {
		return 0, err
	}
	return m.state.Memory[address], nil
}

func (m *Machine) writeMemory(address int, value byte) error {
	if err := checkRange(address, 1, "write"); err != nil {
		return err
	}
	m.state.Memory[address] = value
	return nil
}

// checkRange verifies that length bytes starting at address are addressable.
// The first failing address is reported.
func checkRange(address, length int, op string) error {
	if address < 0 {
		return &AddressError{Address: address, Op: op}
	}
	if end := address + length - 1; end > MaxAddress {
		if address > MaxAddress {
			return &AddressError{Address: address, Op: op}
		}
		return &AddressError{Address: MaxAddress + 1, Op: op}
	}
	return nil
}
