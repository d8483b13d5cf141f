package chip8

import "fmt"

// execute runs the handler of the given kind. Every handler sets the
// program counter for the next cycle.
func (m *Machine) execute(kind Kind, ins Instruction) error {
	switch kind {
	case ClearScreen:
		m.clearScreen()
	case Return:
		return m.returnFromSubroutine()
	case Jump:
		m.state.PC = ins.NNN
	case Call:
		return m.callSubroutine(ins)
	case SkipEqualImmediate:
		m.skipIf(m.state.Registers[ins.X] == ins.NN)
	case SkipNotEqualImmediate:
		m.skipIf(m.state.Registers[ins.X] != ins.NN)
	case SkipRegistersEqual:
		m.skipIf(m.state.Registers[ins.X] == m.state.Registers[ins.Y])
	case SetImmediate:
		m.state.Registers[ins.X] = ins.NN
		m.advance()
	case AddImmediate:
		m.state.Registers[ins.X] += ins.NN
		m.advance()
	case Assign, Or, And, Xor, AddWithCarry, SubWithBorrow, ShiftRight, ReverseSubtract, ShiftLeft:
		m.arithmetic(kind, ins)
		m.advance()
	case SkipRegistersNotEqual:
		m.skipIf(m.state.Registers[ins.X] != m.state.Registers[ins.Y])
	case SetIndex:
		m.state.Index = ins.NNN
		m.advance()
	case JumpWithOffset:
		return m.jumpWithOffset(ins)
	case RandomAnd:
		m.state.Registers[ins.X] = m.random() & ins.NN
		m.advance()
	case DrawSprite:
		return m.drawSprite(ins)
	case SkipKeyPressed:
		m.skipIf(m.state.Keys[m.state.Registers[ins.X]&0xF])
	case SkipKeyNotPressed:
		m.skipIf(!m.state.Keys[m.state.Registers[ins.X]&0xF])
	case GetDelayTimer:
		m.state.Registers[ins.X] = m.state.DelayTimer
		m.advance()
	case WaitKey:
		m.waitKey(ins)
	case SetDelayTimer:
		m.state.DelayTimer = m.state.Registers[ins.X]
		m.advance()
	case SetSoundTimer:
		m.state.SoundTimer = m.state.Registers[ins.X]
		m.advance()
	case AddIndex:
		m.addIndex(ins)
	case FontAddress:
		m.state.Index = FontStart + uint16(m.state.Registers[ins.X]&0xF)*GlyphSize
		m.advance()
	case StoreBCD:
		return m.storeBCD(ins)
	case StoreRegisters:
		return m.storeRegisters(ins)
	case LoadRegisters:
		return m.loadRegisters(ins)
	default:
		return &UnknownOpcodeError{Opcode: ins.Word, PC: m.state.PC}
	}
	return nil
}

func (m *Machine) advance() {
	m.state.PC += instructionSize
}

// skipIf skips the next instruction if the condition holds.
func (m *Machine) skipIf(condition bool) {
	if condition {
		m.state.PC += 2 * instructionSize
		return
	}
	m.state.PC += instructionSize
}

func (m *Machine) clearScreen() {
	m.state.FrameBuffer = [FrameBufferSize]byte{}
	m.state.Redraw = true
	m.advance()
}

// callSubroutine pushes the address of the following instruction and jumps to NNN.
func (m *Machine) callSubroutine(ins Instruction) error {
	if int(m.state.StackPointer) >= StackDepth {
		return ErrStackOverflow
	}
	m.state.Stack[m.state.StackPointer] = m.state.PC + instructionSize
	m.state.StackPointer++
	m.state.PC = ins.NNN
	return nil
}

func (m *Machine) returnFromSubroutine() error {
	if m.state.StackPointer == 0 {
		return ErrStackUnderflow
	}
	m.state.StackPointer--
	m.state.PC = m.state.Stack[m.state.StackPointer]
	return nil
}

func (m *Machine) arithmetic(kind Kind, ins Instruction) {
	vx := m.state.Registers[ins.X]
	vy := m.state.Registers[ins.Y]
	v := &m.state.Registers

	// operands are read before VF is written, a result targeting VF
	// overwrites the flag
	switch kind {
	case Assign:
		v[ins.X] = vy
	case Or:
		v[ins.X] = vx | vy
	case And:
		v[ins.X] = vx & vy
	case Xor:
		v[ins.X] = vx ^ vy
	case AddWithCarry:
		v[FlagRegister] = boolToFlag(uint16(vx)+uint16(vy) > 0xFF)
		v[ins.X] = vx + vy
	case SubWithBorrow:
		v[FlagRegister] = boolToFlag(vy <= vx)
		v[ins.X] = vx - vy
	case ShiftRight:
		v[FlagRegister] = vx & 0x01
		v[ins.X] = vx >> 1
	case ReverseSubtract:
		v[FlagRegister] = boolToFlag(vx <= vy)
		v[ins.X] = vy - vx
	case ShiftLeft:
		v[FlagRegister] = vx >> 7
		v[ins.X] = vx << 1
	}
}

func (m *Machine) jumpWithOffset(ins Instruction) error {
	target := int(m.state.Registers[0]) + int(ins.NNN)
	if target > MaxAddress {
		return &AddressError{Address: target, Op: "jump"}
	}
	m.state.PC = uint16(target)
	return nil
}

// drawSprite draws an N-row sprite from memory at I to (VX, VY). Pixels
// wrap around the screen edges and VF reports whether any set pixel was
// cleared. The sprite is read before drawing so a failed read leaves the
// frame buffer untouched.
func (m *Machine) drawSprite(ins Instruction) error {
	start := int(m.state.Index)
	height := int(ins.N)
	if err := checkRange(start, height, "read"); err != nil {
		return fmt.Errorf("reading sprite: %w", err)
	}
	sprite := m.state.Memory[start : start+height]

	x := int(m.state.Registers[ins.X])
	y := int(m.state.Registers[ins.Y])
	m.state.Registers[FlagRegister] = 0

	for row, data := range sprite {
		for col := 0; col < SpriteWidth; col++ {
			bit := (data >> (7 - col)) & 0x01
			if bit == 0 {
				continue
			}
			idx := pixelIndex(x+col, y+row)
			if m.state.FrameBuffer[idx] == 1 {
				m.state.Registers[FlagRegister] = 1
			}
			m.state.FrameBuffer[idx] ^= bit
		}
	}

	m.state.Redraw = true
	m.advance()
	return nil
}

// waitKey stores the lowest pressed key in VX. While no key is pressed the
// program counter stays on this instruction.
func (m *Machine) waitKey(ins Instruction) {
	for key, pressed := range m.state.Keys {
		if pressed {
			m.state.Registers[ins.X] = uint8(key)
			m.advance()
			return
		}
	}
}

func (m *Machine) addIndex(ins Instruction) {
	sum := m.state.Index + uint16(m.state.Registers[ins.X])
	m.state.Registers[FlagRegister] = boolToFlag(sum > MaxAddress)
	m.state.Index = sum & MaxAddress
	m.advance()
}

func (m *Machine) storeBCD(ins Instruction) error {
	address := int(m.state.Index)
	if err := checkRange(address, 3, "write"); err != nil {
		return err
	}
	value := m.state.Registers[ins.X]
	digits := [3]byte{value / 100, (value / 10) % 10, value % 10}
	for i, digit := range digits {
		if err := m.writeMemory(address+i, digit); err != nil {
			return err
		}
	}
	m.advance()
	return nil
}

// storeRegisters writes V0 through VX to memory starting at I.
func (m *Machine) storeRegisters(ins Instruction) error {
	address := int(m.state.Index)
	count := int(ins.X) + 1
	if err := checkRange(address, count, "write"); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		if err := m.writeMemory(address+i, m.state.Registers[i]); err != nil {
			return err
		}
	}
	m.advance()
	return nil
}

// loadRegisters reads V0 through VX from memory starting at I.
func (m *Machine) loadRegisters(ins Instruction) error {
	address := int(m.state.Index)
	count := int(ins.X) + 1
	if err := checkRange(address, count, "read"); err != nil {
		return err
	}
	for i := 0; i < count; i++ {
		value, err := m.readMemory(address + i)
		if err != nil {
			return err
		}
		m.state.Registers[i] = value
	}
	m.advance()
	return nil
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
