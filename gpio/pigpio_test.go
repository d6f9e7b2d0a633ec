package gpio

import (
	"encoding/binary"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePigpiod speaks just enough of the pigpio socket protocol to test the
// client: it records every request and answers READs with the level last
// WRITEn to the pin.
type fakePigpiod struct {
	ln       net.Listener
	requests chan cmd
}

func newFakePigpiod(t *testing.T) *fakePigpiod {
	t.Helper()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	f := &fakePigpiod{ln: ln, requests: make(chan cmd, 64)}

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		levels := make(map[uint32]uint32)

		for {
			var request cmd
			if err := binary.Read(conn, binary.LittleEndian, &request); err != nil {
				return
			}

			response := request
			response.P3 = 0

			switch request.Cmd {
			case cmdWrite:
				levels[request.P1] = request.P2
			case cmdRead:
				response.P3 = levels[request.P1]
			case cmdHP:
				// consume the extension word carrying the duty
				var ext uint32
				if err := binary.Read(conn, binary.LittleEndian, &ext); err != nil {
					return
				}
				request.P3 = ext
			}

			f.requests <- request

			if err := binary.Write(conn, binary.LittleEndian, response); err != nil {
				return
			}
		}
	}()

	return f
}

func (f *fakePigpiod) addr() string {
	return f.ln.Addr().String()
}

// next returns the next request matching code, skipping others.
func (f *fakePigpiod) next(t *testing.T, code uint32) cmd {
	t.Helper()

	for {
		select {
		case request := <-f.requests:
			if request.Cmd == code {
				return request
			}
		default:
			t.Fatalf("no request with command %d recorded", code)
		}
	}
}

func TestPigpioOpenLine(t *testing.T) {
	f := newFakePigpiod(t)

	chip, err := DialPigpio(f.addr())
	require.NoError(t, err)
	defer chip.Close()

	line, err := chip.OpenLine(17)
	require.NoError(t, err)

	modes := f.next(t, cmdModes)
	assert.Equal(t, uint32(17), modes.P1)
	assert.Equal(t, pigpioModeOutput, modes.P2)

	// a claimed pin can't be opened twice
	_, err = chip.OpenLine(17)
	assert.Error(t, err)

	// closing the line drives it low and releases the claim
	require.NoError(t, line.Close())

	write := f.next(t, cmdWrite)
	assert.Equal(t, uint32(17), write.P1)
	assert.Equal(t, uint32(0), write.P2)

	_, err = chip.OpenLine(17)
	assert.NoError(t, err)
}

func TestPigpioWriteRead(t *testing.T) {
	f := newFakePigpiod(t)

	chip, err := DialPigpio(f.addr())
	require.NoError(t, err)
	defer chip.Close()

	line, err := chip.OpenLine(4)
	require.NoError(t, err)

	require.NoError(t, line.Write(High))

	write := f.next(t, cmdWrite)
	assert.Equal(t, uint32(4), write.P1)
	assert.Equal(t, uint32(1), write.P2)

	level, err := line.Read()
	require.NoError(t, err)
	assert.Equal(t, High, level)

	require.NoError(t, line.Write(Low))

	level, err = line.Read()
	require.NoError(t, err)
	assert.Equal(t, Low, level)
}

func TestPigpioSetPWM(t *testing.T) {
	f := newFakePigpiod(t)

	chip, err := DialPigpio(f.addr())
	require.NoError(t, err)
	defer chip.Close()

	line, err := chip.OpenLine(18)
	require.NoError(t, err)

	require.NoError(t, line.SetPWM(100, 0.5))

	hp := f.next(t, cmdHP)
	assert.Equal(t, uint32(18), hp.P1)
	assert.Equal(t, uint32(100), hp.P2)
	assert.Equal(t, uint32(500000), hp.P3)

	assert.Error(t, line.SetPWM(100, 1.5))
}

func TestPigpioDialFailure(t *testing.T) {
	_, err := DialPigpio("127.0.0.1:1")
	assert.Error(t, err)
}
