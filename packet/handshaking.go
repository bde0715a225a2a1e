package packet

// Handshake opens every connection and selects the next state.
//
// @gen:r,w,regserver
type Handshake struct {
	ProtocolVersion int32  `field:"VarInt"`
	ServerAddr      string `field:"String" arg:"255"`
	ServerPort      uint16 `field:"UnsignedShort"`
	NextState       Intent `field:"Intent"`
}

func (p Handshake) ID() int32 {
	return 0x00
}
