package packet

// Protocol340 is the packet format of Minecraft Java Edition 1.12.2.
var Protocol340 = NewFormat("1.12.2", 340).
	Register(Handshaking, Serverbound, HandshakingServerboundRegistry).
	Register(Status, Serverbound, StatusServerboundRegistry).
	Register(Status, Clientbound, StatusClientboundRegistry).
	Register(Login, Serverbound, LoginServerboundRegistry).
	Register(Login, Clientbound, LoginClientboundRegistry).
	Register(Play, Serverbound, PlayServerboundRegistry).
	Register(Play, Clientbound, PlayClientboundRegistry)

// DefaultFormat is used by channels that are not given a format.
var DefaultFormat = Protocol340
