package packet

import (
	"github.com/google/uuid"
)

// @gen:r,w,regserver
type LoginStart struct {
	Name string `field:"String" arg:"16"`
}

func (p LoginStart) ID() int32 {
	return 0x00
}

// @gen:r,w,regserver
type EncryptionResponse struct {
	SharedSecret []byte `field:"ByteArray"`
	VerifyToken  []byte `field:"ByteArray"`
}

func (p EncryptionResponse) ID() int32 {
	return 0x01
}

// @gen:r,w,regclient
type LoginDisconnect struct {
	Reason Chat `field:"Chat"`
}

func (p LoginDisconnect) ID() int32 {
	return 0x00
}

// @gen:r,w,regclient
type EncryptionRequest struct {
	ServerID    string `field:"String" arg:"20"`
	PublicKey   []byte `field:"ByteArray"`
	VerifyToken []byte `field:"ByteArray"`
}

func (p EncryptionRequest) ID() int32 {
	return 0x01
}

// LoginSuccess ends the login state. Both ends move to Play once it is exchanged.
//
// @gen:r,w,regclient
type LoginSuccess struct {
	UUID     uuid.UUID `field:"UUIDString"`
	Username string    `field:"String" arg:"16"`
}

func (p LoginSuccess) ID() int32 {
	return 0x02
}

// SetCompression enables compression for every later packet of the connection.
// A negative threshold disables it.
//
// @gen:r,w,regclient
type SetCompression struct {
	Threshold int32 `field:"VarInt"`
}

func (p SetCompression) ID() int32 {
	return 0x03
}
