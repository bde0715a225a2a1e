package packet

import (
	"io"

	"github.com/google/uuid"
)

type ChatPosition int8

const (
	ChatPositionChat ChatPosition = iota
	ChatPositionSystem
	ChatPositionGameInfo
	ChatPositionCount
)

type Difficulty uint8

const (
	DifficultyPeaceful Difficulty = iota
	DifficultyEasy
	DifficultyNormal
	DifficultyHard
	DifficultyCount
)

type ChatMode int32

const (
	ChatModeEnabled ChatMode = iota
	ChatModeCommandsOnly
	ChatModeHidden
	ChatModeCount
)

type Hand int32

const (
	HandLeft Hand = iota
	HandRight
	HandCount
)

type DiggingStatus int32

const (
	DiggingStarted DiggingStatus = iota
	DiggingCancelled
	DiggingFinished
	DiggingDropItemStack
	DiggingDropItem
	DiggingReleaseUseItem
	DiggingSwapItemInHand
	DiggingStatusCount
)

type BlockFace int8

const (
	FaceBottom BlockFace = iota
	FaceTop
	FaceNorth
	FaceSouth
	FaceWest
	FaceEast
	BlockFaceCount
)

// Serverbound

// @gen:r,w,regserver
type TeleportConfirm struct {
	TeleportID int32 `field:"VarInt"`
}

func (p TeleportConfirm) ID() int32 {
	return 0x00
}

// @gen:r,w,regserver
type TabCompleteRequest struct {
	Text          string             `field:"String" arg:"32767"`
	AssumeCommand bool               `field:"Boolean"`
	LookedAtBlock Optional[Position] `field:"Optional" inner:"Position"`
}

func (p TabCompleteRequest) ID() int32 {
	return 0x01
}

// @gen:r,w,regserver
type ChatMessageServerbound struct {
	Message string `field:"String" arg:"256"`
}

func (p ChatMessageServerbound) ID() int32 {
	return 0x02
}

// @gen:r,w,regserver
type ClientSettings struct {
	Locale             string   `field:"String" arg:"16"`
	ViewDistance       int8     `field:"Byte"`
	ChatMode           ChatMode `field:"VarIntEnum" arg:"ChatModeCount"`
	ChatColors         bool     `field:"Boolean"`
	DisplayedSkinParts uint8    `field:"UnsignedByte"`
	MainHand           Hand     `field:"VarIntEnum" arg:"HandCount"`
}

func (p ClientSettings) ID() int32 {
	return 0x04
}

// @gen:r,w,regserver
type KeepAliveServerbound struct {
	KeepAliveID int64 `field:"Long"`
}

func (p KeepAliveServerbound) ID() int32 {
	return 0x0B
}

// @gen:r,w,regserver
type PlayerPosition struct {
	X        float64 `field:"Double"`
	FeetY    float64 `field:"Double"`
	Z        float64 `field:"Double"`
	OnGround bool    `field:"Boolean"`
}

func (p PlayerPosition) ID() int32 {
	return 0x0D
}

// @gen:r,w,regserver
type PlayerDigging struct {
	Status   DiggingStatus `field:"VarIntEnum" arg:"DiggingStatusCount"`
	Location Position      `field:"Position"`
	Face     BlockFace     `field:"ByteEnum" arg:"BlockFaceCount"`
}

func (p PlayerDigging) ID() int32 {
	return 0x14
}

// @gen:r,w,regserver
type Spectate struct {
	Target uuid.UUID `field:"UUID"`
}

func (p Spectate) ID() int32 {
	return 0x1E
}

// Clientbound

// @gen:r,w,regclient
type BlockEntityData struct {
	Location Position `field:"Position"`
	Action   uint8    `field:"UnsignedByte"`
	Data     Tag      `field:"Tag"`
}

func (p BlockEntityData) ID() int32 {
	return 0x09
}

// @gen:r,w,regclient
type BlockChange struct {
	Location Position `field:"Position"`
	BlockID  int32    `field:"VarInt"`
}

func (p BlockChange) ID() int32 {
	return 0x0B
}

func writeMatch(w io.Writer, v string) error {
	return WriteString(w, v, MaxStringLength)
}

func readMatch(r Reader) (string, error) {
	return ReadString(r, MaxStringLength)
}

// @gen:r,w,regclient
type TabCompleteResponse struct {
	Matches []string `field:"PrefixedArray" write:"writeMatch" read:"readMatch"`
}

func (p TabCompleteResponse) ID() int32 {
	return 0x0E
}

// @gen:r,w,regclient
type ChatMessage struct {
	Message  Chat         `field:"Chat"`
	Position ChatPosition `field:"ByteEnum" arg:"ChatPositionCount"`
}

func (p ChatMessage) ID() int32 {
	return 0x0F
}

// @gen:r,w,regclient
type PlayDisconnect struct {
	Reason Chat `field:"Chat"`
}

func (p PlayDisconnect) ID() int32 {
	return 0x1A
}

// @gen:r,w,regclient
type KeepAliveClientbound struct {
	KeepAliveID int64 `field:"Long"`
}

func (p KeepAliveClientbound) ID() int32 {
	return 0x1F
}

// JoinGame's high Gamemode bit flags hardcore mode.
//
// @gen:r,regclient
type JoinGame struct {
	EntityID         int32      `field:"Int"`
	Gamemode         uint8      `field:"UnsignedByte"`
	Dimension        int32      `field:"Int"`
	Difficulty       Difficulty `field:"UnsignedByteEnum" arg:"DifficultyCount"`
	MaxPlayers       uint8      `field:"UnsignedByte"`
	LevelType        string     `field:"String" arg:"16"`
	ReducedDebugInfo bool       `field:"Boolean"`
}

func (p JoinGame) ID() int32 {
	return 0x23
}

func (p JoinGame) Encode(w *Buffer) error {
	return w.Int(p.EntityID).
		UnsignedByte(p.Gamemode).
		Int(p.Dimension).
		Apply(func(w io.Writer) error { return WriteUnsignedByteEnum(w, p.Difficulty, DifficultyCount) }).
		UnsignedByte(p.MaxPlayers).
		BoundedString(p.LevelType, 16).
		Boolean(p.ReducedDebugInfo).
		Err()
}

// Relative position flags of PlayerPositionAndLook.
const (
	RelativeX     int8 = 0x01
	RelativeY     int8 = 0x02
	RelativeZ     int8 = 0x04
	RelativeYaw   int8 = 0x08
	RelativePitch int8 = 0x10
)

// PlayerPositionAndLook has a hand-written codec.
//
// @gen:regclient
type PlayerPositionAndLook struct {
	X, Y, Z    float64
	Yaw, Pitch float32
	Flags      int8
	TeleportID int32
}

func (p PlayerPositionAndLook) ID() int32 {
	return 0x2F
}

func (p PlayerPositionAndLook) Encode(w *Buffer) error {
	return w.Double(p.X).Double(p.Y).Double(p.Z).
		Float(p.Yaw).Float(p.Pitch).
		Byte(p.Flags).
		VarInt(p.TeleportID).
		Err()
}

func (p *PlayerPositionAndLook) Decode(r Reader) (err error) {
	for _, f := range []*float64{&p.X, &p.Y, &p.Z} {
		if *f, err = ReadDouble(r); err != nil {
			return
		}
	}
	if p.Yaw, err = ReadFloat(r); err != nil {
		return
	}
	if p.Pitch, err = ReadFloat(r); err != nil {
		return
	}
	if p.Flags, err = ReadByte(r); err != nil {
		return
	}
	p.TeleportID, err = ReadVarInt(r)
	return
}

// @gen:r,w,regclient
type SpawnPosition struct {
	Location Position `field:"Position"`
}

func (p SpawnPosition) ID() int32 {
	return 0x46
}

// @gen:r,w,regclient
type TimeUpdate struct {
	WorldAge  int64 `field:"Long"`
	TimeOfDay int64 `field:"Long"`
}

func (p TimeUpdate) ID() int32 {
	return 0x47
}
