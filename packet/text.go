package packet

import (
	"encoding/json"
	"io"

	"github.com/Tnze/go-mc/nbt"
)

// MaxChatLength bounds the JSON text of a Chat field, in code points.
const MaxChatLength = 262144

// Chat is a JSON text component carried as a String.
type Chat string

// Text returns a plain text component.
func Text(s string) Chat {
	b, _ := json.Marshal(struct {
		Text string `json:"text"`
	}{s})
	return Chat(b)
}

// Unmarshal decodes the component into v.
func (c Chat) Unmarshal(v any) error {
	return json.Unmarshal([]byte(c), v)
}

// Plain returns the "text" member of the component, or the component itself
// when it is a bare JSON string.
func (c Chat) Plain() string {
	var s string
	if err := json.Unmarshal([]byte(c), &s); err == nil {
		return s
	}
	var t struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal([]byte(c), &t); err == nil {
		return t.Text
	}
	return string(c)
}

func WriteChat(w io.Writer, v Chat) (err error) {
	if !json.Valid([]byte(v)) {
		return argumentErr("Chat", ErrInvalidChat)
	}
	return WriteString(w, string(v), MaxChatLength)
}

func ReadChat(r Reader) (v Chat, err error) {
	s, err := ReadString(r, MaxChatLength)
	if err != nil {
		return
	}
	if !json.Valid([]byte(s)) {
		err = decodeErr("Chat", ErrInvalidChat)
		return
	}
	return Chat(s), nil
}

// Tag is an NBT compound. A nil Tag is written as a lone TAG_End.
type Tag map[string]any

const tagEnd = 0x00

func WriteTag(w io.Writer, v Tag) (err error) {
	if v == nil {
		return writeByte(w, tagEnd)
	}
	return nbt.NewEncoder(w).Encode(map[string]any(v), "")
}

func ReadTag(r Reader) (v Tag, err error) {
	b, err := r.ReadByte()
	if err != nil {
		return
	}
	if b == tagEnd {
		return nil, nil
	}
	if err = r.UnreadByte(); err != nil {
		return
	}
	var m map[string]any
	if _, err = nbt.NewDecoder(r).Decode(&m); err != nil {
		err = decodeErr("Tag", err)
		return
	}
	if m == nil {
		m = map[string]any{}
	}
	return Tag(m), nil
}
