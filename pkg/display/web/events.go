package web

// Event is the first byte of a message sent by a client.
type Event = uint8

const (
	// Input sets the pressed buttons, [Input, mask]. The mask
	// holds one bit per joypad.Button.
	Input Event = iota + 1
	// Settings changes a setting of the hub, [Settings, Setting, value].
	Settings Event = 10
	// Closing is sent by a client before it disconnects.
	Closing Event = 255
)

// Setting is a hub setting that clients may change.
type Setting = uint8

const (
	_ Setting = iota
	Compression
	CompressionLevel
	FrameSkipping
)

// Type is the first byte of a message sent to clients.
type Type = uint8

const (
	// Frame carries a new frame, [Frame, index (2), data...]. The
	// frame is stored in the client's cache at index.
	Frame Type = iota
	// FrameSkip reports the number of unchanged frames skipped since
	// the last frame, [FrameSkip, count (4)].
	FrameSkip
	// FrameCache repeats a cached frame, [FrameCache, index (2)].
	FrameCache
	// FrameCacheSync carries every cached frame to a new client, as
	// repeated [length (4), index (2), data...].
	FrameCacheSync
	// FrameSync carries the current frame to a new client.
	FrameSync
	// ClientInfo carries the hub status, [ClientInfo, status, level].
	ClientInfo
	// ServerInfo carries the number of connected clients, followed
	// by the ID and average latency in ms (u16) of each.
	ServerInfo
)
