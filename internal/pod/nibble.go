package pod

const (
	// PacketLength is the size of the Apple proximity pairing manufacturer data
	// that carries pod status.
	PacketLength = 27
	// NibbleCount is the number of 4-bit values in a packet.
	NibbleCount = PacketLength * 2
)

// Packet is a raw manufacturer data payload as delivered by the scanner.
type Packet [PacketLength]byte

// Nibbles is a packet expanded into 4-bit values. Position 2i holds the high
// half of byte i and position 2i+1 the low half.
type Nibbles [NibbleCount]uint8

// SplitNibbles expands every byte of the packet into its high and low nibble.
func SplitNibbles(p Packet) Nibbles {
	var n Nibbles
	for i, b := range p {
		n[2*i] = b >> 4
		n[2*i+1] = b & 0x0F
	}
	return n
}

// Byte reassembles byte i from its two nibbles.
func (n Nibbles) Byte(i int) byte {
	return n[2*i]<<4 | n[2*i+1]
}
