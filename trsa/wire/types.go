package wire

type MessageType uint8

const (
	MessageTypePublicKey     MessageType = 1
	MessageTypeCiphertext    MessageType = 2
	MessageTypeCiphertextLZ4 MessageType = 3
	MessageTypeAck           MessageType = 4
	MessageTypeClose         MessageType = 5
	MessageTypeKeyRequest    MessageType = 6
)

func (t MessageType) String() string {
	switch t {
	case MessageTypePublicKey:
		return "PUBLIC_KEY"
	case MessageTypeCiphertext:
		return "CIPHERTEXT"
	case MessageTypeCiphertextLZ4:
		return "CIPHERTEXT_LZ4"
	case MessageTypeAck:
		return "ACK"
	case MessageTypeClose:
		return "CLOSE"
	case MessageTypeKeyRequest:
		return "KEY_REQUEST"
	default:
		return "UNKNOWN"
	}
}
