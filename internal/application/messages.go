package application

// Formatting tells the transport how to present an outbound message.
type Formatting int

const (
	FormattingPlain Formatting = iota
	FormattingRich
)

type AttachmentKind int

const (
	AttachmentTabular AttachmentKind = iota
	AttachmentImage
)

// Attachment points at an exported artifact the transport may send alongside
// the message text.
type Attachment struct {
	Kind AttachmentKind
	Path string
}

// OutboundMessage is the session's reply to one inbound chat message. The
// transport layer is responsible for delivering it.
type OutboundMessage struct {
	Text       string
	Formatting Formatting
	Attachment *Attachment
}
