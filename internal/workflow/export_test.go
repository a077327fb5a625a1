package workflow

import "github.com/ThreeDotsLabs/watermill/message"

// ProcessMessage exposes the handler body to the external test package
func ProcessMessage(h Handler, msg *message.Message) error {
	return h.(*handler).processMessage(msg)
}
