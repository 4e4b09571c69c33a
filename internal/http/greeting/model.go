package greeting

// Message is the fixed body served at the root path.
const Message = "Hello from Cloud DevOps Project! 🚀"

// ContentType is sent with Message.
const ContentType = "text/plain; charset=utf-8"

// Output carries the raw greeting bytes; huma writes a []byte body verbatim.
type Output struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}
