/*
Package framing offers RFC6242 end-of-message and chunked framing decoders.

SplitEOM and SplitChunked return bufio.SplitFunc for use with a
*bufio.Scanner. These functions will return io.ErrUnexpectedEOF when input
terminates other than at the end of a message.

Reader builds on them to return one whole message per ReadMessage call,
and can switch from end-of-message to chunked framing between messages,
as a session does once base:1.1 has been negotiated:

	r := framing.NewReader(conn)
	hello, err := r.ReadMessage()
	...
	r.SetChunked()
	rpc, err := r.ReadMessage()
*/
package framing
