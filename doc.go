/*
Package enetconf is a set of NETCONF (RFC6241) message decoding libraries.

Incoming NETCONF documents are first checked against the base:1.0
protocol schema (see the schema sub-directory), producing a parse
tree which the message package then walks once to produce a typed
<hello> or <rpc> message. Supported <rpc> operations are
<get-config>, <edit-config>, <copy-config> and <delete-config>.

Decode failures carry enough detail to be reported to the peer as
an <rpc-error> (see ncerr), while deciding whether a failure should
terminate the session is left to the caller.

The framing package reads RFC6242 framed message streams and is used
by the ncdecode command to inspect captured sessions.
*/
package enetconf
