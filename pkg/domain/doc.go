/*
Package domain contains the core models shared by every blinks adapter.

It defines what a caller asks for (ActionRequest), what it gets back (ActionResult)
and the events emitted around an invocation. The package is free of I/O so that the
invoker, the MCP server, the HTTP gateway and the CLI can all depend on it.

# Key Entities

  - ActionRequest: action name, raw parameters and the caller account identifier.
  - ActionResult: tagged outcome, either a success payload or a failure message.
  - ErrorKind: the category of a failure (config, validation, remote, unexpected).
  - InvocationEvent: what hooks observe before and after the outbound call.
*/
package domain
