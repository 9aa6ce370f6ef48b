/*
Package ports defines the driven ports (interfaces) of blinks.

These interfaces decouple invocation from the backends that observe it.

# Key Interfaces

  - Journal: Records invocation outcomes for later inspection (memory or Redis).
*/
package ports
