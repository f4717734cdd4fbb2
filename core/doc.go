// Package core defines the shared data model of the butler conversation
// engine: chat messages, tool calls, the provider stream-event contract and
// the orchestrator event contract consumed by transport layers. All types are
// plain values safe to copy; none carry hidden state.
package core
