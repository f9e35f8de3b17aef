// Package kernel provides core domain primitives shared across the
// fulfillment scheduler's domain model.
//
// Currently this is the UUID value object used as the identity of every
// aggregate and entity. The primitives are immutable and thread-safe, and
// they enforce their own validation rules so that domain objects built on
// top of them are always in a valid state.
package kernel
