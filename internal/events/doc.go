// Package events publishes board changes to interested components.
//
// Services emit a BoardEvent after a change has committed. Handlers are
// registered on an EventEmitter and run synchronously in registration order.
// A failing handler never undoes the change that produced the event.
package events
