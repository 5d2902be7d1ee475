// Package event provides the change-notification mailbox used by the view layer.
//
// Unlike a global publish/subscribe bus, a Mailbox is owned by exactly one
// aggregate (the view document) and delivers records synchronously, in post
// order, to its subscribers. There is no topic routing and no async queue:
// change propagation from view nodes to the renderer's dirty set must be
// strictly ordered with respect to the mutations that produced it.
package event
