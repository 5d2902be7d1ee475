// Package view implements the abstract tree model of editable content.
//
// The view tree is the source of truth for what the editing surface should
// contain. It is mirrored into a native DOM tree by the renderer; the view
// layer itself never touches the DOM.
//
// The package provides:
//   - Node, Element and Text: the tagged node variants of the tree
//   - Position, Range and Selection: locations over the tree
//   - Writer: the mutation API used by higher layers
//
// Every mutation performed through the tree notifies the change sink attached
// to the tree's root, carrying a (ChangeKind, Node) record. The document
// aggregate forwards these records into the renderer's dirty set.
//
// Tree invariants maintained by this package:
//   - a node has at most one parent, and the parent's child sequence agrees
//     with the node's parent pointer
//   - no node is its own ancestor
//   - attribute names on an element are unique and keep insertion order
package view
