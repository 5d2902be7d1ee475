// Package render keeps a native DOM tree synchronized with a view tree.
//
// The DomConverter holds the bidirectional binding between view nodes and
// DOM nodes and converts view subtrees into fresh DOM subtrees. The Renderer
// consumes the dirty set accumulated since the last pass and patches the
// bound DOM with the smallest mutation it can get away with:
//
//   - text marks patch the bound text node's data only
//   - attribute marks apply a keyed add/update/remove diff
//   - children marks reconcile the child list, reusing every already-bound
//     node and converting only the genuinely new ones, then descend to bring
//     the whole marked subtree into agreement
//
// A pass is idempotent per node: re-applying an entry against an already
// synchronized subtree performs zero DOM mutations. The dirty set is cleared
// only after every entry applied cleanly, so an aborted pass can be retried.
// After any mutation that overlaps the view selection, the native selection
// is re-applied through the converter, because DOM mutation silently
// invalidates native caret state.
package render
