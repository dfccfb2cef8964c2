// Package node implements the scene graph and its membership cascade.
//
// Every Node is a primary behavior host. Structural changes fire lifecycles
// on the moved node, on its new or former parent and on every ancestor above
// it, and then walk the moved subtree:
//
//   - joining a tree rooted at a Stage sets each node's Stage reference and
//     enables its behaviors;
//   - joining a detached tree, or leaving any tree, clears the Stage
//     reference and disables behaviors without unmounting them.
//
// The same walk recomputes each node's innermost enclosing Scene.
package node
