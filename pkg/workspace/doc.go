// Package workspace owns the per-thread preallocated buffers spec.md
// §4.4.4 requires: the normals buffer and the path observer; no state
// trajectory buffer is kept. A Workspace is built once per tile and its
// buffers are reused across every path in that tile rather than
// reallocated per path.
package workspace
