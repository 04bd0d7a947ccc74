//go:build ib64

package mesh

// index64Enabled reports whether the 64-bit index buffer tags are
// available in this build.
const index64Enabled = true
