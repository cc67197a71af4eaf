// Package core holds numeric helpers, buffer layout conversion and the
// ProcessSpec that block processors are prepared with.
package core
