package container

import (
	"runtime"
	"strconv"
	"strings"
)

// goid returns the id of the calling goroutine.
func goid() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	idField := strings.Fields(strings.TrimPrefix(string(buf[:n]), "goroutine "))[0]
	id, _ := strconv.ParseInt(idField, 10, 64)
	return id
}

// begin returns the resolution in flight on the calling goroutine, or starts
// a new one. A lookup issued from a constructor or hook therefore continues
// the chain of the bean being created, and a lookup leading back to that bean
// fails as a cycle instead of waiting on its own creation lock.
func (c *Container) begin() (*resolution, func()) {
	id := goid()
	if r, ok := c.active.Load(id); ok {
		res := r.(*resolution)
		res.fresh = true
		return res, func() {}
	}
	res := &resolution{fresh: true}
	c.active.Store(id, res)
	return res, func() { c.active.Delete(id) }
}
