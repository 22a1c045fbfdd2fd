package scroll

import "fmt"

// safely runs a user callback. A panic is logged with the item index and
// swallowed so one bad binding cannot break the frame.
func (r *Region) safely(callback string, index int, fn func()) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			ok = false
			ev := r.log.Error().Str("callback", callback)
			if index >= 0 {
				ev = ev.Int("index", index)
			}
			if err, isErr := rec.(error); isErr {
				ev = ev.Err(err)
			} else {
				ev = ev.Str("panic", fmt.Sprint(rec))
			}
			ev.Msg("callback panicked")
		}
	}()
	fn()
	return true
}

// safeBounce calls a bounce phase override and reports whether it returned.
func (r *Region) safeBounce(phase string, fn func() float32) (pos float32, ok bool) {
	ok = r.safely(phase, -1, func() { pos = fn() })
	return pos, ok
}
