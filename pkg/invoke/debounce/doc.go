/*
Package debounce delays invoking a function until a quiet period has elapsed
since the last call.

Each Call records its argument as the latest and restarts the quiet period,
so a burst of calls spaced closer than Wait collapses into one invocation
with the argument of the last call:

	d, err := debounce.New(func(q string) error {
		return index.Search(q)
	}, 300*time.Millisecond)
	if err != nil {
		return err
	}

	d.Call("g")
	d.Call("go")
	d.Call("gol") // index.Search("gol") runs 300ms after this call

Edges:

  - Trailing (default): run once the quiet period elapses, with the latest argument.
  - Leading: run synchronously on the first call of a burst; the error is
    returned from Call.
  - Leading and Trailing: the first call runs immediately. The trailing run
    happens only if more calls arrived during the burst, so an isolated call
    runs the function exactly once.

Errors from trailing runs have no caller to return to. They are passed to
Config.OnError, or logged with zap when no handler is set. Panics in trailing
runs are recovered and reported the same way as *errors.PanicError.

Cancel discards the pending run. Flush runs it now. All methods are safe for
concurrent use; each Debouncer serializes access to its own state.
*/
package debounce
