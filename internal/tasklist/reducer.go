package tasklist

import (
	"context"
	"strings"
)

// Reducer returns the next state from the current one. Reducers are pure.
type Reducer func(State) State

// ReducerStream emits, in order, the reducers of a single operation. Emit must
// not be called after the stream returns.
type ReducerStream func(ctx context.Context, emit func(Reducer))

// just returns a stream with a single reducer.
func just(r Reducer) ReducerStream {
	return func(_ context.Context, emit func(Reducer)) { emit(r) }
}

// onLoaded returns a reducer that only changes loaded states, any other state
// is returned unchanged.
func onLoaded(f func(TasksLoaded) TasksLoaded) Reducer {
	return func(s State) State {
		loaded, ok := s.(TasksLoaded)
		if !ok {
			return s
		}
		return f(loaded)
	}
}

// transitionSlot returns a reducer that replaces the item of a task ID only
// when the item is in the T variant, otherwise the state is returned unchanged.
func transitionSlot[T TaskItemState](id string, f func(T) TaskItemState) Reducer {
	return onLoaded(func(s TasksLoaded) TasksLoaded {
		item, ok := s.Tasks.Get(id)
		if !ok {
			return s
		}
		from, ok := item.(T)
		if !ok {
			return s
		}
		s.Tasks = s.Tasks.Put(f(from))
		return s
	})
}

// resolveSlot returns a reducer like transitionSlot that also requires the item
// to be owned by the operation ID. Results of operations that don't own the slot
// are ignored.
func resolveSlot[T inProgressItem](id, opID string, f func(T) TaskItemState) Reducer {
	return transitionSlot(id, func(from T) TaskItemState {
		if from.operationID() != opID {
			return from
		}
		return f(from)
	})
}

// removeSlot returns a reducer that removes the item of a task ID only when
// the item is in the T variant.
func removeSlot[T TaskItemState](id string) Reducer {
	return onLoaded(func(s TasksLoaded) TasksLoaded {
		item, ok := s.Tasks.Get(id)
		if !ok {
			return s
		}
		if _, ok := item.(T); !ok {
			return s
		}
		s.Tasks = s.Tasks.Remove(id)
		return s
	})
}

func isNotBlank(s string) bool { return strings.TrimSpace(s) != "" }
