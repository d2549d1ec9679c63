package pipeline

import (
	"context"
	"reflect"

	"github.com/ib-77/convee/pkg/convee"
	"github.com/ib-77/convee/pkg/convee/metadata"
)

// StoreMetadata is a pass-through step recording the running value under key.
func StoreMetadata[T any](key string) Step {
	return Func[T, T](func(_ context.Context, in T, md *metadata.Helper) (T, error) {
		md.Add(key, in)
		return in, nil
	})
}

// StoreOutput records the output of prev under key. It is typed after prev
// and must be placed right after it.
func StoreOutput(prev Step, key string) Step {
	t := convee.TypeOf[any]()
	if !convee.IsNil(prev) {
		t = prev.Out()
	}
	return storeStep{key: key, t: t}
}

type storeStep struct {
	key string
	t   reflect.Type
}

func (s storeStep) In() reflect.Type {
	return s.t
}

func (s storeStep) Out() reflect.Type {
	return s.t
}

func (s storeStep) call(_ context.Context, in any, md *metadata.Helper) (any, error) {
	md.Add(s.key, in)
	return in, nil
}
