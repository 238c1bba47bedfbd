package dispatcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gesturify/internal/gesture"
	"gesturify/internal/input"
)

type recordingInjector struct {
	mu      sync.Mutex
	calls   []string
	err     error
	panicOn string
}

func (r *recordingInjector) Inject(ctx context.Context, action string) error {
	r.mu.Lock()
	r.calls = append(r.calls, action)
	r.mu.Unlock()
	if action == r.panicOn {
		panic("injector exploded")
	}
	return r.err
}

func (r *recordingInjector) Calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.calls...)
}

func newTestDispatcher(t *testing.T, inj input.InputInjector, opts ...Option) *Dispatcher {
	t.Helper()
	table, err := gesture.NewTable(gesture.DefaultMappings())
	require.NoError(t, err)
	opts = append([]Option{WithLogger(log.New(io.Discard))}, opts...)
	return New(table, inj, opts...)
}

func TestHandleMappedGesturesInjectOnce(t *testing.T) {
	for name, action := range gesture.DefaultMappings() {
		t.Run(name, func(t *testing.T) {
			inj := &recordingInjector{}
			d := newTestDispatcher(t, inj)

			res := d.Handle(context.Background(), NewRequest(name))

			assert.Equal(t, Success(action), res)
			assert.Equal(t, []string{action}, inj.Calls())
		})
	}
}

func TestHandleUnmappedGestureIsIgnored(t *testing.T) {
	inj := &recordingInjector{}
	d := newTestDispatcher(t, inj)

	for _, name := range []string{"Wave", "thumbs up", "Fist ", "👍"} {
		res := d.Handle(context.Background(), NewRequest(name))
		assert.Equal(t, KindIgnored, res.Kind, name)
		assert.Equal(t, ReasonNoAction, res.Reason)
	}
	assert.Empty(t, inj.Calls())
}

func TestHandleMissingGesture(t *testing.T) {
	inj := &recordingInjector{}
	d := newTestDispatcher(t, inj)

	for _, req := range []Request{{}, NewRequest(""), NewRequest("   "), NewRequest("\t\n")} {
		res := d.Handle(context.Background(), req)
		assert.Equal(t, ValidationError(ReasonGestureMissing), res)
		assert.Equal(t, http.StatusBadRequest, res.HTTPStatus())
	}
	assert.Empty(t, inj.Calls())
}

func TestHandleInjectionFailure(t *testing.T) {
	inj := &recordingInjector{err: fmt.Errorf("%w: no active window", input.ErrInjectionFailed)}
	d := newTestDispatcher(t, inj)

	res := d.Handle(context.Background(), NewRequest("Fist"))

	assert.Equal(t, KindExecutionError, res.Kind)
	assert.Equal(t, "key injection failed: no active window", res.Reason)
	assert.Equal(t, http.StatusInternalServerError, res.HTTPStatus())
	assert.Equal(t, []string{"stop"}, inj.Calls())
}

func TestHandleRecoversInjectorPanic(t *testing.T) {
	inj := &recordingInjector{panicOn: "space"}
	d := newTestDispatcher(t, inj)

	var res Result
	require.NotPanics(t, func() {
		res = d.Handle(context.Background(), NewRequest("Thumbs Up"))
	})
	assert.Equal(t, KindExecutionError, res.Kind)
	assert.Contains(t, res.Reason, "injector exploded")
	assert.Contains(t, res.Reason, ErrPanic.Error())
}

func TestHandleDoesNotDeduplicate(t *testing.T) {
	inj := &recordingInjector{}
	d := newTestDispatcher(t, inj)

	first := d.Handle(context.Background(), NewRequest("Point"))
	second := d.Handle(context.Background(), NewRequest("Point"))

	assert.Equal(t, Success("nexttrack"), first)
	assert.Equal(t, Success("nexttrack"), second)
	assert.Equal(t, []string{"nexttrack", "nexttrack"}, inj.Calls())
}

func TestHandleConcurrent(t *testing.T) {
	inj := &recordingInjector{}
	d := newTestDispatcher(t, inj)

	const n = 50
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			name := "Shaka"
			if i%2 == 0 {
				name = "Wave"
			}
			d.Handle(context.Background(), NewRequest(name))
		}(i)
	}
	wg.Wait()

	assert.Len(t, inj.Calls(), n/2)
}

func TestInjectTimeoutAndHook(t *testing.T) {
	var gotDeadline bool
	inj := injectorFunc(func(ctx context.Context, action string) error {
		_, gotDeadline = ctx.Deadline()
		return nil
	})

	var hookAction string
	var hookErr error
	d := newTestDispatcher(t, inj,
		WithInjectTimeout(time.Second),
		WithInjectHook(func(action string, elapsed time.Duration, err error) {
			hookAction, hookErr = action, err
		}),
	)

	res := d.Handle(context.Background(), NewRequest("Point Down"))
	assert.Equal(t, Success("volumedown"), res)
	assert.True(t, gotDeadline)
	assert.Equal(t, "volumedown", hookAction)
	assert.NoError(t, hookErr)
}

func TestHookNotCalledForUnmapped(t *testing.T) {
	called := false
	d := newTestDispatcher(t, &recordingInjector{},
		WithInjectHook(func(string, time.Duration, error) { called = true }))

	d.Handle(context.Background(), NewRequest("Wave"))
	d.Handle(context.Background(), Request{})
	assert.False(t, called)
}

func TestHookPanicKeepsSuccess(t *testing.T) {
	inj := &recordingInjector{}
	var after bool
	d := newTestDispatcher(t, inj,
		WithInjectHook(func(string, time.Duration, error) { panic("tray gone") }),
		WithInjectHook(func(string, time.Duration, error) { after = true }),
	)

	res := d.Handle(context.Background(), NewRequest("Fist"))
	assert.Equal(t, Success("stop"), res)
	assert.Equal(t, []string{"stop"}, inj.Calls())
	assert.True(t, after, "later hooks still run")
}

func TestRequestUnmarshalExactKey(t *testing.T) {
	cases := []struct {
		body    string
		want    *string
		wantErr bool
	}{
		{`{"gesture":"Fist"}`, ptr("Fist"), false},
		{`{"gesture":""}`, ptr(""), false},
		{`{"gesture":null}`, nil, false},
		{`{}`, nil, false},
		{`null`, nil, false},
		{`{"Gesture":"Fist"}`, nil, false},
		{`{"GESTURE":"Fist"}`, nil, false},
		{`{"gesture":"Wave","Gesture":"Fist"}`, ptr("Wave"), false},
		{`{"gesture":5}`, nil, true},
		{`[]`, nil, true},
	}
	for _, tc := range cases {
		var req Request
		err := json.Unmarshal([]byte(tc.body), &req)
		if tc.wantErr {
			assert.Error(t, err, tc.body)
			continue
		}
		require.NoError(t, err, tc.body)
		assert.Equal(t, tc.want, req.Gesture, tc.body)
	}
}

func ptr(s string) *string { return &s }

func TestClassify(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{fmt.Errorf("%w: x", input.ErrPermissionDenied), "permission_denied"},
		{input.ErrNoDisplay, "no_display"},
		{input.ErrUnsupportedPlatform, "unsupported_platform"},
		{fmt.Errorf("%w: xdotool", input.ErrToolNotFound), "tool_not_found"},
		{fmt.Errorf("%w: %q", input.ErrUnknownKey, "x"), "unknown_key"},
		{context.DeadlineExceeded, "timeout"},
		{errors.New("boom"), "injection_failed"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, classify(tc.err), tc.err.Error())
	}
}

func TestResultWireMapping(t *testing.T) {
	assert.Equal(t, "success", Success("space").Status())
	assert.Equal(t, "ignored", Ignored("x").Status())
	assert.Equal(t, "error", ValidationError("x").Status())
	assert.Equal(t, "error", ExecutionError("x").Status())

	assert.Equal(t, http.StatusOK, Success("space").HTTPStatus())
	assert.Equal(t, http.StatusOK, Ignored("x").HTTPStatus())

	assert.Equal(t, "validation_error", KindValidationError.String())
	assert.Equal(t, "execution_error", KindExecutionError.String())
}

type injectorFunc func(ctx context.Context, action string) error

func (f injectorFunc) Inject(ctx context.Context, action string) error { return f(ctx, action) }
