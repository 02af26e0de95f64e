package transport

import "net/http"

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
	// Truncated is set when the body was cut at the read limit.
	Truncated  bool
}

// Successful reports a 2xx status.
func (r *Response) Successful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Callback receives the single completion of an enqueued Call.
type Callback interface {
	// OnResponse is invoked when any HTTP response was received, successful or not.
	OnResponse(call Call, resp *Response)
	// OnFailure is invoked when no response was received.
	OnFailure(call Call, err error)
}

// Call is a request handle that can be enqueued once and cancelled.
type Call interface {
	// Enqueue starts the call asynchronously. Exactly one of the callback's
	// methods is invoked, from another goroutine.
	Enqueue(cb Callback)
	// Cancel aborts the call. Safe to call at any time, any number of times.
	Cancel()
	IsExecuted() bool
	IsCanceled() bool
}

// CallbackFuncs adapts two functions to Callback.
type CallbackFuncs struct {
	Response func(call Call, resp *Response)
	Failure  func(call Call, err error)
}

func (f CallbackFuncs) OnResponse(call Call, resp *Response) {
	if f.Response != nil {
		f.Response(call, resp)
	}
}

func (f CallbackFuncs) OnFailure(call Call, err error) {
	if f.Failure != nil {
		f.Failure(call, err)
	}
}
