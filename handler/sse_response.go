package handler

import "net/http"

// SSEHandler runs for the lifetime of a datastar event stream.
//
//	handler.SSE(func(stream handler.StreamContext) error {
//		if err := stream.SendSignal("explaining", true); err != nil {
//			return err
//		}
//		text, err := explain(stream)
//		if err != nil {
//			return err
//		}
//		return stream.SendComponent(views.Explanation(text), handler.WithTarget("#explanation"))
//	})
type SSEHandler func(ctx StreamContext) error

type sseResponse struct {
	handler SSEHandler
}

func (s sseResponse) Render(w http.ResponseWriter, r *http.Request) error {
	if !IsDataStar(r) {
		return ErrBadRequest.WithMessage("SSE endpoint requires DataStar connection")
	}

	base := NewContext(w, r)
	sse := base.SSE()
	if sse == nil {
		return ErrSSENotInitialized
	}
	return s.handler(&streamContext{Context: base, sse: sse})
}

// SSE creates a streaming response for datastar clients.
func SSE(handler SSEHandler) Response {
	return sseResponse{handler: handler}
}
