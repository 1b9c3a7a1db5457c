package viewmodel

import (
	"context"
	"time"

	"github.com/Rahulguptaid/ViewModelExample/pkg/dispatch"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// DefaultFailureMessage is reported when the backend rejects a request
// without saying why.
const DefaultFailureMessage = "Error"

// runAction drives one Idle -> Loading -> Success|Failed run.
//
// The loading flag is raised on the caller's goroutine. call runs on a new
// goroutine; its result is handed to the dispatcher, where the status is
// updated. accept reports whether a result the collaborator returned
// without error is a logical success; when it is not, the returned message
// becomes the error. commit stores the result-bearing state of a success
// before the finish hook fires.
//
// When the dispatcher refuses the completion the span is ended and the run
// is reported as OutcomeDiscarded from the call goroutine.
func runAction[R any](
	ctx context.Context,
	st *Status,
	o options,
	action string,
	call func(context.Context) (R, error),
	accept func(R) (msg string, ok bool),
	commit func(R),
) {
	start := time.Now()
	o.started(action)
	ctx, span := o.tracer.Start(ctx, "viewmodel."+action)
	st.SetLoading(true)

	go func() {
		res, err := call(ctx)
		accepted := dispatch.Submit(o.dispatcher, func() {
			defer span.End()

			if err != nil {
				o.logger.Warn("action failed", "action", action, "error", err)
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				st.SetError(err.Error())
				st.SetLoading(false)
				o.finished(action, OutcomeTransportError, start)
				return
			}

			if msg, ok := accept(res); !ok {
				o.logger.Info("action rejected", "action", action, "message", msg)
				span.SetAttributes(attribute.String("viewmodel.rejection", msg))
				span.SetStatus(codes.Error, msg)
				st.SetError(msg)
				st.SetLoading(false)
				o.finished(action, OutcomeLogicalFailure, start)
				return
			}

			st.ClearError()
			st.SetLoading(false)
			commit(res)
			o.logger.Debug("action succeeded", "action", action, "duration", time.Since(start))
			o.finished(action, OutcomeSuccess, start)
			st.finish()
		})
		if !accepted {
			o.logger.Debug("completion discarded", "action", action)
			span.SetStatus(codes.Error, "completion discarded")
			span.End()
			o.finished(action, OutcomeDiscarded, start)
		}
	}()
}

// rejection returns the error text for a logical failure: the backend's
// message, or DefaultFailureMessage when there is none.
func rejection(msg string) string {
	if msg == "" {
		return DefaultFailureMessage
	}
	return msg
}
