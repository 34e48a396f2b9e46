package establishment

import (
	"context"
	"sync"

	"github.com/heartmarshall/safetylog-backend/internal/telemetry"
)

var _ telemetrySink = &telemetrySinkMock{}

type telemetrySinkMock struct {
	BreadcrumbFunc       func(ctx context.Context, b telemetry.Breadcrumb)
	CaptureExceptionFunc func(ctx context.Context, err error, tags map[string]string)

	calls struct {
		Breadcrumb []struct {
			Ctx context.Context
			B   telemetry.Breadcrumb
		}
		CaptureException []struct {
			Ctx  context.Context
			Err  error
			Tags map[string]string
		}
	}
	lockBreadcrumb       sync.RWMutex
	lockCaptureException sync.RWMutex
}

func (mock *telemetrySinkMock) Breadcrumb(ctx context.Context, b telemetry.Breadcrumb) {
	if mock.BreadcrumbFunc == nil {
		panic("telemetrySinkMock.BreadcrumbFunc: method is nil but telemetrySink.Breadcrumb was just called")
	}
	callInfo := struct {
		Ctx context.Context
		B   telemetry.Breadcrumb
	}{Ctx: ctx, B: b}
	mock.lockBreadcrumb.Lock()
	mock.calls.Breadcrumb = append(mock.calls.Breadcrumb, callInfo)
	mock.lockBreadcrumb.Unlock()
	mock.BreadcrumbFunc(ctx, b)
}

func (mock *telemetrySinkMock) BreadcrumbCalls() []struct {
	Ctx context.Context
	B   telemetry.Breadcrumb
} {
	mock.lockBreadcrumb.RLock()
	calls := mock.calls.Breadcrumb
	mock.lockBreadcrumb.RUnlock()
	return calls
}

func (mock *telemetrySinkMock) CaptureException(ctx context.Context, err error, tags map[string]string) {
	if mock.CaptureExceptionFunc == nil {
		panic("telemetrySinkMock.CaptureExceptionFunc: method is nil but telemetrySink.CaptureException was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Err  error
		Tags map[string]string
	}{Ctx: ctx, Err: err, Tags: tags}
	mock.lockCaptureException.Lock()
	mock.calls.CaptureException = append(mock.calls.CaptureException, callInfo)
	mock.lockCaptureException.Unlock()
	mock.CaptureExceptionFunc(ctx, err, tags)
}

func (mock *telemetrySinkMock) CaptureExceptionCalls() []struct {
	Ctx  context.Context
	Err  error
	Tags map[string]string
} {
	mock.lockCaptureException.RLock()
	calls := mock.calls.CaptureException
	mock.lockCaptureException.RUnlock()
	return calls
}
