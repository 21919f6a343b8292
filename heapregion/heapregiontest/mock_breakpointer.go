// Package heapregiontest holds a generated-style mock of
// heapregion.BreakPointerSource, for the one seam where a real interface
// benefits from a mock rather than the hand-rolled SliceBreakPointer fake:
// exercising HeapExhausted propagation without constructing a backing
// store that actually runs out of room.
package heapregiontest

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"
)

// MockBreakPointerSource is a mock of the heapregion.BreakPointerSource interface.
type MockBreakPointerSource struct {
	ctrl     *gomock.Controller
	recorder *MockBreakPointerSourceMockRecorder
}

// MockBreakPointerSourceMockRecorder is the mock recorder for MockBreakPointerSource.
type MockBreakPointerSourceMockRecorder struct {
	mock *MockBreakPointerSource
}

// NewMockBreakPointerSource creates a new mock instance.
func NewMockBreakPointerSource(ctrl *gomock.Controller) *MockBreakPointerSource {
	mock := &MockBreakPointerSource{ctrl: ctrl}
	mock.recorder = &MockBreakPointerSourceMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockBreakPointerSource) EXPECT() *MockBreakPointerSourceMockRecorder {
	return m.recorder
}

// Sbrk mocks base method.
func (m *MockBreakPointerSource) Sbrk(n int) (int, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Sbrk", n)
	ret0, _ := ret[0].(int)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// Sbrk indicates an expected call of Sbrk.
func (mr *MockBreakPointerSourceMockRecorder) Sbrk(n any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Sbrk", reflect.TypeOf((*MockBreakPointerSource)(nil).Sbrk), n)
}

// Bytes mocks base method.
func (m *MockBreakPointerSource) Bytes() []byte {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "Bytes")
	ret0, _ := ret[0].([]byte)
	return ret0
}

// Bytes indicates an expected call of Bytes.
func (mr *MockBreakPointerSourceMockRecorder) Bytes() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "Bytes", reflect.TypeOf((*MockBreakPointerSource)(nil).Bytes))
}

// ResetBrk mocks base method.
func (m *MockBreakPointerSource) ResetBrk() {
	m.ctrl.T.Helper()
	m.ctrl.Call(m, "ResetBrk")
}

// ResetBrk indicates an expected call of ResetBrk.
func (mr *MockBreakPointerSourceMockRecorder) ResetBrk() *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "ResetBrk", reflect.TypeOf((*MockBreakPointerSource)(nil).ResetBrk))
}
