// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Hand-written in the shape of MockGen output.
// Source: external/external.go (TxPool)

package externalmock

import (
	"context"
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	external "github.com/luxfi/quorumcop/external"
)

// MockTxPool is a mock of the TxPool interface.
type MockTxPool struct {
	ctrl     *gomock.Controller
	recorder *MockTxPoolMockRecorder
}

// MockTxPoolMockRecorder is the mock recorder for MockTxPool.
type MockTxPoolMockRecorder struct {
	mock *MockTxPool
}

// NewMockTxPool creates a new mock instance.
func NewMockTxPool(ctrl *gomock.Controller) *MockTxPool {
	mock := &MockTxPool{ctrl: ctrl}
	mock.recorder = &MockTxPoolMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockTxPool) EXPECT() *MockTxPoolMockRecorder {
	return m.recorder
}

// HandleIncomingTx mocks base method.
func (m *MockTxPool) HandleIncomingTx(ctx context.Context, blob []byte, opts external.TxOptions) (bool, error) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "HandleIncomingTx", ctx, blob, opts)
	ret0, _ := ret[0].(bool)
	ret1, _ := ret[1].(error)
	return ret0, ret1
}

// HandleIncomingTx indicates an expected call of HandleIncomingTx.
func (mr *MockTxPoolMockRecorder) HandleIncomingTx(ctx, blob, opts any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "HandleIncomingTx", reflect.TypeOf((*MockTxPool)(nil).HandleIncomingTx), ctx, blob, opts)
}

var _ external.TxPool = (*MockTxPool)(nil)
