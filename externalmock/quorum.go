// Copyright (C) 2025, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Hand-written in the shape of MockGen output.
// Source: external/external.go (QuorumProvider)

package externalmock

import (
	reflect "reflect"

	gomock "go.uber.org/mock/gomock"

	external "github.com/luxfi/quorumcop/external"
	vote "github.com/luxfi/quorumcop/vote"
)

// MockQuorumProvider is a mock of the QuorumProvider interface.
type MockQuorumProvider struct {
	ctrl     *gomock.Controller
	recorder *MockQuorumProviderMockRecorder
}

// MockQuorumProviderMockRecorder is the mock recorder for MockQuorumProvider.
type MockQuorumProviderMockRecorder struct {
	mock *MockQuorumProvider
}

// NewMockQuorumProvider creates a new mock instance.
func NewMockQuorumProvider(ctrl *gomock.Controller) *MockQuorumProvider {
	mock := &MockQuorumProvider{ctrl: ctrl}
	mock.recorder = &MockQuorumProviderMockRecorder{mock}
	return mock
}

// EXPECT returns an object that allows the caller to indicate expected use.
func (m *MockQuorumProvider) EXPECT() *MockQuorumProviderMockRecorder {
	return m.recorder
}

// GetQuorum mocks base method.
func (m *MockQuorumProvider) GetQuorum(qtype vote.QuorumType, height uint64) (external.Quorum, bool) {
	m.ctrl.T.Helper()
	ret := m.ctrl.Call(m, "GetQuorum", qtype, height)
	ret0, _ := ret[0].(external.Quorum)
	ret1, _ := ret[1].(bool)
	return ret0, ret1
}

// GetQuorum indicates an expected call of GetQuorum.
func (mr *MockQuorumProviderMockRecorder) GetQuorum(qtype, height any) *gomock.Call {
	mr.mock.ctrl.T.Helper()
	return mr.mock.ctrl.RecordCallWithMethodType(mr.mock, "GetQuorum", reflect.TypeOf((*MockQuorumProvider)(nil).GetQuorum), qtype, height)
}

var _ external.QuorumProvider = (*MockQuorumProvider)(nil)
